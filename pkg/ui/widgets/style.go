package widgets

import (
	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/gdamore/tcell/v2"
)

var (
	KeyColor   = tcell.ColorLightSkyBlue
	ValueColor = tcell.ColorLightSalmon
)

// LevelColor returns the terminal colour matching a level's style class.
func LevelColor(level logging.LogLevel) tcell.Color {
	switch level {
	case logging.LevelError:
		return tcell.ColorRed
	case logging.LevelWarn:
		return tcell.ColorYellow
	case logging.LevelInfo:
		return tcell.ColorDodgerBlue
	case logging.LevelDebug:
		return tcell.ColorLightGreen
	default:
		return tcell.ColorGray
	}
}
