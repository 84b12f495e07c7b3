package embeds

import _ "embed"

//go:embed panel.css
var panelStyle string

//go:embed panel.js
var panelScript string

// PanelStyle returns the stylesheet for the adl-* classes of the log panel.
func PanelStyle() string {
	return panelStyle
}

// PanelScript returns the script that binds expand/collapse to the toggles
// of a written panel document.
func PanelScript() string {
	return panelScript
}
