package app

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

// Output modes.
const (
	OutputTUI     = "tui"
	OutputHTML    = "html"
	OutputConsole = "console"
)

// ErrInvalidConfig is wrapped by every validation error of CLIArgs.
var ErrInvalidConfig = errors.New("invalid configuration")

// CLIArgs holds all command-line arguments passed to the application.
type CLIArgs struct {
	ConfigPath string
	PanelID    string
	Capacity   int
	Output     string
	HTMLOut    string
	LogDir     string
	Verbose    bool
	Level      string

	// Inputs are the positional file arguments. "-" is standard input.
	Inputs []string
}

// fileConfig mirrors the keys accepted in a TOML config file. Pointers tell
// absent keys apart from zero values.
type fileConfig struct {
	PanelID  *string `toml:"panel_id"`
	Capacity *int    `toml:"capacity"`
	Output   *string `toml:"output"`
	HTMLOut  *string `toml:"html_out"`
	LogDir   *string `toml:"log_dir"`
	Verbose  *bool   `toml:"verbose"`
	Level    *string `toml:"level"`
}

// ParseCLIArgs parses the process arguments and exits on error, like the flag package does.
func ParseCLIArgs() *CLIArgs {
	args, err := ParseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	return args
}

// ParseArgs registers the tool's flags on fs and parses arguments. Values
// from the -config file apply to every flag that was not given explicitly.
func ParseArgs(fs *flag.FlagSet, arguments []string) (*CLIArgs, error) {
	args := &CLIArgs{}

	fs.StringVar(&args.ConfigPath, "config", "", "Path to a TOML config file.")
	fs.StringVar(&args.PanelID, "panel-id", "debug-panel", "Identifier of the panel that receives entries.")
	fs.IntVar(&args.Capacity, "capacity", logging.DefaultCapacity, "Maximum number of retained entries.")
	fs.StringVar(&args.Output, "output", OutputTUI, "Display surface: tui, html or console.")
	fs.StringVar(&args.HTMLOut, "html-out", "log.html", "Destination of the document written in html mode.")
	fs.StringVar(&args.LogDir, "log-dir", ".", "Specifies the directory to store log files.")
	fs.BoolVar(&args.Verbose, "verbose", false, "Enable verbose (debug) logging.")
	fs.StringVar(&args.Level, "level", "info", "Level label of entries read from text input.")
	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}
	args.Inputs = fs.Args()

	if args.ConfigPath != "" {
		data, err := os.ReadFile(args.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if err := args.applyConfig(data, explicit); err != nil {
			return nil, fmt.Errorf("config file %s: %w", args.ConfigPath, err)
		}
	}

	if err := args.Validate(); err != nil {
		return nil, err
	}
	return args, nil
}

// applyConfig overlays the TOML document on args, skipping explicit flags.
func (a *CLIArgs) applyConfig(data []byte, explicit map[string]bool) error {
	var cfg fileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return fmt.Errorf("unknown keys: %s", strictErr.String())
		}
		return err
	}

	setString := func(name string, dst *string, v *string) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}
	setString("panel-id", &a.PanelID, cfg.PanelID)
	setString("output", &a.Output, cfg.Output)
	setString("html-out", &a.HTMLOut, cfg.HTMLOut)
	setString("log-dir", &a.LogDir, cfg.LogDir)
	setString("level", &a.Level, cfg.Level)
	if cfg.Capacity != nil && !explicit["capacity"] {
		a.Capacity = *cfg.Capacity
	}
	if cfg.Verbose != nil && !explicit["verbose"] {
		a.Verbose = *cfg.Verbose
	}
	return nil
}

// Validate checks the output mode, the panel identifier and the capacity.
func (a *CLIArgs) Validate() error {
	switch a.Output {
	case OutputTUI, OutputHTML, OutputConsole:
	default:
		return fmt.Errorf("%w: unknown output mode '%s'", ErrInvalidConfig, a.Output)
	}
	if a.PanelID == "" {
		return fmt.Errorf("%w: panel id must not be empty", ErrInvalidConfig)
	}
	if a.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, a.Capacity)
	}
	if a.Output == OutputHTML && a.HTMLOut == "" {
		return fmt.Errorf("%w: html mode needs -html-out", ErrInvalidConfig)
	}
	return nil
}

// ResolveInputs settles what standard input is used for. Without inputs it
// is read, unless the terminal UI owns the terminal it is attached to; "-" in
// that situation is rejected.
func (a *CLIArgs) ResolveInputs(stdinIsTerminal bool) error {
	uiOwnsStdin := a.Output == OutputTUI && stdinIsTerminal
	if len(a.Inputs) == 0 {
		if !uiOwnsStdin {
			a.Inputs = []string{"-"}
		}
		return nil
	}
	if !uiOwnsStdin {
		return nil
	}
	for _, in := range a.Inputs {
		if in == "-" {
			return fmt.Errorf("%w: standard input is the terminal used by the tui output", ErrInvalidConfig)
		}
	}
	return nil
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
