package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/titanous/json5"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InputKind selects how an input is turned into log entries.
type InputKind int

const (
	InputText InputKind = iota
	InputJSON
	InputHTML
)

func (k InputKind) String() string {
	switch k {
	case InputJSON:
		return "json"
	case InputHTML:
		return "html"
	default:
		return "text"
	}
}

// KindOf picks the input kind from the file extension. Standard input is text.
func KindOf(path string) InputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		return InputJSON
	case ".html", ".htm":
		return InputHTML
	default:
		return InputText
	}
}

// Loader feeds inputs into a logger.
type Loader struct {
	logger *logging.Logger
	level  string
	stdin  io.Reader
}

// NewLoader creates a loader logging at level. stdin is read for the path "-".
func NewLoader(logger *logging.Logger, level string, stdin io.Reader) *Loader {
	return &Loader{logger: logger, level: level, stdin: stdin}
}

// LoadAll loads every path in order. A failing input is logged at error level
// and does not stop the others. It returns the errors of the failed inputs.
func (l *Loader) LoadAll(paths []string) []error {
	var errs []error
	for _, path := range paths {
		if err := l.Load(path); err != nil {
			errs = append(errs, err)
			l.logger.Error(err)
			logging.Errorf("Loader: %v", err)
		}
	}
	return errs
}

// Load reads a single input.
func (l *Loader) Load(path string) error {
	if path == "-" {
		logging.Debugf("Loader: Reading standard input.")
		return l.LoadReader(l.stdin, InputText)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	kind := KindOf(path)
	logging.Debugf("Loader: Reading '%s' as %s.", path, kind)
	if err := l.LoadReader(f, kind); err != nil {
		return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadReader logs the contents of r interpreted as kind.
func (l *Loader) LoadReader(r io.Reader, kind InputKind) error {
	switch kind {
	case InputJSON:
		return l.loadJSON(r)
	case InputHTML:
		return l.loadHTML(r)
	default:
		return l.loadLines(r)
	}
}

// loadJSON logs the whole document as one entry.
func (l *Loader) loadJSON(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading json: %w", err)
	}
	var value interface{}
	if err := json5.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	l.logger.Log(l.level, value)
	return nil
}

// loadHTML logs each top-level element of the fragment. Non-blank top-level
// text is logged as a string.
func (l *Loader) loadHTML(r io.Reader) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return fmt.Errorf("parsing html: %w", err)
	}
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			l.logger.Log(l.level, n)
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				l.logger.Log(l.level, text)
			}
		}
	}
	return nil
}

func (l *Loader) loadLines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		l.logger.Log(l.level, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading lines: %w", err)
	}
	return nil
}
