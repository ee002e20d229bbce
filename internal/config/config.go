package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/caret/internal/engine/buffer"
)

// Config holds every caret setting.
type Config struct {
	Editor    EditorConfig      `toml:"editor" yaml:"editor"`
	Log       LogConfig         `toml:"log" yaml:"log"`
	Highlight HighlightConfig   `toml:"highlight" yaml:"highlight"`
	Script    ScriptConfig      `toml:"script" yaml:"script"`
	Keys      map[string]string `toml:"keys" yaml:"keys"`
}

// EditorConfig contains editing settings.
type EditorConfig struct {
	// PageHeight is the viewport height in lines, used by page movements.
	PageHeight int `toml:"page_height" yaml:"page_height"`
	// TabWidth is the display width of a tab.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
	// LineEnding is "lf", "crlf" or empty to detect it from the file.
	LineEnding string `toml:"line_ending" yaml:"line_ending"`
	// ReadOnly rejects edits.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File receives log output; empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// HighlightConfig contains syntax coloring settings.
type HighlightConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Language forces a lexer; empty picks one from the file name.
	Language string `toml:"language" yaml:"language"`
	// Theme is a chroma style name.
	Theme string `toml:"theme" yaml:"theme"`
}

// ScriptConfig contains Lua scripting settings.
type ScriptConfig struct {
	// Path is a Lua file run after the document is loaded.
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			PageHeight: 10,
			TabWidth:   4,
		},
		Log: LogConfig{
			Level: "info",
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Theme:   "monokai",
		},
		Keys: map[string]string{},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile decodes path into c, keeping values the file does not set.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.decode(path, data)
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, _ = derr.Position()
			}
			return perr
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
	return nil
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Editor.PageHeight < 1 {
		errs.Add("editor.page_height", "must be at least 1", c.Editor.PageHeight)
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs.Add("editor.tab_width", "must be between 1 and 16", c.Editor.TabWidth)
	}
	if c.Editor.LineEnding != "" {
		if _, ok := buffer.ParseLineEnding(c.Editor.LineEnding); !ok {
			errs.Add("editor.line_ending", "must be lf or crlf", c.Editor.LineEnding)
		}
	}
	if !containsFold(logLevels, c.Log.Level) {
		errs.Add("log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}
	for key, command := range c.Keys {
		if strings.TrimSpace(command) == "" {
			errs.Add("keys."+key, "command must not be empty", command)
		}
	}

	return errs.errOrNil()
}

// LineEnding returns the configured line ending and whether one is set.
func (c *Config) LineEnding() (buffer.LineEnding, bool) {
	if c.Editor.LineEnding == "" {
		return buffer.LineEndingLF, false
	}
	return buffer.ParseLineEnding(c.Editor.LineEnding)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
