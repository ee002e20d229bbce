package config

import (
	"fmt"
	"strconv"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Environment variables understood by ApplyEnv.
const (
	EnvLogLevel   = "CARET_LOG_LEVEL"
	EnvPageHeight = "CARET_PAGE_HEIGHT"
	EnvTabWidth   = "CARET_TAB_WIDTH"
	EnvTheme      = "CARET_THEME"
)

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvTheme); ok {
		c.Highlight.Theme = v
	}
	if err := envInt(lookup, EnvPageHeight, &c.Editor.PageHeight); err != nil {
		return err
	}
	return envInt(lookup, EnvTabWidth, &c.Editor.TabWidth)
}

func envInt(lookup LookupFunc, key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ValidationError{Path: key, Message: fmt.Sprintf("not an integer: %v", err), Value: v}
	}
	*dst = n
	return nil
}
