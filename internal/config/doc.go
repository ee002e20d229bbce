// Package config loads caret's settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. CARET_* environment variables
//
// The result is validated before it is returned.
//
//	cfg, err := config.Load("caret.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Editor.PageHeight)
package config
