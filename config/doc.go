// Package config loads complexity.Config values from files and the
// environment, and keeps a live analyzer in sync with a config file.
//
// Files are decoded by extension (.json, .yaml, .yml, .toml) on top of
// complexity.DefaultConfig, so a file only needs the fields it changes:
//
//	cfg, err := config.Load("tierpick.yaml")
//	cfg, err = config.ApplyEnv(cfg, os.LookupEnv)
//
// Watcher reloads the file on change and publishes a fresh
// *complexity.Analyzer. A reload that fails to parse or validate is logged
// and the previous analyzer stays in place.
package config
