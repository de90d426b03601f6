// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/retrolin/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// File represents a TOML configuration file.
type File struct {
	Codec  Codec  `toml:"codec"`
	Output Output `toml:"output"`
}

// Codec configures the bytecode and script codecs.
type Codec struct {
	Mode            string `toml:"mode"`
	LenientArgs     bool   `toml:"lenient-args"`
	StrictFlagCheck bool   `toml:"strict-flag-check"`
}

// Output configures the generated files.
type Output struct {
	TextTable string `toml:"text-table"`
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Load parses a TOML configuration file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config file '%s': %w", path, err)
	}

	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, fmt.Errorf("parsing config file '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("unknown config key '%s' in '%s'", undecoded[0].String(), path)
	}
	return f, nil
}

// Apply merges the configuration file into the program options. Options whose
// command line flag was set explicitly, listed by flag name in explicit, take
// precedence over the file.
func (f File) Apply(opts *options.Program, explicit map[string]bool) {
	if !explicit["m"] && f.Codec.Mode != "" {
		opts.Mode = f.Codec.Mode
	}
	if !explicit["t"] && f.Output.TextTable != "" {
		opts.TextTable = f.Output.TextTable
	}
	if !explicit["lenient"] {
		opts.LenientArgs = f.Codec.LenientArgs
	}
	if !explicit["strict-flagcheck"] {
		opts.StrictFlagCheck = f.Codec.StrictFlagCheck
	}
}
