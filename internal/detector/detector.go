// Package detector handles conversion mode detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrolin/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles conversion mode detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new mode detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the conversion mode from options or file auto-detection.
// It first checks if a mode is explicitly specified in options, otherwise
// attempts to detect the mode from the input filename extension.
func (d *Detector) Detect(opts options.Program) options.Mode {
	mode := options.Mode(opts.Mode)
	if mode == "" {
		mode = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected mode",
			log.String("mode", string(mode)),
			log.String("file", opts.Input))
	}
	return mode
}

// detectFromFile determines the conversion mode based on file extension.
func (d *Detector) detectFromFile(filename string) options.Mode {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".linscript":
		return options.Assemble
	case ".lin", ".bin", ".bytecode":
		return options.Disassemble
	default:
		// Default to disassembling unknown extensions
		return options.Disassemble
	}
}
