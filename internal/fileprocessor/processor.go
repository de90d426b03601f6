// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrolin/internal/detector"
	"github.com/retroenv/retrolin/internal/options"
	"github.com/retroenv/retrolin/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

const (
	scriptExtension    = ".txt"
	bytecodeExtension  = ".lin"
	textTableExtension = ".texts"

	stdoutName = "-"
)

// ProcessFile handles the complete file processing workflow. The output is
// converted in memory and only written once the conversion and the optional
// verification succeeded, a failed conversion leaves an existing output file intact.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	var buf bytes.Buffer
	pipe := pipeline.New(logger)
	result, err := pipe.Execute(ctx, opts, &buf)
	if err != nil {
		return fmt.Errorf("converting: %w", err)
	}

	if err := writeOutput(opts, buf.Bytes()); err != nil {
		return err
	}

	if result.Mode != options.Assemble || result.Texts.Len() == 0 {
		return nil
	}

	if opts.TextTable == "" {
		logger.Warn("No text table file name given, dialogue texts are discarded",
			log.Int("texts", result.Texts.Len()))
		return nil
	}
	if err := result.Texts.SaveFile(opts.TextTable); err != nil {
		return fmt.Errorf("saving text table: %w", err)
	}
	logger.Debug("Saved text table",
		log.String("file", opts.TextTable),
		log.Int("texts", result.Texts.Len()))
	return nil
}

// PrepareOptions returns the options to process the given input file with.
// The conversion mode is detected once and the output and text table file names
// are derived from the input file name if they are not set or if multiple files
// are processed.
func PrepareOptions(logger *log.Logger, opts options.Program, inputFile string, batch bool) options.Program {
	opts.Input = inputFile
	mode := detector.New(logger).Detect(opts)
	opts.Mode = string(mode)

	if batch || opts.Output == "" {
		opts.Output = GenerateOutputFilename(inputFile, mode)
	}

	if batch || opts.TextTable == "" {
		switch {
		case mode == options.Disassemble:
			opts.TextTable = GenerateTextTableFilename(inputFile)
		case opts.Output != stdoutName:
			opts.TextTable = GenerateTextTableFilename(opts.Output)
		default:
			opts.TextTable = ""
		}
	}

	return opts
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string, mode options.Mode) string {
	ext := scriptExtension
	if mode == options.Assemble {
		ext = bytecodeExtension
	}

	output := strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + ext
	if output == inputFile {
		return inputFile + ext
	}
	return output
}

// GenerateTextTableFilename generates the text table filename for a given bytecode file
func GenerateTextTableFilename(bytecodeFile string) string {
	return strings.TrimSuffix(bytecodeFile, filepath.Ext(bytecodeFile)) + textTableExtension
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrolin", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

func writeOutput(opts options.Program, data []byte) error {
	if opts.Output == "" || opts.Output == stdoutName {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", opts.Output, err)
	}
	return nil
}
