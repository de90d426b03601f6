// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrolin/internal/config"
	"github.com/retroenv/retrolin/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return opts, err
		}
		cfg.Apply(&opts, explicitFlags(flags))
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrolin [options] <file to convert>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to convert, please pass the file to convert as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	switch mode {
	case "disassemble":
		mode = string(options.Disassemble)
	case "assemble":
		mode = string(options.Assemble)
	}
	opts.Mode = mode

	switch options.Mode(mode) {
	case "", options.Disassemble, options.Assemble:
		return nil
	default:
		return fmt.Errorf("unsupported mode: %s. Valid options: %s, %s",
			opts.Mode, options.Disassemble, options.Assemble)
	}
}

// explicitFlags returns the names of the flags that were set on the command line.
func explicitFlags(flags *flag.FlagSet) map[string]bool {
	explicit := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	return explicit
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input bytecode or script file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, derived from the input file name if not given, - prints on console")
	flags.StringVar(&opts.TextTable, "t", "", "name of the dialogue text table file, derived from the file names if not given")
	flags.StringVar(&opts.Config, "c", "", "name of the TOML config file to load")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.lin")
	flags.StringVar(&opts.Mode, "m", "", "conversion mode (disasm/asm) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.AssembleTest, "verify", false, "verify the generated output by converting it back and check if it matches the input")
	flags.BoolVar(&opts.LenientArgs, "lenient", false, "drop script arguments that are not byte values instead of failing")
	flags.BoolVar(&opts.StrictFlagCheck, "strict-flagcheck", false, "reject flag check instructions whose length is not 4, 19 or 24 bytes")
}
