// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrolin/internal/decoder"
	"github.com/retroenv/retrolin/internal/parser"
)

// Mode is the conversion direction.
type Mode string

// Supported conversion directions.
const (
	Disassemble Mode = "disasm" // bytecode to text
	Assemble    Mode = "asm"    // text to bytecode
)

// Parameters contains file path options.
type Parameters struct {
	Input     string `flag:"i" usage:"input bytecode or script file"`
	Output    string `flag:"o" usage:"output file, - for stdout (default: derived from input)"`
	TextTable string `flag:"t" usage:"dialogue text table file"`
	Config    string `flag:"c" usage:"TOML config file"`
	Batch     string `flag:"batch" usage:"batch process files matching pattern (e.g. *.lin)"`
}

// Flags contains behavior options.
type Flags struct {
	Mode         string `flag:"m" usage:"conversion mode: disasm, asm (default: auto-detect)"`
	AssembleTest bool   `flag:"verify" usage:"verify output by converting it back and comparing to input"`
	Debug        bool   `flag:"debug" usage:"enable debug logging"`
	Quiet        bool   `flag:"q" usage:"quiet mode"`
}

// CodecFlags contains options of the bytecode and script codecs.
type CodecFlags struct {
	LenientArgs     bool `flag:"lenient" usage:"drop invalid script arguments instead of failing"`
	StrictFlagCheck bool `flag:"strict-flagcheck" usage:"reject flag check instructions of unexpected length"`
}

// Program options of the converter.
type Program struct {
	Parameters
	Flags
	CodecFlags
}

// ParserOptions returns the options for the script parser.
func (p Program) ParserOptions() parser.Options {
	return parser.Options{
		LenientArgs: p.LenientArgs,
	}
}

// DecoderOptions returns the options for the bytecode decoder.
func (p Program) DecoderOptions() decoder.Options {
	return decoder.Options{
		StrictFlagCheck: p.StrictFlagCheck,
	}
}
