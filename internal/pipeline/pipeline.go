// Package pipeline orchestrates the conversion workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/retroenv/retrolin/internal/decoder"
	"github.com/retroenv/retrolin/internal/detector"
	"github.com/retroenv/retrolin/internal/encoder"
	"github.com/retroenv/retrolin/internal/formatter"
	"github.com/retroenv/retrolin/internal/instruction"
	"github.com/retroenv/retrolin/internal/loader"
	"github.com/retroenv/retrolin/internal/options"
	"github.com/retroenv/retrolin/internal/parser"
	"github.com/retroenv/retrolin/internal/texttable"
	"github.com/retroenv/retrolin/internal/verification"
	"github.com/retroenv/retrolin/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete conversion workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// Result contains the outcome of a conversion.
type Result struct {
	Mode         options.Mode
	Instructions []instruction.Instruction
	Texts        *texttable.Table // dialogue texts, nil if no table was used
	Trailing     int              // bytecode bytes after the last decoded instruction
	Unknown      int              // instructions encoded using the sentinel opcode
	Unresolved   int              // Text instructions written as text reference
}

// LineError describes a script line that could not be assembled.
type LineError struct {
	Line int    // 1-based line number
	Text string // content of the line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d '%s': %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// New creates a new conversion pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete conversion pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) (*Result, error) {
	mode := p.detector.Detect(opts)
	p.printInfo(opts, mode)

	switch mode {
	case options.Assemble:
		lines, err := p.loader.LoadScript(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("loading script: %w", err)
		}
		return p.Assemble(ctx, opts, lines, writer)

	case options.Disassemble:
		data, err := p.loader.LoadBytecode(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("loading bytecode: %w", err)
		}
		texts, err := p.loadTextTable(opts)
		if err != nil {
			return nil, err
		}
		return p.Disassemble(ctx, opts, data, texts, writer)

	default:
		return nil, fmt.Errorf("unsupported mode '%s'", mode)
	}
}

// Disassemble converts bytecode to script lines and writes them to the writer.
// The text table is optional, Text instructions without a table entry are written
// using their text reference.
func (p *Pipeline) Disassemble(ctx context.Context, opts options.Program, data []byte,
	texts *texttable.Table, output io.Writer) (*Result, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	decoded, err := decoder.Decode(data, opts.DecoderOptions())
	if err != nil {
		return nil, fmt.Errorf("decoding bytecode: %w", err)
	}
	if decoded.Trailing > 0 {
		p.logger.Warn("Bytecode contains trailing data that is not an instruction",
			log.Int("bytes", decoded.Trailing),
			log.Hex("offset", decoded.Consumed))
	}

	var lookup formatter.TextLookup
	if texts != nil {
		lookup = texts
	}

	w := writer.New(output, lookup)
	lines := w.Lines(decoded.Instructions)
	if err := w.WriteLines(lines); err != nil {
		return nil, fmt.Errorf("writing script: %w", err)
	}

	result := &Result{
		Mode:         options.Disassemble,
		Instructions: decoded.Instructions,
		Texts:        texts,
		Trailing:     decoded.Trailing,
		Unresolved:   countUnresolved(decoded.Instructions, texts),
	}
	if result.Unresolved > 0 {
		p.logger.Warn("Text instructions written as text reference, the output can not be assembled",
			log.Int("count", result.Unresolved))
	}

	if opts.AssembleTest {
		if err := verification.VerifyDisassembly(p.logger, opts.ParserOptions(), data[:decoded.Consumed],
			decoded.Instructions, lines, lookup); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return result, nil
}

// Assemble converts script lines to bytecode and writes it to the writer.
// The dialogue texts of the script are returned in a new text table of the result.
func (p *Pipeline) Assemble(ctx context.Context, opts options.Program, lines []string,
	output io.Writer) (*Result, error) {

	prs := parser.New(p.logger, opts.ParserOptions())
	result := &Result{
		Mode:  options.Assemble,
		Texts: texttable.New(),
	}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembling: %w", err)
		}

		ins, err := p.assembleLine(prs, result, line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line, Err: err}
		}
		if ins != nil {
			result.Instructions = append(result.Instructions, *ins)
		}
	}

	if result.Unknown > 0 {
		p.logger.Warn("Unknown instruction names were encoded using the sentinel opcode",
			log.Int("count", result.Unknown))
	}

	data := encoder.EncodeAll(result.Instructions)
	w := writer.New(output, nil)
	if err := w.WriteBytecode(data); err != nil {
		return nil, fmt.Errorf("writing bytecode: %w", err)
	}

	if opts.AssembleTest {
		if err := verification.VerifyAssembly(p.logger, opts.DecoderOptions(), data, result.Instructions); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return result, nil
}

// assembleLine parses a single line and stores a dialogue text in the text table
// of the result. It returns nil for skipped lines.
func (p *Pipeline) assembleLine(prs *parser.Parser, result *Result, line string) (*instruction.Instruction, error) {
	textID, tableFree := result.Texts.Next()

	parsed, err := prs.ParseLine(line, textID)
	if err != nil {
		return nil, err
	}
	if parsed.Skipped {
		return nil, nil
	}

	if parsed.HasText {
		if !tableFree {
			return nil, texttable.ErrTableFull
		}
		result.Texts.Set(textID, parsed.Text)
	}
	if !parsed.Instruction.Known() {
		result.Unknown++
	}
	return &parsed.Instruction, nil
}

// loadTextTable loads the text table of the options. A missing table file is not
// an error when disassembling, the Text instructions are written as references.
func (p *Pipeline) loadTextTable(opts options.Program) (*texttable.Table, error) {
	if opts.TextTable == "" {
		return nil, nil
	}

	texts, err := p.loader.LoadTextTable(opts.TextTable)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("Text table file not found",
				log.String("file", opts.TextTable))
			return nil, nil
		}
		return nil, err
	}

	p.logger.Debug("Loaded text table",
		log.String("file", opts.TextTable),
		log.Int("texts", texts.Len()))
	return texts, nil
}

// printInfo prints information about the file being processed.
func (p *Pipeline) printInfo(opts options.Program, mode options.Mode) {
	if opts.Quiet {
		return
	}

	switch mode {
	case options.Disassemble:
		p.logger.Info("Disassembling bytecode",
			log.String("file", opts.Input),
		)
	case options.Assemble:
		p.logger.Info("Assembling script",
			log.String("file", opts.Input),
		)
	}
}

func countUnresolved(instructions []instruction.Instruction, texts *texttable.Table) int {
	var count int
	for _, ins := range instructions {
		ref, ok := ins.TextRef()
		if !ok {
			continue
		}
		text, ok := texts.Lookup(ref)
		if !ok || !formatter.Quotable(text) {
			count++
		}
	}
	return count
}
