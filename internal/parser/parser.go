// Package parser converts text lines of the form Name(arg0, arg1, ...) into instructions.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrolin/internal/instruction"
	"github.com/retroenv/retrolin/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrSyntax is returned for lines that do not follow the Name(arguments) form.
	ErrSyntax = errors.New("invalid instruction syntax")
	// ErrMalformedText is returned for a Text line without a single quoted string argument.
	ErrMalformedText = errors.New("malformed text literal")
	// ErrInvalidArgument is returned in strict mode for an argument that is not a byte value.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Options controls the parsing policy.
type Options struct {
	// LenientArgs silently drops arguments that are not decimal byte values
	// instead of failing the line. This matches the behavior of older tools.
	LenientArgs bool
}

// Result is the outcome of parsing a single line.
type Result struct {
	Instruction instruction.Instruction
	Text        string // dialogue text of a Text instruction
	HasText     bool
	Skipped     bool // the line is not an instruction, for example a block marker or empty line
}

// Parser parses instruction lines.
type Parser struct {
	logger  *log.Logger
	options Options
}

// New returns a new parser.
func New(logger *log.Logger, options Options) *Parser {
	return &Parser{
		logger:  logger,
		options: options,
	}
}

// ParseLine parses a single line. The textID is used as text table index of the
// instruction if the line is a Text instruction, the quoted dialogue text is returned
// in the result to be stored by the caller under that identifier.
// Unrecognized instruction names are encoded using opcode.Sentinel and reported as
// a warning, they do not fail the line.
func (p *Parser) ParseLine(s string, textID uint16) (Result, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "{}") || len(s) < 2 {
		return Result{Skipped: true}, nil
	}

	ast, err := lineParser.ParseString("", s)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	name := strings.TrimSpace(ast.Name)
	if name == "" {
		return Result{}, fmt.Errorf("%w: missing instruction name", ErrSyntax)
	}
	fields := ast.fields()

	if name == opcode.Text.Name {
		return parseText(fields, textID)
	}

	args, err := p.parseArguments(name, fields)
	if err != nil {
		return Result{}, err
	}

	lookup := opcode.ByName(name)
	if !lookup.Known() {
		p.logger.Warn("Unknown instruction name, using sentinel opcode",
			log.String("name", name),
			log.Hex("opcode", lookup.Code()))
	}

	return Result{
		Instruction: instruction.New(lookup, args),
	}, nil
}

func parseText(fields []field, textID uint16) (Result, error) {
	if len(fields) != 1 || len(fields[0].strings) != 1 || len(fields[0].values) != 0 {
		return Result{}, fmt.Errorf("%w: expected a single double quoted string", ErrMalformedText)
	}

	quoted := fields[0].strings[0]
	return Result{
		Instruction: instruction.NewText(textID),
		Text:        quoted[1 : len(quoted)-1],
		HasText:     true,
	}, nil
}

func (p *Parser) parseArguments(name string, fields []field) ([]byte, error) {
	args := make([]byte, 0, len(fields))

	for i, f := range fields {
		value, err := parseByte(f)
		if err == nil {
			args = append(args, value)
			continue
		}

		if !p.options.LenientArgs {
			return nil, fmt.Errorf("%w: argument %d '%s': %w", ErrInvalidArgument, i, f.text, err)
		}
		p.logger.Debug("Dropping invalid argument",
			log.String("instruction", name),
			log.Int("index", i),
			log.String("argument", f.text))
	}

	return args, nil
}

func parseByte(f field) (byte, error) {
	if len(f.strings) > 0 {
		return 0, errors.New("string literal is not a byte value")
	}
	if len(f.values) != 1 {
		return 0, errors.New("expected a single decimal value")
	}

	value, err := strconv.ParseUint(f.values[0], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parsing byte value: %w", err)
	}
	return byte(value), nil
}
