package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The lexer switches into the argument state after the opening parenthesis so that
// instruction names can contain any character except '(' while arguments are split
// on commas.
var lineLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Name", Pattern: `[^(]+`},
		{Name: "Open", Pattern: `\(`, Action: lexer.Push("Args")},
	},
	"Args": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `"[^"]*"`},
		{Name: "Close", Pattern: `\)`, Action: lexer.Pop()},
		{Name: "Comma", Pattern: `,`},
		{Name: "Arg", Pattern: `[^,)\s"]+`},
	},
})

// line is the syntax tree of a single instruction line: Name(arg, arg, ...).
type line struct {
	Name   string   `@Name "("`
	Tokens []*token `@@* ")"`
}

// token is a single element of the argument list.
type token struct {
	Comma  bool    `  @","`
	String *string `| @String`
	Value  *string `| @Arg`
}

var lineParser = participle.MustBuild[line](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
)

// field is a comma separated part of the argument list.
type field struct {
	text    string // source text of the field, used for error messages
	values  []string
	strings []string
}

// fields splits the argument tokens on commas. An empty argument list results in no fields.
func (l *line) fields() []field {
	if len(l.Tokens) == 0 {
		return nil
	}

	fields := []field{{}}
	for _, tok := range l.Tokens {
		current := &fields[len(fields)-1]

		switch {
		case tok.Comma:
			fields = append(fields, field{})
		case tok.String != nil:
			current.strings = append(current.strings, *tok.String)
			current.text += *tok.String
		case tok.Value != nil:
			current.values = append(current.values, *tok.Value)
			current.text += *tok.Value
		}
	}
	return fields
}
