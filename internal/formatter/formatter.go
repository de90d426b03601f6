// Package formatter renders instructions in their textual Name(arg0, arg1, ...) form.
package formatter

import (
	"strconv"
	"strings"

	"github.com/retroenv/retrolin/internal/instruction"
)

// TextLookup resolves a text table identifier to its dialogue text.
type TextLookup interface {
	Lookup(id uint16) (string, bool)
}

// Format returns the canonical text line of the instruction. Text instructions are
// rendered with their text table identifier as argument, the dialogue text itself
// is not part of the instruction.
func Format(ins instruction.Instruction) string {
	args := ins.Args()

	buf := &strings.Builder{}
	buf.WriteString(ins.Name())
	buf.WriteByte('(')

	if ref, ok := ins.TextRef(); ok && len(args) > 0 {
		buf.WriteString(strconv.FormatUint(uint64(ref), 10))
		buf.WriteByte(')')
		return buf.String()
	}

	for i, arg := range args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(strconv.FormatUint(uint64(arg), 10))
	}

	buf.WriteByte(')')
	return buf.String()
}

// FormatWithText returns the text line of the instruction. Text instructions whose
// identifier is found in the text table are rendered with the quoted dialogue text,
// which makes the line parseable again. Texts that can not be represented in a
// single quoted literal, containing a double quote or a line break, keep the
// identifier form.
func FormatWithText(ins instruction.Instruction, texts TextLookup) string {
	ref, ok := ins.TextRef()
	if !ok || texts == nil {
		return Format(ins)
	}

	text, ok := texts.Lookup(ref)
	if !ok || !Quotable(text) {
		return Format(ins)
	}
	return ins.Name() + `("` + text + `")`
}

// Quotable returns whether the text can be written as a double quoted literal.
func Quotable(text string) bool {
	return !strings.ContainsAny(text, "\"\r\n")
}
