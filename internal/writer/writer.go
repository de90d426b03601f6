// Package writer implements the output file writing functionality.
package writer

import (
	"fmt"
	"io"

	"github.com/retroenv/retrolin/internal/formatter"
	"github.com/retroenv/retrolin/internal/instruction"
)

// Writer writes script lines or bytecode to an output.
type Writer struct {
	texts  formatter.TextLookup
	writer io.Writer
}

// New creates a new writer. The text table is used to render the dialogue of
// Text instructions, it can be nil.
func New(writer io.Writer, texts formatter.TextLookup) *Writer {
	return &Writer{
		texts:  texts,
		writer: writer,
	}
}

// Lines returns the script lines of the instructions.
func (w Writer) Lines(instructions []instruction.Instruction) []string {
	lines := make([]string, 0, len(instructions))
	for _, ins := range instructions {
		if w.texts == nil {
			lines = append(lines, formatter.Format(ins))
		} else {
			lines = append(lines, formatter.FormatWithText(ins, w.texts))
		}
	}
	return lines
}

// WriteLines writes every line terminated by a newline.
func (w Writer) WriteLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// WriteBytecode writes the binary bytecode.
func (w Writer) WriteBytecode(data []byte) error {
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("writing bytecode: %w", err)
	}
	return nil
}
