// Package instruction contains the in-memory representation of script instructions.
package instruction

import (
	"bytes"
	"encoding/binary"

	"github.com/retroenv/retrolin/internal/opcode"
)

// Instruction is one decoded or parsed script operation. It is an immutable value,
// all accessors return copies of the internal state.
type Instruction struct {
	lookup  opcode.Lookup
	args    []byte
	textRef uint16
	hasText bool
}

// New returns an instruction for the resolved opcode and its raw argument bytes.
// For the Text opcode with a 2 byte payload the text reference is derived from the
// big endian argument bytes.
func New(lookup opcode.Lookup, args []byte) Instruction {
	ins := Instruction{
		lookup: lookup,
	}
	if len(args) > 0 {
		ins.args = bytes.Clone(args)
	}

	if op, ok := lookup.Opcode(); ok && op == opcode.Text && len(args) == 2 {
		ins.textRef = binary.BigEndian.Uint16(args)
		ins.hasText = true
	}
	return ins
}

// NewText returns a Text instruction that references the given text table entry.
func NewText(textRef uint16) Instruction {
	args := binary.BigEndian.AppendUint16(nil, textRef)
	return Instruction{
		lookup:  opcode.ByName(opcode.Text.Name),
		args:    args,
		textRef: textRef,
		hasText: true,
	}
}

// Name returns the symbolic instruction name.
func (i Instruction) Name() string {
	return i.lookup.Name()
}

// Code returns the wire opcode. Instructions with an unknown name return opcode.Sentinel.
func (i Instruction) Code() byte {
	return i.lookup.Code()
}

// Known returns whether the instruction refers to an entry of the opcode table.
func (i Instruction) Known() bool {
	return i.lookup.Known()
}

// Opcode returns the opcode table entry of the instruction.
func (i Instruction) Opcode() (*opcode.Opcode, bool) {
	return i.lookup.Opcode()
}

// Args returns a copy of the argument bytes.
func (i Instruction) Args() []byte {
	return bytes.Clone(i.args)
}

// ArgCount returns the number of argument bytes.
func (i Instruction) ArgCount() int {
	return len(i.args)
}

// TextRef returns the text table identifier of a Text instruction.
func (i Instruction) TextRef() (uint16, bool) {
	return i.textRef, i.hasText
}

// Len returns the size of the wire encoding including marker and opcode byte.
func (i Instruction) Len() int {
	return 2 + i.ArgCount()
}

// Equal returns whether both instructions have the same name, code, arguments
// and text reference.
func (i Instruction) Equal(other Instruction) bool {
	return i.lookup == other.lookup &&
		bytes.Equal(i.args, other.args) &&
		i.textRef == other.textRef &&
		i.hasText == other.hasText
}
