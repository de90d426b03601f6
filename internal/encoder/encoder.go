// Package encoder converts instructions into script bytecode.
package encoder

import (
	"github.com/retroenv/retrolin/internal/instruction"
	"github.com/retroenv/retrolin/internal/opcode"
)

// Encode returns the wire encoding of the instruction: the marker byte, the opcode
// and all argument bytes. The argument count is not validated against the opcode
// table, instructions with an unknown name are encoded using opcode.Sentinel.
func Encode(ins instruction.Instruction) []byte {
	return Append(make([]byte, 0, ins.Len()), ins)
}

// Append appends the wire encoding of the instruction to dst and returns the extended buffer.
func Append(dst []byte, ins instruction.Instruction) []byte {
	dst = append(dst, opcode.Marker, ins.Code())
	return append(dst, ins.Args()...)
}

// EncodeAll returns the concatenated wire encoding of all instructions.
func EncodeAll(instructions []instruction.Instruction) []byte {
	size := 0
	for _, ins := range instructions {
		size += ins.Len()
	}

	buf := make([]byte, 0, size)
	for _, ins := range instructions {
		buf = Append(buf, ins)
	}
	return buf
}
