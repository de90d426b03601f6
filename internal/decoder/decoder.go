// Package decoder converts script bytecode into instructions.
package decoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/retroenv/retrolin/internal/instruction"
	"github.com/retroenv/retrolin/internal/opcode"
)

var (
	// ErrTruncated is returned when the input ends inside of a fixed arity instruction.
	ErrTruncated = errors.New("truncated instruction")
	// ErrUnknownOpcode is returned for an opcode byte that is not part of the opcode table.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrFlagCheckLength is returned in strict mode for an unexpected CheckFlagA payload length.
	ErrFlagCheckLength = errors.New("invalid flag check length")
)

// Error describes a fatal decoding failure and its location in the input.
type Error struct {
	Index  int    // index of the instruction that failed to decode
	Offset int    // byte offset of the marker of the failing instruction
	Code   byte   // opcode byte of the failing instruction
	Data   []byte // bytes of the failing instruction that were available
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("instruction %d at offset $%04X, opcode $%02X: %v", e.Index, e.Offset, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options controls the decoding policy.
type Options struct {
	// StrictFlagCheck rejects CheckFlagA payloads that are not 4, 19 or 24 bytes long.
	StrictFlagCheck bool
}

// Result contains the decoded instructions of a script.
type Result struct {
	Instructions []instruction.Instruction
	Consumed     int // number of bytes that belong to decoded instructions
	Trailing     int // number of bytes after the last instruction that were not decoded
}

// Decode decodes all instructions of the given bytecode. Decoding stops without an
// error at the end of the input or at the first byte that is not an instruction marker,
// the number of unconsumed bytes is returned as Result.Trailing.
func Decode(data []byte, options Options) (Result, error) {
	var result Result

	for offset := 0; offset < len(data); {
		if data[offset] != opcode.Marker {
			result.Trailing = len(data) - offset
			break
		}

		ins, size, err := decodeInstruction(data[offset:], options)
		if err != nil {
			decodeErr := &Error{
				Index:  len(result.Instructions),
				Offset: offset,
				Data:   bytes.Clone(data[offset:min(offset+size, len(data))]),
				Err:    err,
			}
			if len(data) > offset+1 {
				decodeErr.Code = data[offset+1]
			}
			return result, decodeErr
		}

		result.Instructions = append(result.Instructions, ins)
		offset += size
		result.Consumed = offset
	}

	return result, nil
}

// decodeInstruction decodes the instruction at the start of data, which begins with
// the marker byte. It returns the instruction and its size in bytes, on error the
// size covers the bytes that belong to the failing instruction.
func decodeInstruction(data []byte, options Options) (instruction.Instruction, int, error) {
	if len(data) < 2 {
		return instruction.Instruction{}, len(data), fmt.Errorf("%w: missing opcode byte", ErrTruncated)
	}

	code := data[1]
	lookup := opcode.ByCode(code)
	op, ok := lookup.Opcode()
	if !ok {
		return instruction.Instruction{}, 2, ErrUnknownOpcode
	}

	payload := data[2:]

	if opcode.IsVariable(code) {
		// the payload ends at the next marker, which is not consumed
		length := bytes.IndexByte(payload, opcode.Marker)
		if length < 0 {
			length = len(payload)
		}
		if options.StrictFlagCheck && op == opcode.CheckFlagA && !opcode.ValidFlagCheckLength(length) {
			return instruction.Instruction{}, 2 + length, fmt.Errorf("%w: %d bytes", ErrFlagCheckLength, length)
		}
		return instruction.New(lookup, payload[:length]), 2 + length, nil
	}

	if len(payload) < op.Arity {
		return instruction.Instruction{}, len(data),
			fmt.Errorf("%w: %s needs %d argument bytes, %d available", ErrTruncated, op.Name, op.Arity, len(payload))
	}
	return instruction.New(lookup, payload[:op.Arity]), 2 + op.Arity, nil
}
