// Package verification verifies that the generated output recreates the input.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrolin/internal/decoder"
	"github.com/retroenv/retrolin/internal/encoder"
	"github.com/retroenv/retrolin/internal/formatter"
	"github.com/retroenv/retrolin/internal/instruction"
	"github.com/retroenv/retrolin/internal/parser"
	"github.com/retroenv/retrogolib/log"
)

const maxReportedMismatches = 10

// VerifyDisassembly verifies that assembling the generated script lines recreates
// the decoded part of the input bytecode. Text lines are matched against the
// text table entry of the decoded instruction at the same position.
func VerifyDisassembly(logger *log.Logger, opts parser.Options, input []byte,
	decoded []instruction.Instruction, lines []string, texts formatter.TextLookup) error {

	p := parser.New(logger, opts)
	var output []byte
	index := 0

	for i, line := range lines {
		result, err := p.ParseLine(line, 0)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", i+1, err)
		}
		if result.Skipped {
			continue
		}

		ins := result.Instruction
		if result.HasText {
			ins, err = resolveText(decoded, index, result.Text, texts)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}

		output = encoder.Append(output, ins)
		index++
	}

	if index != len(decoded) {
		return fmt.Errorf("instruction count mismatch, expected %d but got %d", len(decoded), index)
	}
	return checkBufferEqual(logger, input, output)
}

// VerifyAssembly verifies that decoding the generated bytecode results in the
// assembled instructions.
func VerifyAssembly(logger *log.Logger, opts decoder.Options, output []byte,
	assembled []instruction.Instruction) error {

	result, err := decoder.Decode(output, opts)
	if err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}
	if result.Trailing > 0 {
		return fmt.Errorf("%d trailing bytes after offset $%04X", result.Trailing, result.Consumed)
	}

	if len(result.Instructions) != len(assembled) {
		return fmt.Errorf("instruction count mismatch, expected %d but got %d",
			len(assembled), len(result.Instructions))
	}

	var diffs int
	for i, ins := range assembled {
		decoded := result.Instructions[i]
		if ins.Equal(decoded) {
			continue
		}

		diffs++
		if diffs < maxReportedMismatches {
			logger.Error("Instruction mismatch",
				log.Int("index", i),
				log.String("expected", formatter.Format(ins)),
				log.String("got", formatter.Format(decoded)))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d instruction mismatches", diffs)
}

func resolveText(decoded []instruction.Instruction, index int, text string,
	texts formatter.TextLookup) (instruction.Instruction, error) {

	if texts == nil {
		return instruction.Instruction{}, errors.New("text line without text table")
	}
	if index >= len(decoded) {
		return instruction.Instruction{}, errors.New("text line without decoded instruction")
	}

	ref, ok := decoded[index].TextRef()
	if !ok {
		return instruction.Instruction{}, fmt.Errorf("text line at position of %s instruction", decoded[index].Name())
	}

	expected, ok := texts.Lookup(ref)
	if !ok || expected != text {
		return instruction.Instruction{}, fmt.Errorf("text does not match text table entry %d", ref)
	}
	return instruction.NewText(ref), nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < maxReportedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
