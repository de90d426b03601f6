package formatter

import (
	"testing"

	"github.com/retroenv/retrolin/internal/instruction"
	"github.com/retroenv/retrolin/internal/opcode"
	"github.com/retroenv/retrolin/internal/parser"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type mapTexts map[uint16]string

func (m mapTexts) Lookup(id uint16) (string, bool) {
	s, ok := m[id]
	return s, ok
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		ins      instruction.Instruction
		expected string
	}{
		{"no arguments", instruction.New(opcode.ByName("WaitFrame"), nil), "WaitFrame()"},
		{"single argument", instruction.New(opcode.ByName("Speaker"), []byte{12}), "Speaker(12)"},
		{"arguments", instruction.New(opcode.ByName("ScreenFade"), []byte{1, 0, 255}), "ScreenFade(1, 0, 255)"},
		{"hex name", instruction.New(opcode.ByCode(0x00), []byte{191, 1}), "0x00(191, 1)"},
		{"text reference", instruction.NewText(260), "Text(260)"},
		{"decoded text", instruction.New(opcode.ByCode(0x02), []byte{0, 7}), "Text(7)"},
		{"unknown name", instruction.New(opcode.ByName("Jimmys_Opcode"), []byte{1}), "Jimmys_Opcode(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.ins))
		})
	}
}

func TestFormatWithText(t *testing.T) {
	texts := mapTexts{260: "George"}

	assert.Equal(t, `Text("George")`, FormatWithText(instruction.NewText(260), texts))
	assert.Equal(t, "Text(261)", FormatWithText(instruction.NewText(261), texts))
	assert.Equal(t, "Text(260)", FormatWithText(instruction.NewText(260), nil))
	assert.Equal(t, "Speaker(1)", FormatWithText(instruction.New(opcode.ByName("Speaker"), []byte{1}), texts))
}

// TestFormat_ParseRoundTrip verifies that parsing the formatted line of every
// non Text instruction results in the same instruction.
func TestFormat_ParseRoundTrip(t *testing.T) {
	p := parser.New(log.NewTestLogger(t), parser.Options{})

	instructions := []instruction.Instruction{
		instruction.New(opcode.ByName("Jimmys_Opcode"), []byte{4, 2}),
		instruction.New(opcode.ByName("CheckFlagA"), []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}),
	}
	for _, op := range opcode.Opcodes {
		if op == opcode.Text {
			continue
		}
		args := make([]byte, op.Arity)
		for i := range args {
			args[i] = byte(250 - i)
		}
		instructions = append(instructions, instruction.New(opcode.ByName(op.Name), args))
	}

	for _, ins := range instructions {
		t.Run(ins.Name(), func(t *testing.T) {
			result, err := p.ParseLine(Format(ins), 0)
			assert.NoError(t, err)
			assert.True(t, ins.Equal(result.Instruction))
		})
	}
}

func TestFormatWithText_ParseRoundTrip(t *testing.T) {
	p := parser.New(log.NewTestLogger(t), parser.Options{})
	ins := instruction.NewText(42)

	result, err := p.ParseLine(FormatWithText(ins, mapTexts{42: "Hello, world"}), 42)
	assert.NoError(t, err)
	assert.True(t, ins.Equal(result.Instruction))
	assert.Equal(t, "Hello, world", result.Text)
}

func TestFormatWithText_Unquotable(t *testing.T) {
	texts := mapTexts{1: `He said "no"`, 2: "two\nlines"}

	assert.Equal(t, "Text(1)", FormatWithText(instruction.NewText(1), texts))
	assert.Equal(t, "Text(2)", FormatWithText(instruction.NewText(2), texts))
	assert.True(t, Quotable("<CLT 3>plain, text (ok)"))
	assert.False(t, Quotable(`"`))
}
