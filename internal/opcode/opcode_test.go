package opcode

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTable_NameCodeInverse(t *testing.T) {
	for _, op := range Opcodes {
		t.Run(op.Name, func(t *testing.T) {
			byName := ByName(op.Name)
			assert.True(t, byName.Known())
			assert.Equal(t, op.Code, byName.Code())

			byCode := ByCode(op.Code)
			assert.True(t, byCode.Known())
			assert.Equal(t, op.Name, byCode.Name())

			got, ok := byCode.Opcode()
			assert.True(t, ok)
			assert.Equal(t, op, got)
		})
	}
}

func TestTable_ReservedCodes(t *testing.T) {
	assert.False(t, ByCode(Marker).Known())
	assert.False(t, ByCode(Sentinel).Known())

	for _, op := range Opcodes {
		assert.True(t, op.Code != Marker, "marker used by %s", op.Name)
		assert.True(t, op.Code != Sentinel, "sentinel used by %s", op.Name)
	}
}

func TestTable_SortedByCode(t *testing.T) {
	for i := 1; i < len(Opcodes); i++ {
		assert.True(t, Opcodes[i-1].Code < Opcodes[i].Code,
			"%s is not sorted before %s", Opcodes[i-1].Name, Opcodes[i].Name)
	}
}

func TestByName_Unknown(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"misspelled", "Jimmys_Opcode"},
		{"wrong case", "waitframe"},
		{"empty", ""},
		{"hex literal not in table", "0x07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := ByName(tt.input)
			assert.False(t, lookup.Known())
			assert.Equal(t, byte(Sentinel), lookup.Code())
			assert.Equal(t, tt.input, lookup.Name())

			op, ok := lookup.Opcode()
			assert.False(t, ok)
			assert.True(t, op == nil)
		})
	}
}

func TestByCode_Unknown(t *testing.T) {
	tests := []struct {
		code     byte
		expected string
	}{
		{0x01, "0x01"},
		{0x07, "0x07"},
		{0x70, "0x70"},
		{0xFE, "0xFE"},
		{0xFF, "0xFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			lookup := ByCode(tt.code)
			assert.False(t, lookup.Known())
			assert.Equal(t, tt.expected, lookup.Name())
			assert.Equal(t, tt.code, lookup.Code())
		})
	}
}

func TestIsVariable(t *testing.T) {
	assert.True(t, IsVariable(CheckFlagA.Code))
	assert.True(t, IsVariable(CheckFlagB.Code))
	assert.False(t, IsVariable(WaitFrame.Code))
	assert.False(t, IsVariable(Text.Code))
	assert.False(t, IsVariable(Sentinel))

	for _, op := range Opcodes {
		if op.Variable {
			assert.Equal(t, 0, op.Arity, "variable opcode %s has a fixed arity", op.Name)
		}
	}
}

func TestValidFlagCheckLength(t *testing.T) {
	for n := range 30 {
		expected := n == 4 || n == 19 || n == 24
		assert.Equal(t, expected, ValidFlagCheckLength(n), "length %d", n)
	}
}

func TestLookup_String(t *testing.T) {
	assert.Equal(t, "WaitFrame ($3B)", ByName("WaitFrame").String())
	assert.Equal(t, "Foo (unknown, $FE)", ByName("Foo").String())
}
