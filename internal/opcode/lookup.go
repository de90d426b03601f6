package opcode

import "fmt"

// Lookup is the result of resolving an instruction name or code against the table.
// It is either a known table entry or the unknown variant, which keeps the
// original name and uses the Sentinel code.
type Lookup struct {
	op   *Opcode
	name string
	code byte
}

// ByName resolves a symbolic instruction name. An unrecognized name results in an
// unknown Lookup that carries the Sentinel code.
func ByName(name string) Lookup {
	if op, ok := byName[name]; ok {
		return Lookup{op: op, name: op.Name, code: op.Code}
	}
	return Lookup{name: name, code: Sentinel}
}

// ByCode resolves an opcode byte. An unrecognized code results in an unknown Lookup
// named by the hex literal of the code.
func ByCode(code byte) Lookup {
	if op := byCode[code]; op != nil {
		return Lookup{op: op, name: op.Name, code: op.Code}
	}
	return Lookup{name: fmt.Sprintf("0x%02X", code), code: code}
}

// Known returns whether the lookup resolved to a table entry.
func (l Lookup) Known() bool {
	return l.op != nil
}

// Opcode returns the table entry, the second return value is false for unknown lookups.
func (l Lookup) Opcode() (*Opcode, bool) {
	return l.op, l.op != nil
}

// Name returns the instruction name, for unknown lookups this is the name that
// was looked up or the hex literal of the code.
func (l Lookup) Name() string {
	return l.name
}

// Code returns the wire code. Unknown names return the Sentinel code, unknown codes
// return the raw byte.
func (l Lookup) Code() byte {
	return l.code
}

// String implements the fmt.Stringer interface.
func (l Lookup) String() string {
	if l.op == nil {
		return fmt.Sprintf("%s (unknown, $%02X)", l.name, l.code)
	}
	return fmt.Sprintf("%s ($%02X)", l.name, l.code)
}
