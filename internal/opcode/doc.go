// Package opcode provides the instruction table of the script bytecode.
//
// # Wire Format
//
// A script is a flat sequence of instructions without header, length prefix or
// checksum. Every instruction starts with the Marker byte (0x70), followed by
// one opcode byte and the argument bytes of the instruction:
//
//	0x70 <code> <arg0> <arg1> ... <argN>
//
// The number of argument bytes is fixed per opcode, except for the flag check
// family (CheckFlagA, CheckFlagB). Their payload extends up to the next marker
// byte or the end of the input.
//
// # Unknown Names and Codes
//
// Lookups never fail. A name that is not part of the table resolves to the
// Sentinel code (0xFE), a code that is not part of the table resolves to its
// hex literal name, for example "0x07". The returned Lookup reports whether
// the table knows the entry so callers have to decide explicitly how to treat
// the unknown case.
//
// # Limitations
//
// A flag check argument byte that equals the marker value can not be told apart
// from the start of the next instruction, the format carries no length field
// for this family.
package opcode
