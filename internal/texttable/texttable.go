// Package texttable implements the dialogue text table that Text instructions refer to.
// The dialogue strings are not part of the bytecode, they are stored in a separate
// table file using CBOR encoding.
package texttable

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/fxamacker/cbor/v2"
)

const (
	maxEntries    = 1 << 16
	formatVersion = 1
)

// ErrTableFull is returned when all 16 bit identifiers are in use.
var ErrTableFull = errors.New("text table is full")

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("texttable: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Table maps 16 bit identifiers to dialogue strings.
type Table struct {
	entries map[uint16]string
	next    int // next free identifier
}

// Entry is a single text of the table.
type Entry struct {
	ID   uint16 `cbor:"1,keyasint"`
	Text string `cbor:"2,keyasint"`
}

// file is the serialized form of a table.
type file struct {
	Version int     `cbor:"1,keyasint"`
	Entries []Entry `cbor:"2,keyasint"`
}

// New returns an empty text table.
func New() *Table {
	return &Table{
		entries: make(map[uint16]string),
	}
}

// Next returns the next free identifier. The second return value is false if the
// table is full.
func (t *Table) Next() (uint16, bool) {
	if t.next >= maxEntries {
		return 0, false
	}
	return uint16(t.next), true
}

// Add stores the text under the next free identifier and returns the identifier.
func (t *Table) Add(text string) (uint16, error) {
	id, ok := t.Next()
	if !ok {
		return 0, ErrTableFull
	}
	t.Set(id, text)
	return id, nil
}

// Set stores the text under the given identifier, replacing any existing text.
func (t *Table) Set(id uint16, text string) {
	t.entries[id] = text
	if int(id) >= t.next {
		t.next = int(id) + 1
	}
}

// Lookup returns the text of the given identifier.
func (t *Table) Lookup(id uint16) (string, bool) {
	if t == nil {
		return "", false
	}
	text, ok := t.entries[id]
	return text, ok
}

// Len returns the number of texts in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns all texts ordered by identifier.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.entries))
	for id, text := range t.entries {
		entries = append(entries, Entry{ID: id, Text: text})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return int(a.ID) - int(b.ID)
	})
	return entries
}

// Marshal serializes the table to CBOR bytes.
func (t *Table) Marshal() ([]byte, error) {
	f := file{
		Version: formatVersion,
		Entries: t.Entries(),
	}
	data, err := cborEncMode.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshaling text table: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes a table from CBOR bytes.
func Unmarshal(data []byte) (*Table, error) {
	var f file
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshaling text table: %w", err)
	}
	if f.Version != formatVersion {
		return nil, fmt.Errorf("unsupported text table version %d", f.Version)
	}

	t := New()
	for _, entry := range f.Entries {
		t.Set(entry.ID, entry.Text)
	}
	return t, nil
}

// LoadFile reads a table from the given file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text table file '%s': %w", path, err)
	}
	return Unmarshal(data)
}

// SaveFile writes the table to the given file.
func (t *Table) SaveFile(path string) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing text table file '%s': %w", path, err)
	}
	return nil
}
