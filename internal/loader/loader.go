// Package loader handles input file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrolin/internal/texttable"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader handles loading bytecode, script and text table files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// LoadBytecode loads a binary bytecode file.
func (l *Loader) LoadBytecode(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bytecode file %s: %w", path, err)
	}
	return data, nil
}

// LoadScript loads a text script file and returns its lines.
// Windows line endings and a leading UTF-8 byte order mark are removed.
func (l *Loader) LoadScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file %s: %w", path, err)
	}
	return SplitLines(data), nil
}

// LoadTextTable loads a dialogue text table file. The returned error wraps
// fs.ErrNotExist if the file does not exist.
func (l *Loader) LoadTextTable(path string) (*texttable.Table, error) {
	table, err := texttable.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading text table: %w", err)
	}
	return table, nil
}

// SplitLines splits script data into lines.
func SplitLines(data []byte) []string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) == 0 {
		return nil
	}

	s := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
