package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrolin/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "positional input",
			args: []string{"prog", "e00_001.lin"},
			want: options.Program{Parameters: options.Parameters{Input: "e00_001.lin"}},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "e00_001.lin", "-o", "e00_001.txt"},
			want: options.Program{Parameters: options.Parameters{Input: "e00_001.lin", Output: "e00_001.txt"}},
		},
		{
			name: "mode alias",
			args: []string{"prog", "-m", "Assemble", "script.txt"},
			want: options.Program{
				Parameters: options.Parameters{Input: "script.txt"},
				Flags:      options.Flags{Mode: "asm"},
			},
		},
		{
			name: "codec flags",
			args: []string{"prog", "-lenient", "-strict-flagcheck", "-verify", "script.lin"},
			want: options.Program{
				Parameters: options.Parameters{Input: "script.lin"},
				Flags:      options.Flags{AssembleTest: true},
				CodecFlags: options.CodecFlags{LenientArgs: true, StrictFlagCheck: true},
			},
		},
		{
			name: "batch",
			args: []string{"prog", "-batch", "*.lin", "-q"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "*.lin"},
				Flags:      options.Flags{Quiet: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args)

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrolin.toml")
	content := "[codec]\nlenient-args = true\n[output]\ntext-table = \"all.texts\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	setArgs(t, []string{"prog", "-c", path, "script.txt"})

	got, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, got.LenientArgs)
	assert.Equal(t, "all.texts", got.TextTable)
	assert.Equal(t, "script.txt", got.Input)
}

func TestParseFlags_ConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrolin.toml")
	content := "[codec]\nlenient-args = true\nstrict-flag-check = true\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	setArgs(t, []string{"prog", "-c", path, "-lenient=false", "script.txt"})

	got, err := ParseFlags()
	assert.NoError(t, err)
	assert.False(t, got.LenientArgs)
	assert.True(t, got.StrictFlagCheck)
}

func TestParseFlags_Errors(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		setArgs(t, []string{"prog"})
		_, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("flag after input", func(t *testing.T) {
		setArgs(t, []string{"prog", "script.lin", "-q"})
		_, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
		assert.ErrorContains(t, err, "Potential argument -q")
	})

	t.Run("invalid mode", func(t *testing.T) {
		setArgs(t, []string{"prog", "-m", "compile", "script.lin"})
		_, err := ParseFlags()
		assert.ErrorContains(t, err, "unsupported mode: compile")
	})

	t.Run("missing config", func(t *testing.T) {
		setArgs(t, []string{"prog", "-c", filepath.Join(t.TempDir(), "missing.toml"), "script.lin"})
		_, err := ParseFlags()
		assert.ErrorContains(t, err, "reading config file")
	})
}

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{mode: "", want: ""},
		{mode: "disasm", want: "disasm"},
		{mode: "DISASSEMBLE", want: "disasm"},
		{mode: " asm ", want: "asm"},
		{mode: "assemble", want: "asm"},
		{mode: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			opts := options.Program{Flags: options.Flags{Mode: tt.mode}}
			err := normalizeOptions(&opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts.Mode)
		})
	}
}

func setArgs(t *testing.T, args []string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}
