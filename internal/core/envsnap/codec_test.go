package envsnap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCapture_SplitsEntries(t *testing.T) {
	environ := func() []string {
		return []string{"A=1", "B=two words", "EMPTY=", "=C:=C:\\dir", "NOEQ", "", "URL=a=b"}
	}

	table := Capture(environ)

	assert.Equal(t, []Var{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "two words"},
		{Name: "EMPTY", Value: ""},
		{Name: "=C:", Value: "C:\\dir"},
		{Name: "NOEQ", Value: ""},
		{Name: "URL", Value: "a=b"},
	}, table.Vars())
}

func TestCapture_IsPointInTime(t *testing.T) {
	entries := []string{"A=1"}
	table := Capture(func() []string { return entries })

	entries[0] = "A=changed"
	entries = append(entries, "B=2")

	v, ok := table.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, table.Len())
}

func TestEncode_KnownTable(t *testing.T) {
	table := NewTable(Var{Name: "A", Value: "1"}, Var{Name: "B", Value: "two words"})

	out := EncodeString("sysvars", table)

	assert.Equal(t, `sysvars! { "A" => "1", "B" => "two words" }`, out)
	assert.Equal(t, 1, strings.Count(out, `"A" => "1"`))
	assert.Equal(t, 1, strings.Count(out, `"B" => "two words"`))
}

func TestEncode_EscapesArbitraryBytes(t *testing.T) {
	table := NewTable(
		Var{Name: "BIN", Value: "\xff\xfe\x00"},
		Var{Name: "QUOTE", Value: `say "hi"` + "\n"},
	)

	out := EncodeString("", table)

	assert.True(t, strings.HasPrefix(out, DefaultMacro+"! {"))
	assert.Contains(t, out, `"BIN" => "\xff\xfe\x00"`)
	assert.Contains(t, out, `"QUOTE" => "say \"hi\"\n"`)
	assert.NotContains(t, out, "\n")
}

func TestEncode_EmptyTable(t *testing.T) {
	out := EncodeString("sysvars", NewTable())

	macro, table, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "sysvars", macro)
	assert.Equal(t, 0, table.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing_bang", input: `sysvars { "A" => "1" }`},
		{name: "missing_arrow", input: `sysvars! { "A" "1" }`},
		{name: "unterminated", input: `sysvars! { "A" => "1 }`},
		{name: "missing_comma", input: `sysvars! { "A" => "1" "B" => "2" }`},
		{name: "trailing_text", input: `sysvars! { } extra`},
		{name: "unquoted", input: `sysvars! { A => 1 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_AcceptsTrailingCommaAndNewlines(t *testing.T) {
	input := "sysvars! {\n  \"A\" => \"1\",\n  \"B\" => \"2\",\n}\n"

	_, table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, table.Map())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_vars.txt")
	table := NewTable(Var{Name: "HOME", Value: "/home/dev"})
	require.NoError(t, os.WriteFile(path, []byte(EncodeString("sysvars", table)), 0o644))

	macro, got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sysvars", macro)
	assert.Equal(t, table.Vars(), got.Vars())
}

// Property-based tests using rapid

func TestEnvsnap_PropertyBased_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		seen := make(map[string]bool)
		var vars []Var
		for i := 0; i < n; i++ {
			name := string(rapid.SliceOfN(rapid.Byte(), 1, 16).Draw(t, "name"))
			if seen[name] {
				continue
			}
			seen[name] = true
			value := string(rapid.SliceOf(rapid.Byte()).Draw(t, "value"))
			vars = append(vars, Var{Name: name, Value: value})
		}
		table := NewTable(vars...)

		encoded := EncodeString("sysvars", table)
		_, decoded, err := Parse(strings.NewReader(encoded))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		got := decoded.Vars()
		if len(got) != len(vars) {
			t.Fatalf("expected %d vars, got %d", len(vars), len(got))
		}
		for i := range vars {
			if got[i] != vars[i] {
				t.Fatalf("var %d: expected %q, got %q", i, vars[i], got[i])
			}
		}
	})
}
