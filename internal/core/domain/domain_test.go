package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestConstantKey_GoIdent(t *testing.T) {
	tests := []struct {
		key  ConstantKey
		want string
	}{
		{KeyGitHash, "GitHash"},
		{KeyGitTimestamp, "GitTimestamp"},
		{KeyCompilerVersion, "CompilerVersion"},
		{KeyTargetTriple, "TargetTriple"},
		{ConstantKey("BUILD_HOST_NAME"), "BuildHostName"},
		{ConstantKey("release.channel"), "ReleaseChannel"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.GoIdent())
		})
	}
}

func TestSourceModeFromFlag(t *testing.T) {
	assert.Equal(t, SourceModeFrozen, SourceModeFromFlag(true))
	assert.Equal(t, SourceModeBuiltins, SourceModeFromFlag(false))
	assert.Equal(t, "frozen", SourceModeFrozen.String())
	assert.Equal(t, "builtins", SourceModeBuiltins.String())
	assert.Equal(t, "SourceMode(7)", SourceMode(7).String())
}

func TestPathSet_KeepsOrderAndDropsRepeats(t *testing.T) {
	s := NewPathSet("b.py", "a.py", "b.py")

	assert.True(t, s.Add("c.py"))
	assert.False(t, s.Add("a.py"))
	assert.Equal(t, []string{"b.py", "a.py", "c.py"}, s.Paths())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("c.py"))
	assert.False(t, s.Contains("d.py"))
}

func TestPathSet_ZeroAndNil(t *testing.T) {
	var zero PathSet
	assert.True(t, zero.Add("x"))
	assert.Equal(t, 1, zero.Len())

	var nilSet *PathSet
	assert.Equal(t, 0, nilSet.Len())
	assert.Nil(t, nilSet.Paths())
	assert.False(t, nilSet.Contains("x"))
}

func TestPathSet_PathsIsCopy(t *testing.T) {
	s := NewPathSet("a")
	paths := s.Paths()
	paths[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.Paths())
}

func TestReport_Helpers(t *testing.T) {
	r := &Report{Values: []MetadataValue{
		NewMetadataValue(KeyGitHash, "abc\n", false),
		NewMetadataValue(KeyGitTag, "(command error: boom)", true),
	}}

	v, ok := r.Value(KeyGitHash)
	assert.True(t, ok)
	assert.Equal(t, "abc\n", v.String())
	_, ok = r.Value(KeyTargetTriple)
	assert.False(t, ok)
	assert.Equal(t, 1, r.DegradedCount())
}

// Property-based tests using rapid

func TestPathSet_PropertyBased_UniqueAndOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})).Draw(t, "paths")

		s := NewPathSet(input...)

		var want []string
		seen := make(map[string]bool)
		for _, p := range input {
			if !seen[p] {
				seen[p] = true
				want = append(want, p)
			}
		}
		got := s.Paths()
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})
}
