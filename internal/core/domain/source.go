package domain

import "fmt"

// SourceMode selects which library sources are tracked by a pass.
type SourceMode int

const (
	// SourceModeBuiltins tracks only the builtin-only library directory.
	SourceModeBuiltins SourceMode = iota
	// SourceModeFrozen tracks every library package directory.
	SourceModeFrozen
)

// SourceModeFromFlag maps the freeze switch onto a mode
func SourceModeFromFlag(freeze bool) SourceMode {
	if freeze {
		return SourceModeFrozen
	}
	return SourceModeBuiltins
}

func (m SourceMode) String() string {
	switch m {
	case SourceModeBuiltins:
		return "builtins"
	case SourceModeFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("SourceMode(%d)", int(m))
	}
}

// PathSet is an ordered set of file system paths. Each path is a rebuild
// trigger for the pass that produced it.
type PathSet struct {
	paths []string
	seen  map[string]struct{}
}

// NewPathSet creates a set holding the given paths in order, dropping repeats.
func NewPathSet(paths ...string) *PathSet {
	s := &PathSet{seen: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add appends a path unless it is already present. It reports whether the
// path was added.
func (s *PathSet) Add(path string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	s.paths = append(s.paths, path)
	return true
}

// Contains reports whether path is in the set
func (s *PathSet) Contains(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[path]
	return ok
}

// Paths returns a copy of the paths in insertion order
func (s *PathSet) Paths() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.paths...)
}

// Len returns the number of paths
func (s *PathSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}
