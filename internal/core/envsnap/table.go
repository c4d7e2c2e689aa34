// Package envsnap captures the process environment as an immutable table and
// encodes it into the text artifact consumed by the program being compiled.
package envsnap

import "strings"

// Var is one captured environment variable.
type Var struct {
	Name  string
	Value string
}

// Table is a point-in-time copy of the process environment. Order is the
// capture order.
type Table struct {
	vars []Var
}

// NewTable builds a table from explicit pairs, copying the slice.
func NewTable(vars ...Var) Table {
	return Table{vars: append([]Var(nil), vars...)}
}

// Capture copies every entry returned by environ. Later changes to the
// process environment do not affect the returned table.
func Capture(environ func() []string) Table {
	entries := environ()
	vars := make([]Var, 0, len(entries))
	for _, entry := range entries {
		name, value, ok := splitEntry(entry)
		if !ok {
			continue
		}
		vars = append(vars, Var{Name: name, Value: value})
	}
	return Table{vars: vars}
}

// splitEntry splits NAME=VALUE at the first '=' after the first byte, so
// Windows drive entries like "=C:=C:\dir" keep their leading '='.
func splitEntry(entry string) (string, string, bool) {
	if entry == "" {
		return "", "", false
	}
	i := strings.IndexByte(entry[1:], '=')
	if i < 0 {
		return entry, "", true
	}
	i++
	return entry[:i], entry[i+1:], true
}

// Vars returns a copy of the captured pairs
func (t Table) Vars() []Var {
	return append([]Var(nil), t.vars...)
}

// Len returns the number of captured variables
func (t Table) Len() int {
	return len(t.vars)
}

// Lookup returns the value of the first variable called name
func (t Table) Lookup(name string) (string, bool) {
	for _, v := range t.vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Map returns the table as a map. If a name was captured more than once the
// last value wins.
func (t Table) Map() map[string]string {
	m := make(map[string]string, len(t.vars))
	for _, v := range t.vars {
		m[v.Name] = v.Value
	}
	return m
}
