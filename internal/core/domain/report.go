package domain

// Report is the outcome of one preparation pass.
type Report struct {
	Mode      SourceMode
	Sources   *PathSet
	Triggers  []string
	Values    []MetadataValue
	Artifacts []string
	EnvCount  int
}

// Value returns the published value for key
func (r *Report) Value(key ConstantKey) (MetadataValue, bool) {
	for _, v := range r.Values {
		if v.Key == key {
			return v, true
		}
	}
	return MetadataValue{}, false
}

// DegradedCount returns how many values hold failure placeholders
func (r *Report) DegradedCount() int {
	n := 0
	for _, v := range r.Values {
		if v.Degraded {
			n++
		}
	}
	return n
}
