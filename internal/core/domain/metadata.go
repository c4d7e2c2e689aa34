package domain

// ConstantKey names a value published to the program being compiled.
type ConstantKey string

const (
	KeyGitHash           ConstantKey = "GIT_HASH"
	KeyGitTimestamp      ConstantKey = "GIT_TIMESTAMP"
	KeyGitTag            ConstantKey = "GIT_TAG"
	KeyGitBranch         ConstantKey = "GIT_BRANCH"
	KeyCompilerVersion   ConstantKey = "COMPILER_VERSION"
	KeyTargetTriple      ConstantKey = "TARGET_TRIPLE"
	KeySourceFingerprint ConstantKey = "SOURCE_FINGERPRINT"
)

var goIdentifiers = map[ConstantKey]string{
	KeyGitHash:           "GitHash",
	KeyGitTimestamp:      "GitTimestamp",
	KeyGitTag:            "GitTag",
	KeyGitBranch:         "GitBranch",
	KeyCompilerVersion:   "CompilerVersion",
	KeyTargetTriple:      "TargetTriple",
	KeySourceFingerprint: "SourceFingerprint",
}

// String returns the key
func (k ConstantKey) String() string {
	return string(k)
}

// GoIdent returns the exported Go identifier used for the key in generated code.
// Unknown keys are converted from SCREAMING_SNAKE to CamelCase.
func (k ConstantKey) GoIdent() string {
	if ident, ok := goIdentifiers[k]; ok {
		return ident
	}
	return camelCase(string(k))
}

func camelCase(s string) string {
	out := make([]byte, 0, len(s))
	upper := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || c == '-' || c == '.' {
			upper = true
			continue
		}
		switch {
		case upper && c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case !upper && c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		out = append(out, c)
		upper = false
	}
	return string(out)
}

// MetadataValue is a named text value collected during a pass.
// Text is never empty of meaning: when the producing command fails, Text
// holds a placeholder describing the failure and Degraded is set.
type MetadataValue struct {
	Key      ConstantKey
	Text     string
	Degraded bool
}

// NewMetadataValue creates a value from captured text
func NewMetadataValue(key ConstantKey, text string, degraded bool) MetadataValue {
	return MetadataValue{Key: key, Text: text, Degraded: degraded}
}

// String returns the raw text
func (v MetadataValue) String() string {
	return v.Text
}
