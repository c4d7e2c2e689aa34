package services

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/zeebo/blake3"

	"kilometers.ai/buildprep/internal/core/domain"
)

// Fingerprinter hashes the contents of a source set so the program being
// compiled can tell which library sources it was built from.
type Fingerprinter struct {
	logger hclog.Logger
}

// NewFingerprinter creates a Fingerprinter
func NewFingerprinter(logger hclog.Logger) *Fingerprinter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Fingerprinter{logger: logger.Named("fingerprint")}
}

// Fingerprint returns the BLAKE3 digest of every path and its content, in
// set order. Unreadable files contribute a marker instead of content, so the
// value is always produced.
func (f *Fingerprinter) Fingerprint(set *domain.PathSet) domain.MetadataValue {
	h := blake3.New()
	for _, path := range set.Paths() {
		h.WriteString(path)
		h.Write([]byte{0})
		if err := hashFile(h, path); err != nil {
			f.logger.Debug("fingerprinting without content", "path", path, "error", err)
			h.WriteString("\x00missing")
		}
		h.Write([]byte{0})
	}
	return domain.NewMetadataValue(domain.KeySourceFingerprint, hex.EncodeToString(h.Sum(nil)), false)
}

func hashFile(w io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(w, file)
	return err
}
