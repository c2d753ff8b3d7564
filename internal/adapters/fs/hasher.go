package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher computes content fingerprints.
type Hasher struct {
	open func(path string) (io.ReadCloser, error)
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{open: openFile}
}

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path) //nolint:gosec // Path comes from walking a configured root
}

// Fingerprint computes the XXHash of a file's content.
func (h *Hasher) Fingerprint(path string) (domain.Fingerprint, error) {
	open := h.open
	if open == nil {
		open = openFile
	}
	f, err := open(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return domain.Fingerprint(hasher.Sum64()), nil
}

// FingerprintBytes computes the XXHash of content already in memory.
func (h *Hasher) FingerprintBytes(content []byte) domain.Fingerprint {
	return domain.Fingerprint(xxhash.Sum64(content))
}
