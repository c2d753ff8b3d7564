package fs

import "io"

// NewHasherWithOpener creates a Hasher that reads files through open.
func NewHasherWithOpener(open func(path string) (io.ReadCloser, error)) *Hasher {
	return &Hasher{open: open}
}
