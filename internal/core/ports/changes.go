package ports

import "io"

// ChangeReader turns caller input into a list of changed paths.
//
//go:generate mockgen -source=changes.go -destination=mocks/mock_changes.go -package=mocks
type ChangeReader interface {
	// ReadPaths reads one path per line, ignoring blank lines and comments.
	ReadPaths(r io.Reader) ([]string, error)
	// ReadDiff reads a unified diff and returns every path it touches.
	ReadDiff(r io.Reader) ([]string, error)
}
