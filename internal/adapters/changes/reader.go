// Package changes reads changed-path lists and unified diffs.
package changes

import (
	"bufio"
	"io"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/zerr"
)

const devNull = "/dev/null"

// Reader implements ports.ChangeReader.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadPaths reads one path per line. Blank lines and lines starting with '#'
// are skipped, surrounding whitespace is trimmed and duplicates collapse.
func (r *Reader) ReadPaths(in io.Reader) ([]string, error) {
	var paths orderedSet

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(domain.ErrChangesUnreadable, "cause", err.Error())
	}
	return paths.items, nil
}

// ReadDiff parses a unified diff, as produced by git diff or diff -u, and
// returns the old and new name of every file it touches. Git's a/ and b/
// prefixes are removed and /dev/null is skipped, so an added file contributes
// its new name and a deleted file its old name.
func (r *Reader) ReadDiff(in io.Reader) ([]string, error) {
	files, err := diff.NewMultiFileDiffReader(in).ReadAllFiles()
	if err != nil {
		return nil, zerr.With(domain.ErrChangesUnreadable, "cause", err.Error())
	}

	var paths orderedSet
	for _, fd := range files {
		for _, name := range []string{fd.OrigName, fd.NewName} {
			if p := cleanName(name); p != "" {
				paths.add(p)
			}
		}
	}
	return paths.items, nil
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == devNull {
		return ""
	}
	for _, prefix := range []string{"a/", "b/"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			return rest
		}
	}
	return name
}

type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(item string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}
