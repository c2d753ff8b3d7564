//go:build !cgo

package python

import (
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

func newTreeSitterParser() (ports.ImportParser, error) {
	return nil, zerr.With(domain.ErrParserUnavailable, "parser", ParserTreeSitter)
}
