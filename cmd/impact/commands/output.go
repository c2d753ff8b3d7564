package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	formatLines = "lines"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatLines, formatJSON, formatYAML:
		return nil
	default:
		return zerr.With(domain.ErrInvalidFormat, "format", format)
	}
}

// writeResult prints a selection in the requested format.
func writeResult(w io.Writer, format string, res domain.ImpactResult) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return zerr.Wrap(err, "failed to encode result")
		}
		return enc.Close()
	default:
		for _, t := range res.Tests {
			if _, err := fmt.Fprintln(w, t); err != nil {
				return err
			}
		}
		return nil
	}
}
