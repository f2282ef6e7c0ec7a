package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nhl-penalty-service/internal/chart"
)

var errSVGUnsupported = errors.New("svg output is only available for charts")

// writeSpec prints a chart in the requested format.
func writeSpec(w io.Writer, format string, spec chart.Spec) error {
	if format == FormatSVG {
		return chart.RenderSVG(w, spec)
	}
	return writeData(w, format, spec)
}

func writeData(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
