package export

import (
	"fmt"
	"io"

	"github.com/mireval/chartbot/internal"
)

// Options describes one export action
type Options struct {
	Width    int
	Height   int
	Filename string
}

// DefaultOptions are the dialog's seed values
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Filename: "chartbot-sql-export"}
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(chart *internal.ChartDescriptor, opts Options, w io.Writer) error
	Extension() string
	MIME() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "png":
		return &PNGExporter{}, nil
	case "svg":
		return &SVGExporter{}, nil
	case "pdf":
		return &PDFExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: png, svg, pdf, json)", format)
	}
}
