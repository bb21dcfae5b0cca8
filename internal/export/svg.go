package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/mireval/chartbot/internal"
)

// SVGExporter builds the minimal bar visualization directly as vector
// markup sized to the requested width and height
type SVGExporter struct{}

// Export writes the chart as an SVG document
func (e *SVGExporter) Export(chart *internal.ChartDescriptor, opts Options, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, opts.Width, opts.Height)
	b.WriteString(`<rect width="100%" height="100%" fill="#1a1a2e"/>`)
	fmt.Fprintf(&b,
		`<text x="%d" y="30" text-anchor="middle" fill="#ffffff" font-family="Arial" font-size="20" font-weight="bold">%s</text>`,
		opts.Width/2, html.EscapeString(chartTitle(chart)))

	for _, bar := range layoutBars(chart, opts.Width, opts.Height) {
		if bar.width > 0 && bar.height > 0 {
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#6366f1"/>`,
				bar.x, bar.y, bar.width, bar.height)
		}
		if bar.label != "" {
			fmt.Fprintf(&b,
				`<text x="%d" y="%d" text-anchor="middle" fill="#ffffff" font-family="Arial" font-size="12">%s</text>`,
				bar.labelX, opts.Height-20, html.EscapeString(bar.label))
		}
	}

	b.WriteString(`</svg>`)

	_, err := io.WriteString(w, b.String())
	return err
}

// Extension returns the file extension for this format
func (e *SVGExporter) Extension() string {
	return "svg"
}

// MIME returns the artifact content type
func (e *SVGExporter) MIME() string {
	return "image/svg+xml"
}
