package export

import (
	"encoding/json"
	"io"

	"github.com/mireval/chartbot/internal"
)

// JSONExporter serializes the chart descriptor verbatim with stable
// two-space indentation
type JSONExporter struct{}

// Export writes the descriptor as pretty-printed JSON
func (e *JSONExporter) Export(chart *internal.ChartDescriptor, opts Options, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(chart)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}

// MIME returns the artifact content type
func (e *JSONExporter) MIME() string {
	return "application/json"
}
