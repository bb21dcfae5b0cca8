package export

import (
	"fmt"
	"io"
	"time"

	"github.com/mireval/chartbot/internal"
)

// PDFExporter emits a plain-text report of the chart under a .pdf
// extension and application/pdf MIME type. The body is not a paginated
// PDF document; this matches the shipped behavior and is a known
// limitation of the format.
type PDFExporter struct {
	// Now overrides the generation timestamp; nil means time.Now
	Now func() time.Time
}

// Export writes the text report
func (e *PDFExporter) Export(chart *internal.ChartDescriptor, opts Options, w io.Writer) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	fmt.Fprintf(w, "ChartBot SQL Export\n")
	fmt.Fprintf(w, "Generated on: %s\n\n", now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Chart Title: %s\n", orDefault(chart.Title, "Untitled Chart"))
	fmt.Fprintf(w, "Chart Type: %s\n\n", orDefault(chart.Type, "Unknown"))

	if len(chart.Values) > 0 {
		fmt.Fprintf(w, "Data Points:\n")
		for i, v := range chart.Values {
			label := "Unknown"
			if i < len(chart.Labels) {
				label = chart.Labels[i]
			}
			fmt.Fprintf(w, "%d. %s: %g\n", i+1, label, v)
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *PDFExporter) Extension() string {
	return "pdf"
}

// MIME returns the artifact content type
func (e *PDFExporter) MIME() string {
	return "application/pdf"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
