package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mireval/chartbot/internal"
)

func TestSVGExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&SVGExporter{}).Export(sampleChart(), DefaultOptions(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, `<svg width="800" height="600"`) {
		t.Errorf("output should open with a sized svg element, got %.60s", out)
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Error("output should close the svg element")
	}
	if !strings.Contains(out, `fill="#1a1a2e"`) {
		t.Error("background rect missing")
	}
	if !strings.Contains(out, `fill="#6366f1"`) {
		t.Error("bar rects missing")
	}
	if !strings.Contains(out, "Grade Distribution") {
		t.Error("title missing")
	}
	for _, label := range []string{">A<", ">B<", ">C<"} {
		if !strings.Contains(out, label) {
			t.Errorf("label %s missing", label)
		}
	}
}

func TestSVGExporter_EscapesMarkup(t *testing.T) {
	chart := &internal.ChartDescriptor{
		Type:   "bar",
		Title:  `<script>alert("x")</script>`,
		Labels: []string{"a & b"},
		Values: []float64{1},
	}

	var buf bytes.Buffer
	if err := (&SVGExporter{}).Export(chart, DefaultOptions(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>") {
		t.Error("title must be escaped")
	}
	if !strings.Contains(out, "a &amp; b") {
		t.Error("labels must be escaped")
	}
}

func TestSVGExporter_AllZeroValues(t *testing.T) {
	chart := &internal.ChartDescriptor{
		Type:   "bar",
		Labels: []string{"A"},
		Values: []float64{0},
	}

	var buf bytes.Buffer
	if err := (&SVGExporter{}).Export(chart, DefaultOptions(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	// Zero-height bars are skipped but the label still renders
	if !strings.Contains(buf.String(), ">A<") {
		t.Error("label should render even when the bar has no height")
	}
}
