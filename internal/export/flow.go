package export

import (
	"fmt"
	"time"

	"github.com/mireval/chartbot/internal"
)

// State is the export dialog's lifecycle state
type State int

const (
	StateClosed State = iota
	StateOpen
	StateExporting
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateExporting:
		return "exporting"
	default:
		return "closed"
	}
}

// closeDelay is the cosmetic pause before the dialog closes after a
// successful export
const closeDelay = 1500 * time.Millisecond

// Flow drives the export dialog: Closed → Open → Exporting → Closed.
// Opening seeds a timestamped default filename; exporting requires a chart
// and a chosen format; success closes the dialog after a short delay while
// failure keeps it open for a retry. Failures never propagate past Export:
// they go to the notifier and the error callback.
type Flow struct {
	Notifier internal.Notifier
	OnError  func(message string)
	OutDir   string

	// Now and Sleep are overridable for tests
	Now   func() time.Time
	Sleep func(time.Duration)

	state   State
	chart   *internal.ChartDescriptor
	format  string
	options Options
}

// NewFlow creates a flow writing artifacts to outDir
func NewFlow(outDir string, notifier internal.Notifier) *Flow {
	return &Flow{
		Notifier: notifier,
		OutDir:   outDir,
		Now:      time.Now,
		Sleep:    time.Sleep,
	}
}

// State returns the current dialog state
func (f *Flow) State() State {
	return f.state
}

// Options returns the pending export options
func (f *Flow) Options() Options {
	return f.options
}

// Open opens the dialog for a chart and seeds the default, timestamped
// filename
func (f *Flow) Open(chart *internal.ChartDescriptor) {
	f.state = StateOpen
	f.chart = chart
	f.format = ""
	f.options = DefaultOptions()
	f.options.Filename = fmt.Sprintf("%s_%s", f.options.Filename, f.Now().Format("20060102-150405"))
}

// Close closes the dialog and discards pending selections
func (f *Flow) Close() {
	f.state = StateClosed
	f.chart = nil
	f.format = ""
}

// SelectFormat records the chosen output format
func (f *Flow) SelectFormat(format string) {
	f.format = format
}

// SetSize overrides the artifact dimensions
func (f *Flow) SetSize(width, height int) {
	if width > 0 {
		f.options.Width = width
	}
	if height > 0 {
		f.options.Height = height
	}
}

// SetFilename overrides the seeded filename
func (f *Flow) SetFilename(name string) {
	if name != "" {
		f.options.Filename = name
	}
}

// Export produces the artifact. It returns the written path and whether
// the export succeeded; on failure the dialog stays open.
func (f *Flow) Export() (string, bool) {
	if f.state != StateOpen {
		return "", false
	}
	if f.chart == nil {
		f.fail("No chart available for export. Please create a chart first.")
		return "", false
	}
	if f.format == "" {
		f.fail("Please select an export format.")
		return "", false
	}

	f.state = StateExporting
	path, err := SaveArtifact(f.OutDir, f.format, f.chart, f.options)
	if err != nil {
		internal.LogError("Chart export failed: %v", err)
		f.state = StateOpen
		f.fail(fmt.Sprintf("Export failed: %v", err))
		return "", false
	}

	if f.Notifier != nil {
		f.Notifier.Success(fmt.Sprintf("Chart exported to %s", path))
	}
	f.Sleep(closeDelay)
	f.Close()
	return path, true
}

func (f *Flow) fail(message string) {
	if f.Notifier != nil {
		f.Notifier.Error(message)
	}
	if f.OnError != nil {
		f.OnError(message)
	}
}
