package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// LoadingStep is one frame of a scripted loading sequence: wait Delay,
// then show Percent and Status. The schedule is cosmetic feedback and is
// not tied to actual gateway progress.
type LoadingStep struct {
	Percent int
	Status  string
	Delay   time.Duration
}

// QuerySchedule is the fixed loading sequence shown while a chat query is
// outstanding
func QuerySchedule() []LoadingStep {
	return schedule(700*time.Millisecond,
		[]int{10, 20, 35, 50, 70, 85, 95, 100},
		[]string{
			"Connecting to database...",
			"Validating SQL query...",
			"Executing query...",
			"Fetching results...",
			"Processing data...",
			"Preparing response...",
			"Generating suggestions...",
			"Complete!",
		})
}

// ChartSchedule is the shorter sequence shown while a chart is being created
func ChartSchedule() []LoadingStep {
	return schedule(750*time.Millisecond,
		[]int{15, 30, 50, 70, 85, 100},
		[]string{
			"Preparing chart data...",
			"Selecting visualization type...",
			"Rendering chart...",
			"Applying styling...",
			"Finalizing...",
			"Complete!",
		})
}

func schedule(interval time.Duration, percents []int, statuses []string) []LoadingStep {
	steps := make([]LoadingStep, len(percents))
	for i := range percents {
		steps[i] = LoadingStep{Percent: percents[i], Status: statuses[i], Delay: interval}
	}
	return steps
}

// ScheduleDuration returns the total play time of a schedule
func ScheduleDuration(steps []LoadingStep) time.Duration {
	var total time.Duration
	for _, step := range steps {
		total += step.Delay
	}
	return total
}

// ProgressSink receives scripted loading updates
type ProgressSink interface {
	Step(percent int, status string)
	Done()
}

// PlaySchedule emits every step of a schedule to the sink, sleeping each
// step's delay first. It returns early when the context is cancelled.
func PlaySchedule(ctx context.Context, steps []LoadingStep, sink ProgressSink) {
	if sink == nil {
		sink = NopProgress{}
	}
	defer sink.Done()
	for _, step := range steps {
		select {
		case <-ctx.Done():
			return
		case <-time.After(step.Delay):
			sink.Step(step.Percent, step.Status)
		}
	}
}

// NopProgress discards all updates
type NopProgress struct{}

func (NopProgress) Step(int, string) {}
func (NopProgress) Done()            {}

// TerminalProgress renders loading updates as a single rewritten line
type TerminalProgress struct {
	Out io.Writer
}

// Step renders one progress frame
func (p *TerminalProgress) Step(percent int, status string) {
	fmt.Fprintf(p.out(), "\r\033[K%s %s",
		progressStyle.Render(fmt.Sprintf("%3d%%", percent)),
		statusStyle.Render(status))
}

// Done clears the progress line
func (p *TerminalProgress) Done() {
	fmt.Fprintf(p.out(), "\r\033[K")
}

func (p *TerminalProgress) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stderr
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
