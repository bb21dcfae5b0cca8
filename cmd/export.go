package cmd

import (
	"fmt"

	"github.com/mireval/chartbot/internal"
	"github.com/mireval/chartbot/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat   string
	exportSession  string
	exportOut      string
	exportWidth    int
	exportHeight   int
	exportFilename string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest chart from a session",
	Long: `Export the most recent chart of a chat session as a file.

Supported formats: png, svg, pdf, json. Without --session the most
recently updated session is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		sessionID := exportSession
		if sessionID == "" {
			sessions, err := a.sessions.List()
			if err != nil {
				return fmt.Errorf("failed to load sessions: %w", err)
			}
			if len(sessions) == 0 {
				return fmt.Errorf("no sessions found")
			}
			sessionID = sessions[0].ID
		}

		messages, err := a.sessions.Messages(sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session %s: %w", sessionID, err)
		}
		chart := latestChart(messages)
		if chart == nil {
			return fmt.Errorf("session %s has no chart to export", sessionID)
		}

		opts := export.DefaultOptions()
		if exportWidth > 0 {
			opts.Width = exportWidth
		}
		if exportHeight > 0 {
			opts.Height = exportHeight
		}
		if exportFilename != "" {
			opts.Filename = exportFilename
		}

		path, err := export.SaveArtifact(exportOut, exportFormat, chart, opts)
		if err != nil {
			return err
		}
		fmt.Println(countStyle.Render("✓") + " Exported chart to " + path)
		return nil
	},
}

// latestChart returns the chart of the newest chart-bearing message
func latestChart(messages []internal.Message) *internal.ChartDescriptor {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Chart != nil {
			descriptor := messages[i].Chart.Descriptor
			return &descriptor
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "png", "Export format (png, svg, pdf, json)")
	exportCmd.Flags().StringVar(&exportSession, "session", "", "Session id to export from (default: most recent)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
	exportCmd.Flags().IntVar(&exportWidth, "width", 0, "Image width in pixels (default 800)")
	exportCmd.Flags().IntVar(&exportHeight, "height", 0, "Image height in pixels (default 600)")
	exportCmd.Flags().StringVar(&exportFilename, "filename", "", "Base filename without extension")
}
