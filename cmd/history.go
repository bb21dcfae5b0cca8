package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mireval/chartbot/internal"
	"github.com/spf13/cobra"
)

var kindStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("135")).
	Italic(true)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recent query history",
	Long: `Show the last 10 queries and chart actions, newest first.

History is recorded only for successful actions and survives restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		displayHistory(a.prefs.History())
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the query history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.prefs.ClearHistory()
		fmt.Println(countStyle.Render("✓") + " History cleared")
		return nil
	},
}

func displayHistory(items []internal.HistoryItem) {
	if len(items) == 0 {
		fmt.Println(headerStyle.Render("📋 No history yet"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("📋 Last %d item(s)", len(items))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Query")+"\t"+titleStyle.Render("Type")+"\t"+titleStyle.Render("When")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, item := range items {
		when := item.Timestamp
		if t, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
			when = relativeStamp(t.Local())
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
			item.Query, kindStyle.Render(item.Kind), dateStyle.Render(when))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)
}
