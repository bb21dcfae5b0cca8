package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend and local storage",
	Long: `Check the health of chartbot by verifying:
  • Backend reachability and database status
  • Local database accessibility
  • Session count

This command is useful for debugging connectivity and storage issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 ChartBot Health Check"))
		fmt.Println()

		// Step 1: Local storage
		fmt.Println(infoStyle.Render("Step 1: Opening local storage..."))
		a, err := openApp()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to open local storage:"), err)
			return fmt.Errorf("health check failed: local storage unavailable")
		}
		defer a.close()
		fmt.Println(successStyle.Render("✅ Local storage opened"))
		if verbose {
			fmt.Printf("   Data directory: %s\n", a.dataDir)
		}
		fmt.Println()

		// Step 2: Session data
		fmt.Println(infoStyle.Render("Step 2: Loading session data..."))
		sessions, err := a.sessions.List()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load sessions:"), err)
			return fmt.Errorf("health check failed: session data unreadable")
		}
		if len(sessions) > 0 {
			fmt.Println(successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(sessions))))
			if verbose {
				for i, session := range sessions {
					if i >= 5 {
						fmt.Printf("   ... and %d more\n", len(sessions)-5)
						break
					}
					fmt.Printf("   [%d] %s (ID: %s)\n", i+1, session.Title, session.ID)
				}
			}
		} else {
			fmt.Println(warningStyle.Render("⚠️  No sessions found"))
			fmt.Println("   This is expected on a fresh install.")
		}
		fmt.Println()

		// Step 3: Backend
		fmt.Println(infoStyle.Render("Step 3: Checking backend..."))
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		health, err := a.gateway.Health(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Backend unreachable:"), err)
			fmt.Println()
			fmt.Println(sectionStyle.Render("📊 Summary"))
			fmt.Println()
			fmt.Println(errorStyle.Render("❌ Health check failed"))
			fmt.Printf("   • Backend at %s is not responding\n", apiURL)
			fmt.Println("   • Chat and chart creation will not work")
			return fmt.Errorf("health check failed: backend unreachable")
		}
		fmt.Println(successStyle.Render("✅ Backend reachable"))
		if verbose {
			fmt.Printf("   Status: %s\n", health.Status)
			fmt.Printf("   Database: %s\n", health.Database)
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		if health.Status == "healthy" {
			fmt.Println(successStyle.Render("✅ Health check passed!"))
			fmt.Println(successStyle.Render("   • Backend: " + health.Status))
			fmt.Println(successStyle.Render(fmt.Sprintf("   • Sessions: %d found", len(sessions))))
			return nil
		}
		fmt.Println(warningStyle.Render("⚠️  Backend responded but reports: " + health.Status))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
