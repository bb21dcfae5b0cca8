package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mireval/chartbot/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
	apiURL  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chartbot",
	Short: "Chat with a SQL AI and turn query results into charts",
	Long: `ChartBot SQL AI is a conversational client for a SQL chat backend.

Ask questions in plain language or paste SQL; the backend executes the
query and suggests visualizations, which you can create and export in
various formats (PNG, SVG, PDF, JSON).

Features:
  • Interactive chat with scripted progress feedback
  • Chart creation from query results with type suggestions
  • Multiple chat sessions persisted locally in SQLite
  • Bounded recent-query history
  • Chart export pipeline (PNG, SVG, PDF, JSON)

Quick Start:
  chartbot chat                          # Start an interactive chat
  chartbot sessions                      # List saved sessions
  chartbot export --format png           # Export the latest chart

The backend location defaults to http://localhost:5000 (see --api-url).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the local database and preferences (default ~/.chartbot)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:5000", "Base URL of the ChartBot backend")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveDataDir returns the data directory, creating it if needed
func resolveDataDir() (string, error) {
	dir := dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".chartbot")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// app bundles the wired collaborators every command needs
type app struct {
	db       *sql.DB
	sessions *internal.SessionManager
	prefs    *internal.Preferences
	gateway  internal.Gateway
	dataDir  string
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			internal.LogWarn("Failed to close database: %v", err)
		}
	}
}

// openApp opens the local database and wires the session manager,
// preferences and gateway client
func openApp() (*app, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	internal.LogInfo("Using data directory %s", dir)
	db, err := internal.OpenDatabase(filepath.Join(dir, "chartbot.db"))
	if err != nil {
		return nil, err
	}

	return &app{
		db:       db,
		sessions: internal.NewSessionManager(internal.NewStore(db)),
		prefs:    internal.LoadPreferences(filepath.Join(dir, "preferences.yaml")),
		gateway:  internal.NewGatewayClient(apiURL),
		dataDir:  dir,
	}, nil
}
