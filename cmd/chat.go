package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mireval/chartbot/internal"
	"github.com/mireval/chartbot/internal/export"
	"github.com/spf13/cobra"
)

var (
	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat with the ChartBot backend.

Type a question or SQL query and press Enter. When a query returns
tabular data, pick a suggested chart type by number to visualize it.

Slash commands:
  /new             Start a new chat session
  /clear           Clear the current session's history
  /sessions        List saved sessions
  /load <id>       Switch to another session
  /delete <id>     Delete a session
  /export [format] Export the current chart
  /history         Show recent queries
  /theme           Cycle the color theme
  /voice           Dictate a query (requires a speech recognizer)
  /quit            Exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		conv := internal.NewConversation(internal.ConversationConfig{
			Gateway:  a.gateway,
			Sessions: a.sessions,
			Prefs:    a.prefs,
			Notifier: internal.TerminalNotifier{},
			Progress: &internal.TerminalProgress{},
		})
		if err := conv.Init(); err != nil {
			return fmt.Errorf("failed to initialize chat: %w", err)
		}

		voice := internal.NewVoiceInput()

		repl := &chatREPL{
			app:   a,
			conv:  conv,
			voice: voice,
			in:    bufio.NewScanner(os.Stdin),
		}
		return repl.run(cmd.Context())
	},
}

// chatREPL drives one interactive chat loop over stdin
type chatREPL struct {
	app   *app
	conv  *internal.Conversation
	voice *internal.VoiceInput
	in    *bufio.Scanner

	rendered int
}

func (r *chatREPL) run(ctx context.Context) error {
	fmt.Println(botStyle.Render("🤖 ChartBot SQL AI") + timeStyle.Render("  (type /quit to exit, /export to save a chart)"))
	fmt.Println()
	r.renderNew()

	for {
		fmt.Print(promptStyle.Render("> "))
		if !r.in.Scan() {
			fmt.Println()
			return r.in.Err()
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := r.command(ctx, line)
			if err != nil {
				internal.TerminalNotifier{}.Error(err.Error())
			}
			if quit {
				return nil
			}
			continue
		}

		// Numeric input while suggestions are shown selects a chart type
		if r.conv.Selecting() {
			if n, err := strconv.Atoi(line); err == nil {
				suggestions := r.conv.Suggestions()
				if n >= 1 && n <= len(suggestions) {
					r.conv.RequestChart(ctx, suggestions[n-1].Type)
					r.renderNew()
					continue
				}
				internal.TerminalNotifier{}.Warning(fmt.Sprintf("Pick a number between 1 and %d", len(suggestions)))
				continue
			}
		}

		r.conv.SendQuery(ctx, line)
		r.renderNew()
	}
}

func (r *chatREPL) command(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true, nil
	case "/new":
		if err := r.conv.NewChat(); err != nil {
			return false, err
		}
		r.rendered = 0
		r.renderNew()
	case "/clear":
		err := r.conv.ClearChat(func() bool {
			fmt.Print(warningStyle.Render("Clear this chat's history? [y/N] "))
			if !r.in.Scan() {
				return false
			}
			answer := strings.ToLower(strings.TrimSpace(r.in.Text()))
			return answer == "y" || answer == "yes"
		})
		if err != nil {
			return false, err
		}
		r.rendered = 0
		r.renderNew()
	case "/sessions":
		sessions, err := r.app.sessions.List()
		if err != nil {
			return false, err
		}
		displaySessions(sessions)
	case "/load":
		if arg == "" {
			return false, fmt.Errorf("usage: /load <session-id>")
		}
		if err := r.conv.LoadSession(arg); err != nil {
			return false, err
		}
		r.rendered = 0
		r.renderNew()
	case "/delete":
		if arg == "" {
			return false, fmt.Errorf("usage: /delete <session-id>")
		}
		active := r.conv.SessionID()
		if err := r.conv.DeleteSession(arg); err != nil {
			return false, err
		}
		if arg == active {
			r.rendered = 0
			r.renderNew()
		}
	case "/export":
		r.exportDialog(arg)
	case "/history":
		displayHistory(r.app.prefs.History())
	case "/theme":
		theme := r.app.prefs.CycleTheme()
		internal.TerminalNotifier{}.Info("Theme set to " + string(theme))
	case "/voice":
		return false, r.dictate(ctx)
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}

// exportDialog walks the export flow interactively: pick a format
// (skipped when given as an argument), optionally override the filename,
// then write the artifact
func (r *chatREPL) exportDialog(format string) {
	flow := export.NewFlow(filepath.Join(r.app.dataDir, "exports"), internal.TerminalNotifier{})
	var chart *internal.ChartDescriptor
	if rendered := r.conv.CurrentChart(); rendered != nil {
		descriptor := rendered.Descriptor
		chart = &descriptor
	}
	flow.Open(chart)

	if format == "" {
		fmt.Print(promptStyle.Render("Format (png, svg, pdf, json): "))
		if !r.in.Scan() {
			flow.Close()
			return
		}
		format = strings.TrimSpace(r.in.Text())
	}
	flow.SelectFormat(format)

	fmt.Print(promptStyle.Render(fmt.Sprintf("Filename [%s]: ", flow.Options().Filename)))
	if !r.in.Scan() {
		flow.Close()
		return
	}
	flow.SetFilename(strings.TrimSpace(r.in.Text()))

	flow.Export()
	flow.Close()
}

func (r *chatREPL) dictate(ctx context.Context) error {
	if !r.voice.Available() {
		return internal.ErrVoiceUnavailable
	}
	internal.TerminalNotifier{}.Info("Listening...")
	text, err := r.voice.Listen(ctx)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	fmt.Println(userStyle.Render("You (voice):") + " " + text)
	r.conv.SendQuery(ctx, text)
	r.renderNew()
	return nil
}

// renderNew prints messages appended since the last render, then any
// pending chart suggestions
func (r *chatREPL) renderNew() {
	messages := r.conv.Messages()
	if r.rendered > len(messages) {
		r.rendered = 0
	}
	for _, m := range messages[r.rendered:] {
		printMessage(m)
	}
	r.rendered = len(messages)

	if r.conv.Selecting() {
		fmt.Println(suggestionStyle.Render("📊 Suggested charts:"))
		for i, s := range r.conv.Suggestions() {
			fmt.Printf("  %s %s", suggestionStyle.Render(fmt.Sprintf("%d.", i+1)), s.Title)
			if s.Description != "" {
				fmt.Printf(" %s", timeStyle.Render("("+s.Description+")"))
			}
			fmt.Println()
		}
		fmt.Println(timeStyle.Render("Enter a number to create a chart, or keep typing queries."))
	}
}

func printMessage(m internal.Message) {
	who := botStyle.Render("🤖 ChartBot")
	if m.Role == internal.RoleUser {
		who = userStyle.Render("You")
	}
	fmt.Printf("%s %s\n%s\n", who, timeStyle.Render(m.Time), m.Content)
	if m.Chart != nil {
		fmt.Println(suggestionStyle.Render(fmt.Sprintf("  [%s chart: %s]",
			m.Chart.Descriptor.Type, m.Chart.Descriptor.Title)))
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
