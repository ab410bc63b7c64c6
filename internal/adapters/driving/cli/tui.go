package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui"
)

// tuiRunner runs the app. Tests replace it to avoid taking over the terminal.
var tuiRunner = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui <file>",
	Short: "Search a document interactively",
	Long: `Open a document in the interactive terminal UI.

Type search terms (or a regex) and press Enter. Results are grouped into
word windows; open one to see its lines with every hit highlighted.

Controls:
  Enter        - Search / open result
  ↑/k, ↓/j     - Navigate results
  Tab          - Toggle the detail pane
  /            - Edit the query
  Alt+R, Alt+C - Toggle regex / case sensitivity
  Alt+W, Alt+M - Toggle whole word / match mode
  Alt+=, Alt+- - Widen / narrow the word range
  ?            - Help
  Esc          - Close detail / quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panicked: %v", r)
		}
	}()

	if searchService == nil {
		return errSearchUnavailable
	}
	if documentService == nil {
		return errDocumentUnavailable
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := documentService.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	app, err := tui.NewApp(tui.NewPorts(searchService, settingsService), doc)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := tuiRunner(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
