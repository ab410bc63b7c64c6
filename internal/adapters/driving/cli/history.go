package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recent searches",
	Long: `Lists recent searches, newest first. Only the query, its options and the
result count are recorded; results themselves are never stored.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries (default from settings)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all history")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errHistoryUnavailable
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if historyClear {
		if err := historyService.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("History cleared.")
		return nil
	}

	entries, err := historyService.List(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if historyJSON {
		return writeStructured(out(cmd), formatJSON, entries)
	}

	if len(entries) == 0 {
		cmd.Println("No history.")
		return nil
	}
	for _, e := range entries {
		kind := "terms"
		if e.Options.Regex {
			kind = "regex"
		}
		cmd.Printf("  %s  %-5s %-3s r=%-4d %3d results  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			kind, e.Options.Mode, e.Options.Range, e.ResultCount,
			strings.ReplaceAll(e.Query, "\n", ", "))
		if e.DocumentURI != "" {
			cmd.Printf("                    %s\n", e.DocumentURI)
		}
	}
	return nil
}
