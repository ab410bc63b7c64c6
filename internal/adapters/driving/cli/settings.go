package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the saved search defaults, link checking and history
options. Settings live in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key, for example:

  proxsearch settings set search.range 40
  proxsearch settings set search.mode any
  proxsearch settings set links.enabled false

Run "proxsearch settings keys" for the full list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	printSettings(cmd, settings)
	return nil
}

func printSettings(cmd *cobra.Command, s *domain.AppSettings) {
	d := s.Search.Defaults

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Regex: %s\n", onOff(d.Regex))
	cmd.Printf("  Case sensitive: %s\n", onOff(d.CaseSensitive))
	cmd.Printf("  Whole word: %s\n", onOff(d.WholeWord))
	cmd.Printf("  Range: %d words\n", d.Range)
	cmd.Printf("  Mode: %s\n", d.Mode.Description())
	cmd.Printf("  Selection only: %s\n", onOff(d.SelectionOnly))
	cmd.Println()

	cmd.Println("[Links]")
	cmd.Printf("  Validation: %s\n", onOff(s.Links.Enabled))
	cmd.Printf("  Timeout: %s\n", s.Links.Timeout)
	cmd.Printf("  Requests per second: %g\n", s.Links.RequestsPerSecond)
	cmd.Printf("  Concurrency: %d\n", s.Links.Concurrency)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Recording: %s\n", onOff(s.History.Enabled))
	cmd.Printf("  Limit: %d\n", s.History.Limit)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", s.Server.Addr)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}
	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
