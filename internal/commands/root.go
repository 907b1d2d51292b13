// Package commands wires the CLI surface. Each subcommand loads the settings
// snapshot and the ledger, runs one engine operation, and saves only when it
// mutated something.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/buildinfo"
	"github.com/snidget-dev/snidget/internal/ledger"
	"github.com/snidget-dev/snidget/internal/settings"
)

// ConfigFile is the settings file name inside the data directory.
const ConfigFile = "snidget.yaml"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "snidget",
		Short:   "Track expenses, income, and account balances",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("dir", "", "data directory (default $SNIDGET_DIR or .)")

	rootCmd.AddCommand(
		newInitCommand(),
		newShowCommand(),
		newBalancesCommand(),
		newTypesCommand(),
		newRecipientsCommand(),
		newHistoryCommand(),
		newWindowCommand(),
		newAddCommand(),
		newDeleteCommand(),
		newSortCommand(),
		newUIDCommand(),
		newPredictCommand(),
		newExportCommand(),
		newConfigCommand(),
	)

	return rootCmd
}

// app bundles the loaded settings and ledger for one invocation.
type app struct {
	dir      string
	settings *settings.Settings
	ledger   *ledger.Ledger
}

func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir
	}
	if dir := os.Getenv("SNIDGET_DIR"); dir != "" {
		return dir
	}
	return "."
}

// loadApp reads snidget.yaml and opens the ledger it names. Decode warnings
// (unknown account keys) are advisory and go to stderr.
func loadApp(cmd *cobra.Command) (*app, error) {
	dir := dataDir(cmd)

	st, err := settings.Load(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	led, warnings, err := ledger.Open(filepath.Join(dir, st.Ledger), st)
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	return &app{dir: dir, settings: st, ledger: led}, nil
}

func (a *app) saveSettings() error {
	return settings.Save(filepath.Join(a.dir, ConfigFile), a.settings)
}

// reportAdvisory prints non-fatal filter problems without failing the command.
func reportAdvisory(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}
}
