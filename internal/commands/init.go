package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/settings"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a snidget.yaml with default settings and an empty ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dataDir(cmd)
			if len(args) > 0 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}

			cfgPath := filepath.Join(dir, ConfigFile)
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("%s already exists", cfgPath)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", cfgPath, err)
			}

			cfg := settings.Default()
			if err := settings.Save(cfgPath, cfg); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dir, cfg.Ledger), nil, 0o644); err != nil {
				return fmt.Errorf("creating ledger file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", dir)
			return nil
		},
	}
}
