package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mount/internal/config"
	"github.com/vango-dev/mount/internal/errors"
)

func initCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default mount.json",
		Long: `Write a mount.json with default settings to the config directory.

Examples:
  mount init
  mount init --config ./site --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(flags.configDir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.CategoryCLI, "%s already exists", path).
					WithSuggestion("Use --force to overwrite it")
			}

			if err := os.MkdirAll(flags.configDir, 0755); err != nil {
				return err
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Created %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing mount.json")

	return cmd
}
