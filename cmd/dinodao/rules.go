package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinodao/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration dinodao would run with, after applying the
config search order and global flags. The output is a valid config file.

Examples:
  dinodao rules > ~/.dinodao/config.yaml
  dinodao rules --config ./hard.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
