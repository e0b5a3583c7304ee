package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingrea/cssplugins/internal/config"
)

func newInitCommand(appPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default postcss.config.yaml into the application root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(*appPath)
			if err != nil {
				return err
			}
			if err := config.InitConfig(cfg.AppPath); err != nil {
				return fmt.Errorf("init config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config ready at %s\n", filepath.Join(cfg.AppPath, config.FileName))
			return nil
		},
	}
}
