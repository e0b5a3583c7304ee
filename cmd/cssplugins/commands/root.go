package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit string) error {
	return newRootCommand(version, commit).ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	var appPath string

	rootCmd := &cobra.Command{
		Use:   "cssplugins",
		Short: "Resolve the PostCSS plugin list for a build",
		Long: `cssplugins merges the built-in PostCSS plugin defaults (autoprefixer,
pxtransform, cssModules, constparse) with the options in postcss.config.yaml
and loads any extra plugins named there, from node_modules or local .go and
.yaml files.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&appPath, "app", "a", "", "application root (defaults to $CSSPLUGINS_APP_PATH or the working directory)")

	rootCmd.AddCommand(newResolveCommand(&appPath))
	rootCmd.AddCommand(newInitCommand(&appPath))

	return rootCmd
}
