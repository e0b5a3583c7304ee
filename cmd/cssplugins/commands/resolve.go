package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/cssplugins/internal/config"
	"github.com/kingrea/cssplugins/internal/logging"
	"github.com/kingrea/cssplugins/internal/postcss"
	"github.com/kingrea/cssplugins/plugins"
)

type resolveOptions struct {
	configFile  string
	designWidth float64
	deviceRatio float64
	logLevel    string
	logToFile   bool
	output      string
}

func newResolveCommand(appPath *string) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the ordered PostCSS plugin list",
		Long: `Resolve loads postcss.config.yaml (or --config), applies any geometry flags,
and prints every plugin instance in the order the CSS pipeline applies them.
Plugins that cannot be found or loaded are reported as warnings and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, *appPath, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (relative to the app root)")
	cmd.Flags().Float64Var(&opts.designWidth, "design-width", 0, "design width override")
	cmd.Flags().Float64Var(&opts.deviceRatio, "device-ratio", 0, "device ratio override")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.logToFile, "log-file", false, "write logs to .cssplugins/logs/cssplugins.log instead of stderr")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text or yaml")

	return cmd
}

func runResolve(cmd *cobra.Command, appPath string, opts *resolveOptions) error {
	if opts.output != "text" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}
	cfg, err := config.NewConfig(appPath)
	if err != nil {
		return err
	}
	if opts.configFile != "" {
		if err := cfg.LoadFile(opts.configFile); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("design-width") {
		cfg.Build.DesignWidth = opts.designWidth
	}
	if cmd.Flags().Changed("device-ratio") {
		cfg.Build.DeviceRatio = opts.deviceRatio
	}

	var logger *logging.Logger
	if opts.logToFile {
		logger, err = logging.Open(cfg.AppPath, opts.logLevel)
	} else {
		logger, err = logging.NewConsole(cmd.ErrOrStderr(), opts.logLevel)
	}
	if err != nil {
		return err
	}
	defer logger.Close()

	resolver := postcss.New(cfg.AppPath, logger)
	if _, err := plugins.RegisterDir(resolver.Packages, cfg.PluginsDir()); err != nil {
		return err
	}
	list := resolver.Resolve(cfg.Request())
	if opts.output == "yaml" {
		return writeYAML(cmd.OutOrStdout(), list)
	}
	return writeText(cmd.OutOrStdout(), cfg.AppPath, list)
}
