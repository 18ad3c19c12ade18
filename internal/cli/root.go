// Package cli provides the Cobra command structure for blocksel.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/blocksel/internal/configloader"
	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/internal/ui/pretty"
	"github.com/yaklabco/blocksel/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// annotationNoConfig marks commands that run without loading configuration.
const annotationNoConfig = "blocksel/no-config"

type rootFlags struct {
	debug      bool
	configPath string
	color      string
}

type configKey struct{}

// NewRootCommand creates the root blocksel command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "blocksel",
		Short: "Map text selections onto block documents",
		Long: `blocksel reconciles a block-structured document with the HTML surface
it is rendered to.

It imports Markdown into a tree of blocks, renders the tree with every block
marked by its id, walks blocks in reading order, and converts selections
between surface positions and block offsets in both directions.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return flags.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newWalkCommand())
	rootCmd.AddCommand(newSelectCommand())
	rootCmd.AddCommand(newRectsCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(config.ColorMode(flags.color), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// Run executes the root command with args and returns the process exit code.
// Failures are printed to stderr.
func Run(info BuildInfo, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(info)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	color, flagErr := rootCmd.PersistentFlags().GetString("color")
	if flagErr != nil {
		color = string(config.ColorAuto)
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(config.ColorMode(color), stderr))
	fmt.Fprint(stderr, styles.FormatError(err))

	return ExitCode(err)
}

// setup resolves configuration and the logger for the command about to run.
func (f *rootFlags) setup(cmd *cobra.Command) error {
	if cmd.Annotations[annotationNoConfig] != "" {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg, err := f.cliConfig(cmd)
	if err != nil {
		return err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: f.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return configError(err)
	}

	cfg := loadResult.Config
	level := cfg.Log.Level
	if cfg.Debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	ctx = logging.WithLogger(ctx, logger)
	ctx = context.WithValue(ctx, configKey{}, cfg)
	cmd.SetContext(ctx)

	return nil
}

// cliConfig collects the configuration set by flags on the command line.
func (f *rootFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cliCfg := &config.Config{Debug: f.debug}

	if cmd.Flags().Changed("color") {
		mode := config.ColorMode(f.color)
		if !mode.IsValid() {
			return nil, usageErrorf("invalid color mode %q: must be auto, always or never", f.color)
		}
		cliCfg.Output.Color = mode
	}

	if flag := cmd.Flags().Lookup("format"); flag != nil && flag.Changed {
		format := config.OutputFormat(flag.Value.String())
		if !format.IsValid() {
			return nil, usageErrorf("invalid format %q: must be text, json or yaml", format)
		}
		cliCfg.Output.Format = format
	}

	return cliCfg, nil
}

// configFrom returns the configuration resolved for cmd, or the defaults
// when the command ran without setup.
func configFrom(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.NewConfig()
}
