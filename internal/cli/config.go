package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/blocksel/internal/configloader"
	"github.com/yaklabco/blocksel/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after merging every source",
		Long: `Print the effective configuration: defaults, then user, project and
explicit config files, then BLOCKSEL_* environment variables, then flags.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			structured := config.FormatYAML
			if format == string(config.FormatJSON) {
				structured = config.FormatJSON
			}
			return writeStructured(cmd.OutOrStdout(), structured, cfg)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatYAML), "output format: json, yaml")

	return cmd
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := configloader.EnvVarNames()
			descriptions := configloader.ListEnvVars()

			width := 0
			for _, name := range names {
				width = max(width, len(name))
			}

			var builder strings.Builder
			for _, name := range names {
				fmt.Fprintf(&builder, "%-*s  %s\n", width, name, descriptions[name])
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), builder.String())
			return err
		},
	}
}
