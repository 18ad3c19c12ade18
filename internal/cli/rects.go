package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/rect"
)

type rectsFlags struct {
	line   string
	format string
}

func newRectsCommand() *cobra.Command {
	flags := &rectsFlags{}

	cmd := &cobra.Command{
		Use:   "rects FILE.yaml",
		Short: "Merge the client rects of one selection line",
		Long: `Read a list of rects, as reported by a rendering surface for a selection,
and merge the ones belonging to the first or last visual line into a single
box. The input is YAML (JSON also parses):

  - {left: 0, top: 0, right: 10, bottom: 10}
  - {left: 10, top: 0, right: 20, bottom: 10}

Use "-" to read from standard input.

Examples:
  blocksel rects --line first rects.yaml
  blocksel rects --line last --format json -`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRects(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.line, "line", "first", "line to merge: first, last")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")

	return cmd
}

func runRects(cmd *cobra.Command, path string, flags *rectsFlags) error {
	logger := logging.FromContext(cmd.Context())
	cfg := configFrom(cmd)

	line, err := rect.ParseLine(flags.line)
	if err != nil {
		return usageError(err)
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	var rects []rect.Rect
	if err := yaml.Unmarshal(content, &rects); err != nil {
		return fmt.Errorf("parse rects: %w", err)
	}
	logger.Debug("merging rects", logging.FieldRanges, len(rects), logging.FieldInput, path)

	merged, err := rect.MergeLine(rects, line)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output.Format != config.FormatText {
		return writeStructured(out, cfg.Output.Format, merged)
	}
	_, err = fmt.Fprintf(out, "%s %s\n", line, merged)
	return err
}
