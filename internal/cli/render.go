package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/fsutil"
)

type renderFlags struct {
	documentFlags
	output string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE.md",
		Short: "Render Markdown to block-marked HTML",
		Long: `Import a Markdown file into a block document and write the rendered
HTML surface. Every block's root element carries its id in the marker
attribute, so the output can be fed back to select-aware tooling.

Use "-" to read from standard input.

Examples:
  blocksel render README.md
  blocksel render --ids uuid -o page.html notes.md
  cat notes.md | blocksel render -`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *renderFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	cfg := configFrom(cmd)

	doc, err := flags.load(ctx, cmd, path)
	if err != nil {
		return err
	}

	surf, err := renderSurface(doc, cfg, logger)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := surf.WriteHTML(&buf); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	buf.WriteByte('\n')

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, buf.Bytes(), outputFilePermissions)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !written {
		logger.Info("surface unchanged", logging.FieldOutput, flags.output)
		return nil
	}
	logger.Info("wrote surface", logging.FieldOutput, flags.output, logging.FieldBlocks, surf.Len())
	return nil
}
