package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/internal/ui/pretty"
	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/traverse"
)

const opWalk = "walk"

type walkFlags struct {
	documentFlags
	from    string
	reverse bool
	format  string
}

// walkEntry is one block in structured walk output.
type walkEntry struct {
	ID      blocktree.ID      `json:"id" yaml:"id"`
	Flavour blocktree.Flavour `json:"flavour" yaml:"flavour"`
	Depth   int               `json:"depth" yaml:"depth"`
	Text    string            `json:"text,omitempty" yaml:"text,omitempty"`
}

func newWalkCommand() *cobra.Command {
	flags := &walkFlags{}

	cmd := &cobra.Command{
		Use:   "walk FILE.md",
		Short: "List blocks in reading order",
		Long: `Import a Markdown file and list its blocks in reading order. Pages and
frames are containers and are never listed.

With --from the listing starts at the given block (inclusive). With --reverse
the listing runs backwards.

Examples:
  blocksel walk README.md
  blocksel walk --from 4 --reverse README.md
  blocksel walk --format json README.md`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVar(&flags.from, "from", "", "block id to start from")
	cmd.Flags().BoolVar(&flags.reverse, "reverse", false, "walk backwards")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")

	return cmd
}

func runWalk(cmd *cobra.Command, path string, flags *walkFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	cfg := configFrom(cmd)

	doc, err := flags.load(ctx, cmd, path)
	if err != nil {
		return err
	}

	ids, err := walkOrder(doc, blocktree.ID(flags.from), flags.reverse)
	if err != nil {
		return err
	}
	logger.Debug("walked document", logging.FieldBlocks, len(ids), logging.FieldOp, opWalk)

	entries := make([]walkEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, walkEntry{
			ID:      id,
			Flavour: doc.Flavour(id),
			Depth:   depth(doc, id),
			Text:    doc.Text(id),
		})
	}

	out := cmd.OutOrStdout()
	if cfg.Output.Format != config.FormatText {
		return writeStructured(out, cfg.Output.Format, entries)
	}

	rows := make([]pretty.BlockRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, pretty.BlockRow{
			ID:      string(e.ID),
			Flavour: string(e.Flavour),
			Depth:   e.Depth,
			Text:    e.Text,
		})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Output.Color, out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out)).FormatOrder(rows)
	_, err = fmt.Fprint(out, table)
	return err
}

// walkOrder lists blocks in reading order. A non-empty from starts the
// listing at that block; reverse walks backwards.
func walkOrder(doc *blocktree.Document, from blocktree.ID, reverse bool) ([]blocktree.ID, error) {
	if from == blocktree.NoID {
		ids, err := traverse.Order(doc)
		if err != nil {
			return nil, err
		}
		if reverse {
			slices.Reverse(ids)
		}
		return ids, nil
	}

	if !doc.Exists(from) {
		return nil, blockerr.Precondition(opWalk, blockerr.ReasonUnknownBlock, string(from))
	}

	var ids []blocktree.ID
	if flavour := doc.Flavour(from); flavour != blocktree.FlavourPage && !flavour.Transparent() {
		ids = append(ids, from)
	}

	seq := traverse.Forward(doc, from)
	if reverse {
		seq = traverse.Backward(doc, from)
	}
	for id, err := range seq {
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
