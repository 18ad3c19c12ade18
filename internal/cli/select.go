package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/internal/ui/pretty"
	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blockmap"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/selection"
	"github.com/yaklabco/blocksel/pkg/surface"
)

const opSelect = "select"

type selectFlags struct {
	documentFlags
	start  string
	end    string
	title  string
	format string
}

// selectResult is the structured output of the select command.
type selectResult struct {
	Blocks   []selection.BlockRange `json:"blocks" yaml:"blocks"`
	Warnings []string               `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newSelectCommand() *cobra.Command {
	flags := &selectFlags{}

	cmd := &cobra.Command{
		Use:   "select FILE.md",
		Short: "Resolve a selection between block positions",
		Long: `Import and render a Markdown file, place a selection on the rendered
surface between two block positions, and resolve it back to the list of
selected blocks with their start and end offsets.

Positions are written ID:OFFSET, where OFFSET counts characters in the
block's text. A bare ID means the start of the block for --start and the end
of the block for --end. Without --end the selection is a caret at --start.

--title START:END selects a range of the page title instead.

Examples:
  blocksel select --start 2:3 --end 5:1 README.md
  blocksel select --start 4 --format json README.md
  blocksel select --title 0:5 README.md`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVar(&flags.start, "start", "", "start position as ID[:OFFSET]")
	cmd.Flags().StringVar(&flags.end, "end", "", "end position as ID[:OFFSET] (default: --start)")
	cmd.Flags().StringVar(&flags.title, "title", "", "select the title range START:END")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")

	return cmd
}

func runSelect(cmd *cobra.Command, path string, flags *selectFlags) error {
	if (flags.start == "") == (flags.title == "") {
		return usageErrorf("exactly one of --start or --title is required")
	}
	if flags.title != "" && flags.end != "" {
		return usageErrorf("--end cannot be combined with --title")
	}

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

	bm := blockmap.New(doc, surf, blockmap.WithLogger(logger))

	var rng *selection.Range
	if flags.title != "" {
		rng, err = titleRange(surf, doc, flags.title)
	} else {
		rng, err = blockRange(bm, surf, doc, flags.start, flags.end)
	}
	if err != nil {
		return err
	}

	blocks, err := bm.SelectedBlocks(selection.NewSelection(rng))
	if err != nil {
		return err
	}
	logger.Debug("selected blocks", logging.FieldBlocks, len(blocks), logging.FieldOp, opSelect)

	warnings := bm.Resolver().Warnings()
	out := cmd.OutOrStdout()

	if cfg.Output.Format != config.FormatText {
		result := selectResult{Blocks: blocks}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, w.String())
		}
		return writeStructured(out, cfg.Output.Format, result)
	}

	rows := make([]pretty.BlockRow, 0, len(blocks))
	for _, b := range blocks {
		text := doc.Text(b.ID)
		if b.ID == doc.Root() {
			text = doc.Title()
		}
		rows = append(rows, pretty.BlockRow{
			ID:      string(b.ID),
			Flavour: string(doc.Flavour(b.ID)),
			Start:   formatPos(b.StartPos),
			End:     formatPos(b.EndPos),
			Text:    text,
		})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Output.Color, out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out)).FormatRanges(rows)

	_, err = fmt.Fprint(out,
		table,
		styles.FormatWarnings(warnings),
		styles.FormatSummaryOneLine(len(blocks), len(warnings)),
	)
	return err
}

// blockRange restores the surface range between two block positions.
func blockRange(bm *blockmap.Map, surf *surface.Surface, doc *blocktree.Document, start, end string) (*selection.Range, error) {
	startID, startOff, err := parseBlockPosition(doc, start)
	if err != nil {
		return nil, err
	}
	from := selection.At(startID, 0)
	if startOff != nil {
		from = selection.At(startID, *startOff)
	}

	to := from
	if end != "" {
		endID, endOff, err := parseBlockPosition(doc, end)
		if err != nil {
			return nil, err
		}
		if endOff == nil {
			engine, err := surf.TextEngine(endID)
			if err != nil {
				return nil, err
			}
			length := engine.Len()
			endOff = &length
		}
		to = selection.Whole(endID).WithEnd(*endOff)
	}

	return bm.Restore(from, to)
}

// titleRange records a title selection and returns a range over the title region.
func titleRange(surf *surface.Surface, doc *blocktree.Document, span string) (*selection.Range, error) {
	startText, endText, ok := strings.Cut(span, ":")
	if !ok {
		return nil, usageErrorf("invalid title range %q: want START:END", span)
	}
	start, err := strconv.Atoi(startText)
	if err != nil {
		return nil, usageErrorf("invalid title start %q", startText)
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return nil, usageErrorf("invalid title end %q", endText)
	}

	if err := surf.SetTitleSelection(start, end); err != nil {
		return nil, err
	}

	page, ok := surf.Node(doc.Root())
	if !ok {
		return nil, blockerr.Precondition(opSelect, blockerr.ReasonUnmounted, string(doc.Root()))
	}
	title := surf.TitleRegion(page)
	if title == nil {
		return nil, blockerr.Preconditionf(opSelect, blockerr.ReasonNoMarkedAncestor, string(doc.Root()), "page has no title region")
	}

	return selection.NewRange(title, 0, title, selection.NodeLength(title))
}

// parseBlockPosition parses ID[:OFFSET]. A string naming an existing block
// is always a bare id, so ids containing ':' stay addressable.
func parseBlockPosition(doc *blocktree.Document, pos string) (blocktree.ID, *int, error) {
	if pos == "" {
		return blocktree.NoID, nil, usageErrorf("empty block position")
	}
	if doc.Exists(blocktree.ID(pos)) {
		return blocktree.ID(pos), nil, nil
	}

	idx := strings.LastIndex(pos, ":")
	if idx < 0 {
		return blocktree.NoID, nil, blockerr.Precondition(opSelect, blockerr.ReasonUnknownBlock, pos)
	}

	id := blocktree.ID(pos[:idx])
	offset, err := strconv.Atoi(pos[idx+1:])
	if err != nil {
		return blocktree.NoID, nil, usageErrorf("invalid offset in %q", pos)
	}
	if !doc.Exists(id) {
		return blocktree.NoID, nil, blockerr.Precondition(opSelect, blockerr.ReasonUnknownBlock, string(id))
	}
	return id, &offset, nil
}

func formatPos(pos *int) string {
	if pos == nil {
		return ""
	}
	return strconv.Itoa(*pos)
}
