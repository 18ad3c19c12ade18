package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/blocktree/markdown"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/fsutil"
	"github.com/yaklabco/blocksel/pkg/surface"
)

// stdinPath reads the input from standard input.
const stdinPath = "-"

// documentFlags are shared by every command that imports a Markdown file.
type documentFlags struct {
	flavor string
	ids    string
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", markdown.FlavorGFM, "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.ids, "ids", "auto", "block id scheme: auto, uuid, or client:N")
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// idScheme parses the --ids flag into a generator factory.
func idScheme(scheme string) (func() blocktree.IDGenerator, error) {
	switch {
	case scheme == "auto":
		return blocktree.NewAutoIncrement, nil
	case scheme == "uuid":
		return blocktree.NewUUID, nil
	case strings.HasPrefix(scheme, "client:"):
		client, err := strconv.Atoi(strings.TrimPrefix(scheme, "client:"))
		if err != nil || client < 0 {
			return nil, usageErrorf("invalid client id in %q", scheme)
		}
		return func() blocktree.IDGenerator {
			return blocktree.NewAutoIncrementByClient(client)
		}, nil
	default:
		return nil, usageErrorf("invalid id scheme %q: must be auto, uuid, or client:N", scheme)
	}
}

// importer validates the flags and returns a Markdown importer for them.
func (f *documentFlags) importer(logger *log.Logger) (*markdown.Importer, error) {
	if f.flavor != markdown.FlavorGFM && f.flavor != markdown.FlavorCommonMark {
		return nil, usageErrorf("invalid flavor %q: must be commonmark or gfm", f.flavor)
	}
	newGen, err := idScheme(f.ids)
	if err != nil {
		return nil, err
	}

	return markdown.New(
		markdown.WithFlavor(f.flavor),
		markdown.WithIDGenerator(newGen),
		markdown.WithLogger(logger),
	), nil
}

// load reads and imports the Markdown document at path.
func (f *documentFlags) load(ctx context.Context, cmd *cobra.Command, path string) (*blocktree.Document, error) {
	logger := logging.FromContext(ctx)

	importer, err := f.importer(logger)
	if err != nil {
		return nil, err
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	doc, err := importer.Import(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	logger.Debug("imported document",
		logging.FieldInput, path,
		logging.FieldBlocks, doc.Len(),
	)
	return doc, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}

	content, err := fsutil.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return content, nil
}

// renderSurface renders doc with the configured markup.
func renderSurface(doc *blocktree.Document, cfg *config.Config, logger *log.Logger) (*surface.Surface, error) {
	surf, err := surface.Render(doc, surface.WithConfig(cfg.Surface))
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	logger.Debug("rendered surface",
		logging.FieldMarker, surf.Markup().MarkerAttribute,
		logging.FieldBlocks, surf.Len(),
	)
	return surf, nil
}

// depth counts the content blocks above id. Pages and frames do not count.
func depth(doc *blocktree.Document, id blocktree.ID) int {
	d := 0
	for p := doc.Parent(id); p != blocktree.NoID; p = doc.Parent(p) {
		if flavour := doc.Flavour(p); flavour != blocktree.FlavourPage && !flavour.Transparent() {
			d++
		}
	}
	return d
}

// writeStructured writes v as JSON or YAML.
func writeStructured(w io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(config.YAMLIndent())
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("close yaml encoder: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
