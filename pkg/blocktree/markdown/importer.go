// Package markdown builds a blocktree.Document from Markdown using goldmark.
//
// The first level-1 heading, when it opens the document, becomes the page
// title. Top-level blocks are grouped into frames; every further level-1
// heading opens a new frame.
package markdown

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/langdetect"
)

// Flavor identifies the Markdown flavor supported by the importer.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// List types stored under blocktree.PropListType.
const (
	ListBulleted = "bulleted"
	ListNumbered = "numbered"
	ListTodo     = "todo"
)

// Importer converts Markdown to documents.
type Importer struct {
	flavor string
	md     goldmark.Markdown
	gen    func() blocktree.IDGenerator
	detect func([]byte) string
	logger *log.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithFlavor selects "commonmark" or "gfm". Unknown flavors mean GFM.
func WithFlavor(flavor string) Option {
	return func(i *Importer) {
		i.flavor = flavor
	}
}

// WithIDGenerator sets the generator factory; each import gets a fresh
// generator.
func WithIDGenerator(newGen func() blocktree.IDGenerator) Option {
	return func(i *Importer) {
		i.gen = newGen
	}
}

// WithLanguageDetector replaces langdetect.Detect for code blocks without
// an info string.
func WithLanguageDetector(detect func([]byte) string) Option {
	return func(i *Importer) {
		i.detect = detect
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// New returns an importer.
func New(opts ...Option) *Importer {
	i := &Importer{
		flavor: FlavorGFM,
		gen:    blocktree.NewAutoIncrement,
		detect: langdetect.Detect,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.flavor != FlavorCommonMark {
		i.flavor = FlavorGFM
	}
	i.md = newGoldmarkInstance(i.flavor)
	return i
}

// Flavor returns the configured Markdown flavor.
func (i *Importer) Flavor() string {
	return i.flavor
}

// Import parses content into a new document.
func (i *Importer) Import(ctx context.Context, content []byte) (*blocktree.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import cancelled: %w", err)
	}

	src := make([]byte, len(content))
	copy(src, content)

	root := i.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import cancelled: %w", err)
	}

	b := &builder{
		src:    src,
		detect: i.detect,
		logger: i.logger,
	}
	doc, err := b.build(root, i.gen())
	if err != nil {
		return nil, err
	}

	i.logger.Debug("imported markdown", logging.FieldBlocks, doc.Len())
	return doc, nil
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}

// title returns the text of a leading level-1 heading.
func title(root ast.Node, src []byte) (string, ast.Node, bool) {
	first := root.FirstChild()
	h, ok := first.(*ast.Heading)
	if !ok || h.Level != 1 {
		return "", nil, false
	}
	var r runs
	r.inline(h, src, 0)
	return r.text(), h, true
}
