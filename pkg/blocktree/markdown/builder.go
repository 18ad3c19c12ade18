package markdown

import (
	"bytes"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/blocktree"
)

// builder maps a goldmark AST into a document.
type builder struct {
	src    []byte
	doc    *blocktree.Document
	frame  blocktree.ID
	detect func([]byte) string
	logger *log.Logger
}

func (b *builder) build(root ast.Node, gen blocktree.IDGenerator) (*blocktree.Document, error) {
	pageTitle, skip, _ := title(root, b.src)
	b.doc = blocktree.NewPage(pageTitle, gen)

	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if child == skip {
			continue
		}
		if h, ok := child.(*ast.Heading); ok && h.Level == 1 {
			b.frame = blocktree.NoID
		}
		if b.frame == blocktree.NoID {
			frame, err := b.doc.Add(b.doc.Root(), blocktree.FlavourFrame)
			if err != nil {
				return nil, err
			}
			b.frame = frame
		}
		if err := b.block(b.frame, child); err != nil {
			return nil, err
		}
	}
	return b.doc, nil
}

func (b *builder) children(parent blocktree.ID, n ast.Node) error {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if err := b.block(parent, child); err != nil {
			return err
		}
	}
	return nil
}

// block maps one block-level node under parent.
func (b *builder) block(parent blocktree.ID, n ast.Node) error {
	switch gmn := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		_, err := b.textBlock(parent, blocktree.FlavourParagraph, gmn)
		return err

	case *ast.Heading:
		id, err := b.textBlock(parent, blocktree.FlavourHeading, gmn)
		if err != nil {
			return err
		}
		b.doc.SetProp(id, blocktree.PropLevel, strconv.Itoa(gmn.Level))
		return nil

	case *ast.List:
		listType := ListBulleted
		if gmn.IsOrdered() {
			listType = ListNumbered
		}
		for item := gmn.FirstChild(); item != nil; item = item.NextSibling() {
			if err := b.container(parent, blocktree.FlavourList, item, listType); err != nil {
				return err
			}
		}
		return nil

	case *ast.Blockquote:
		return b.container(parent, blocktree.FlavourQuote, gmn, "")

	case *ast.FencedCodeBlock:
		lang := string(gmn.Language(b.src))
		return b.code(parent, gmn, lang)

	case *ast.CodeBlock:
		return b.code(parent, gmn, "")

	case *ast.HTMLBlock:
		return b.code(parent, gmn, "html")

	case *ast.ThematicBreak:
		_, err := b.doc.Add(parent, blocktree.FlavourDivider)
		return err

	case *east.Table:
		return b.table(parent, gmn)

	default:
		b.logger.Debug("skipping unsupported markdown node", logging.FieldFlavour, n.Kind().String())
		return nil
	}
}

// textBlock adds a block whose runs are n's inline content.
func (b *builder) textBlock(parent blocktree.ID, flavour blocktree.Flavour, n ast.Node) (blocktree.ID, error) {
	var r runs
	r.inline(n, b.src, 0)
	return b.doc.Add(parent, flavour, r...)
}

// container maps a list item or blockquote: its first paragraph gives the
// block's text and every later child becomes a child block.
func (b *builder) container(parent blocktree.ID, flavour blocktree.Flavour, n ast.Node, listType string) error {
	var r runs
	rest := n.FirstChild()
	switch rest.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.inline(rest, b.src, 0)
		rest = rest.NextSibling()
	}

	if listType != "" {
		if box := taskBox(n); box != nil {
			listType = ListTodo
		}
	}

	id, err := b.doc.Add(parent, flavour, r...)
	if err != nil {
		return err
	}
	if listType != "" {
		b.doc.SetProp(id, blocktree.PropListType, listType)
	}

	for ; rest != nil; rest = rest.NextSibling() {
		if err := b.block(id, rest); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) code(parent blocktree.ID, n ast.Node, lang string) error {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(b.src))
	}
	body := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if lang == "" && b.detect != nil {
		lang = b.detect(body)
		if lang != "" {
			b.logger.Debug("detected code language", logging.FieldLanguage, lang)
		}
	}

	var content []blocktree.Run
	if len(body) > 0 {
		content = []blocktree.Run{{Text: string(body)}}
	}
	id, err := b.doc.Add(parent, blocktree.FlavourCode, content...)
	if err != nil {
		return err
	}
	if lang != "" {
		b.doc.SetProp(id, blocktree.PropLanguage, lang)
	}
	return nil
}

// table flattens each row into one paragraph with cells separated by " | ".
func (b *builder) table(parent blocktree.ID, t *east.Table) error {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var r runs
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell != row.FirstChild() {
				r.add(" | ", 0)
			}
			r.inline(cell, b.src, 0)
		}
		if _, err := b.doc.Add(parent, blocktree.FlavourParagraph, r...); err != nil {
			return err
		}
	}
	return nil
}

func taskBox(item ast.Node) *east.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	box, _ := first.FirstChild().(*east.TaskCheckBox)
	return box
}
