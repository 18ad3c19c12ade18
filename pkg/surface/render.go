package surface

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/config"
)

// Render mounts doc as marked HTML and indexes the result.
//
//	page   -> div.page[marker] > div.page-title > input[data-block-is-title]
//	                           > div.block-children > ...
//	frame  -> div.frame[marker] > ...
//	text   -> div.block[marker] > div.rich-text > div[contenteditable] > runs
//	                            > div.block-children > ...
//	divider-> div.block[marker] > hr
func Render(doc *blocktree.Document, opts ...Option) (*Surface, error) {
	o := newOptions(opts)
	r := &renderer{doc: doc, markup: o.markup}

	page, err := r.block(doc.Root())
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(page)

	return New(root, opts...)
}

type renderer struct {
	doc    *blocktree.Document
	markup config.SurfaceConfig
}

func (r *renderer) marker(id blocktree.ID) html.Attribute {
	return html.Attribute{Key: r.markup.MarkerAttribute, Val: string(id)}
}

func (r *renderer) block(id blocktree.ID) (*html.Node, error) {
	b, ok := r.doc.Block(id)
	if !ok {
		return nil, fmt.Errorf("render: unknown block %q", id)
	}

	switch b.Flavour {
	case blocktree.FlavourPage:
		n := div(r.markup.PageClass, r.marker(id))
		title := div(r.markup.TitleClass)
		title.AppendChild(element(atom.Input,
			html.Attribute{Key: "type", Val: "text"},
			html.Attribute{Key: AttrIsTitle, Val: "true"},
			html.Attribute{Key: "value", Val: r.doc.Title()},
		))
		n.AppendChild(title)
		children := div(r.markup.ChildrenClass)
		if err := r.children(children, b); err != nil {
			return nil, err
		}
		n.AppendChild(children)
		return n, nil

	case blocktree.FlavourFrame:
		n := div(r.markup.FrameClass, r.marker(id))
		if err := r.children(n, b); err != nil {
			return nil, err
		}
		return n, nil

	case blocktree.FlavourDivider:
		n := div(r.markup.BlockClass, r.marker(id), html.Attribute{Key: AttrFlavour, Val: string(b.Flavour)})
		n.AppendChild(element(atom.Hr))
		return n, nil

	default:
		n := div(r.markup.BlockClass, r.marker(id), html.Attribute{Key: AttrFlavour, Val: string(b.Flavour)})
		r.props(n, b)

		richText := div(r.markup.RichTextClass)
		editable := element(atom.Div, html.Attribute{Key: AttrContentEditable, Val: "true"})
		for _, run := range b.Runs {
			if run.Text == "" {
				continue
			}
			editable.AppendChild(runNode(run))
		}
		richText.AppendChild(editable)
		n.AppendChild(richText)

		if len(b.Children) > 0 {
			children := div(r.markup.ChildrenClass)
			if err := r.children(children, b); err != nil {
				return nil, err
			}
			n.AppendChild(children)
		}
		return n, nil
	}
}

func (r *renderer) children(parent *html.Node, b *blocktree.Block) error {
	for _, child := range b.Children {
		n, err := r.block(child)
		if err != nil {
			return err
		}
		parent.AppendChild(n)
	}
	return nil
}

func (r *renderer) props(n *html.Node, b *blocktree.Block) {
	for _, p := range [...]struct{ key, attr string }{
		{blocktree.PropLevel, AttrLevel},
		{blocktree.PropLanguage, AttrLanguage},
		{blocktree.PropListType, AttrListType},
	} {
		if v := b.Prop(p.key); v != "" {
			setAttr(n, p.attr, v)
		}
	}
}

// runNode wraps run text in one element per mark, outermost first. A run
// without marks becomes a span.
func runNode(run blocktree.Run) *html.Node {
	var wrappers []atom.Atom
	for _, m := range []struct {
		mark blocktree.Mark
		a    atom.Atom
	}{
		{blocktree.MarkCode, atom.Code},
		{blocktree.MarkBold, atom.Strong},
		{blocktree.MarkItalic, atom.Em},
		{blocktree.MarkStrike, atom.S},
	} {
		if run.Marks.Has(m.mark) {
			wrappers = append(wrappers, m.a)
		}
	}
	if len(wrappers) == 0 {
		wrappers = append(wrappers, atom.Span)
	}

	outer := element(wrappers[0])
	inner := outer
	for _, a := range wrappers[1:] {
		next := element(a)
		inner.AppendChild(next)
		inner = next
	}
	inner.AppendChild(text(run.Text))
	return outer
}
