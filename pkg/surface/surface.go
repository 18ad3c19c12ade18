// Package surface is the rendering surface: an HTML tree in which every
// mounted block has exactly one marked root element, plus an id <-> node
// index over those roots.
//
// A surface either indexes existing markup (New, Parse) or renders a
// blocktree.Document into fresh markup (Render).
package surface

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/richtext"
)

const (
	opTextEngine     = "text-engine"
	opTitleSelection = "title-selection"
)

// Surface indexes the marked roots of an HTML tree.
type Surface struct {
	root   *html.Node
	markup config.SurfaceConfig

	byID   map[blocktree.ID]*html.Node
	byNode map[*html.Node]blocktree.ID

	// Recorded selection of the title input, in runes.
	titleStart int
	titleEnd   int
}

// New indexes every element under root (root included) that carries the
// marker attribute. Two elements with the same marker value are an error.
func New(root *html.Node, opts ...Option) (*Surface, error) {
	if root == nil {
		return nil, fmt.Errorf("surface: nil root")
	}
	o := newOptions(opts)
	s := &Surface{
		root:   root,
		markup: o.markup,
	}
	if err := s.Reindex(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse reads an HTML document and indexes it.
func Parse(r io.Reader, opts ...Option) (*Surface, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return New(root, opts...)
}

// Reindex rebuilds the id <-> node index from the current tree.
func (s *Surface) Reindex() error {
	byID := make(map[blocktree.ID]*html.Node)
	byNode := make(map[*html.Node]blocktree.ID)

	index := func(n *html.Node) error {
		v, ok := attr(n, s.markup.MarkerAttribute)
		if !ok {
			return nil
		}
		id := blocktree.ID(v)
		if id == blocktree.NoID {
			return fmt.Errorf("surface: empty %s attribute on <%s>", s.markup.MarkerAttribute, n.Data)
		}
		if _, dup := byID[id]; dup {
			return fmt.Errorf("surface: block %q is marked more than once", id)
		}
		byID[id] = n
		byNode[n] = id
		return nil
	}

	if err := index(s.root); err != nil {
		return err
	}
	for n := range s.root.Descendants() {
		if err := index(n); err != nil {
			return err
		}
	}

	s.byID = byID
	s.byNode = byNode
	s.clampTitleSelection()
	return nil
}

// Root returns the root of the indexed tree.
func (s *Surface) Root() *html.Node {
	return s.root
}

// Markup returns the attribute and class names in use.
func (s *Surface) Markup() config.SurfaceConfig {
	return s.markup
}

// Len returns the number of marked roots.
func (s *Surface) Len() int {
	return len(s.byID)
}

// Node returns the marked root of id.
func (s *Surface) Node(id blocktree.ID) (*html.Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// BlockID returns the id carried by a marked root.
func (s *Surface) BlockID(n *html.Node) (blocktree.ID, bool) {
	id, ok := s.byNode[n]
	return id, ok
}

// IsMarked reports whether n is the marked root of a block.
func (s *Surface) IsMarked(n *html.Node) bool {
	_, ok := s.byNode[n]
	return ok
}

// ClosestMarked returns the nearest marked root at or above n, or nil.
func (s *Surface) ClosestMarked(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if s.IsMarked(cur) {
			return cur
		}
	}
	return nil
}

// MarkedUnder returns every marked root strictly below n, in document order.
func (s *Surface) MarkedUnder(n *html.Node) []*html.Node {
	var marked []*html.Node
	for d := range n.Descendants() {
		if s.IsMarked(d) {
			marked = append(marked, d)
		}
	}
	return marked
}

// TitleRegion returns the title container of a page's marked root.
func (s *Surface) TitleRegion(block *html.Node) *html.Node {
	return s.findOwn(block, func(n *html.Node) bool {
		return hasClass(n, s.markup.TitleClass)
	})
}

// TextRegion returns the rich-text container of a block's marked root.
// Regions belonging to nested blocks are not considered.
func (s *Surface) TextRegion(block *html.Node) *html.Node {
	return s.findOwn(block, func(n *html.Node) bool {
		return hasClass(n, s.markup.RichTextClass)
	})
}

// EditableRoot returns the contenteditable element of a block's text region.
func (s *Surface) EditableRoot(block *html.Node) *html.Node {
	region := s.TextRegion(block)
	if region == nil {
		return nil
	}
	if s.IsEditableRoot(region) {
		return region
	}
	for d := range region.Descendants() {
		if s.IsEditableRoot(d) {
			return d
		}
	}
	return nil
}

// IsTitleRegion reports whether n is a page title container.
func (s *Surface) IsTitleRegion(n *html.Node) bool {
	return hasClass(n, s.markup.TitleClass)
}

// IsEditableRoot reports whether n is an editable text root.
func (s *Surface) IsEditableRoot(n *html.Node) bool {
	v, ok := attr(n, AttrContentEditable)
	return ok && v != "false"
}

// IsInsideRichText reports whether n is in, or is, a rich-text region.
func (s *Surface) IsInsideRichText(n *html.Node) bool {
	for cur := elementOf(n); cur != nil; cur = cur.Parent {
		if hasClass(cur, s.markup.RichTextClass) {
			return true
		}
	}
	return false
}

// IsTitleElement reports whether n is the page title input.
func (s *Surface) IsTitleElement(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom != atom.Input && n.DataAtom != atom.Textarea {
		return false
	}
	v, _ := attr(n, AttrIsTitle)
	return v == "true"
}

// TextEngine returns the text engine of a mounted block.
func (s *Surface) TextEngine(id blocktree.ID) (*richtext.Engine, error) {
	block, ok := s.byID[id]
	if !ok {
		return nil, blockerr.Precondition(opTextEngine, blockerr.ReasonUnmounted, string(id))
	}
	root := s.EditableRoot(block)
	if root == nil {
		return nil, blockerr.Precondition(opTextEngine, blockerr.ReasonNoTextEngine, string(id))
	}
	return richtext.New(root), nil
}

// TitleInput returns the page title input, or nil.
func (s *Surface) TitleInput() *html.Node {
	if s.IsTitleElement(s.root) {
		return s.root
	}
	for d := range s.root.Descendants() {
		if s.IsTitleElement(d) {
			return d
		}
	}
	return nil
}

// Title returns the value of the title input.
func (s *Surface) Title() string {
	v, _ := attr(s.TitleInput(), "value")
	return v
}

// SetTitleSelection records the selection inside the title input.
func (s *Surface) SetTitleSelection(start, end int) error {
	length := utf8.RuneCountInString(s.Title())
	if start < 0 || end < start || end > length {
		return blockerr.Preconditionf(opTitleSelection, blockerr.ReasonOffsetOutOfRange, "",
			"selection [%d, %d] not within title of length %d", start, end, length)
	}
	s.titleStart, s.titleEnd = start, end
	return nil
}

// TitleSelection returns the recorded title input selection.
func (s *Surface) TitleSelection() (start, end int) {
	return s.titleStart, s.titleEnd
}

func (s *Surface) clampTitleSelection() {
	length := utf8.RuneCountInString(s.Title())
	s.titleStart = min(s.titleStart, length)
	s.titleEnd = min(s.titleEnd, length)
}

// WriteHTML renders the tree.
func (s *Surface) WriteHTML(w io.Writer) error {
	if s.root.Type == html.DocumentNode {
		for c := s.root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, c); err != nil {
				return fmt.Errorf("render html: %w", err)
			}
		}
		return nil
	}
	if err := html.Render(w, s.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// findOwn returns the first descendant of block matching match, without
// entering nested marked roots.
func (s *Surface) findOwn(block *html.Node, match func(*html.Node) bool) *html.Node {
	if block == nil {
		return nil
	}
	var found *html.Node
	var visit func(n *html.Node) bool
	visit = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if s.IsMarked(c) {
				continue
			}
			if match(c) {
				found = c
				return true
			}
			if visit(c) {
				return true
			}
		}
		return false
	}
	visit(block)
	return found
}
