// Package richtext indexes the text of one block's editable root.
//
// The editable root is the element that holds a block's rendered text. Its
// text nodes, in document order, are the leaves of the engine. A block
// offset counts runes from the start of the concatenated leaf text.
package richtext

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/pkg/blockerr"
)

const opResolveLeaf = "resolve-leaf"

// Leaf is one addressable text fragment of the engine.
type Leaf struct {
	// Node is the text node backing the leaf, or the editable root itself
	// when the block has no text.
	Node *html.Node

	// Start is the block offset of the first rune of the leaf.
	Start int

	// Len is the rune length of the leaf.
	Len int
}

// End returns the block offset just past the leaf.
func (l Leaf) End() int {
	return l.Start + l.Len
}

// Engine resolves block offsets against the text nodes under an editable
// root. It holds no copy of the text: every call reads the current tree.
type Engine struct {
	root *html.Node
}

// New returns an engine over root. root must be an element.
func New(root *html.Node) *Engine {
	return &Engine{root: root}
}

// Root returns the editable root.
func (e *Engine) Root() *html.Node {
	return e.root
}

// Leaves returns the non-empty text leaves in document order.
func (e *Engine) Leaves() []Leaf {
	var leaves []Leaf
	offset := 0
	for n := range e.root.Descendants() {
		if n.Type != html.TextNode {
			continue
		}
		length := utf8.RuneCountInString(n.Data)
		if length == 0 {
			continue
		}
		leaves = append(leaves, Leaf{Node: n, Start: offset, Len: length})
		offset += length
	}
	return leaves
}

// Len returns the rune length of the block text.
func (e *Engine) Len() int {
	return RuneLen(e.root)
}

// Text returns the block text.
func (e *Engine) Text() string {
	return Text(e.root)
}

// ResolveLeaf returns the leaf containing offset and the offset inside it.
//
// An offset on the boundary between two leaves belongs to the following
// leaf; the end offset belongs to the last leaf. A block without text
// resolves to the editable root at 0.
func (e *Engine) ResolveLeaf(offset int) (Leaf, int, error) {
	leaves := e.Leaves()

	total := 0
	if len(leaves) > 0 {
		total = leaves[len(leaves)-1].End()
	}
	if offset < 0 || offset > total {
		return Leaf{}, 0, blockerr.Preconditionf(opResolveLeaf, blockerr.ReasonOffsetOutOfRange, "",
			"offset %d not in [0, %d]", offset, total)
	}

	if len(leaves) == 0 {
		return Leaf{Node: e.root}, 0, nil
	}

	for _, leaf := range leaves {
		if offset < leaf.End() {
			return leaf, offset - leaf.Start, nil
		}
	}
	last := leaves[len(leaves)-1]
	return last, last.Len, nil
}
