// Package offsets translates between positions on the rendering surface
// and block-relative text offsets.
//
// A block offset counts runes from the start of the block's rendered text,
// however many text nodes that text is split across.
package offsets

import (
	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/richtext"
	"github.com/yaklabco/blocksel/pkg/selection"
)

const (
	opToBlockOffset      = "to-block-offset"
	opToRenderedPosition = "to-rendered-position"
)

// Surface is the part of the rendering surface the mapper queries.
type Surface interface {
	Node(id blocktree.ID) (*html.Node, bool)
	IsMarked(n *html.Node) bool
	IsEditableRoot(n *html.Node) bool
	IsTitleRegion(n *html.Node) bool

	// TitleSelection returns the selection recorded for the title input.
	TitleSelection() (start, end int)

	// TextEngine returns the text engine of a mounted block.
	TextEngine(id blocktree.ID) (*richtext.Engine, error)
}

// Position is a node and an offset inside it.
type Position struct {
	Node   *html.Node
	Offset int
}

// Mapper converts positions in both directions.
type Mapper struct {
	surface Surface
}

// New returns a mapper over surface.
func New(surface Surface) *Mapper {
	return &Mapper{surface: surface}
}

// ToBlockOffset returns the block offset of the point (node, localOffset).
//
// For a page title region the recorded title input selection is returned
// instead: its start when isStart, its end otherwise.
//
// Otherwise the walk goes up from node. The first step adds localOffset
// (for an element, the text of its first localOffset children); every later
// step adds the text that precedes the previously visited child. The walk
// ends after the editable root is processed. Reaching a marked block root
// first means node is outside the block's text, and the offset is 0.
func (m *Mapper) ToBlockOffset(node *html.Node, localOffset int, isStart bool) (int, error) {
	if node == nil {
		return 0, blockerr.Preconditionf(opToBlockOffset, blockerr.ReasonOffsetOutOfRange, "", "nil node")
	}
	if length := selection.NodeLength(node); localOffset < 0 || localOffset > length {
		return 0, blockerr.Preconditionf(opToBlockOffset, blockerr.ReasonOffsetOutOfRange, "",
			"offset %d not in [0, %d]", localOffset, length)
	}

	if m.surface.IsTitleRegion(node) {
		start, end := m.surface.TitleSelection()
		if isStart {
			return start, nil
		}
		return end, nil
	}

	offset := 0
	var prev *html.Node
	for cur := node; cur != nil; prev, cur = cur, cur.Parent {
		if m.surface.IsMarked(cur) {
			return 0, nil
		}

		switch {
		case prev != nil:
			offset += richtext.PrecedingLen(cur, prev)
		case cur.Type == html.TextNode:
			offset += localOffset
		default:
			offset += richtext.ChildLen(cur, localOffset)
		}

		if m.surface.IsEditableRoot(cur) {
			break
		}
	}
	return offset, nil
}

// ToRenderedPosition returns the text node and intra-node offset of a
// block position. The offset is StartPos, else EndPos, else 0.
func (m *Mapper) ToRenderedPosition(b selection.BlockRange) (Position, error) {
	if _, ok := m.surface.Node(b.ID); !ok {
		return Position{}, blockerr.Precondition(opToRenderedPosition, blockerr.ReasonUnmounted, string(b.ID))
	}
	engine, err := m.surface.TextEngine(b.ID)
	if err != nil {
		return Position{}, err
	}
	if engine == nil {
		return Position{}, blockerr.Precondition(opToRenderedPosition, blockerr.ReasonNoTextEngine, string(b.ID))
	}

	offset := b.Offset()
	if length := engine.Len(); offset < 0 || offset > length {
		return Position{}, blockerr.Preconditionf(opToRenderedPosition, blockerr.ReasonOffsetOutOfRange, string(b.ID),
			"offset %d not in [0, %d]", offset, length)
	}

	leaf, leafOffset, err := engine.ResolveLeaf(offset)
	if err != nil {
		return Position{}, err
	}
	return Position{Node: leaf.Node, Offset: leafOffset}, nil
}
