package selection

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/pkg/blockerr"
)

const opNewRange = "new-range"

// Point is a boundary point: a node and an offset inside it. For text nodes
// the offset counts runes; for other nodes it counts children.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range is a pair of ordered boundary points in one tree.
type Range struct {
	start Point
	end   Point
}

// NewRange returns the range between two boundary points. The points may be
// given in either order. Offsets beyond a node's length, nil nodes and
// points in different trees are precondition failures.
func NewRange(startNode *html.Node, startOffset int, endNode *html.Node, endOffset int) (*Range, error) {
	start := Point{Node: startNode, Offset: startOffset}
	end := Point{Node: endNode, Offset: endOffset}

	for _, p := range []Point{start, end} {
		if p.Node == nil {
			return nil, blockerr.Preconditionf(opNewRange, blockerr.ReasonOffsetOutOfRange, "", "nil boundary node")
		}
		if length := NodeLength(p.Node); p.Offset < 0 || p.Offset > length {
			return nil, blockerr.Preconditionf(opNewRange, blockerr.ReasonOffsetOutOfRange, "",
				"offset %d not in [0, %d]", p.Offset, length)
		}
	}
	if rootOf(startNode) != rootOf(endNode) {
		return nil, blockerr.Preconditionf(opNewRange, blockerr.ReasonOffsetOutOfRange, "",
			"boundary points are in different trees")
	}

	if ComparePoints(start, end) > 0 {
		start, end = end, start
	}
	return &Range{start: start, end: end}, nil
}

// Caret returns a collapsed range at node and offset.
func Caret(node *html.Node, offset int) (*Range, error) {
	return NewRange(node, offset, node, offset)
}

// Start returns the start boundary point.
func (r *Range) Start() Point { return r.start }

// End returns the end boundary point.
func (r *Range) End() Point { return r.end }

// Collapsed returns true if start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.start == r.end
}

// CommonAncestor returns the deepest node that contains both boundary
// points. It may be a text node.
func (r *Range) CommonAncestor() *html.Node {
	startAncestors := make(map[*html.Node]struct{})
	for n := r.start.Node; n != nil; n = n.Parent {
		startAncestors[n] = struct{}{}
	}
	for n := r.end.Node; n != nil; n = n.Parent {
		if _, ok := startAncestors[n]; ok {
			return n
		}
	}
	return nil
}

// IntersectsNode reports whether the range touches any part of node.
func (r *Range) IntersectsNode(node *html.Node) bool {
	if node == nil || rootOf(node) != rootOf(r.start.Node) {
		return false
	}
	parent := node.Parent
	if parent == nil {
		return true
	}
	offset := indexOfChild(parent, node)

	beforeEnd := ComparePoints(Point{parent, offset}, r.end) < 0
	afterStart := ComparePoints(Point{parent, offset + 1}, r.start) > 0
	return beforeEnd && afterStart
}

// ContainsPoint reports whether p lies within the range, bounds included.
func (r *Range) ContainsPoint(p Point) bool {
	if p.Node == nil || rootOf(p.Node) != rootOf(r.start.Node) {
		return false
	}
	return ComparePoints(r.start, p) <= 0 && ComparePoints(p, r.end) <= 0
}

// ComparePoints returns -1 if a is before b, 0 if they are equal and 1 if a
// is after b. Both points must be in the same tree.
func ComparePoints(a, b Point) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		default:
			return 0
		}
	}

	if isAncestor(a.Node, b.Node) {
		child := childToward(a.Node, b.Node)
		if indexOfChild(a.Node, child) < a.Offset {
			return 1
		}
		return -1
	}

	if isAncestor(b.Node, a.Node) {
		child := childToward(b.Node, a.Node)
		if indexOfChild(b.Node, child) < b.Offset {
			return -1
		}
		return 1
	}

	return compareTreeOrder(a.Node, b.Node)
}

// compareTreeOrder orders two nodes, neither an ancestor of the other.
func compareTreeOrder(a, b *html.Node) int {
	pathA := path(a)
	pathB := path(b)

	for i := 1; i < len(pathA) && i < len(pathB); i++ {
		if pathA[i] == pathB[i] {
			continue
		}
		for c := pathA[i-1].FirstChild; c != nil; c = c.NextSibling {
			switch c {
			case pathA[i]:
				return -1
			case pathB[i]:
				return 1
			}
		}
		break
	}
	return 0
}

// path returns the nodes from the root down to n.
func path(n *html.Node) []*html.Node {
	var p []*html.Node
	for ; n != nil; n = n.Parent {
		p = append(p, n)
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// NodeLength returns the rune length of a text node or the child count of
// any other node.
func NodeLength(n *html.Node) int {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return utf8.RuneCountInString(n.Data)
	default:
		count := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			count++
		}
		return count
	}
}

func indexOfChild(parent, child *html.Node) int {
	index := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return index
		}
		index++
	}
	return -1
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// childToward returns the child of ancestor on the path to n.
func childToward(ancestor, n *html.Node) *html.Node {
	child := n
	for child.Parent != ancestor {
		child = child.Parent
	}
	return child
}

func rootOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
