// Package traverse computes the reading order of a block tree.
//
// Reading order is a pre-order walk that never yields transparent
// containers (frames) or the page root:
//
//	page
//	- frame            (skipped)
//	  - paragraph      <- Next starts here
//	    - child        1
//	  - sibling        2
//	- frame            (skipped)
//	  - paragraph      3
//
// Every call keeps its own visited sets. Reaching a block twice means the
// tree is malformed (or was mutated mid-call) and yields a
// *blockerr.StructuralError instead of looping.
package traverse

import (
	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
)

const (
	opNext     = "next"
	opPrevious = "previous"
)

// Next returns the block after id in reading order, or NoID at the end of
// the document. Next(m, NoID) is NoID.
func Next(m blocktree.Model, id blocktree.ID) (blocktree.ID, error) {
	if id == blocktree.NoID {
		return blocktree.NoID, nil
	}
	return next(m, id, newGuard(opNext))
}

// Previous returns the block before id in reading order, or NoID at the
// start of the document. Previous(m, NoID) is NoID.
func Previous(m blocktree.Model, id blocktree.ID) (blocktree.ID, error) {
	if id == blocktree.NoID {
		return blocktree.NoID, nil
	}
	return previous(m, id, newGuard(opPrevious))
}

func next(m blocktree.Model, id blocktree.ID, g *guard) (blocktree.ID, error) {
	if err := g.enter(id); err != nil {
		return blocktree.NoID, err
	}

	if children := m.Children(id); len(children) > 0 {
		first := children[0]
		if m.Flavour(first).Transparent() {
			return next(m, first, g)
		}
		return first, nil
	}

	for cur := id; cur != blocktree.NoID; {
		if sibling := m.NextSibling(cur); sibling != blocktree.NoID {
			if m.Flavour(sibling).Transparent() {
				return next(m, sibling, g)
			}
			return sibling, nil
		}
		cur = m.Parent(cur)
		if err := g.climb(cur); err != nil {
			return blocktree.NoID, err
		}
	}
	return blocktree.NoID, nil
}

func previous(m blocktree.Model, id blocktree.ID, g *guard) (blocktree.ID, error) {
	if err := g.enter(id); err != nil {
		return blocktree.NoID, err
	}

	parent := m.Parent(id)
	if parent == blocktree.NoID {
		return blocktree.NoID, nil
	}

	sibling := m.PreviousSibling(id)
	if sibling == blocktree.NoID {
		if skipsParent(m, parent) {
			return previous(m, parent, g)
		}
		return parent, nil
	}

	last, err := deepestLast(m, sibling, g)
	if err != nil {
		return blocktree.NoID, err
	}
	if m.Flavour(last).Transparent() {
		// An empty container; keep going backwards past it.
		return previous(m, last, g)
	}
	return last, nil
}

// deepestLast follows last children from id down to a leaf.
func deepestLast(m blocktree.Model, id blocktree.ID, g *guard) (blocktree.ID, error) {
	cur := id
	if err := g.descend(cur); err != nil {
		return blocktree.NoID, err
	}
	for {
		children := m.Children(cur)
		if len(children) == 0 {
			return cur, nil
		}
		cur = children[len(children)-1]
		if err := g.descend(cur); err != nil {
			return blocktree.NoID, err
		}
	}
}

func skipsParent(m blocktree.Model, parent blocktree.ID) bool {
	if parent == m.Root() {
		return true
	}
	f := m.Flavour(parent)
	return f.Transparent() || f == blocktree.FlavourPage
}

// guard tracks the blocks one call has entered, climbed through and
// descended through. In a well-formed tree no block appears twice in the
// same set.
type guard struct {
	op        string
	entered   map[blocktree.ID]struct{}
	climbed   map[blocktree.ID]struct{}
	descended map[blocktree.ID]struct{}
}

func newGuard(op string) *guard {
	return &guard{
		op:        op,
		entered:   make(map[blocktree.ID]struct{}),
		climbed:   make(map[blocktree.ID]struct{}),
		descended: make(map[blocktree.ID]struct{}),
	}
}

func (g *guard) enter(id blocktree.ID) error {
	return g.mark(g.entered, id)
}

func (g *guard) climb(id blocktree.ID) error {
	return g.mark(g.climbed, id)
}

func (g *guard) descend(id blocktree.ID) error {
	return g.mark(g.descended, id)
}

func (g *guard) mark(set map[blocktree.ID]struct{}, id blocktree.ID) error {
	if id == blocktree.NoID {
		return nil
	}
	if _, seen := set[id]; seen {
		return &blockerr.StructuralError{Op: g.op, ID: string(id)}
	}
	set[id] = struct{}{}
	return nil
}
