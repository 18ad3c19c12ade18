package blocktree

import (
	"errors"

	"github.com/yaklabco/blocksel/pkg/blockerr"
)

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id ID) error

// Walk performs a pre-order traversal of m starting at root. A block reached
// twice stops the walk with a *blockerr.StructuralError.
func Walk(m Model, root ID, walkFunc WalkFunc) error {
	if root == NoID {
		return nil
	}
	visited := make(map[ID]struct{})
	return walk(m, root, visited, walkFunc)
}

func walk(m Model, id ID, visited map[ID]struct{}, walkFunc WalkFunc) error {
	if _, seen := visited[id]; seen {
		return &blockerr.StructuralError{Op: "walk", ID: string(id)}
	}
	visited[id] = struct{}{}

	if err := walkFunc(id); err != nil {
		return err
	}
	for _, child := range m.Children(id) {
		if err := walk(m, child, visited, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all blocks under root (inclusive) matching the predicate,
// in reading order.
func FindAll(m Model, root ID, predicate func(id ID) bool) ([]ID, error) {
	var result []ID
	err := Walk(m, root, func(id ID) error {
		if predicate(id) {
			result = append(result, id)
		}
		return nil
	})
	return result, err
}

// FindFirst returns the first block matching the predicate, or NoID.
func FindFirst(m Model, root ID, predicate func(id ID) bool) (ID, error) {
	found := NoID
	err := Walk(m, root, func(id ID) error {
		if predicate(id) {
			found = id
			return errStopWalk
		}
		return nil
	})
	if errors.Is(err, errStopWalk) {
		err = nil
	}
	return found, err
}

// AllBlocks returns every selectable block in reading order: the page root
// and frames are left out.
func AllBlocks(m Model) ([]ID, error) {
	return FindAll(m, m.Root(), func(id ID) bool {
		f := m.Flavour(id)
		return f != FlavourPage && !f.Transparent()
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = errors.New("stop walk")
