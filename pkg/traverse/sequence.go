package traverse

import (
	"iter"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
)

// Forward yields the blocks after start in reading order. start itself is
// not yielded. A block yielded twice ends the sequence with a
// *blockerr.StructuralError.
func Forward(m blocktree.Model, start blocktree.ID) iter.Seq2[blocktree.ID, error] {
	return sequence(m, start, opNext, Next)
}

// Backward yields the blocks before start in reverse reading order.
func Backward(m blocktree.Model, start blocktree.ID) iter.Seq2[blocktree.ID, error] {
	return sequence(m, start, opPrevious, Previous)
}

// Order returns every block of m in reading order.
func Order(m blocktree.Model) ([]blocktree.ID, error) {
	var ids []blocktree.ID
	for id, err := range Forward(m, m.Root()) {
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type stepFunc func(blocktree.Model, blocktree.ID) (blocktree.ID, error)

func sequence(m blocktree.Model, start blocktree.ID, op string, step stepFunc) iter.Seq2[blocktree.ID, error] {
	return func(yield func(blocktree.ID, error) bool) {
		seen := map[blocktree.ID]struct{}{start: {}}
		cur := start
		for {
			id, err := step(m, cur)
			if err != nil {
				yield(blocktree.NoID, err)
				return
			}
			if id == blocktree.NoID {
				return
			}
			if _, dup := seen[id]; dup {
				yield(blocktree.NoID, &blockerr.StructuralError{Op: op, ID: string(id)})
				return
			}
			seen[id] = struct{}{}
			if !yield(id, nil) {
				return
			}
			cur = id
		}
	}
}
