package blocktree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
)

func TestWalk(t *testing.T) {
	t.Parallel()

	doc, ids := buildTestDoc(t)

	var visited []blocktree.ID
	err := blocktree.Walk(doc, doc.Root(), func(id blocktree.ID) error {
		visited = append(visited, id)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []blocktree.ID{
		ids["page"], ids["frame"], ids["one"], ids["child"], ids["two"], ids["three"],
	}, visited)
}

func TestWalk_NoRoot(t *testing.T) {
	t.Parallel()

	doc := blocktree.New(nil)
	err := blocktree.Walk(doc, doc.Root(), func(blocktree.ID) error {
		t.Error("callback should not be called for an empty document")
		return nil
	})
	assert.NoError(t, err)
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	doc, ids := buildTestDoc(t)
	stop := errors.New("stop here")

	count := 0
	err := blocktree.Walk(doc, doc.Root(), func(id blocktree.ID) error {
		count++
		if id == ids["one"] {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

// cyclicModel reports "b" as a child of "a" and "a" as a child of "b".
type cyclicModel struct{}

func (cyclicModel) Root() blocktree.ID { return "a" }
func (cyclicModel) Exists(blocktree.ID) bool { return true }
func (cyclicModel) Parent(blocktree.ID) blocktree.ID { return blocktree.NoID }
func (cyclicModel) NextSibling(blocktree.ID) blocktree.ID { return blocktree.NoID }
func (cyclicModel) PreviousSibling(blocktree.ID) blocktree.ID { return blocktree.NoID }
func (cyclicModel) Flavour(blocktree.ID) blocktree.Flavour { return blocktree.FlavourParagraph }
func (cyclicModel) Children(id blocktree.ID) []blocktree.ID {
	if id == "a" {
		return []blocktree.ID{"b"}
	}
	return []blocktree.ID{"a"}
}

func TestWalk_Cycle(t *testing.T) {
	t.Parallel()

	err := blocktree.Walk(cyclicModel{}, "a", func(blocktree.ID) error { return nil })

	require.ErrorIs(t, err, blockerr.ErrCycle)
	var se *blockerr.StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "a", se.ID)
}

func TestFindAllAndFirst(t *testing.T) {
	t.Parallel()

	doc, ids := buildTestDoc(t)

	paragraphs, err := blocktree.FindAll(doc, doc.Root(), func(id blocktree.ID) bool {
		return doc.Flavour(id) == blocktree.FlavourParagraph
	})
	require.NoError(t, err)
	assert.Equal(t, []blocktree.ID{ids["one"], ids["child"], ids["two"], ids["three"]}, paragraphs)

	first, err := blocktree.FindFirst(doc, doc.Root(), func(id blocktree.ID) bool {
		return doc.Text(id) == "two"
	})
	require.NoError(t, err)
	assert.Equal(t, ids["two"], first)

	none, err := blocktree.FindFirst(doc, doc.Root(), func(blocktree.ID) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, blocktree.NoID, none)
}

func TestAllBlocks(t *testing.T) {
	t.Parallel()

	doc, ids := buildTestDoc(t)

	all, err := blocktree.AllBlocks(doc)
	require.NoError(t, err)
	assert.Equal(t, []blocktree.ID{ids["one"], ids["child"], ids["two"], ids["three"]}, all)
}
