package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/traverse"
)

// frameDoc builds root -> [frameA[blockX, blockY], blockZ].
func frameDoc(t *testing.T) (*blocktree.Document, map[string]blocktree.ID) {
	t.Helper()

	doc := blocktree.NewPage("title", nil)
	ids := map[string]blocktree.ID{}
	ids["frameA"] = doc.MustAdd(doc.Root(), blocktree.FlavourFrame)
	ids["X"] = doc.MustAdd(ids["frameA"], blocktree.FlavourParagraph, blocktree.Run{Text: "x"})
	ids["Y"] = doc.MustAdd(ids["frameA"], blocktree.FlavourParagraph, blocktree.Run{Text: "y"})
	ids["Z"] = doc.MustAdd(doc.Root(), blocktree.FlavourParagraph, blocktree.Run{Text: "z"})
	return doc, ids
}

// nestedDoc builds:
//
//	page
//	  frame1
//	    p1
//	      p1a
//	        p1a1
//	      p1b
//	    p2
//	  frame2 (empty)
//	  frame3
//	    frame4
//	      p3
//	    p4
func nestedDoc(t *testing.T) (*blocktree.Document, map[string]blocktree.ID) {
	t.Helper()

	doc := blocktree.NewPage("", nil)
	ids := map[string]blocktree.ID{}
	add := func(name, parent string, flavour blocktree.Flavour) {
		p := doc.Root()
		if parent != "" {
			p = ids[parent]
		}
		ids[name] = doc.MustAdd(p, flavour, blocktree.Run{Text: name})
	}
	add("frame1", "", blocktree.FlavourFrame)
	add("p1", "frame1", blocktree.FlavourParagraph)
	add("p1a", "p1", blocktree.FlavourParagraph)
	add("p1a1", "p1a", blocktree.FlavourParagraph)
	add("p1b", "p1", blocktree.FlavourParagraph)
	add("p2", "frame1", blocktree.FlavourParagraph)
	add("frame2", "", blocktree.FlavourFrame)
	add("frame3", "", blocktree.FlavourFrame)
	add("frame4", "frame3", blocktree.FlavourFrame)
	add("p3", "frame4", blocktree.FlavourParagraph)
	add("p4", "frame3", blocktree.FlavourParagraph)
	return doc, ids
}

func TestNext_EndToEnd(t *testing.T) {
	t.Parallel()

	doc, ids := frameDoc(t)

	want := []blocktree.ID{ids["Y"], ids["Z"], blocktree.NoID, blocktree.NoID}
	cur := ids["X"]
	for i, expected := range want {
		next, err := traverse.Next(doc, cur)
		require.NoError(t, err)
		assert.Equal(t, expected, next, "step %d", i+1)
		cur = next
	}
}

func TestNext_SkipsContainers(t *testing.T) {
	t.Parallel()

	doc, ids := frameDoc(t)

	first, err := traverse.Next(doc, doc.Root())
	require.NoError(t, err)
	assert.Equal(t, ids["X"], first, "descending into a frame yields its first child")

	afterY, err := traverse.Next(doc, ids["Y"])
	require.NoError(t, err)
	assert.Equal(t, ids["Z"], afterY, "leaving a frame skips it")
}

func TestPrevious(t *testing.T) {
	t.Parallel()

	doc, ids := frameDoc(t)

	tests := []struct {
		name  string
		start blocktree.ID
		want  blocktree.ID
	}{
		{"from last block into frame", ids["Z"], ids["Y"]},
		{"between siblings", ids["Y"], ids["X"]},
		{"first block has no predecessor", ids["X"], blocktree.NoID},
		{"root has no predecessor", doc.Root(), blocktree.NoID},
		{"no id", blocktree.NoID, blocktree.NoID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := traverse.Previous(doc, tc.start)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrevious_ReturnsParent(t *testing.T) {
	t.Parallel()

	doc, ids := nestedDoc(t)

	got, err := traverse.Previous(doc, ids["p1a"])
	require.NoError(t, err)
	assert.Equal(t, ids["p1"], got)
}

func TestPrevious_DeepestLastDescendant(t *testing.T) {
	t.Parallel()

	doc, ids := nestedDoc(t)

	got, err := traverse.Previous(doc, ids["p1b"])
	require.NoError(t, err)
	assert.Equal(t, ids["p1a1"], got)

	got, err = traverse.Previous(doc, ids["p2"])
	require.NoError(t, err)
	assert.Equal(t, ids["p1b"], got)
}

func TestNestedOrder(t *testing.T) {
	t.Parallel()

	doc, ids := nestedDoc(t)

	order, err := traverse.Order(doc)
	require.NoError(t, err)

	names := []string{"p1", "p1a", "p1a1", "p1b", "p2", "p3", "p4"}
	want := make([]blocktree.ID, 0, len(names))
	for _, n := range names {
		want = append(want, ids[n])
	}
	assert.Equal(t, want, order)
}

func TestOrderTotality(t *testing.T) {
	t.Parallel()

	for name, build := range map[string]func(*testing.T) (*blocktree.Document, map[string]blocktree.ID){
		"frame":  frameDoc,
		"nested": nestedDoc,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, _ := build(t)
			order, err := traverse.Order(doc)
			require.NoError(t, err)
			require.NotEmpty(t, order)

			for i := 0; i+1 < len(order); i++ {
				prev, err := traverse.Previous(doc, order[i+1])
				require.NoError(t, err)
				assert.Equal(t, order[i], prev, "previous(%s)", order[i+1])
			}

			first, err := traverse.Previous(doc, order[0])
			require.NoError(t, err)
			assert.Equal(t, blocktree.NoID, first)
		})
	}
}

func TestContainersNeverReturned(t *testing.T) {
	t.Parallel()

	doc, _ := nestedDoc(t)

	all, err := blocktree.FindAll(doc, doc.Root(), func(blocktree.ID) bool { return true })
	require.NoError(t, err)

	for _, id := range all {
		next, err := traverse.Next(doc, id)
		require.NoError(t, err)
		assert.False(t, doc.Flavour(next).Transparent(), "next(%s) = container %s", id, next)
		assert.NotEqual(t, doc.Root(), next)

		prev, err := traverse.Previous(doc, id)
		require.NoError(t, err)
		assert.False(t, doc.Flavour(prev).Transparent(), "previous(%s) = container %s", id, prev)
		assert.NotEqual(t, doc.Root(), prev)
	}
}

func TestTermination(t *testing.T) {
	t.Parallel()

	doc, _ := nestedDoc(t)

	all, err := blocktree.FindAll(doc, doc.Root(), func(blocktree.ID) bool { return true })
	require.NoError(t, err)

	for _, start := range all {
		cur, steps := start, 0
		for cur != blocktree.NoID {
			cur, err = traverse.Next(doc, cur)
			require.NoError(t, err)
			steps++
			require.LessOrEqual(t, steps, doc.Len(), "next from %s did not terminate", start)
		}
	}
}

func TestForwardBackward(t *testing.T) {
	t.Parallel()

	doc, ids := frameDoc(t)

	var forward []blocktree.ID
	for id, err := range traverse.Forward(doc, ids["X"]) {
		require.NoError(t, err)
		forward = append(forward, id)
	}
	assert.Equal(t, []blocktree.ID{ids["Y"], ids["Z"]}, forward)

	var backward []blocktree.ID
	for id, err := range traverse.Backward(doc, ids["Z"]) {
		require.NoError(t, err)
		backward = append(backward, id)
	}
	assert.Equal(t, []blocktree.ID{ids["Y"], ids["X"]}, backward)
}

func TestForward_StopsEarly(t *testing.T) {
	t.Parallel()

	doc, _ := frameDoc(t)

	count := 0
	for range traverse.Forward(doc, doc.Root()) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
