package offsets_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/offsets"
	"github.com/yaklabco/blocksel/pkg/selection"
	"github.com/yaklabco/blocksel/pkg/surface"
)

type env struct {
	doc    *blocktree.Document
	surf   *surface.Surface
	mapper *offsets.Mapper

	plain, styled, unicode, empty, divider blocktree.ID
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{doc: blocktree.NewPage("Résumé", nil)}
	frame := e.doc.MustAdd(e.doc.Root(), blocktree.FlavourFrame)
	e.plain = e.doc.MustAdd(frame, blocktree.FlavourParagraph, blocktree.Run{Text: "plain text"})
	e.styled = e.doc.MustAdd(frame, blocktree.FlavourParagraph,
		blocktree.Run{Text: "ab"},
		blocktree.Run{Text: "cd", Marks: blocktree.MarkBold | blocktree.MarkItalic},
		blocktree.Run{Text: "ef", Marks: blocktree.MarkCode},
	)
	e.unicode = e.doc.MustAdd(e.styled, blocktree.FlavourList,
		blocktree.Run{Text: "héllo "}, blocktree.Run{Text: "wörld ✓", Marks: blocktree.MarkStrike})
	e.empty = e.doc.MustAdd(frame, blocktree.FlavourParagraph)
	e.divider = e.doc.MustAdd(frame, blocktree.FlavourDivider)

	surf, err := surface.Render(e.doc)
	require.NoError(t, err)
	e.surf = surf
	e.mapper = offsets.New(surf)
	return e
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	for _, id := range []blocktree.ID{e.plain, e.styled, e.unicode, e.empty} {
		b, ok := e.doc.Block(id)
		require.True(t, ok)
		length := utf8.RuneCountInString(b.Text())

		for o := 0; o <= length; o++ {
			pos, err := e.mapper.ToRenderedPosition(selection.At(id, o))
			require.NoError(t, err, "block %s offset %d", id, o)

			for _, isStart := range []bool{true, false} {
				got, err := e.mapper.ToBlockOffset(pos.Node, pos.Offset, isStart)
				require.NoError(t, err)
				assert.Equal(t, o, got, "block %s offset %d", id, o)
			}
		}
	}
}

func TestToRenderedPosition_Leaves(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	tests := []struct {
		name     string
		br       selection.BlockRange
		wantText string
		wantOff  int
	}{
		{"start of block", selection.Whole(e.styled), "ab", 0},
		{"inside first leaf", selection.At(e.styled, 1), "ab", 1},
		{"boundary belongs to the next leaf", selection.At(e.styled, 2), "cd", 0},
		{"end offset stays in last leaf", selection.At(e.styled, 6), "ef", 2},
		{"end position used without start", selection.Whole(e.styled).WithEnd(3), "cd", 1},
		{"start wins over end", selection.At(e.styled, 5).WithEnd(1), "ef", 1},
		{"runes not bytes", selection.At(e.unicode, 8), "wörld ✓", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pos, err := e.mapper.ToRenderedPosition(tc.br)
			require.NoError(t, err)
			require.Equal(t, html.TextNode, pos.Node.Type)
			assert.Equal(t, tc.wantText, pos.Node.Data)
			assert.Equal(t, tc.wantOff, pos.Offset)
		})
	}
}

func TestToRenderedPosition_EmptyBlock(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	pos, err := e.mapper.ToRenderedPosition(selection.Whole(e.empty))
	require.NoError(t, err)

	block, _ := e.surf.Node(e.empty)
	assert.Same(t, e.surf.EditableRoot(block), pos.Node)
	assert.Equal(t, 0, pos.Offset)
}

func TestToRenderedPosition_Failures(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	tests := []struct {
		name   string
		br     selection.BlockRange
		reason blockerr.Reason
	}{
		{"unmounted", selection.Whole("nope"), blockerr.ReasonUnmounted},
		{"no text engine", selection.Whole(e.divider), blockerr.ReasonNoTextEngine},
		{"past end", selection.At(e.plain, 11), blockerr.ReasonOffsetOutOfRange},
		{"negative", selection.At(e.plain, -1), blockerr.ReasonOffsetOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := e.mapper.ToRenderedPosition(tc.br)
			require.ErrorIs(t, err, blockerr.ErrPrecondition)
			assert.True(t, blockerr.HasReason(err, tc.reason), "got %v", err)
		})
	}
}

func TestToBlockOffset_ElementContainer(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	block, _ := e.surf.Node(e.styled)
	editable := e.surf.EditableRoot(block)

	// (editable, 2) sits after the "ab" and "cd" runs.
	got, err := e.mapper.ToBlockOffset(editable, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestToBlockOffset_MarkedRootResets(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	block, _ := e.surf.Node(e.styled)

	got, err := e.mapper.ToBlockOffset(block, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestToBlockOffset_TitleRegion(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	require.NoError(t, e.surf.SetTitleSelection(2, 5))

	page, _ := e.surf.Node(e.doc.Root())
	title := e.surf.TitleRegion(page)

	start, err := e.mapper.ToBlockOffset(title, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 2, start)

	end, err := e.mapper.ToBlockOffset(title, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 5, end)
}

func TestToBlockOffset_Invalid(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	_, err := e.mapper.ToBlockOffset(nil, 0, true)
	assert.True(t, blockerr.HasReason(err, blockerr.ReasonOffsetOutOfRange))

	pos, err := e.mapper.ToRenderedPosition(selection.Whole(e.plain))
	require.NoError(t, err)

	_, err = e.mapper.ToBlockOffset(pos.Node, 11, true)
	assert.True(t, blockerr.HasReason(err, blockerr.ReasonOffsetOutOfRange))

	_, err = e.mapper.ToBlockOffset(pos.Node, -1, true)
	assert.True(t, blockerr.HasReason(err, blockerr.ReasonOffsetOutOfRange))
}
