package surface_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/surface"
)

type fixture struct {
	doc     *blocktree.Document
	surf    *surface.Surface
	frame   blocktree.ID
	p1      blocktree.ID
	p2      blocktree.ID
	child   blocktree.ID
	divider blocktree.ID
}

// newFixture renders:
//
//	page "Hello"
//	  frame
//	    p1  "ab" + bold "cd"
//	    p2  "ef"
//	      child "gh"
//	    divider
func newFixture(t *testing.T, opts ...surface.Option) fixture {
	t.Helper()

	f := fixture{doc: blocktree.NewPage("Hello", nil)}
	f.frame = f.doc.MustAdd(f.doc.Root(), blocktree.FlavourFrame)
	f.p1 = f.doc.MustAdd(f.frame, blocktree.FlavourParagraph,
		blocktree.Run{Text: "ab"}, blocktree.Run{Text: "cd", Marks: blocktree.MarkBold})
	f.p2 = f.doc.MustAdd(f.frame, blocktree.FlavourParagraph, blocktree.Run{Text: "ef"})
	f.child = f.doc.MustAdd(f.p2, blocktree.FlavourParagraph, blocktree.Run{Text: "gh"})
	f.divider = f.doc.MustAdd(f.frame, blocktree.FlavourDivider)

	surf, err := surface.Render(f.doc, opts...)
	require.NoError(t, err)
	f.surf = surf
	return f
}

func firstText(n *html.Node) *html.Node {
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			return d
		}
	}
	return nil
}

func TestRender_IndexesEveryBlock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.Equal(t, f.doc.Len(), f.surf.Len())

	for _, id := range []blocktree.ID{f.doc.Root(), f.frame, f.p1, f.p2, f.child, f.divider} {
		n, ok := f.surf.Node(id)
		require.True(t, ok, "block %s not mounted", id)

		back, ok := f.surf.BlockID(n)
		require.True(t, ok)
		assert.Equal(t, id, back)
		assert.True(t, f.surf.IsMarked(n))
	}
}

func TestClosestMarked(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p1, _ := f.surf.Node(f.p1)

	leaf := firstText(p1)
	require.NotNil(t, leaf)
	assert.Equal(t, "ab", leaf.Data)
	assert.Same(t, p1, f.surf.ClosestMarked(leaf))
	assert.Same(t, p1, f.surf.ClosestMarked(p1))

	assert.Nil(t, f.surf.ClosestMarked(f.surf.Root()))
}

func TestMarkedUnder_DocumentOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	page, _ := f.surf.Node(f.doc.Root())

	var got []blocktree.ID
	for _, n := range f.surf.MarkedUnder(page) {
		id, _ := f.surf.BlockID(n)
		got = append(got, id)
	}
	assert.Equal(t, []blocktree.ID{f.frame, f.p1, f.p2, f.child, f.divider}, got)
}

func TestRegions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	page, _ := f.surf.Node(f.doc.Root())
	title := f.surf.TitleRegion(page)
	require.NotNil(t, title)
	assert.True(t, f.surf.IsTitleRegion(title))
	assert.Nil(t, f.surf.TextRegion(page))

	p2, _ := f.surf.Node(f.p2)
	region := f.surf.TextRegion(p2)
	require.NotNil(t, region)
	assert.Equal(t, "ef", firstText(region).Data, "a nested block's region is not the parent's")

	frame, _ := f.surf.Node(f.frame)
	assert.Nil(t, f.surf.TextRegion(frame))

	editable := f.surf.EditableRoot(p2)
	require.NotNil(t, editable)
	assert.True(t, f.surf.IsEditableRoot(editable))
	assert.True(t, f.surf.IsInsideRichText(firstText(editable)))
	assert.False(t, f.surf.IsInsideRichText(title))
}

func TestTextEngine(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	engine, err := f.surf.TextEngine(f.p1)
	require.NoError(t, err)
	assert.Equal(t, 4, engine.Len())
	assert.Equal(t, "abcd", engine.Text())

	_, err = f.surf.TextEngine(f.divider)
	require.ErrorIs(t, err, blockerr.ErrPrecondition)
	assert.True(t, blockerr.HasReason(err, blockerr.ReasonNoTextEngine))

	_, err = f.surf.TextEngine("missing")
	assert.True(t, blockerr.HasReason(err, blockerr.ReasonUnmounted))
}

func TestTitleSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.Equal(t, "Hello", f.surf.Title())

	input := f.surf.TitleInput()
	require.NotNil(t, input)
	assert.True(t, f.surf.IsTitleElement(input))

	require.NoError(t, f.surf.SetTitleSelection(1, 4))
	start, end := f.surf.TitleSelection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)

	tests := []struct {
		name       string
		start, end int
	}{
		{"negative", -1, 2},
		{"reversed", 3, 2},
		{"past end", 0, 6},
	}
	for _, tc := range tests {
		err := f.surf.SetTitleSelection(tc.start, tc.end)
		assert.True(t, blockerr.HasReason(err, blockerr.ReasonOffsetOutOfRange), tc.name)
	}
}

func TestRunMarkup(t *testing.T) {
	t.Parallel()

	doc := blocktree.NewPage("", nil)
	doc.MustAdd(doc.Root(), blocktree.FlavourParagraph,
		blocktree.Run{Text: "plain"},
		blocktree.Run{Text: "both", Marks: blocktree.MarkBold | blocktree.MarkItalic},
		blocktree.Run{Text: "mono", Marks: blocktree.MarkCode},
	)

	surf, err := surface.Render(doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, surf.WriteHTML(&buf))
	out := buf.String()

	assert.Contains(t, out, "<span>plain</span>")
	assert.Contains(t, out, "<strong><em>both</em></strong>")
	assert.Contains(t, out, "<code>mono</code>")
	assert.Contains(t, out, `contenteditable="true"`)
}

func TestWriteHTML_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.surf.WriteHTML(&buf))

	parsed, err := surface.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.surf.Len(), parsed.Len())

	_, ok := parsed.Node(f.child)
	assert.True(t, ok)
	assert.Equal(t, "Hello", parsed.Title())
}

func TestParse_DuplicateMarker(t *testing.T) {
	t.Parallel()

	_, err := surface.Parse(strings.NewReader(
		`<div data-block-id="a"></div><div data-block-id="a"></div>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marked more than once")
}

func TestParse_EmptyMarker(t *testing.T) {
	t.Parallel()

	_, err := surface.Parse(strings.NewReader(`<div data-block-id=""></div>`))
	require.Error(t, err)
}

func TestCustomMarkup(t *testing.T) {
	t.Parallel()

	cfg := config.SurfaceConfig{MarkerAttribute: "data-node", RichTextClass: "rt"}
	f := newFixture(t, surface.WithConfig(cfg))

	assert.Equal(t, "data-node", f.surf.Markup().MarkerAttribute)
	assert.Equal(t, config.DefaultTitleClass, f.surf.Markup().TitleClass)

	var buf bytes.Buffer
	require.NoError(t, f.surf.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), "data-block-id")
	assert.Contains(t, buf.String(), `class="rt"`)

	_, err := f.surf.TextEngine(f.p1)
	require.NoError(t, err)

	parsed, err := surface.Parse(&buf, surface.WithMarkerAttribute("data-node"))
	require.NoError(t, err)
	assert.Equal(t, f.surf.Len(), parsed.Len())
}
