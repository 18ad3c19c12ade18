package blocktree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blocksel/pkg/blocktree"
)

// buildTestDoc builds:
//
//	page "Title"
//	  frame
//	    paragraph "one"
//	      paragraph "child"
//	    paragraph "two"
//	  paragraph "three"
func buildTestDoc(t *testing.T) (*blocktree.Document, map[string]blocktree.ID) {
	t.Helper()

	doc := blocktree.NewPage("Title", nil)
	ids := map[string]blocktree.ID{"page": doc.Root()}
	ids["frame"] = doc.MustAdd(doc.Root(), blocktree.FlavourFrame)
	ids["one"] = doc.MustAdd(ids["frame"], blocktree.FlavourParagraph, blocktree.Run{Text: "one"})
	ids["child"] = doc.MustAdd(ids["one"], blocktree.FlavourParagraph, blocktree.Run{Text: "child"})
	ids["two"] = doc.MustAdd(ids["frame"], blocktree.FlavourParagraph, blocktree.Run{Text: "two"})
	ids["three"] = doc.MustAdd(doc.Root(), blocktree.FlavourParagraph, blocktree.Run{Text: "three"})
	return doc, ids
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	doc := blocktree.NewPage("Hello", nil)

	assert.Equal(t, blocktree.ID("0"), doc.Root())
	assert.Equal(t, blocktree.FlavourPage, doc.Flavour(doc.Root()))
	assert.Equal(t, "Hello", doc.Title())
	assert.Equal(t, "Hello", doc.Text(doc.Root()))
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, blocktree.NoID, doc.Parent(doc.Root()))
}

func TestDocumentRelations(t *testing.T) {
	t.Parallel()

	doc, ids := buildTestDoc(t)

	assert.Equal(t, 6, doc.Len())
	assert.Equal(t, []blocktree.ID{ids["frame"], ids["three"]}, doc.Children(doc.Root()))
	assert.Equal(t, ids["frame"], doc.Parent(ids["one"]))
	assert.Equal(t, ids["two"], doc.NextSibling(ids["one"]))
	assert.Equal(t, blocktree.NoID, doc.NextSibling(ids["two"]))
	assert.Equal(t, ids["one"], doc.PreviousSibling(ids["two"]))
	assert.Equal(t, blocktree.NoID, doc.PreviousSibling(ids["one"]))
	assert.Equal(t, blocktree.NoID, doc.NextSibling(doc.Root()))
	assert.Equal(t, blocktree.NoID, doc.Parent("missing"))
	assert.Empty(t, doc.Children("missing"))
	assert.Equal(t, blocktree.Flavour(""), doc.Flavour("missing"))
	assert.False(t, doc.Exists("missing"))
	assert.Equal(t, "child", doc.Text(ids["child"]))
}

func TestDocumentAdd_Errors(t *testing.T) {
	t.Parallel()

	doc := blocktree.NewPage("", nil)

	_, err := doc.Add(doc.Root(), blocktree.Flavour("table"))
	require.Error(t, err)

	_, err = doc.Add(doc.Root(), blocktree.FlavourPage)
	require.Error(t, err)

	_, err = doc.Add("missing", blocktree.FlavourParagraph)
	require.Error(t, err)

	assert.Equal(t, 1, doc.Len())
}

func TestDocumentAdd_DuplicateID(t *testing.T) {
	t.Parallel()

	gen := blocktree.IDGeneratorFunc(func() blocktree.ID { return "same" })
	doc := blocktree.NewPage("", gen)

	_, err := doc.Add(doc.Root(), blocktree.FlavourParagraph)
	require.Error(t, err)
}

func TestBlockText(t *testing.T) {
	t.Parallel()

	b := &blocktree.Block{Runs: []blocktree.Run{
		{Text: "plain "},
		{Text: "bold", Marks: blocktree.MarkBold},
		{Text: " tail"},
	}}

	assert.Equal(t, "plain bold tail", b.Text())
	assert.Equal(t, "", b.Prop(blocktree.PropLanguage))
}

func TestSetProp(t *testing.T) {
	t.Parallel()

	doc := blocktree.NewPage("", nil)
	id := doc.MustAdd(doc.Root(), blocktree.FlavourCode, blocktree.Run{Text: "package main"})
	doc.SetProp(id, blocktree.PropLanguage, "go")
	doc.SetProp("missing", blocktree.PropLanguage, "go")

	b, ok := doc.Block(id)
	require.True(t, ok)
	assert.Equal(t, "go", b.Prop(blocktree.PropLanguage))
}

func TestFlavour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flavour     blocktree.Flavour
		valid       bool
		transparent bool
		hasText     bool
	}{
		{blocktree.FlavourPage, true, false, false},
		{blocktree.FlavourFrame, true, true, false},
		{blocktree.FlavourParagraph, true, false, true},
		{blocktree.FlavourCode, true, false, true},
		{blocktree.FlavourDivider, true, false, false},
		{blocktree.Flavour("database"), false, false, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.flavour), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.valid, tc.flavour.Valid())
			assert.Equal(t, tc.transparent, tc.flavour.Transparent())
			assert.Equal(t, tc.hasText, tc.flavour.HasText())
		})
	}
}

func TestMarkHas(t *testing.T) {
	t.Parallel()

	m := blocktree.MarkBold | blocktree.MarkItalic
	assert.True(t, m.Has(blocktree.MarkBold))
	assert.True(t, m.Has(blocktree.MarkBold|blocktree.MarkItalic))
	assert.False(t, m.Has(blocktree.MarkCode))
}
