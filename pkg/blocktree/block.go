// Package blocktree is an arena-backed document model: blocks are records
// addressed by ID handles and every parent/child/sibling relation is a lookup
// into the arena.
package blocktree

import "strings"

// ID is the stable handle of a block. It is unique within a document and
// never changes for the lifetime of the block.
type ID string

// NoID is the zero handle; traversal returns it at either end of the document.
const NoID ID = ""

// Flavour classifies a block. The set is closed.
type Flavour string

// Block flavours.
const (
	FlavourPage      Flavour = "page"
	FlavourFrame     Flavour = "frame"
	FlavourParagraph Flavour = "paragraph"
	FlavourHeading   Flavour = "heading"
	FlavourList      Flavour = "list"
	FlavourCode      Flavour = "code"
	FlavourQuote     Flavour = "quote"
	FlavourDivider   Flavour = "divider"
)

// Valid returns true if f belongs to the closed flavour set.
func (f Flavour) Valid() bool {
	switch f {
	case FlavourPage, FlavourFrame, FlavourParagraph, FlavourHeading,
		FlavourList, FlavourCode, FlavourQuote, FlavourDivider:
		return true
	default:
		return false
	}
}

// Transparent returns true for containers that reading-order traversal
// passes through without ever yielding them.
func (f Flavour) Transparent() bool {
	return f == FlavourFrame
}

// HasText returns true for flavours rendered with an editable text region.
func (f Flavour) HasText() bool {
	switch f {
	case FlavourParagraph, FlavourHeading, FlavourList, FlavourCode, FlavourQuote:
		return true
	default:
		return false
	}
}

// Mark is an inline formatting flag carried by a Run.
type Mark uint8

// Inline marks.
const (
	MarkBold Mark = 1 << iota
	MarkItalic
	MarkCode
	MarkStrike
)

// Has reports whether all bits of other are set.
func (m Mark) Has(other Mark) bool {
	return m&other == other
}

// Run is a span of text sharing the same marks.
type Run struct {
	Text  string
	Marks Mark
}

// Block is a single record in the arena.
type Block struct {
	ID      ID
	Flavour Flavour

	// Parent is NoID for the root.
	Parent ID

	// Children in reading order.
	Children []ID

	// Runs hold the block's text content.
	Runs []Run

	// Props holds flavour-specific attributes (heading level, code language, list style).
	Props map[string]string
}

// Text returns the concatenated text of all runs.
func (b *Block) Text() string {
	if len(b.Runs) == 1 {
		return b.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Prop returns a property value or "" when unset.
func (b *Block) Prop(key string) string {
	if b.Props == nil {
		return ""
	}
	return b.Props[key]
}

// Common property keys.
const (
	PropLevel    = "level"
	PropLanguage = "language"
	PropListType = "type"
)
