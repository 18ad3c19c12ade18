package blocktree

import (
	"fmt"
	"slices"
)

// Document is an arena of blocks rooted at a single page block.
type Document struct {
	gen    IDGenerator
	root   ID
	title  string
	blocks map[ID]*Block
}

// New creates an empty document. A nil generator means NewAutoIncrement().
func New(gen IDGenerator) *Document {
	if gen == nil {
		gen = NewAutoIncrement()
	}
	return &Document{
		gen:    gen,
		blocks: make(map[ID]*Block),
	}
}

// NewPage creates a document whose root is a page block with the given title.
func NewPage(title string, gen IDGenerator) *Document {
	doc := New(gen)
	id := doc.gen.Next()
	doc.blocks[id] = &Block{ID: id, Flavour: FlavourPage}
	doc.root = id
	doc.title = title
	return doc
}

// Root implements Model.
func (d *Document) Root() ID {
	return d.root
}

// Title returns the page title.
func (d *Document) Title() string {
	return d.title
}

// SetTitle replaces the page title.
func (d *Document) SetTitle(title string) {
	d.title = title
}

// Len returns the number of blocks in the arena.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Block returns the record for id.
func (d *Document) Block(id ID) (*Block, bool) {
	b, ok := d.blocks[id]
	return b, ok
}

// Exists implements Model.
func (d *Document) Exists(id ID) bool {
	_, ok := d.blocks[id]
	return ok
}

// Parent implements Model.
func (d *Document) Parent(id ID) ID {
	if b, ok := d.blocks[id]; ok {
		return b.Parent
	}
	return NoID
}

// Children implements Model. The returned slice must not be modified.
func (d *Document) Children(id ID) []ID {
	if b, ok := d.blocks[id]; ok {
		return b.Children
	}
	return nil
}

// NextSibling implements Model.
func (d *Document) NextSibling(id ID) ID {
	siblings, idx := d.position(id)
	if idx < 0 || idx+1 >= len(siblings) {
		return NoID
	}
	return siblings[idx+1]
}

// PreviousSibling implements Model.
func (d *Document) PreviousSibling(id ID) ID {
	siblings, idx := d.position(id)
	if idx <= 0 {
		return NoID
	}
	return siblings[idx-1]
}

// Flavour implements Model. Unknown ids have an empty flavour.
func (d *Document) Flavour(id ID) Flavour {
	if b, ok := d.blocks[id]; ok {
		return b.Flavour
	}
	return ""
}

// Text returns the block's text, or the title for the page block.
func (d *Document) Text(id ID) string {
	b, ok := d.blocks[id]
	if !ok {
		return ""
	}
	if id == d.root && b.Flavour == FlavourPage {
		return d.title
	}
	return b.Text()
}

// Add creates a block of the given flavour and appends it to parent.
func (d *Document) Add(parent ID, flavour Flavour, runs ...Run) (ID, error) {
	if !flavour.Valid() {
		return NoID, fmt.Errorf("add block: invalid flavour %q", flavour)
	}
	if flavour == FlavourPage {
		return NoID, fmt.Errorf("add block: a document has exactly one %s block", FlavourPage)
	}
	if _, ok := d.blocks[parent]; !ok {
		return NoID, fmt.Errorf("add block: unknown parent %q", parent)
	}

	id := d.gen.Next()
	if _, dup := d.blocks[id]; dup {
		return NoID, fmt.Errorf("add block: id generator produced duplicate id %q", id)
	}
	d.blocks[id] = &Block{ID: id, Flavour: flavour, Runs: runs}
	if err := d.AppendChild(parent, id); err != nil {
		delete(d.blocks, id)
		return NoID, err
	}
	return id, nil
}

// MustAdd is Add for builders and tests that construct known-good trees.
func (d *Document) MustAdd(parent ID, flavour Flavour, runs ...Run) ID {
	id, err := d.Add(parent, flavour, runs...)
	if err != nil {
		panic(err)
	}
	return id
}

// SetProp sets a property on a block.
func (d *Document) SetProp(id ID, key, value string) {
	b, ok := d.blocks[id]
	if !ok {
		return
	}
	if b.Props == nil {
		b.Props = make(map[string]string)
	}
	b.Props[key] = value
}

// position returns the sibling list containing id and its index in it.
func (d *Document) position(id ID) ([]ID, int) {
	b, ok := d.blocks[id]
	if !ok || b.Parent == NoID {
		return nil, -1
	}
	parent, ok := d.blocks[b.Parent]
	if !ok {
		return nil, -1
	}
	return parent.Children, slices.Index(parent.Children, id)
}
