package blocktree

// Model is the read-only view of a document tree that traversal and
// selection code depend on. *Document implements it.
type Model interface {
	// Root returns the document root, or NoID for an empty model.
	Root() ID

	// Exists reports whether id names a block in the model.
	Exists(id ID) bool

	// Parent returns NoID for the root or an unknown id.
	Parent(id ID) ID

	// Children returns child ids in reading order.
	Children(id ID) []ID

	NextSibling(id ID) ID
	PreviousSibling(id ID) ID

	Flavour(id ID) Flavour
}
