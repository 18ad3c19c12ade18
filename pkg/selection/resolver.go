package selection

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/blocktree"
)

const (
	opCurrentRange = "current-range"
	opStartBlock   = "resolve-start-block"
	opResolveRange = "resolve-range"
)

// Surface is the part of the rendering surface the resolver queries.
type Surface interface {
	// BlockID returns the id carried by a marked root.
	BlockID(n *html.Node) (blocktree.ID, bool)

	// ClosestMarked returns the nearest marked root at or above n.
	ClosestMarked(n *html.Node) *html.Node

	// MarkedUnder returns the marked roots strictly below n in document order.
	MarkedUnder(n *html.Node) []*html.Node

	// TitleRegion returns the title container of a page's marked root.
	TitleRegion(block *html.Node) *html.Node

	// TextRegion returns the rich-text container of a block's marked root.
	TextRegion(block *html.Node) *html.Node
}

// Resolver maps selections and ranges to blocks.
type Resolver struct {
	model    blocktree.Model
	surface  Surface
	logger   *log.Logger
	warnings []blockerr.AmbiguityWarning
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger ambiguity warnings are written to.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a resolver reading model and surface.
func NewResolver(model blocktree.Model, surface Surface, opts ...Option) *Resolver {
	r := &Resolver{
		model:   model,
		surface: surface,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Warnings returns the ambiguity warnings reported so far.
func (r *Resolver) Warnings() []blockerr.AmbiguityWarning {
	return r.warnings
}

// CurrentRange returns the first range of sel. A selection with more than
// one range is reported as an ambiguity and still resolves to the first.
func (r *Resolver) CurrentRange(sel *Selection) (*Range, error) {
	if sel == nil {
		return nil, blockerr.Precondition(opCurrentRange, blockerr.ReasonNoSelection, "")
	}
	switch n := sel.RangeCount(); {
	case n == 0:
		return nil, blockerr.Precondition(opCurrentRange, blockerr.ReasonNoRanges, "")
	case n > 1:
		r.warn(opCurrentRange, fmt.Sprintf("selection has %d ranges, using the first", n))
	}
	return sel.Ranges[0], nil
}

// ResolveStartBlock returns the block containing the start of the current
// range of sel.
func (r *Resolver) ResolveStartBlock(sel *Selection) (blocktree.ID, error) {
	rng, err := r.CurrentRange(sel)
	if err != nil {
		return blocktree.NoID, err
	}
	return r.startBlock(rng)
}

// ResolveRange returns the blocks rng touches, in document order.
//
// The search starts at the common ancestor of the range. When that node is
// not itself a marked root, it widens to the parent of the closest marked
// ancestor so that sibling blocks are considered together. With more than
// one candidate only those whose title or rich-text region the range
// intersects are kept, and frames are never kept. With one candidate or
// none the result is the block containing the range start.
//
// Candidates are strictly below the search node, so a marked common
// ancestor is never part of the result. A range from a block into its own
// nested blocks therefore resolves to the start block alone when the block
// has one marked descendant, dropping the end block, and omits the start
// block when it has several.
func (r *Resolver) ResolveRange(rng *Range) ([]blocktree.ID, error) {
	if rng == nil {
		return nil, blockerr.Precondition(opResolveRange, blockerr.ReasonNoRanges, "")
	}

	ancestor := elementOf(rng.CommonAncestor())
	if ancestor == nil {
		return nil, blockerr.Precondition(opResolveRange, blockerr.ReasonNoMarkedAncestor, "")
	}
	if _, marked := r.surface.BlockID(ancestor); !marked {
		if closest := r.surface.ClosestMarked(ancestor); closest != nil && closest.Parent != nil {
			ancestor = closest.Parent
		}
	}

	candidates := r.surface.MarkedUnder(ancestor)
	if len(candidates) <= 1 {
		id, err := r.startBlock(rng)
		if err != nil {
			return nil, err
		}
		return []blocktree.ID{id}, nil
	}

	blocks := make([]blocktree.ID, 0, len(candidates))
	for _, node := range candidates {
		id, err := r.blockOf(opResolveRange, node)
		if err != nil {
			return nil, err
		}
		flavour := r.model.Flavour(id)
		if flavour.Transparent() {
			continue
		}

		var region *html.Node
		if flavour == blocktree.FlavourPage {
			region = r.surface.TitleRegion(node)
		} else {
			region = r.surface.TextRegion(node)
		}
		if region != nil && rng.IntersectsNode(region) {
			blocks = append(blocks, id)
		}
	}

	r.logger.Debug("resolved range",
		logging.FieldOp, opResolveRange,
		logging.FieldBlocks, len(blocks))
	return blocks, nil
}

func (r *Resolver) startBlock(rng *Range) (blocktree.ID, error) {
	marked := r.surface.ClosestMarked(elementOf(rng.Start().Node))
	if marked == nil {
		return blocktree.NoID, blockerr.Precondition(opStartBlock, blockerr.ReasonNoMarkedAncestor, "")
	}
	return r.blockOf(opStartBlock, marked)
}

func (r *Resolver) blockOf(op string, marked *html.Node) (blocktree.ID, error) {
	id, ok := r.surface.BlockID(marked)
	if !ok {
		return blocktree.NoID, blockerr.Precondition(op, blockerr.ReasonNoMarkedAncestor, "")
	}
	if !r.model.Exists(id) {
		return blocktree.NoID, blockerr.Precondition(op, blockerr.ReasonUnknownBlock, string(id))
	}
	return id, nil
}

func (r *Resolver) warn(op, msg string) {
	w := blockerr.AmbiguityWarning{Op: op, Message: msg}
	r.warnings = append(r.warnings, w)
	r.logger.Warn(msg, logging.FieldOp, op)
}

// elementOf returns n, or its nearest element ancestor when n is a text node.
func elementOf(n *html.Node) *html.Node {
	for n != nil && n.Type != html.ElementNode && n.Type != html.DocumentNode {
		n = n.Parent
	}
	return n
}
