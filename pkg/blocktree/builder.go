package blocktree

import (
	"fmt"
	"slices"
)

// AppendChild appends child to parent, detaching it from any previous parent.
func (d *Document) AppendChild(parent, child ID) error {
	if err := d.checkAttach(parent, child); err != nil {
		return err
	}
	d.detach(child)

	p := d.blocks[parent]
	p.Children = append(p.Children, child)
	d.blocks[child].Parent = parent
	return nil
}

// PrependChild inserts child as the first child of parent.
func (d *Document) PrependChild(parent, child ID) error {
	if err := d.checkAttach(parent, child); err != nil {
		return err
	}
	d.detach(child)

	p := d.blocks[parent]
	p.Children = slices.Insert(p.Children, 0, child)
	d.blocks[child].Parent = parent
	return nil
}

// InsertBefore inserts node before sibling. sibling must have a parent.
func (d *Document) InsertBefore(sibling, node ID) error {
	return d.insertNear(sibling, node, 0)
}

// InsertAfter inserts node after sibling. sibling must have a parent.
func (d *Document) InsertAfter(sibling, node ID) error {
	return d.insertNear(sibling, node, 1)
}

// Remove detaches id and its subtree from the document and drops them from
// the arena. The root cannot be removed.
func (d *Document) Remove(id ID) error {
	if id == d.root {
		return fmt.Errorf("remove block: cannot remove root %q", id)
	}
	if _, ok := d.blocks[id]; !ok {
		return fmt.Errorf("remove block: unknown block %q", id)
	}
	d.detach(id)

	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b, ok := d.blocks[cur]; ok {
			stack = append(stack, b.Children...)
			delete(d.blocks, cur)
		}
	}
	return nil
}

func (d *Document) insertNear(sibling, node ID, delta int) error {
	s, ok := d.blocks[sibling]
	if !ok || s.Parent == NoID {
		return fmt.Errorf("insert block: sibling %q has no parent", sibling)
	}
	parent := s.Parent
	if err := d.checkAttach(parent, node); err != nil {
		return err
	}
	if node == sibling {
		return nil
	}
	d.detach(node)

	p := d.blocks[parent]
	idx := slices.Index(p.Children, sibling) + delta
	p.Children = slices.Insert(p.Children, idx, node)
	d.blocks[node].Parent = parent
	return nil
}

// checkAttach rejects attachments that would break the tree shape.
func (d *Document) checkAttach(parent, child ID) error {
	if _, ok := d.blocks[parent]; !ok {
		return fmt.Errorf("attach block: unknown parent %q", parent)
	}
	if _, ok := d.blocks[child]; !ok {
		return fmt.Errorf("attach block: unknown child %q", child)
	}
	if child == d.root {
		return fmt.Errorf("attach block: root %q cannot be a child", child)
	}
	for cur := parent; cur != NoID; cur = d.blocks[cur].Parent {
		if cur == child {
			return fmt.Errorf("attach block: %q is an ancestor of %q", child, parent)
		}
	}
	return nil
}

func (d *Document) detach(id ID) {
	b := d.blocks[id]
	if b.Parent == NoID {
		return
	}
	if p, ok := d.blocks[b.Parent]; ok {
		p.Children = slices.DeleteFunc(p.Children, func(c ID) bool { return c == id })
	}
	b.Parent = NoID
}
