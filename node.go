package morphic

// --- Tree manipulation ---
//
// A morph appears in its parent's child list iff its parent link points to
// that parent. Every mutation below keeps both sides in step; in debug mode
// the links of the touched morphs are re-verified after each mutation.

// AddChild appends child as the topmost child of this morph.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, is a world root or hand, or is an ancestor of this
// morph (cycle).
func (m *Morph) AddChild(child *Morph) {
	m.AddChildAt(child, -1)
}

// AddChildAt inserts child at the given index; a negative index appends.
// Index 0 is the bottommost position in paint order.
// Same reparenting and cycle-check behavior as AddChild.
func (m *Morph) AddChildAt(child *Morph, index int) {
	if child == nil {
		panic("morphic: cannot add nil child")
	}
	if child.world != nil {
		panic("morphic: cannot reparent a world root or hand")
	}
	if debugEnabled(m) {
		debugCheckDestroyed(m, "AddChild (parent)")
		debugCheckDestroyed(child, "AddChild (child)")
	}
	if isAncestor(child, m) {
		panic("morphic: adding child would create a cycle")
	}
	// Indices count the child list without child when it is already here;
	// len(children) still means append.
	n := len(m.children)
	if child.parent == m {
		n--
	}
	if index < 0 || index == len(m.children) {
		index = n
	}
	if index > n {
		panic("morphic: child index out of range")
	}
	if child.parent != nil {
		child.parent.unlinkChild(child)
	}
	child.parent = m
	m.children = append(m.children, nil)
	copy(m.children[index+1:], m.children[index:])
	m.children[index] = child
	child.FullChanged()
	if debugEnabled(m) {
		debugCheckLinks(m)
		debugCheckTreeDepth(child)
		debugCheckChildCount(m)
	}
}

// RemoveChild detaches child from this morph, reporting its full bounds as
// damage. Panics if child's parent is not this morph.
func (m *Morph) RemoveChild(child *Morph) {
	if child.parent != m {
		panic("morphic: child's parent is not this morph")
	}
	m.unlinkChild(child)
	if debugEnabled(m) {
		debugCheckLinks(m)
	}
}

// RemoveChildAt removes and returns the child at the given index.
func (m *Morph) RemoveChildAt(index int) *Morph {
	if index < 0 || index >= len(m.children) {
		panic("morphic: child index out of range")
	}
	child := m.children[index]
	m.unlinkChild(child)
	return child
}

// RemoveFromParent detaches this morph from its parent.
// No-op if this morph has no parent.
func (m *Morph) RemoveFromParent() {
	if m.parent == nil {
		return
	}
	m.parent.RemoveChild(m)
}

// RemoveChildren detaches all children from this morph.
// Children are NOT destroyed.
func (m *Morph) RemoveChildren() {
	if len(m.children) == 0 {
		return
	}
	m.FullChanged()
	for i, child := range m.children {
		child.parent = nil
		m.children[i] = nil
	}
	m.children = m.children[:0]
}

// Children returns the child list in paint order (last is topmost).
// The returned slice MUST NOT be mutated by the caller.
func (m *Morph) Children() []*Morph {
	return m.children
}

// NumChildren returns the number of children.
func (m *Morph) NumChildren() int {
	return len(m.children)
}

// ChildAt returns the child at the given index.
func (m *Morph) ChildAt(index int) *Morph {
	return m.children[index]
}

// Parent returns the owning morph, or nil when detached.
func (m *Morph) Parent() *Morph {
	return m.parent
}

// Root returns the topmost ancestor (the morph itself when detached).
func (m *Morph) Root() *Morph {
	r := m
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// World returns the World this morph is attached to, either through the
// world root or through the hand. Returns nil for a detached subtree.
func (m *Morph) World() *World {
	return m.Root().world
}

// SetChildIndex moves child to a new index among its siblings.
func (m *Morph) SetChildIndex(child *Morph, index int) {
	if child.parent != m {
		panic("morphic: child's parent is not this morph")
	}
	nc := len(m.children)
	if index < 0 || index >= nc {
		panic("morphic: child index out of range")
	}
	oldIndex := m.indexOf(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(m.children[oldIndex:], m.children[oldIndex+1:index+1])
	} else {
		copy(m.children[index+1:], m.children[index:oldIndex])
	}
	m.children[index] = child
	child.FullChanged()
}

// ComeToFront makes the morph the topmost child of its parent.
func (m *Morph) ComeToFront() {
	if m.parent == nil {
		return
	}
	m.parent.SetChildIndex(m, len(m.parent.children)-1)
}

// AllChildren returns the morph and all of its descendants in depth-first
// pre-order (paint order).
func (m *Morph) AllChildren() []*Morph {
	return m.appendAll(nil)
}

func (m *Morph) appendAll(buf []*Morph) []*Morph {
	buf = append(buf, m)
	for _, child := range m.children {
		buf = child.appendAll(buf)
	}
	return buf
}

// AllParents returns the morph followed by each ancestor up to the root.
func (m *Morph) AllParents() []*Morph {
	var out []*Morph
	for p := m; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// ParentThat returns the nearest strict ancestor satisfying pred, or nil.
func (m *Morph) ParentThat(pred func(*Morph) bool) *Morph {
	for p := m.parent; p != nil; p = p.parent {
		if pred(p) {
			return p
		}
	}
	return nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Morph) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (m *Morph) indexOf(child *Morph) int {
	for i, c := range m.children {
		if c == child {
			return i
		}
	}
	return -1
}

// unlinkChild reports damage for child, then removes it from m.children and
// clears its parent link. Uses copy+nil to avoid retaining a dangling pointer
// in the backing array.
func (m *Morph) unlinkChild(child *Morph) {
	child.FullChanged()
	i := m.indexOf(child)
	if i >= 0 {
		copy(m.children[i:], m.children[i+1:])
		m.children[len(m.children)-1] = nil
		m.children = m.children[:len(m.children)-1]
	}
	child.parent = nil
}
