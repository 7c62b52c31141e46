package morphic

// TopMorphAt returns the topmost visible morph in this subtree at p (world
// coordinates). Children are searched in reverse paint order. A candidate
// must contain p, must not have a hole at p and, when FreeForm, must be
// opaque at p. Invisible subtrees and points outside a clipping morph are
// skipped entirely. Returns nil when nothing qualifies.
func (m *Morph) TopMorphAt(p Point) *Morph {
	if !m.visible {
		return nil
	}
	if m.ClipsChildren && !m.bounds.Contains(p) {
		return nil
	}
	for i := len(m.children) - 1; i >= 0; i-- {
		if hit := m.children[i].TopMorphAt(p); hit != nil {
			return hit
		}
	}
	if !m.bounds.Contains(p) || m.isInHole(p) {
		return nil
	}
	if m.FreeForm && m.isTransparentAt(p) {
		return nil
	}
	return m
}

// topMorphBoundsAt is TopMorphAt using bounds only: holes and per-pixel
// transparency are ignored.
func (m *Morph) topMorphBoundsAt(p Point) *Morph {
	if !m.visible {
		return nil
	}
	if m.ClipsChildren && !m.bounds.Contains(p) {
		return nil
	}
	for i := len(m.children) - 1; i >= 0; i-- {
		if hit := m.children[i].topMorphBoundsAt(p); hit != nil {
			return hit
		}
	}
	if m.bounds.Contains(p) {
		return m
	}
	return nil
}

// MorphsAt returns every visible morph in this subtree whose bounds contain
// p, topmost first. Holes and transparency are ignored.
func (m *Morph) MorphsAt(p Point) []*Morph {
	return m.appendMorphsAt(p, nil)
}

func (m *Morph) appendMorphsAt(p Point, buf []*Morph) []*Morph {
	if !m.visible {
		return buf
	}
	if m.ClipsChildren && !m.bounds.Contains(p) {
		return buf
	}
	for i := len(m.children) - 1; i >= 0; i-- {
		buf = m.children[i].appendMorphsAt(p, buf)
	}
	if m.bounds.Contains(p) {
		buf = append(buf, m)
	}
	return buf
}
