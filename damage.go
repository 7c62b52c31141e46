package morphic

// addDamage records r as needing a repaint. Empty rectangles are dropped.
func (w *World) addDamage(r Rect) {
	if r.IsEmpty() {
		return
	}
	w.damage = append(w.damage, r)
}

// Damage returns the pending damage list. The returned slice MUST NOT be
// mutated.
func (w *World) Damage() []Rect {
	return w.damage
}

// condenseDamages merges damage rectangles. Each rectangle is merged into the
// first already-kept entry that lies within proximity of it, or kept as a new
// entry. A list longer than limit collapses into one bounding rectangle.
//
// The result reuses the backing array of damage.
func condenseDamages(damage []Rect, proximity float64, limit int) []Rect {
	if len(damage) < 2 {
		return damage
	}
	if len(damage) > limit {
		all := damage[0]
		for _, r := range damage[1:] {
			all = all.Merge(r)
		}
		damage[0] = all
		return damage[:1]
	}
	out := damage[:0]
	for _, r := range damage {
		merged := false
		for i := range out {
			if out[i].IsNearTo(r, proximity) {
				out[i] = out[i].Merge(r)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	return out
}
