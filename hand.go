package morphic

import (
	"time"
)

// Hand is the pointer device. Its morph sits at the pointer position and
// carries the grabbed morph as its only child while dragging, so moving the
// hand moves the dragged morph with it.
//
// State machine: Idle -> ArmedForGrab (button down over a draggable morph)
// -> Dragging (pointer moved beyond the grab threshold) -> drop on release
// -> Idle.
type Hand struct {
	world *World
	morph *Morph
	state HandState

	button      MouseButton
	mods        KeyModifiers
	downPos     Point
	morphToGrab *Morph // root for grab recorded at button down
	clickTarget *Morph // morph that handles the click for the pressed button

	grabOrigin  Situation
	lastGrabbed *Morph

	hoverSet       []*Morph
	hoverBoundsSet []*Morph
}

func newHand(w *World) *Hand {
	m := NewMorph("hand")
	m.bounds = Rect{}
	m.world = w
	return &Hand{world: w, morph: m}
}

// Morph returns the morph that represents the hand in the scene.
func (h *Hand) Morph() *Morph {
	return h.morph
}

// Position returns the pointer location in world coordinates.
func (h *Hand) Position() Point {
	return h.morph.bounds.Origin
}

// State returns the drag-and-drop state.
func (h *Hand) State() HandState {
	return h.state
}

// Grabbed returns the morph being dragged, or nil.
func (h *Hand) Grabbed() *Morph {
	if len(h.morph.children) == 0 {
		return nil
	}
	return h.morph.children[0]
}

// GrabOrigin returns where the most recently grabbed morph sat before it was
// picked up. Template copies have no origin.
func (h *Hand) GrabOrigin() Situation {
	return h.grabOrigin
}

// MorphAtPointer returns the topmost morph under the pointer, or the world
// root when the pointer is outside every other morph.
func (h *Hand) MorphAtPointer() *Morph {
	if m := h.world.root.TopMorphAt(h.Position()); m != nil {
		return m
	}
	return h.world.root
}

// escalate walks from m up the parent chain and returns the first morph for
// which has reports true. Nil means no morph up to the world root handles
// the event, which makes the event a no-op.
func escalate(m *Morph, has func(*Morph) bool) *Morph {
	for ; m != nil; m = m.parent {
		if has(m) {
			return m
		}
	}
	return nil
}

func (h *Hand) pointerContext(m *Morph) PointerContext {
	pos := h.Position()
	return PointerContext{
		Morph:     m,
		Hand:      h,
		Position:  pos,
		Local:     pos.Sub(m.Position()),
		Button:    h.button,
		Modifiers: h.mods,
	}
}

// moveTo moves the hand (and anything it carries) to pos.
func (h *Hand) moveTo(pos Point) {
	h.morph.MoveBy(pos.Sub(h.Position()))
}

// --- Pointer events ---

// ProcessMouseDown handles a button press at pos. While dragging, a press
// drops the carried morph. Otherwise the morph under the pointer may be armed
// for grabbing, and the button's down handler runs on the nearest morph that
// has one.
func (h *Hand) ProcessMouseDown(pos Point, button MouseButton, mods KeyModifiers) {
	h.moveTo(pos)
	h.mods = mods
	if h.state == HandDragging {
		h.drop()
		return
	}
	h.button = button
	h.downPos = pos
	h.updateHover()

	morph := h.MorphAtPointer()
	h.morphToGrab = nil
	if button == MouseButtonLeft {
		if root := morph.rootForGrab(); root.Draggable || root.Template {
			h.morphToGrab = root
			h.state = HandArmedForGrab
		}
	}

	switch button {
	case MouseButtonLeft:
		if t := escalate(morph, func(m *Morph) bool { return m.OnMouseDownLeft != nil }); t != nil {
			t.OnMouseDownLeft(h.pointerContext(t))
		}
		h.clickTarget = escalate(morph, func(m *Morph) bool { return m.OnMouseClickLeft != nil })
	case MouseButtonRight:
		if t := escalate(morph, func(m *Morph) bool { return m.OnMouseDownRight != nil }); t != nil {
			t.OnMouseDownRight(h.pointerContext(t))
		}
		h.clickTarget = escalate(morph, func(m *Morph) bool { return m.OnMouseClickRight != nil })
	}
}

// ProcessMouseMove handles pointer motion to pos. An armed morph is grabbed
// once the displacement since button down exceeds the grab threshold.
func (h *Hand) ProcessMouseMove(pos Point, mods KeyModifiers) {
	h.mods = mods
	if h.state == HandArmedForGrab && pos.DistanceTo(h.downPos) > h.world.cfg.GrabThreshold {
		h.grabCandidate()
	}
	h.moveTo(pos)
	h.updateHover()

	morph := h.MorphAtPointer()
	if t := escalate(morph, func(m *Morph) bool { return m.OnMouseMove != nil }); t != nil {
		t.OnMouseMove(h.pointerContext(t))
	}
}

// ProcessMouseUp handles a button release at pos: a dragged morph is
// dropped, otherwise a click is delivered if the morph handling the click is
// the same one that would have handled it at button down.
func (h *Hand) ProcessMouseUp(pos Point, mods KeyModifiers) {
	h.moveTo(pos)
	h.mods = mods
	if h.state == HandDragging {
		h.drop()
	} else {
		h.click()
	}
	h.state = HandIdle
	h.button = MouseButtonNone
	h.morphToGrab = nil
	h.clickTarget = nil
	h.updateHover()
}

func (h *Hand) click() {
	morph := h.MorphAtPointer()
	var target *Morph
	switch h.button {
	case MouseButtonLeft:
		target = escalate(morph, func(m *Morph) bool { return m.OnMouseClickLeft != nil })
		if target == nil || target != h.clickTarget {
			return
		}
		target.OnMouseClickLeft(h.pointerContext(target))
	case MouseButtonRight:
		target = escalate(morph, func(m *Morph) bool { return m.OnMouseClickRight != nil })
		if target == nil || target != h.clickTarget {
			return
		}
		target.OnMouseClickRight(h.pointerContext(target))
	default:
		return
	}
	h.emit(HandEventClick, target, nil)
}

// ProcessDoubleClick delivers a double click at pos to the nearest morph
// with a double-click handler.
func (h *Hand) ProcessDoubleClick(pos Point, mods KeyModifiers) {
	h.moveTo(pos)
	h.mods = mods
	h.updateHover()
	t := escalate(h.MorphAtPointer(), func(m *Morph) bool { return m.OnMouseDoubleClick != nil })
	if t == nil {
		return
	}
	t.OnMouseDoubleClick(h.pointerContext(t))
	h.emit(HandEventDoubleClick, t, nil)
}

// ProcessMouseScroll delivers wheel deltas at pos to the nearest morph with
// a scroll handler.
func (h *Hand) ProcessMouseScroll(pos Point, dx, dy float64, mods KeyModifiers) {
	h.moveTo(pos)
	h.mods = mods
	h.updateHover()
	t := escalate(h.MorphAtPointer(), func(m *Morph) bool { return m.OnMouseScroll != nil })
	if t == nil {
		return
	}
	t.OnMouseScroll(ScrollContext{PointerContext: h.pointerContext(t), DeltaX: dx, DeltaY: dy})
}

// --- Hover ---

// updateHover diffs the ancestor chain under the pointer against the chain
// of the previous event and fires leave handlers, then enter handlers.
// The bounds chain ignores holes and transparency.
func (h *Hand) updateHover() {
	pos := h.Position()
	var chain, boundsChain []*Morph
	if top := h.world.root.TopMorphAt(pos); top != nil {
		chain = top.AllParents()
	}
	if top := h.world.root.topMorphBoundsAt(pos); top != nil {
		boundsChain = top.AllParents()
	}

	dragging := h.state == HandDragging
	for _, old := range h.hoverSet {
		if containsMorph(chain, old) {
			continue
		}
		if old.OnMouseLeave != nil {
			old.OnMouseLeave(h.pointerContext(old))
		}
		if dragging && old.OnMouseLeaveDragging != nil {
			old.OnMouseLeaveDragging(h.pointerContext(old))
		}
	}
	for _, m := range chain {
		if containsMorph(h.hoverSet, m) {
			continue
		}
		if m.OnMouseEnter != nil {
			m.OnMouseEnter(h.pointerContext(m))
		}
		if dragging && m.OnMouseEnterDragging != nil {
			m.OnMouseEnterDragging(h.pointerContext(m))
		}
	}
	h.hoverSet = chain

	for _, old := range h.hoverBoundsSet {
		if !containsMorph(boundsChain, old) && old.OnMouseLeaveBounds != nil {
			old.OnMouseLeaveBounds(h.pointerContext(old))
		}
	}
	for _, m := range boundsChain {
		if !containsMorph(h.hoverBoundsSet, m) && m.OnMouseEnterBounds != nil {
			m.OnMouseEnterBounds(h.pointerContext(m))
		}
	}
	h.hoverBoundsSet = boundsChain
}

func containsMorph(list []*Morph, m *Morph) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

// --- Grab and drop ---

// rootForGrab returns the morph that is picked up when m is grabbed: m itself
// if it is draggable or sits directly in the world or a clipping frame,
// otherwise its parent's root for grab.
func (m *Morph) rootForGrab() *Morph {
	p := m.parent
	if p == nil || m.Draggable || p.ClipsChildren || (p.world != nil && p.parent == nil) {
		return m
	}
	return p.rootForGrab()
}

func (h *Hand) grabCandidate() {
	m := h.morphToGrab
	h.morphToGrab = nil
	if m == nil || m.World() != h.world {
		h.state = HandIdle
		return
	}
	if m.Template {
		c := m.FullCopy()
		c.Template = false
		c.Draggable = true
		if m.OnTemplateCopy != nil {
			m.OnTemplateCopy(c)
		}
		h.Grab(c)
		h.grabOrigin = Situation{}
		return
	}
	h.Grab(m)
}

// Grab picks m up: it is detached from its parent and carried by the hand
// until the next drop. The former parent's OnGrabbedFrom runs after the
// detach. A snapshot of the morph's subtree is drawn while dragging.
func (h *Hand) Grab(m *Morph) {
	if h.state == HandDragging {
		return
	}
	h.grabOrigin = m.Situation()
	oldParent := m.parent
	h.morph.AddChild(m)
	h.lastGrabbed = m
	h.state = HandDragging
	h.clickTarget = nil

	m.dragImage, m.dragOffset = m.FullImage(h.world.surface)
	m.dragOffset = m.dragOffset.Sub(m.Position())

	if oldParent != nil && oldParent.OnGrabbedFrom != nil {
		oldParent.OnGrabbedFrom(DropContext{Morph: oldParent, Dropped: m, Hand: h})
	}
	h.emit(HandEventGrab, m, oldParent)
}

// DropTargetFor returns the morph that accepts m at the pointer: the morph
// under the pointer or its nearest ancestor whose WantsDropOf accepts m. The
// world root accepts everything, so a target always exists.
func (h *Hand) DropTargetFor(m *Morph) *Morph {
	target := h.MorphAtPointer()
	for !target.wantsDropOf(m) {
		target = target.parent
	}
	return target
}

func (h *Hand) drop() {
	m := h.Grabbed()
	if m == nil {
		h.state = HandIdle
		return
	}
	h.state = HandDropped
	defer func() { h.state = HandIdle }()
	target := h.DropTargetFor(m)
	m.dragImage = nil
	target.AddChild(m)

	ctx := DropContext{Morph: m, Dropped: m, Hand: h}
	if m.OnJustDropped != nil {
		m.OnJustDropped(ctx)
	}
	if target.OnDrop != nil {
		ctx.Morph = target
		target.OnDrop(ctx)
	}

	h.world.stats.Drops++
	if h.world.metrics != nil {
		h.world.metrics.Drops.Inc()
	}
	h.emit(HandEventDrop, m, target)
}

// SlideBack glides the most recently dropped morph back to where it was
// grabbed. Higher-level policy calls it when it rejects a drop, typically
// from an OnDrop handler. Template copies are destroyed instead.
func (h *Hand) SlideBack(duration time.Duration, onComplete func()) {
	m := h.lastGrabbed
	if m == nil || h.Grabbed() == m {
		return
	}
	h.lastGrabbed = nil
	sit := h.grabOrigin
	h.grabOrigin = Situation{}
	h.emit(HandEventSlideBack, m, sit.Origin)
	m.SlideBackTo(sit, duration, onComplete)
}

// drawOn paints the carried morph from its drag snapshot, or in full when no
// snapshot could be taken.
func (h *Hand) drawOn(s Surface, clip Rect) {
	for _, m := range h.morph.children {
		if m.dragImage == nil {
			m.FullDrawOn(s, clip)
			continue
		}
		s.Save()
		s.Clip(clip)
		s.DrawSurface(m.dragImage, m.Position().Add(m.dragOffset), 1)
		s.Restore()
	}
}

func (h *Hand) emit(t HandEventType, m, target *Morph) {
	if h.world.sink == nil {
		return
	}
	ev := HandEvent{Type: t, X: h.Position().X, Y: h.Position().Y, Button: h.button}
	if m != nil {
		ev.MorphID = m.ID
	}
	if target != nil {
		ev.TargetID = target.ID
	}
	h.world.sink.EmitEvent(ev)
}
