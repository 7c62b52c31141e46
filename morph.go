package morphic

import (
	"math"
	"slices"
	"time"
)

// --- ID counter ---

// morphIDCounter is a plain counter (no atomic; morphic is single-threaded).
var morphIDCounter uint32

func nextMorphID() uint32 {
	morphIDCounter++
	return morphIDCounter
}

// --- Morph ---

// Morph is the fundamental scene graph element: a drawable, hit-testable,
// steppable tree node whose bounds are kept in absolute world coordinates.
// Moving a morph therefore moves every descendant's bounds as well.
//
// Optional capabilities are plain fields that are nil by default. The Hand
// escalates pointer events up the parent chain until it finds a morph whose
// handler is set; the World root is the implicit no-op at the top.
type Morph struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Morph
	children []*Morph
	world    *World // set on the world root and the hand morph only

	// Geometry (absolute)
	bounds Rect
	holes  []Rect // relative to bounds.Origin

	// Appearance
	Color   Color
	Alpha   float64
	visible bool
	Drawer  Drawable

	// Behaviour flags
	ClipsChildren bool // frame: children are clipped to this morph's bounds
	FreeForm      bool // hit-testing uses per-pixel alpha
	Draggable     bool // grabbed by the hand once the grab threshold is exceeded
	Template      bool // grabbing produces a copy instead of moving the original
	AcceptsDrops  bool // default answer of WantsDropOf

	// Image cache (per morph, never shared)
	cachesImage   bool
	cache         Surface
	needsRerender bool

	// Drag snapshot, valid while the morph is held by a Hand
	dragImage  Surface
	dragOffset Point

	// Stepping
	FPS       float64 // 0 steps every cycle
	lastStep  time.Time
	nextSteps []func()

	// Metadata
	UserData any

	// Per-morph capabilities (nil by default; zero cost when unused)
	OnStep         func(m *Morph)
	FixLayout      func(m *Morph)
	OnChildChanged func(child *Morph)
	OnTemplateCopy func(copy *Morph)

	OnMouseDownLeft      func(PointerContext)
	OnMouseDownRight     func(PointerContext)
	OnMouseClickLeft     func(PointerContext)
	OnMouseClickRight    func(PointerContext)
	OnMouseDoubleClick   func(PointerContext)
	OnMouseMove          func(PointerContext)
	OnMouseScroll        func(ScrollContext)
	OnMouseEnter         func(PointerContext)
	OnMouseLeave         func(PointerContext)
	OnMouseEnterBounds   func(PointerContext)
	OnMouseLeaveBounds   func(PointerContext)
	OnMouseEnterDragging func(PointerContext)
	OnMouseLeaveDragging func(PointerContext)

	OnKeyDown func(KeyContext)
	OnKeyUp   func(KeyContext)

	WantsDropOf   func(candidate *Morph) bool
	OnDrop        func(DropContext) // a morph was dropped onto this one
	OnGrabbedFrom func(DropContext) // a child was grabbed away from this one
	OnJustDropped func(DropContext) // this morph has just been dropped

	OnDroppedImage  func(FileDropContext)
	OnDroppedAudio  func(FileDropContext)
	OnDroppedText   func(FileDropContext)
	OnDroppedBinary func(FileDropContext)

	// Internal
	destroyed bool
}

// NewMorph creates a detached 50x40 grey morph at the origin.
func NewMorph(name string) *Morph {
	return &Morph{
		ID:      nextMorphID(),
		Name:    name,
		bounds:  NewRect(0, 0, 50, 40),
		Color:   defaultMorphColor,
		Alpha:   1,
		visible: true,
	}
}

// --- Geometry ---

// Bounds returns the morph's rectangle in world coordinates.
func (m *Morph) Bounds() Rect { return m.bounds }

// Position returns the top-left corner of the morph.
func (m *Morph) Position() Point { return m.bounds.Origin }

// Extent returns the size of the morph.
func (m *Morph) Extent() Point { return m.bounds.Extent() }

// Width returns the morph's width.
func (m *Morph) Width() float64 { return m.bounds.Width() }

// Height returns the morph's height.
func (m *Morph) Height() float64 { return m.bounds.Height() }

// Center returns the midpoint of the morph's bounds.
func (m *Morph) Center() Point { return m.bounds.Center() }

// MoveBy translates this morph and every descendant by delta. Damage is
// reported for the full bounds before and after the move.
func (m *Morph) MoveBy(delta Point) {
	if delta == (Point{}) {
		return
	}
	m.FullChanged()
	m.translateSubtree(delta)
	m.FullChanged()
}

// translateSubtree moves bounds without reporting damage.
func (m *Morph) translateSubtree(delta Point) {
	m.bounds = m.bounds.Translate(delta)
	for _, child := range m.children {
		child.translateSubtree(delta)
	}
}

// SetPosition moves the morph (and its subtree) so its origin is p.
func (m *Morph) SetPosition(p Point) {
	m.MoveBy(p.Sub(m.bounds.Origin))
}

// SetLeft moves the morph horizontally so its left edge is x.
func (m *Morph) SetLeft(x float64) {
	m.MoveBy(Point{X: x - m.bounds.Origin.X})
}

// SetTop moves the morph vertically so its top edge is y.
func (m *Morph) SetTop(y float64) {
	m.MoveBy(Point{Y: y - m.bounds.Origin.Y})
}

// SetCenter moves the morph so its center is p.
func (m *Morph) SetCenter(p Point) {
	m.MoveBy(p.Sub(m.Center()))
}

// SetExtent resizes the morph, keeping its origin. Negative components are
// clamped to zero so Origin <= Corner always holds. FixLayout runs after the
// size changed.
func (m *Morph) SetExtent(ext Point) {
	ext = Point{math.Max(ext.X, 0), math.Max(ext.Y, 0)}
	if ext == m.bounds.Extent() {
		return
	}
	m.Changed()
	m.bounds.Corner = m.bounds.Origin.Add(ext)
	m.needsRerender = true
	if m.FixLayout != nil {
		m.FixLayout(m)
	}
	m.Changed()
}

// SetWidth resizes the morph horizontally.
func (m *Morph) SetWidth(w float64) {
	m.SetExtent(Point{w, m.Height()})
}

// SetHeight resizes the morph vertically.
func (m *Morph) SetHeight(h float64) {
	m.SetExtent(Point{m.Width(), h})
}

// SetBounds moves and resizes the morph to r.
func (m *Morph) SetBounds(r Rect) {
	m.SetPosition(r.Origin)
	m.SetExtent(r.Extent())
}

// FullBounds returns this morph's bounds merged with the full bounds of all
// visible children. A morph that clips its children reports only its own
// bounds.
func (m *Morph) FullBounds() Rect {
	result := m.bounds
	if m.ClipsChildren {
		return result
	}
	for _, child := range m.children {
		if child.visible {
			result = result.Merge(child.FullBounds())
		}
	}
	return result
}

// VisibleBounds returns the bounds clipped by every clipping ancestor.
func (m *Morph) VisibleBounds() Rect {
	return m.clipToFrames(m.bounds)
}

func (m *Morph) clipToFrames(r Rect) Rect {
	for p := m.parent; p != nil; p = p.parent {
		if p.ClipsChildren {
			r = r.Intersect(p.bounds)
		}
	}
	return r
}

// --- Holes ---

// SetHoles replaces the morph's hit-test holes. Each hole is relative to the
// morph's top-left corner.
func (m *Morph) SetHoles(holes ...Rect) {
	m.holes = slices.Clone(holes)
	m.Changed()
}

// Holes returns the hit-test holes. The returned slice MUST NOT be mutated.
func (m *Morph) Holes() []Rect {
	return m.holes
}

func (m *Morph) isInHole(p Point) bool {
	local := p.Sub(m.bounds.Origin)
	for _, h := range m.holes {
		if h.Contains(local) {
			return true
		}
	}
	return false
}

// --- Damage ---

// Changed reports the morph's visible bounds as damage to its World and
// notifies the parent through OnChildChanged.
func (m *Morph) Changed() {
	if w := m.World(); w != nil {
		w.addDamage(m.VisibleBounds())
	}
	if m.parent != nil {
		m.parent.childChanged(m)
	}
}

// FullChanged is like Changed but reports the full bounds of the subtree.
func (m *Morph) FullChanged() {
	if w := m.World(); w != nil {
		w.addDamage(m.clipToFrames(m.FullBounds()))
	}
	if m.parent != nil {
		m.parent.childChanged(m)
	}
}

func (m *Morph) childChanged(child *Morph) {
	if m.OnChildChanged != nil {
		m.OnChildChanged(child)
	}
}

// Rerender discards the cached image (if any) and reports damage.
func (m *Morph) Rerender() {
	m.needsRerender = true
	m.Changed()
}

// SetCachesImage turns the per-morph image cache on or off.
func (m *Morph) SetCachesImage(enabled bool) {
	m.cachesImage = enabled
	if !enabled {
		m.cache = nil
	}
	m.needsRerender = true
	m.Changed()
}

// CachesImage reports whether rendering goes through the image cache.
func (m *Morph) CachesImage() bool {
	return m.cachesImage
}

// --- Visibility ---

// IsVisible reports whether the morph is drawn and hit-tested.
func (m *Morph) IsVisible() bool {
	return m.visible
}

// Show makes the morph visible.
func (m *Morph) Show() {
	if m.visible {
		return
	}
	m.visible = true
	m.FullChanged()
}

// Hide makes the morph and its subtree invisible.
func (m *Morph) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	m.FullChanged()
}

// Toggle flips visibility.
func (m *Morph) Toggle() {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
}

// --- Stepping ---

// AddNextStep queues fn to run once, right before the morph's next step.
// Any number of actions may be pending; they run in the order they were
// added. Actions queued while the queue drains run on the following step.
func (m *Morph) AddNextStep(fn func()) {
	m.nextSteps = append(m.nextSteps, fn)
}

// PendingSteps returns the number of queued one-shot actions.
func (m *Morph) PendingSteps() int {
	return len(m.nextSteps)
}

// wantsStep reports whether the morph has anything to do in the step phase.
func (m *Morph) wantsStep() bool {
	return m.OnStep != nil || len(m.nextSteps) > 0
}

// --- Drop targets ---

func (m *Morph) wantsDropOf(candidate *Morph) bool {
	if m.world != nil && m.parent == nil {
		return true // the world root accepts everything
	}
	if m.WantsDropOf != nil {
		return m.WantsDropOf(candidate)
	}
	return m.AcceptsDrops
}

// --- Situation ---

// Situation records where a morph sits in its parent so it can be put back.
type Situation struct {
	Origin   *Morph
	Position Point // relative to Origin's position
}

// Situation returns the morph's current placement. The zero Situation is
// returned for a detached morph.
func (m *Morph) Situation() Situation {
	if m.parent == nil {
		return Situation{}
	}
	return Situation{Origin: m.parent, Position: m.Position().Sub(m.parent.Position())}
}

// --- Copying ---

// FullCopy returns a detached deep copy of the morph and its subtree. The
// copy shares Drawer, handlers and UserData with the original; caches,
// pending steps and drag state are not copied.
func (m *Morph) FullCopy() *Morph {
	c := *m
	c.ID = nextMorphID()
	c.parent = nil
	c.world = nil
	c.holes = slices.Clone(m.holes)
	c.cache = nil
	c.needsRerender = true
	c.dragImage = nil
	c.dragOffset = Point{}
	c.lastStep = time.Time{}
	c.nextSteps = nil
	c.children = make([]*Morph, 0, len(m.children))
	for _, child := range m.children {
		cc := child.FullCopy()
		cc.parent = &c
		c.children = append(c.children, cc)
	}
	return &c
}

// --- Destruction ---

// Destroy detaches the morph from its parent and drops its caches. Children
// stay attached to the destroyed morph; use DestroyAll to destroy them too.
func (m *Morph) Destroy() {
	if m.destroyed {
		return
	}
	m.RemoveFromParent()
	m.destroy()
}

// DestroyAll destroys the morph and, recursively, all of its descendants.
func (m *Morph) DestroyAll() {
	if m.destroyed {
		return
	}
	m.RemoveFromParent()
	m.destroyAll()
}

func (m *Morph) destroyAll() {
	for _, child := range m.children {
		child.parent = nil
		child.destroyAll()
	}
	m.children = nil
	m.destroy()
}

func (m *Morph) destroy() {
	m.destroyed = true
	m.cache = nil
	m.dragImage = nil
	m.nextSteps = nil
}

// IsDestroyed reports whether Destroy or DestroyAll was called.
func (m *Morph) IsDestroyed() bool {
	return m.destroyed
}
