package morphic

import (
	"testing"
)

// --- Geometry ---

func TestMoveByMovesSubtree(t *testing.T) {
	parent := NewMorph("parent")
	parent.SetBounds(NewRect(10, 10, 100, 100))
	child := NewMorph("child")
	child.SetBounds(NewRect(20, 30, 10, 10))
	grandchild := NewMorph("grandchild")
	grandchild.SetBounds(NewRect(200, 200, 5, 5))
	parent.AddChild(child)
	child.AddChild(grandchild)

	before := parent.FullBounds()
	parent.MoveBy(Pt(5, -3))

	if got := child.Position(); got != Pt(25, 27) {
		t.Errorf("child Position = %v, want (25, 27)", got)
	}
	if got := grandchild.Position(); got != Pt(205, 197) {
		t.Errorf("grandchild Position = %v, want (205, 197)", got)
	}
	if got, want := parent.FullBounds(), before.Translate(Pt(5, -3)); got != want {
		t.Errorf("FullBounds = %v, want %v", got, want)
	}
}

func TestSetPositionKeepsExtent(t *testing.T) {
	m := NewMorph("m")
	m.SetPosition(Pt(-20, 30))
	if m.Bounds() != NewRect(-20, 30, 50, 40) {
		t.Errorf("Bounds = %v", m.Bounds())
	}
	m.SetCenter(Pt(0, 0))
	if m.Bounds() != NewRect(-25, -20, 50, 40) {
		t.Errorf("Bounds after SetCenter = %v", m.Bounds())
	}
	m.SetLeft(1)
	m.SetTop(2)
	if m.Position() != Pt(1, 2) {
		t.Errorf("Position = %v, want (1, 2)", m.Position())
	}
}

func TestSetExtentClampsAndRunsFixLayout(t *testing.T) {
	m := NewMorph("m")
	m.SetPosition(Pt(10, 10))
	layouts := 0
	m.FixLayout = func(*Morph) { layouts++ }

	m.SetExtent(Pt(-5, 20))
	b := m.Bounds()
	if b.Width() != 0 || b.Height() != 20 {
		t.Errorf("extent = %v, want (0, 20)", b.Extent())
	}
	if b.Corner.X < b.Origin.X || b.Corner.Y < b.Origin.Y {
		t.Errorf("corner %v before origin %v", b.Corner, b.Origin)
	}
	if b.Origin != Pt(10, 10) {
		t.Errorf("Origin = %v, want (10, 10)", b.Origin)
	}
	if layouts != 1 {
		t.Errorf("FixLayout calls = %d, want 1", layouts)
	}

	m.SetExtent(Pt(0, 20)) // unchanged
	if layouts != 1 {
		t.Errorf("FixLayout ran for an unchanged extent")
	}
}

func TestFullBounds(t *testing.T) {
	parent := NewMorph("parent")
	parent.SetBounds(NewRect(0, 0, 10, 10))
	child := NewMorph("child")
	child.SetBounds(NewRect(50, 50, 10, 10))
	parent.AddChild(child)

	if got, want := parent.FullBounds(), NewRect(0, 0, 60, 60); got != want {
		t.Errorf("FullBounds = %v, want %v", got, want)
	}
	child.Hide()
	if got := parent.FullBounds(); got != parent.Bounds() {
		t.Errorf("FullBounds with hidden child = %v, want own bounds", got)
	}
	child.Show()
	parent.ClipsChildren = true
	if got := parent.FullBounds(); got != parent.Bounds() {
		t.Errorf("FullBounds of clipping morph = %v, want own bounds", got)
	}
}

func TestVisibleBounds(t *testing.T) {
	frame := NewMorph("frame")
	frame.SetBounds(NewRect(0, 0, 20, 20))
	frame.ClipsChildren = true
	child := NewMorph("child")
	child.SetBounds(NewRect(10, 10, 20, 20))
	frame.AddChild(child)
	if got, want := child.VisibleBounds(), NewRect(10, 10, 10, 10); got != want {
		t.Errorf("VisibleBounds = %v, want %v", got, want)
	}
}

func TestOnChildChanged(t *testing.T) {
	parent := NewMorph("parent")
	child := NewMorph("child")
	parent.AddChild(child)
	var got *Morph
	parent.OnChildChanged = func(c *Morph) { got = c }
	child.SetExtent(Pt(5, 5))
	if got != child {
		t.Errorf("OnChildChanged got %v, want child", got)
	}
}

// --- Visibility ---

func TestToggle(t *testing.T) {
	m := NewMorph("m")
	m.Toggle()
	if m.IsVisible() {
		t.Error("Toggle should hide a visible morph")
	}
	m.Toggle()
	if !m.IsVisible() {
		t.Error("Toggle should show a hidden morph")
	}
}

// --- Situation ---

func TestSituation(t *testing.T) {
	parent := NewMorph("parent")
	parent.SetPosition(Pt(100, 100))
	child := NewMorph("child")
	child.SetPosition(Pt(110, 120))
	if (child.Situation() != Situation{}) {
		t.Error("detached morph should have the zero situation")
	}
	parent.AddChild(child)
	sit := child.Situation()
	if sit.Origin != parent || sit.Position != Pt(10, 20) {
		t.Errorf("Situation = %+v, want parent at (10, 20)", sit)
	}
}

// --- Copy ---

func TestFullCopy(t *testing.T) {
	parent := NewMorph("parent")
	parent.SetBounds(NewRect(5, 5, 40, 40))
	parent.SetHoles(NewRect(0, 0, 5, 5))
	parent.UserData = "data"
	child := NewMorph("child")
	child.SetBounds(NewRect(10, 10, 5, 5))
	parent.AddChild(child)
	host := NewMorph("host")
	host.AddChild(parent)
	parent.AddNextStep(func() {})

	c := parent.FullCopy()
	if c.ID == parent.ID {
		t.Error("copy should have a new ID")
	}
	if c.Parent() != nil {
		t.Error("copy should be detached")
	}
	if c.Bounds() != parent.Bounds() || c.UserData != "data" {
		t.Errorf("copy Bounds = %v, UserData = %v", c.Bounds(), c.UserData)
	}
	if c.PendingSteps() != 0 {
		t.Error("pending steps should not be copied")
	}
	if c.NumChildren() != 1 {
		t.Fatalf("copy children = %d, want 1", c.NumChildren())
	}
	cc := c.ChildAt(0)
	if cc == child || cc.Parent() != c || cc.ID == child.ID {
		t.Error("children should be deep copies linked to the copy")
	}

	c.SetHoles()
	if len(parent.Holes()) != 1 {
		t.Error("holes should not be shared with the original")
	}
	c.MoveBy(Pt(10, 0))
	if child.Position() != Pt(10, 10) {
		t.Error("moving the copy moved the original's child")
	}
}

// --- Destruction ---

func TestDestroy(t *testing.T) {
	parent := NewMorph("parent")
	m := NewMorph("m")
	kid := NewMorph("kid")
	parent.AddChild(m)
	m.AddChild(kid)

	m.Destroy()
	if !m.IsDestroyed() || m.Parent() != nil {
		t.Error("destroyed morph should be detached")
	}
	if kid.IsDestroyed() || kid.Parent() != m {
		t.Error("Destroy should leave children alone")
	}
	m.Destroy() // no-op
}

func TestDestroyAll(t *testing.T) {
	parent := NewMorph("parent")
	m := NewMorph("m")
	kid := NewMorph("kid")
	grandkid := NewMorph("grandkid")
	parent.AddChild(m)
	m.AddChild(kid)
	kid.AddChild(grandkid)

	m.DestroyAll()
	for _, x := range []*Morph{m, kid, grandkid} {
		if !x.IsDestroyed() {
			t.Errorf("%s not destroyed", x.Name)
		}
	}
	if parent.NumChildren() != 0 || m.NumChildren() != 0 || kid.Parent() != nil {
		t.Error("DestroyAll should unlink the subtree")
	}
}

// --- Caching ---

func TestCachedImageReused(t *testing.T) {
	m := NewMorph("m")
	renders := 0
	m.Drawer = DrawFunc(func(m *Morph, s Surface) {
		renders++
		s.FillRect(NewRect(0, 0, m.Width(), m.Height()), ColorWhite)
	})
	m.SetCachesImage(true)
	factory := NewCanvas(1, 1)

	first := m.cachedImage(factory)
	second := m.cachedImage(factory)
	if first != second || renders != 1 {
		t.Errorf("renders = %d, want 1 (cache reused)", renders)
	}
	m.Rerender()
	m.cachedImage(factory)
	if renders != 2 {
		t.Errorf("renders after Rerender = %d, want 2", renders)
	}
	m.SetCachesImage(false)
	if m.CachesImage() {
		t.Error("CachesImage should be false")
	}
}

func TestFullImage(t *testing.T) {
	m := NewMorph("m")
	m.SetBounds(NewRect(10, 10, 20, 10))
	m.Color = Color{R: 1, A: 1}
	child := NewMorph("child")
	child.SetBounds(NewRect(25, 15, 10, 10))
	child.Color = Color{G: 1, A: 1}
	m.AddChild(child)

	img, at := m.FullImage(NewCanvas(1, 1))
	if at != Pt(10, 10) {
		t.Errorf("origin = %v, want (10, 10)", at)
	}
	c := img.(*Canvas)
	if w, h := c.Size(); w != 25 || h != 15 {
		t.Errorf("size = %dx%d, want 25x15", w, h)
	}
	if got := c.Image().RGBAAt(1, 1); got != m.Color.toRGBA() {
		t.Errorf("own pixel = %v, want %v", got, m.Color.toRGBA())
	}
	if got := c.Image().RGBAAt(20, 10); got != child.Color.toRGBA() {
		t.Errorf("child pixel = %v, want %v", got, child.Color.toRGBA())
	}
	if a, _ := c.AlphaAt(2, 12); a != 0 {
		t.Errorf("uncovered pixel alpha = %d, want 0", a)
	}
}
