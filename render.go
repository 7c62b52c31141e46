package morphic

import "math"

// Drawable renders a morph's own content. The surface origin is the morph's
// top-left corner; children are never drawn by Render.
type Drawable interface {
	Render(m *Morph, s Surface)
}

// DrawFunc adapts a plain function to the Drawable interface.
type DrawFunc func(m *Morph, s Surface)

// Render calls f(m, s).
func (f DrawFunc) Render(m *Morph, s Surface) { f(m, s) }

// holeMarkerColor is the translucent overlay drawn over holes when
// Config.ShowHoles is set.
var holeMarkerColor = Color{R: 1, G: 0.2, B: 0.2, A: 0.35}

// render draws the morph's own content. A morph without a Drawer is a plain
// rectangle filled with its Color.
func (m *Morph) render(s Surface) {
	if m.Drawer != nil {
		m.Drawer.Render(m, s)
		return
	}
	s.FillRect(NewRect(0, 0, m.Width(), m.Height()), m.Color)
}

// safeRender renders the morph, recovering from a panicking Drawer so one
// faulty widget cannot stop the repaint of the rest of the tree.
func (m *Morph) safeRender(s Surface) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.World().widgetFailed(m, phaseRender, r)
			ok = false
		}
	}()
	m.render(s)
	return true
}

// DrawOn composites this morph (not its children) onto s, limited to clip
// (world coordinates). Cached morphs and morphs with Alpha below 1 are blitted
// from an offscreen image; all others render straight into s.
func (m *Morph) DrawOn(s Surface, clip Rect) {
	if !m.visible || m.Alpha <= 0 {
		return
	}
	area := clip.Intersect(m.bounds)
	if area.IsEmpty() {
		return
	}
	s.Save()
	s.Clip(area)
	if m.cachesImage || m.Alpha < 1 {
		if img := m.cachedImage(s); img != nil {
			s.DrawSurface(img, m.bounds.Origin, m.Alpha)
		}
	} else {
		s.Translate(m.bounds.Origin.X, m.bounds.Origin.Y)
		m.safeRender(s)
	}
	s.Restore()

	if len(m.holes) > 0 {
		if w := m.World(); w != nil && w.cfg.ShowHoles {
			m.drawHoles(s, area)
		}
	}
}

func (m *Morph) drawHoles(s Surface, area Rect) {
	s.Save()
	s.Clip(area)
	s.Translate(m.bounds.Origin.X, m.bounds.Origin.Y)
	for _, h := range m.holes {
		s.FillRect(h, holeMarkerColor)
	}
	s.Restore()
}

// FullDrawOn draws the morph and then its visible children in child order,
// so later children paint over earlier ones. Children of a clipping morph
// are limited to its bounds.
func (m *Morph) FullDrawOn(s Surface, clip Rect) {
	if !m.visible {
		return
	}
	m.DrawOn(s, clip)
	if m.ClipsChildren {
		clip = clip.Intersect(m.bounds)
		if clip.IsEmpty() {
			return
		}
	}
	for _, child := range m.children {
		child.FullDrawOn(s, clip)
	}
}

// cachedImage returns the morph's own content rendered into an offscreen
// surface created by factory. The image is kept for cached and free-form
// morphs and rebuilt only after Rerender or a resize.
func (m *Morph) cachedImage(factory Surface) Surface {
	keep := m.cachesImage || m.FreeForm
	if keep && m.cache != nil && !m.needsRerender {
		return m.cache
	}
	w, h := int(math.Ceil(m.Width())), int(math.Ceil(m.Height()))
	if w <= 0 || h <= 0 {
		return nil
	}
	img := m.cache
	if img != nil {
		if cw, ch := img.Size(); cw != w || ch != h {
			img = nil
		}
	}
	if img == nil {
		img = factory.NewSurface(w, h)
	} else {
		img.Clear()
	}
	m.safeRender(img)
	if keep {
		m.cache = img
		m.needsRerender = false
	}
	return img
}

// FullImage renders the morph and its visible subtree into a new offscreen
// surface sized to the pixel-aligned full bounds. The second result is the
// world position of the image's top-left corner.
func (m *Morph) FullImage(factory Surface) (Surface, Point) {
	fb := m.FullBounds().Spread()
	w, h := int(fb.Width()), int(fb.Height())
	if w <= 0 || h <= 0 {
		return nil, fb.Origin
	}
	img := factory.NewSurface(w, h)
	img.Save()
	img.Translate(-fb.Origin.X, -fb.Origin.Y)
	m.FullDrawOn(img, fb)
	img.Restore()
	return img, fb.Origin
}

// isTransparentAt reports whether the morph's own image is fully transparent
// at p (world coordinates). A failed read-back counts as opaque.
func (m *Morph) isTransparentAt(p Point) bool {
	img := m.cachedImage(m.surfaceFactory())
	if img == nil {
		return false
	}
	local := p.Sub(m.bounds.Origin)
	a, err := img.AlphaAt(int(math.Floor(local.X)), int(math.Floor(local.Y)))
	if err != nil {
		return false
	}
	return a == 0
}

// surfaceFactory returns the surface used to create offscreen images: the
// world's surface, or a software canvas for detached morphs.
func (m *Morph) surfaceFactory() Surface {
	if w := m.World(); w != nil && w.surface != nil {
		return w.surface
	}
	return NewCanvas(0, 0)
}
