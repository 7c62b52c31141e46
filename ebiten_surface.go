package morphic

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface is a Surface backed by an *ebiten.Image. Rectangles are drawn
// as a scaled white pixel, paths are fan-triangulated and filled with the
// non-zero rule, and clipping uses SubImage.
type EbitenSurface struct {
	surfaceStack
	img *ebiten.Image
}

// NewEbitenSurface creates an offscreen ebiten surface of the given size.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return WrapEbitenImage(ebiten.NewImage(max(w, 1), max(h, 1)))
}

// WrapEbitenImage wraps an existing image. The image's bounds must start at
// the origin.
func WrapEbitenImage(img *ebiten.Image) *EbitenSurface {
	b := img.Bounds()
	return &EbitenSurface{surfaceStack: newSurfaceStack(b.Dx(), b.Dy()), img: img}
}

// Image returns the backing image.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Size returns the surface size in pixels.
func (s *EbitenSurface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// NewSurface creates an offscreen ebiten surface.
func (s *EbitenSurface) NewSurface(w, h int) Surface {
	return NewEbitenSurface(w, h)
}

// Clear makes every pixel inside the current clip transparent.
func (s *EbitenSurface) Clear() {
	if s.cur.clip == s.img.Bounds() {
		s.img.Clear()
		return
	}
	if !s.cur.clip.Empty() {
		s.img.SubImage(s.cur.clip).(*ebiten.Image).Clear()
	}
}

// FillRect fills r with c.
func (s *EbitenSurface) FillRect(r Rect, c Color) {
	if c.A <= 0 {
		return
	}
	area := s.fillArea(r)
	if area.Empty() {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(area.Dx()), float64(area.Dy()))
	op.GeoM.Translate(float64(area.Min.X), float64(area.Min.Y))
	op.ColorScale.ScaleWithColor(c.toRGBA())
	s.img.DrawImage(ensureWhitePixel(), &op)
}

// FillPath fills the polygons of p with c.
func (s *EbitenSurface) FillPath(p *Path, c Color) {
	if c.A <= 0 || s.cur.clip.Empty() {
		return
	}
	target := s.img.SubImage(s.cur.clip).(*ebiten.Image)
	op := ebiten.DrawTrianglesOptions{FillRule: ebiten.NonZero, AntiAlias: true}
	for _, poly := range p.Polygons() {
		verts, inds := buildPolygonFan(poly, s.cur.offset, c)
		if len(inds) == 0 {
			continue
		}
		target.DrawTriangles(verts, inds, ensureWhitePixel(), &op)
	}
}

// DrawSurface composites another EbitenSurface onto this one.
func (s *EbitenSurface) DrawSurface(src Surface, at Point, alpha float64) {
	o, ok := src.(*EbitenSurface)
	if !ok || alpha <= 0 || s.cur.clip.Empty() {
		return
	}
	target := s.img.SubImage(s.cur.clip).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(at.X+s.cur.offset.X, at.Y+s.cur.offset.Y)
	op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
	target.DrawImage(o.img, &op)
}

// AlphaAt reads back a pixel. Read-back is only possible once the game loop
// runs; before that the error wraps ErrUnsupportedSurface.
func (s *EbitenSurface) AlphaAt(x, y int) (a uint8, err error) {
	if !image.Pt(x, y).In(s.img.Bounds()) {
		return 0, ErrOutOfBounds
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: read back: %v", ErrUnsupportedSurface, r)
		}
	}()
	_, _, _, a32 := s.img.At(x, y).RGBA()
	return uint8(a32 >> 8), nil
}

// Snapshot reads the surface back into a premultiplied RGBA image.
func (s *EbitenSurface) Snapshot() (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: read back: %v", ErrUnsupportedSurface, r)
		}
	}()
	w, h := s.Size()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	s.img.ReadPixels(out.Pix)
	return out, nil
}

// --- White pixel ---

var whitePixel *ebiten.Image

// ensureWhitePixel lazily creates the 1x1 white image used for solid fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// polygon translated by offset. N vertices, 3*(N-2) indices. With the
// non-zero fill rule the fan covers concave polygons correctly.
func buildPolygonFan(points []Point, offset Point, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 || n > 0xffff {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	pr := float32(clamp01(c.R * c.A))
	pg := float32(clamp01(c.G * c.A))
	pb := float32(clamp01(c.B * c.A))
	pa := float32(clamp01(c.A))
	for i, p := range points {
		v := &verts[i]
		v.DstX = float32(p.X + offset.X)
		v.DstY = float32(p.Y + offset.Y)
		// Untextured: map to center of white pixel (0.5, 0.5)
		v.SrcX = 0.5
		v.SrcY = 0.5
		v.ColorR = pr
		v.ColorG = pg
		v.ColorB = pb
		v.ColorA = pa
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}
