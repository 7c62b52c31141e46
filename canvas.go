package morphic

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Canvas is a software Surface backed by an *image.RGBA. Paths are
// rasterised with golang.org/x/image/vector. It needs no graphics context,
// so it backs headless worlds, test scripts and screenshots.
type Canvas struct {
	surfaceStack
	img    *image.RGBA
	raster vector.Rasterizer
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	return &Canvas{
		surfaceStack: newSurfaceStack(w, h),
		img:          image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// Image returns the backing image. It is owned by the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Snapshot returns the current pixels.
func (c *Canvas) Snapshot() (image.Image, error) {
	return c.img, nil
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (w, h int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// NewSurface creates a canvas of the given size.
func (c *Canvas) NewSurface(w, h int) Surface {
	return NewCanvas(w, h)
}

// Clear makes every pixel inside the current clip transparent.
func (c *Canvas) Clear() {
	if c.cur.clip == c.img.Bounds() {
		clear(c.img.Pix)
		return
	}
	draw.Draw(c.img, c.cur.clip, image.Transparent, image.Point{}, draw.Src)
}

// FillRect fills r with col.
func (c *Canvas) FillRect(r Rect, col Color) {
	if col.A <= 0 {
		return
	}
	area := c.fillArea(r)
	if area.Empty() {
		return
	}
	draw.Draw(c.img, area, image.NewUniform(col.toRGBA()), image.Point{}, draw.Over)
}

// FillPath fills the polygons of p with col.
func (c *Canvas) FillPath(p *Path, col Color) {
	if col.A <= 0 {
		return
	}
	polys := p.Polygons()
	if len(polys) == 0 {
		return
	}
	off := c.cur.offset
	bounds := polygonBounds(polys).Translate(off)
	area := image.Rect(
		int(math.Floor(bounds.Origin.X)), int(math.Floor(bounds.Origin.Y)),
		int(math.Ceil(bounds.Corner.X)), int(math.Ceil(bounds.Corner.Y)),
	).Intersect(c.cur.clip)
	if area.Empty() {
		return
	}

	// Rasterizer coordinates are relative to area.Min.
	dx := off.X - float64(area.Min.X)
	dy := off.Y - float64(area.Min.Y)
	c.raster.Reset(area.Dx(), area.Dy())
	for _, poly := range polys {
		c.raster.MoveTo(float32(poly[0].X+dx), float32(poly[0].Y+dy))
		for _, pt := range poly[1:] {
			c.raster.LineTo(float32(pt.X+dx), float32(pt.Y+dy))
		}
		c.raster.ClosePath()
	}
	c.raster.Draw(c.img, area, image.NewUniform(col.toRGBA()), image.Point{})
}

// DrawSurface composites another Canvas onto this one.
func (c *Canvas) DrawSurface(src Surface, at Point, alpha float64) {
	s, ok := src.(*Canvas)
	if !ok || alpha <= 0 {
		return
	}
	sw, sh := s.Size()
	dst := c.fillArea(NewRect(at.X, at.Y, float64(sw), float64(sh)))
	if dst.Empty() {
		return
	}
	origin := image.Point{
		X: int(math.Round(at.X + c.cur.offset.X)),
		Y: int(math.Round(at.Y + c.cur.offset.Y)),
	}
	sp := dst.Min.Sub(origin)
	if alpha >= 1 {
		draw.Draw(c.img, dst, s.img, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(clamp01(alpha)*255 + 0.5)})
	draw.DrawMask(c.img, dst, s.img, sp, mask, image.Point{}, draw.Over)
}

// AlphaAt returns the alpha of the pixel at (x, y).
func (c *Canvas) AlphaAt(x, y int) (uint8, error) {
	if !image.Pt(x, y).In(c.img.Bounds()) {
		return 0, ErrOutOfBounds
	}
	return c.img.RGBAAt(x, y).A, nil
}

// polygonBounds returns the bounding box of all polygon points.
func polygonBounds(polys [][]Point) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return Rect{Origin: Point{minX, minY}, Corner: Point{maxX, maxY}}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rgbaPix returns the premultiplied RGBA bytes of img, tightly packed.
func rgbaPix(img image.Image) []byte {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
		return rgba.Pix
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out.Pix
}
