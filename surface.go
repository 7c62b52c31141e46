package morphic

import (
	"errors"
	"image"
	"math"
)

// ErrOutOfBounds is returned by Surface.AlphaAt for coordinates outside the
// surface.
var ErrOutOfBounds = errors.New("morphic: pixel out of bounds")

// ErrUnsupportedSurface is returned when an operation mixes surfaces of
// different implementations or the backend cannot serve the request.
var ErrUnsupportedSurface = errors.New("morphic: unsupported surface")

// Surface is the drawing target morphs render into. Coordinates passed to the
// drawing methods are relative to the current translation; Clip narrows the
// drawable area for everything that follows until the matching Restore.
//
// A surface also acts as a factory for compatible offscreen surfaces, which
// the engine uses for image caches and drag snapshots.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (w, h int)
	// Save pushes the current translation and clip.
	Save()
	// Restore pops the translation and clip pushed by the last Save.
	Restore()
	// Translate shifts the origin of subsequent drawing.
	Translate(dx, dy float64)
	// Clip intersects the current clip with r.
	Clip(r Rect)
	// Clear makes every pixel inside the current clip transparent.
	Clear()
	// FillRect fills r with c.
	FillRect(r Rect, c Color)
	// FillPath fills the closed polygons of p with c using the non-zero rule.
	FillPath(p *Path, c Color)
	// DrawSurface composites src with its top-left at at, scaled by alpha.
	DrawSurface(src Surface, at Point, alpha float64)
	// AlphaAt reads back the alpha of the pixel at (x, y), in surface pixels.
	AlphaAt(x, y int) (uint8, error)
	// NewSurface creates a transparent offscreen surface of the same kind.
	NewSurface(w, h int) Surface
}

// --- Translation and clip bookkeeping shared by surface implementations ---

type surfaceState struct {
	offset Point
	clip   image.Rectangle // device pixels
}

type surfaceStack struct {
	cur   surfaceState
	saved []surfaceState
}

func newSurfaceStack(w, h int) surfaceStack {
	return surfaceStack{cur: surfaceState{clip: image.Rect(0, 0, w, h)}}
}

func (s *surfaceStack) Save() {
	s.saved = append(s.saved, s.cur)
}

func (s *surfaceStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *surfaceStack) Translate(dx, dy float64) {
	s.cur.offset = s.cur.offset.Add(Point{dx, dy})
}

func (s *surfaceStack) Clip(r Rect) {
	s.cur.clip = s.cur.clip.Intersect(s.device(r))
}

// device converts a rectangle in current coordinates to whole device pixels.
func (s *surfaceStack) device(r Rect) image.Rectangle {
	r = r.Translate(s.cur.offset)
	return image.Rect(
		int(math.Floor(r.Origin.X)), int(math.Floor(r.Origin.Y)),
		int(math.Ceil(r.Corner.X)), int(math.Ceil(r.Corner.Y)),
	)
}

// fillArea returns the device rectangle covered by r after clipping.
func (s *surfaceStack) fillArea(r Rect) image.Rectangle {
	r = r.Translate(s.cur.offset)
	dr := image.Rect(
		int(math.Round(r.Origin.X)), int(math.Round(r.Origin.Y)),
		int(math.Round(r.Corner.X)), int(math.Round(r.Corner.Y)),
	)
	return dr.Intersect(s.cur.clip)
}

// --- Path ---

type pathOp uint8

const (
	opMoveTo pathOp = iota
	opLineTo
	opArc
	opClose
)

type pathCmd struct {
	op                       pathOp
	p                        Point
	radius, startAng, endAng float64
}

// Path records a sequence of straight and circular-arc segments. Surfaces
// flatten it into polygons before filling.
type Path struct {
	cmds []pathCmd
}

// MoveTo starts a new sub-path at p.
func (p *Path) MoveTo(x, y float64) *Path {
	p.cmds = append(p.cmds, pathCmd{op: opMoveTo, p: Point{x, y}})
	return p
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.cmds = append(p.cmds, pathCmd{op: opLineTo, p: Point{x, y}})
	return p
}

// Arc adds a circular arc around (cx, cy) from startAng to endAng (radians,
// clockwise in screen space). A straight segment joins the current point to
// the start of the arc.
func (p *Path) Arc(cx, cy, radius, startAng, endAng float64) *Path {
	p.cmds = append(p.cmds, pathCmd{op: opArc, p: Point{cx, cy}, radius: radius, startAng: startAng, endAng: endAng})
	return p
}

// Close ends the current sub-path.
func (p *Path) Close() *Path {
	p.cmds = append(p.cmds, pathCmd{op: opClose})
	return p
}

// Circle returns a closed path describing a full circle.
func Circle(cx, cy, radius float64) *Path {
	return new(Path).Arc(cx, cy, radius, 0, 2*math.Pi).Close()
}

// RoundedRect returns a closed path for r with corners of the given radius.
func RoundedRect(r Rect, radius float64) *Path {
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	o, c := r.Origin, r.Corner
	p := new(Path)
	p.Arc(o.X+radius, o.Y+radius, radius, math.Pi, 1.5*math.Pi)
	p.Arc(c.X-radius, o.Y+radius, radius, 1.5*math.Pi, 2*math.Pi)
	p.Arc(c.X-radius, c.Y-radius, radius, 0, 0.5*math.Pi)
	p.Arc(o.X+radius, c.Y-radius, radius, 0.5*math.Pi, math.Pi)
	return p.Close()
}

// arcSegmentLength is the maximum chord length used when flattening arcs.
const arcSegmentLength = 2.0

// Polygons flattens the path into closed polygons.
func (p *Path) Polygons() [][]Point {
	var out [][]Point
	var cur []Point
	flush := func() {
		if len(cur) >= 3 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, c := range p.cmds {
		switch c.op {
		case opMoveTo:
			flush()
			cur = append(cur, c.p)
		case opLineTo:
			cur = append(cur, c.p)
		case opArc:
			sweep := c.endAng - c.startAng
			n := int(math.Ceil(math.Abs(sweep) * c.radius / arcSegmentLength))
			if n < 4 {
				n = 4
			}
			for i := 0; i <= n; i++ {
				a := c.startAng + sweep*float64(i)/float64(n)
				cur = append(cur, Point{c.p.X + c.radius*math.Cos(a), c.p.Y + c.radius*math.Sin(a)})
			}
		case opClose:
			flush()
		}
	}
	flush()
	return out
}
