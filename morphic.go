package morphic

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a surface submits the color.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// ColorWhite is the fully opaque white color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is the zero color; filling with it is a no-op.
var ColorTransparent = Color{}

// defaultMorphColor matches the neutral grey new morphs are painted with.
var defaultMorphColor = Color{R: 0.31, G: 0.31, B: 0.31, A: 1}

// Point is a 2D vector used for positions, offsets and extents.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p multiplied component-wise by f.
func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

// DistanceTo returns the euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle in absolute world coordinates. The
// coordinate system has its origin at the top-left, with Y increasing
// downward. Origin <= Corner holds component-wise for every Rect produced by
// the constructors and operations in this package.
type Rect struct {
	Origin, Corner Point
}

// NewRect returns the rectangle at (x, y) with the given width and height.
// Negative extents are clamped to zero.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Origin: Point{x, y}, Corner: Point{x + math.Max(w, 0), y + math.Max(h, 0)}}
}

// RectFromPoints returns the smallest rectangle spanning a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Origin: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Corner: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Corner.X - r.Origin.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Corner.Y - r.Origin.Y }

// Extent returns (Width, Height) as a Point.
func (r Rect) Extent() Point { return r.Corner.Sub(r.Origin) }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{(r.Origin.X + r.Corner.X) / 2, (r.Origin.Y + r.Corner.Y) / 2}
}

// Contains reports whether p lies inside the rectangle. The origin edges are
// inside, the corner edges are not, so adjacent rectangles never share a
// point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Corner.X &&
		p.Y >= r.Origin.Y && p.Y < r.Corner.Y
}

// Intersects reports whether r and other overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.Origin.X < other.Corner.X && other.Origin.X < r.Corner.X &&
		r.Origin.Y < other.Corner.Y && other.Origin.Y < r.Corner.Y
}

// Intersect returns the overlap of r and other. When they do not overlap the
// result is an empty rectangle whose corner equals its origin.
func (r Rect) Intersect(other Rect) Rect {
	o := Point{math.Max(r.Origin.X, other.Origin.X), math.Max(r.Origin.Y, other.Origin.Y)}
	c := Point{math.Min(r.Corner.X, other.Corner.X), math.Min(r.Corner.Y, other.Corner.Y)}
	if c.X < o.X {
		c.X = o.X
	}
	if c.Y < o.Y {
		c.Y = o.Y
	}
	return Rect{Origin: o, Corner: c}
}

// Merge returns the smallest rectangle containing both r and other.
func (r Rect) Merge(other Rect) Rect {
	return Rect{
		Origin: Point{math.Min(r.Origin.X, other.Origin.X), math.Min(r.Origin.Y, other.Origin.Y)},
		Corner: Point{math.Max(r.Corner.X, other.Corner.X), math.Max(r.Corner.Y, other.Corner.Y)},
	}
}

// Translate returns r moved by delta.
func (r Rect) Translate(delta Point) Rect {
	return Rect{Origin: r.Origin.Add(delta), Corner: r.Corner.Add(delta)}
}

// Expand grows the rectangle by n on every side. Shrinking past zero
// collapses it to its center.
func (r Rect) Expand(n float64) Rect {
	out := Rect{
		Origin: Point{r.Origin.X - n, r.Origin.Y - n},
		Corner: Point{r.Corner.X + n, r.Corner.Y + n},
	}
	if out.Corner.X < out.Origin.X || out.Corner.Y < out.Origin.Y {
		c := r.Center()
		return Rect{Origin: c, Corner: c}
	}
	return out
}

// Spread rounds the origin down and the corner up to whole pixels.
func (r Rect) Spread() Rect {
	return Rect{
		Origin: Point{math.Floor(r.Origin.X), math.Floor(r.Origin.Y)},
		Corner: Point{math.Ceil(r.Corner.X), math.Ceil(r.Corner.Y)},
	}
}

// IsNearTo reports whether other lies within threshold pixels of r on every
// axis (touching or overlapping rectangles are always near).
func (r Rect) IsNearTo(other Rect, threshold float64) bool {
	return other.Corner.X+threshold >= r.Origin.X &&
		other.Corner.Y+threshold >= r.Origin.Y &&
		other.Origin.X-threshold <= r.Corner.X &&
		other.Origin.Y-threshold <= r.Corner.Y
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonNone  MouseButton = iota // no button held
	MouseButtonLeft                     // primary (left) mouse button
	MouseButtonRight                    // secondary (right) mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// HandState is the drag-and-drop state of a Hand.
type HandState uint8

const (
	HandIdle         HandState = iota // no button held, nothing grabbed
	HandArmedForGrab                  // button held over a grabbable morph, threshold not yet exceeded
	HandDragging                      // a morph is reparented under the hand
	HandDropped                       // drop handlers are running; idle once they return
)

// String returns a readable name for the state.
func (s HandState) String() string {
	switch s {
	case HandIdle:
		return "idle"
	case HandArmedForGrab:
		return "armed"
	case HandDragging:
		return "dragging"
	case HandDropped:
		return "dropped"
	default:
		return "unknown"
	}
}
