package morphic

import (
	"errors"
	"image/color"
	"testing"
)

var (
	red  = Color{R: 1, A: 1}
	blue = Color{B: 1, A: 1}
)

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(20, 20)
	c.FillRect(NewRect(5, 5, 5, 5), red)
	if got := c.Image().RGBAAt(7, 7); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := c.Image().RGBAAt(10, 10); got.A != 0 {
		t.Errorf("corner pixel should be outside, got %v", got)
	}
}

func TestCanvasTranslateAndRestore(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Save()
	c.Translate(10, 10)
	c.FillRect(NewRect(0, 0, 2, 2), red)
	c.Restore()
	c.FillRect(NewRect(0, 0, 2, 2), blue)

	if got := c.Image().RGBAAt(10, 10); got.R != 255 {
		t.Errorf("translated fill = %v, want red", got)
	}
	if got := c.Image().RGBAAt(0, 0); got.B != 255 {
		t.Errorf("restored fill = %v, want blue", got)
	}
}

func TestCanvasClip(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Save()
	c.Clip(NewRect(0, 0, 10, 10))
	c.FillRect(NewRect(0, 0, 20, 20), red)
	c.Restore()

	if got := c.Image().RGBAAt(5, 5); got.A != 255 {
		t.Errorf("inside clip alpha = %d, want 255", got.A)
	}
	if got := c.Image().RGBAAt(15, 15); got.A != 0 {
		t.Errorf("outside clip alpha = %d, want 0", got.A)
	}
}

func TestCanvasClearInsideClip(t *testing.T) {
	c := NewCanvas(20, 20)
	c.FillRect(NewRect(0, 0, 20, 20), red)
	c.Save()
	c.Clip(NewRect(0, 0, 10, 20))
	c.Clear()
	c.Restore()

	if a, _ := c.AlphaAt(5, 5); a != 0 {
		t.Errorf("cleared alpha = %d, want 0", a)
	}
	if a, _ := c.AlphaAt(15, 5); a != 255 {
		t.Errorf("untouched alpha = %d, want 255", a)
	}
	c.Clear()
	if a, _ := c.AlphaAt(15, 5); a != 0 {
		t.Errorf("alpha after full clear = %d, want 0", a)
	}
}

func TestCanvasFillPathCircle(t *testing.T) {
	c := NewCanvas(40, 40)
	c.FillPath(Circle(20, 20, 10), red)
	if a, _ := c.AlphaAt(20, 20); a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	if a, _ := c.AlphaAt(11, 11); a != 0 {
		t.Errorf("outside alpha = %d, want 0", a)
	}
	if a, _ := c.AlphaAt(35, 20); a != 0 {
		t.Errorf("far alpha = %d, want 0", a)
	}
}

func TestCanvasFillPathTranslatedAndClipped(t *testing.T) {
	c := NewCanvas(40, 40)
	c.Save()
	c.Translate(20, 0)
	c.Clip(NewRect(0, 0, 10, 40))
	c.FillPath(new(Path).MoveTo(0, 0).LineTo(20, 0).LineTo(20, 20).LineTo(0, 20).Close(), red)
	c.Restore()

	if a, _ := c.AlphaAt(25, 10); a != 255 {
		t.Errorf("inside alpha = %d, want 255", a)
	}
	if a, _ := c.AlphaAt(35, 10); a != 0 {
		t.Errorf("clipped alpha = %d, want 0", a)
	}
	if a, _ := c.AlphaAt(5, 10); a != 0 {
		t.Errorf("untranslated alpha = %d, want 0", a)
	}
}

func TestCanvasDrawSurface(t *testing.T) {
	src := NewCanvas(4, 4)
	src.FillRect(NewRect(0, 0, 4, 4), blue)
	dst := NewCanvas(20, 20)
	dst.DrawSurface(src, Pt(8, 8), 1)
	if got := dst.Image().RGBAAt(9, 9); got.B != 255 {
		t.Errorf("blitted pixel = %v, want blue", got)
	}
	if got := dst.Image().RGBAAt(12, 12); got.A != 0 {
		t.Errorf("outside blit = %v, want transparent", got)
	}

	half := NewCanvas(20, 20)
	half.DrawSurface(src, Pt(0, 0), 0.5)
	if a, _ := half.AlphaAt(1, 1); a < 120 || a > 135 {
		t.Errorf("half alpha = %d, want about 128", a)
	}
}

func TestCanvasAlphaAtOutOfBounds(t *testing.T) {
	c := NewCanvas(10, 10)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := c.AlphaAt(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("AlphaAt(%d, %d) err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
}

func TestCanvasNewSurfaceAndSize(t *testing.T) {
	c := NewCanvas(3, 4)
	s := c.NewSurface(7, 5)
	if w, h := s.Size(); w != 7 || h != 5 {
		t.Errorf("Size = %dx%d, want 7x5", w, h)
	}
	if w, h := NewCanvas(-3, 2).Size(); w != 0 || h != 2 {
		t.Errorf("negative size = %dx%d, want 0x2", w, h)
	}
}

func TestPathPolygons(t *testing.T) {
	polys := RoundedRect(NewRect(0, 0, 20, 10), 4).Polygons()
	if len(polys) != 1 {
		t.Fatalf("polygons = %d, want 1", len(polys))
	}
	b := polygonBounds(polys)
	if b.Origin.X < -1e-9 || b.Origin.Y < -1e-9 || b.Corner.X > 20+1e-9 || b.Corner.Y > 10+1e-9 {
		t.Errorf("bounds = %v, want within 20x10", b)
	}
	if got := new(Path).MoveTo(0, 0).LineTo(1, 1).Close().Polygons(); len(got) != 0 {
		t.Errorf("degenerate path polygons = %d, want 0", len(got))
	}
}
