package main

import (
	"log/slog"
	"math"
	"time"

	"github.com/phanxgames/morphic"
)

var (
	colorPanel   = morphic.Color{R: 0.22, G: 0.24, B: 0.3, A: 1}
	colorAccent  = morphic.Color{R: 0.31, G: 0.71, B: 1, A: 1}
	colorWarm    = morphic.Color{R: 1, G: 0.55, B: 0.3, A: 1}
	colorGood    = morphic.Color{R: 0.4, G: 0.85, B: 0.45, A: 1}
	colorBad     = morphic.Color{R: 0.9, G: 0.3, B: 0.3, A: 1}
	colorRowEven = morphic.Color{R: 0.3, G: 0.32, B: 0.4, A: 1}
	colorRowOdd  = morphic.Color{R: 0.26, G: 0.28, B: 0.35, A: 1}
)

// buildDemo populates the world with one morph per engine feature.
func buildDemo(w *morphic.World, logger *slog.Logger) {
	buildPalette(w)
	buildBouncer(w)
	buildBins(w, logger)
	buildFrame(w)
	buildDonut(w)
	buildKeyBox(w)
	buildInbox(w, logger)
}

// buildPalette adds template morphs: dragging one drops a copy.
func buildPalette(w *morphic.World) {
	panel := morphic.NewMorph("palette")
	panel.SetBounds(morphic.NewRect(20, 20, 80, 200))
	panel.Color = colorPanel
	w.Add(panel)

	for i, c := range []morphic.Color{colorAccent, colorWarm, colorGood} {
		tpl := morphic.NewMorph("template")
		tpl.SetBounds(morphic.NewRect(35, 35+float64(i)*60, 50, 40))
		tpl.Color = c
		tpl.Template = true
		tpl.Drawer = morphic.DrawFunc(drawRounded)
		tpl.OnTemplateCopy = func(copy *morphic.Morph) {
			copy.Name = "copy"
			copy.OnMouseDoubleClick = func(ctx morphic.PointerContext) {
				ctx.Morph.Destroy()
			}
		}
		panel.AddChild(tpl)
	}
}

func drawRounded(m *morphic.Morph, s morphic.Surface) {
	s.FillPath(morphic.RoundedRect(morphic.NewRect(0, 0, m.Width(), m.Height()), 8), m.Color)
}

// buildBouncer adds a morph that steps at 30 fps; clicking pauses it and a
// double click glides it back home.
func buildBouncer(w *morphic.World) {
	home := morphic.Pt(140, 40)
	ball := morphic.NewMorph("bouncer")
	ball.SetBounds(morphic.NewRect(home.X, home.Y, 30, 30))
	ball.Color = colorWarm
	ball.FreeForm = true
	ball.Draggable = true
	ball.FPS = 30
	ball.Drawer = morphic.DrawFunc(func(m *morphic.Morph, s morphic.Surface) {
		r := m.Width() / 2
		s.FillPath(morphic.Circle(r, r, r), m.Color)
	})

	dx, dy := 3.0, 2.0
	paused := false
	ball.OnStep = func(m *morphic.Morph) {
		if paused {
			return
		}
		b := w.Bounds()
		p := m.Position()
		if p.X+dx < b.Origin.X || p.X+m.Width()+dx > b.Corner.X {
			dx = -dx
		}
		if p.Y+dy < b.Origin.Y || p.Y+m.Height()+dy > b.Corner.Y {
			dy = -dy
		}
		m.MoveBy(morphic.Pt(dx, dy))
	}
	ball.OnMouseClickLeft = func(ctx morphic.PointerContext) {
		paused = !paused
	}
	ball.OnMouseDoubleClick = func(ctx morphic.PointerContext) {
		paused = true
		ctx.Morph.GlideTo(home, 600*time.Millisecond, "elastic_out", func() {
			paused = false
		})
	}
	w.Add(ball)
}

// buildBins adds two drop targets. The green bin keeps what is dropped on
// it; the red bin rejects drops and sends the morph back where it came from.
func buildBins(w *morphic.World, logger *slog.Logger) {
	keep := morphic.NewMorph("keep bin")
	keep.SetBounds(morphic.NewRect(140, 380, 200, 160))
	keep.Color = colorGood
	keep.AcceptsDrops = true
	keep.OnDrop = func(ctx morphic.DropContext) {
		logger.Debug("kept", "morph", ctx.Dropped.Name, "id", ctx.Dropped.ID)
	}
	w.Add(keep)

	reject := morphic.NewMorph("reject bin")
	reject.SetBounds(morphic.NewRect(360, 380, 200, 160))
	reject.Color = colorBad
	reject.AcceptsDrops = true
	reject.OnDrop = func(ctx morphic.DropContext) {
		logger.Debug("rejected", "morph", ctx.Dropped.Name)
		ctx.Hand.SlideBack(400*time.Millisecond, nil)
	}
	reject.OnMouseEnterDragging = func(ctx morphic.PointerContext) {
		ctx.Morph.Color.A = 0.6
		ctx.Morph.Rerender()
	}
	reject.OnMouseLeaveDragging = func(ctx morphic.PointerContext) {
		ctx.Morph.Color.A = 1
		ctx.Morph.Rerender()
	}
	w.Add(reject)
}

// buildFrame adds a clipping frame holding a list taller than the frame;
// the wheel scrolls the list.
func buildFrame(w *morphic.World) {
	frame := morphic.NewMorph("frame")
	frame.SetBounds(morphic.NewRect(600, 40, 160, 200))
	frame.Color = colorPanel
	frame.ClipsChildren = true
	frame.AcceptsDrops = true
	w.Add(frame)

	list := morphic.NewMorph("list")
	list.SetBounds(morphic.NewRect(600, 40, 160, 600))
	list.Color = morphic.ColorTransparent
	frame.AddChild(list)
	for i := 0; i < 20; i++ {
		row := morphic.NewMorph("row")
		row.SetBounds(morphic.NewRect(600, 40+float64(i)*30, 160, 30))
		row.Color = colorRowEven
		if i%2 == 1 {
			row.Color = colorRowOdd
		}
		row.SetCachesImage(true)
		list.AddChild(row)
	}

	frame.OnMouseScroll = func(ctx morphic.ScrollContext) {
		top := list.Position().Y + ctx.DeltaY*20
		minTop := frame.Bounds().Corner.Y - list.Height()
		top = math.Max(minTop, math.Min(frame.Position().Y, top))
		list.SetTop(top)
	}
}

// buildDonut adds a free-form ring with a rectangular hole; clicks through
// the middle reach the world.
func buildDonut(w *morphic.World) {
	donut := morphic.NewMorph("donut")
	donut.SetBounds(morphic.NewRect(600, 300, 120, 120))
	donut.Color = colorAccent
	donut.FreeForm = true
	donut.Draggable = true
	donut.Drawer = morphic.DrawFunc(func(m *morphic.Morph, s morphic.Surface) {
		p := morphic.Circle(60, 60, 60)
		s.FillPath(p, m.Color)
	})
	donut.SetHoles(morphic.NewRect(35, 35, 50, 50))
	w.Add(donut)
}

// buildKeyBox adds a box that takes the keyboard focus when clicked and
// tints itself from typed digits.
func buildKeyBox(w *morphic.World) {
	box := morphic.NewMorph("key box")
	box.SetBounds(morphic.NewRect(140, 200, 120, 80))
	box.Color = colorPanel
	box.Draggable = true
	box.OnMouseClickLeft = func(ctx morphic.PointerContext) {
		w.SetKeyboardFocus(ctx.Morph)
	}
	box.OnKeyDown = func(ctx morphic.KeyContext) {
		if ctx.Char >= '0' && ctx.Char <= '9' {
			v := float64(ctx.Char-'0') / 9
			ctx.Morph.Color = morphic.Color{R: v, G: 0.5, B: 1 - v, A: 1}
			ctx.Morph.Rerender()
		}
	}
	w.Add(box)
}

// buildInbox adds a target for files dropped from the desktop.
func buildInbox(w *morphic.World, logger *slog.Logger) {
	inbox := morphic.NewMorph("inbox")
	inbox.SetBounds(morphic.NewRect(300, 40, 260, 160))
	inbox.Color = colorPanel
	w.Add(inbox)

	flash := func(m *morphic.Morph, c morphic.Color) {
		m.Color = c
		m.Rerender()
		restore := morphic.NewAnimation(
			func() float64 { return m.Color.A },
			func(v float64) {
				m.Color.A = v
				m.Rerender()
			},
			-0.5, 500*time.Millisecond, "quad_out", func() {
				m.Color = colorPanel
				m.Rerender()
			})
		w.AddAnimation(restore)
	}
	inbox.OnDroppedImage = func(ctx morphic.FileDropContext) {
		b := ctx.Image.Bounds()
		logger.Info("image dropped", "file", ctx.File.Name, "width", b.Dx(), "height", b.Dy())
		flash(ctx.Morph, colorAccent)
	}
	inbox.OnDroppedText = func(ctx morphic.FileDropContext) {
		logger.Info("text dropped", "file", ctx.File.Name, "chars", len(ctx.Text))
		flash(ctx.Morph, colorGood)
	}
	inbox.OnDroppedAudio = func(ctx morphic.FileDropContext) {
		logger.Info("audio dropped", "file", ctx.File.Name, "bytes", len(ctx.File.Data))
		flash(ctx.Morph, colorWarm)
	}
	inbox.OnDroppedBinary = func(ctx morphic.FileDropContext) {
		logger.Info("binary dropped", "file", ctx.File.Name, "bytes", len(ctx.File.Data))
		flash(ctx.Morph, colorBad)
	}
}
