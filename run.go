package morphic

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int // window width; defaults to the world width
	Height  int // window height; defaults to the world height
	ShowFPS bool
	// OnUpdate, when set, runs every tick before input is processed.
	// Returning an error stops the game loop.
	OnUpdate func() error
}

// Run opens a window and drives world from the ebiten game loop: host input
// is translated into Hand and keyboard events, then World.Update runs one
// cycle. Run blocks until the window closes.
func Run(world *World, cfg RunConfig) error {
	wb := world.Bounds()
	if cfg.Width <= 0 {
		cfg.Width = int(wb.Width())
	}
	if cfg.Height <= 0 {
		cfg.Height = int(wb.Height())
	}
	if cfg.ShowFPS {
		meter := NewFPSMeter(float64(ebiten.TPS()))
		meter.SetPosition(Pt(4, 4))
		world.Add(meter)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if err := ebiten.RunGame(&game{world: world, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// game adapts a World to ebiten.Game.
type game struct {
	world *World
	cfg   RunConfig

	mirror    *ebiten.Image // for software surfaces
	lastPos   Point
	lastClick time.Time
	clickPos  Point
	keys      []ebiten.Key
	chars     []rune
}

func (g *game) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(); err != nil {
			return err
		}
	}
	if g.world.PendingInjections() == 0 {
		g.pollInput()
	}
	g.world.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	switch s := g.world.surface.(type) {
	case *EbitenSurface:
		screen.DrawImage(s.Image(), nil)
	case Snapshotter:
		img, err := s.Snapshot()
		if err != nil {
			return
		}
		b := img.Bounds()
		if g.mirror == nil || g.mirror.Bounds().Dx() != b.Dx() || g.mirror.Bounds().Dy() != b.Dy() {
			g.mirror = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.mirror.WritePixels(rgbaPix(img))
		screen.DrawImage(g.mirror, nil)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	b := g.world.Bounds()
	return int(b.Width()), int(b.Height())
}

// pollInput reads ebiten's input state and feeds it to the world.
func (g *game) pollInput() {
	h := g.world.hand
	mods := readModifiers()
	cx, cy := ebiten.CursorPosition()
	pos := Pt(float64(cx), float64(cy))

	if pos != g.lastPos {
		h.ProcessMouseMove(pos, mods)
		g.lastPos = pos
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.ProcessMouseDown(pos, MouseButtonLeft, mods)
	} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		h.ProcessMouseDown(pos, MouseButtonRight, mods)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.ProcessMouseUp(pos, mods)
		g.detectDoubleClick(pos, mods)
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		h.ProcessMouseUp(pos, mods)
	}

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		h.ProcessMouseScroll(pos, dx, dy, mods)
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.world.ProcessKeyDown(k.String(), 0, mods)
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, ch := range g.chars {
		g.world.ProcessKeyDown("", ch, mods)
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.world.ProcessKeyUp(k.String(), mods)
	}

	if files := readDroppedFiles(ebiten.DroppedFiles()); len(files) > 0 {
		h.ProcessDrop(pos, files)
	}
}

// detectDoubleClick reports a double click when a left click follows the
// previous one within the configured interval and grab threshold.
func (g *game) detectDoubleClick(pos Point, mods KeyModifiers) {
	now := g.world.now()
	cfg := g.world.cfg
	if !g.lastClick.IsZero() && now.Sub(g.lastClick) <= cfg.DoubleClickInterval &&
		pos.DistanceTo(g.clickPos) <= cfg.GrabThreshold {
		g.world.hand.ProcessDoubleClick(pos, mods)
		g.lastClick = time.Time{}
		return
	}
	g.lastClick = now
	g.clickPos = pos
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// readDroppedFiles reads every regular file of a dropped file system.
// Unreadable files are skipped.
func readDroppedFiles(fsys fs.FS) []DroppedFile {
	if fsys == nil {
		return nil
	}
	var files []DroppedFile
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil
		}
		files = append(files, DroppedFile{Name: path, Data: data})
		return nil
	})
	return files
}
