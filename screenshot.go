package morphic

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Snapshotter is implemented by surfaces whose pixels can be read back.
type Snapshotter interface {
	Snapshot() (image.Image, error)
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// current Update. The resulting PNG is written to ScreenshotDir with a
// timestamped filename.
func (w *World) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// flushScreenshots captures the world surface for every queued label and
// writes each as a PNG file.
func (w *World) flushScreenshots() {
	if len(w.screenshotQueue) == 0 {
		return
	}
	defer func() { w.screenshotQueue = w.screenshotQueue[:0] }()

	snap, ok := w.surface.(Snapshotter)
	if !ok {
		w.logger.Error("screenshot", "error", fmt.Errorf("%w: %T cannot be read back", ErrUnsupportedSurface, w.surface))
		return
	}
	src, err := snap.Snapshot()
	if err != nil {
		w.logger.Error("screenshot", "error", err)
		return
	}
	if err := os.MkdirAll(w.ScreenshotDir, 0o755); err != nil {
		w.logger.Error("screenshot", "dir", w.ScreenshotDir, "error", err)
		return
	}

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	stamp := w.now().Format("20060102_150405")
	for _, label := range w.screenshotQueue {
		path := filepath.Join(w.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			w.logger.Error("screenshot", "error", err)
			continue
		}
		w.logger.Info("screenshot written", "path", path)
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
