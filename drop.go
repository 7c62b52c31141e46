package morphic

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF decoding for dropped images
	_ "image/jpeg" // register JPEG decoding for dropped images
	_ "image/png"  // register PNG decoding for dropped images
	"mime"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoding for dropped images
	_ "golang.org/x/image/webp" // register WebP decoding for dropped images
)

// DroppedFile is one file delivered by the host's file-drop event.
type DroppedFile struct {
	Name string
	MIME string // derived from the extension when empty
	Data []byte
}

// DropKind classifies dropped content.
type DropKind uint8

const (
	DropUnknown DropKind = iota
	DropImage
	DropAudio
	DropText
	DropBinary
)

// String returns a readable name for the kind.
func (k DropKind) String() string {
	switch k {
	case DropImage:
		return "image"
	case DropAudio:
		return "audio"
	case DropText:
		return "text"
	case DropBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// textExtensions are treated as text even when the platform reports no
// text MIME type for them.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".json": true, ".xml": true,
	".yaml": true, ".yml": true, ".go": true, ".js": true, ".html": true,
}

// mimeType returns the file's MIME type without parameters.
func (f DroppedFile) mimeType() string {
	t := f.MIME
	if t == "" {
		t = mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}

// Kind classifies the file by MIME type, falling back to well-known text
// extensions. Unrecognized combinations are DropUnknown.
func (f DroppedFile) Kind() DropKind {
	t := f.mimeType()
	switch {
	case strings.HasPrefix(t, "image/"):
		return DropImage
	case strings.HasPrefix(t, "audio/"):
		return DropAudio
	case strings.HasPrefix(t, "text/"):
		return DropText
	case textExtensions[strings.ToLower(filepath.Ext(f.Name))]:
		return DropText
	case strings.HasPrefix(t, "application/"):
		return DropBinary
	default:
		return DropUnknown
	}
}

// ProcessDrop delivers dropped files at pos. Each file goes to the nearest
// morph under the pointer, or ancestor, that handles its kind. Files of an
// unrecognized kind, images that fail to decode and files nobody handles are
// ignored.
func (h *Hand) ProcessDrop(pos Point, files []DroppedFile) {
	h.moveTo(pos)
	h.updateHover()
	morph := h.MorphAtPointer()
	for _, f := range files {
		h.deliverFile(morph, f)
	}
}

func (h *Hand) deliverFile(morph *Morph, f DroppedFile) {
	ctx := FileDropContext{Hand: h, File: f, Position: h.Position()}
	var target *Morph
	switch f.Kind() {
	case DropImage:
		img, _, err := image.Decode(bytes.NewReader(f.Data))
		if err != nil {
			h.world.logger.Debug("dropped image not decoded", "file", f.Name, "error", err)
			return
		}
		ctx.Image = img
		target = escalate(morph, func(m *Morph) bool { return m.OnDroppedImage != nil })
		if target != nil {
			ctx.Morph = target
			target.OnDroppedImage(ctx)
		}
	case DropAudio:
		target = escalate(morph, func(m *Morph) bool { return m.OnDroppedAudio != nil })
		if target != nil {
			ctx.Morph = target
			target.OnDroppedAudio(ctx)
		}
	case DropText:
		ctx.Text = string(f.Data)
		target = escalate(morph, func(m *Morph) bool { return m.OnDroppedText != nil })
		if target != nil {
			ctx.Morph = target
			target.OnDroppedText(ctx)
		}
	case DropBinary:
		target = escalate(morph, func(m *Morph) bool { return m.OnDroppedBinary != nil })
		if target != nil {
			ctx.Morph = target
			target.OnDroppedBinary(ctx)
		}
	default:
		h.world.logger.Debug("dropped file ignored", "file", f.Name, "mime", f.mimeType())
		return
	}
	if target != nil {
		h.emit(HandEventFileDrop, target, nil)
	}
}
