package morphic

import "image"

// PointerContext carries pointer event data to a morph handler.
type PointerContext struct {
	Morph     *Morph // the morph whose handler runs
	Hand      *Hand
	Position  Point // pointer position in world coordinates
	Local     Point // pointer position relative to Morph's top-left
	Button    MouseButton
	Modifiers KeyModifiers
}

// ScrollContext carries wheel data.
type ScrollContext struct {
	PointerContext
	DeltaX, DeltaY float64
}

// KeyContext carries keyboard event data to the focused morph.
type KeyContext struct {
	Morph     *Morph
	Key       string // host key name, e.g. "Enter", "A", "ArrowLeft"
	Char      rune   // printable character, 0 when none
	Modifiers KeyModifiers
}

// DropContext describes a morph changing hands during drag and drop.
type DropContext struct {
	Morph   *Morph // the morph whose handler runs
	Dropped *Morph // the morph being grabbed or dropped
	Hand    *Hand
}

// FileDropContext carries one dropped file to the morph that handles its
// content kind. Image is set only for decoded images; Text only for text.
type FileDropContext struct {
	Morph    *Morph
	Hand     *Hand
	File     DroppedFile
	Position Point
	Image    image.Image
	Text     string
}

// HandEventType identifies a kind of hand event forwarded to an EventSink.
type HandEventType uint8

const (
	HandEventGrab        HandEventType = iota // a morph was picked up
	HandEventDrop                             // a morph was dropped into a target
	HandEventClick                            // a click was delivered
	HandEventDoubleClick                      // a double click was delivered
	HandEventSlideBack                        // a grabbed morph returned to its origin
	HandEventFileDrop                         // a dropped file was delivered
)

// String returns a readable name for the event type.
func (t HandEventType) String() string {
	switch t {
	case HandEventGrab:
		return "grab"
	case HandEventDrop:
		return "drop"
	case HandEventClick:
		return "click"
	case HandEventDoubleClick:
		return "double-click"
	case HandEventSlideBack:
		return "slide-back"
	case HandEventFileDrop:
		return "file-drop"
	default:
		return "unknown"
	}
}

// HandEvent is the record emitted to an EventSink.
type HandEvent struct {
	Type     HandEventType
	MorphID  uint32 // morph grabbed, dropped or clicked
	TargetID uint32 // drop target, when there is one
	X, Y     float64
	Button   MouseButton
}

// EventSink is the interface for optional integration with an outside event
// system (for example an ECS world). When set on a World, hand events are
// forwarded to it after the morph handlers ran.
type EventSink interface {
	EmitEvent(event HandEvent)
}
