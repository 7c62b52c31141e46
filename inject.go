package morphic

// syntheticEventKind identifies an injected input event.
type syntheticEventKind uint8

const (
	syntheticPress syntheticEventKind = iota
	syntheticMove
	syntheticRelease
	syntheticKey
)

// syntheticPointerEvent represents a single injected input event. World
// coordinates are used, matching what a screenshot of the world surface
// shows.
type syntheticPointerEvent struct {
	kind   syntheticEventKind
	x, y   float64
	button MouseButton
	key    string
	char   rune
}

// InjectPress queues a left-button press at (x, y). The event is consumed by
// the next Update.
func (w *World) InjectPress(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{
		kind: syntheticPress, x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move to (x, y). Use this between InjectPress and
// InjectRelease to simulate a drag.
func (w *World) InjectMove(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{
		kind: syntheticMove, x: x, y: y,
	})
}

// InjectRelease queues a button release at (x, y).
func (w *World) InjectRelease(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{
		kind: syntheticRelease, x: x, y: y,
	})
}

// InjectKey queues a key press and release delivered to the keyboard focus.
func (w *World) InjectKey(key string, char rune) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{
		kind: syntheticKey, key: key, char: char,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two cycles.
func (w *World) InjectClick(x, y float64) {
	w.InjectPress(x, y)
	w.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate cycles, and
// release at (toX, toY). The total sequence consumes `frames` cycles.
// Minimum frames is 2 (press + release).
func (w *World) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	w.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		w.InjectMove(x, y)
	}
	w.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (w *World) PendingInjections() int {
	return len(w.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the hand or the keyboard focus. Returns true if an event was consumed, in
// which case hosts skip real input for this cycle.
func (w *World) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	evt := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]

	pos := Pt(evt.x, evt.y)
	switch evt.kind {
	case syntheticPress:
		w.hand.ProcessMouseDown(pos, evt.button, 0)
	case syntheticMove:
		w.hand.ProcessMouseMove(pos, 0)
	case syntheticRelease:
		w.hand.ProcessMouseUp(pos, 0)
	case syntheticKey:
		w.ProcessKeyDown(evt.key, evt.char, 0)
		w.ProcessKeyUp(evt.key, 0)
	}
	return true
}
