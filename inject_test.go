package morphic

import "testing"

func TestInjectClick(t *testing.T) {
	w, _ := newTestWorld(t)
	m := NewMorph("m")
	m.SetBounds(NewRect(0, 0, 100, 100))
	w.Add(m)

	var clicked bool
	m.OnMouseClickLeft = func(ctx PointerContext) {
		clicked = true
		if ctx.Morph != m {
			t.Error("expected m")
		}
	}

	w.InjectClick(50, 50)
	if w.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", w.PendingInjections())
	}

	// Cycle 1: press
	w.Update()
	if w.PendingInjections() != 1 {
		t.Fatalf("expected 1 remaining event after cycle 1, got %d", w.PendingInjections())
	}
	if clicked {
		t.Error("click should not fire on press cycle")
	}

	// Cycle 2: release → click fires
	w.Update()
	if w.PendingInjections() != 0 {
		t.Fatalf("expected 0 remaining events after cycle 2, got %d", w.PendingInjections())
	}
	if !clicked {
		t.Error("click should fire on release cycle")
	}
}

func TestInjectDrag(t *testing.T) {
	w, _ := newTestWorld(t)
	m := newDraggable("m", 0, 0)
	w.Add(m)
	sink := &recordingSink{}
	w.SetEventSink(sink)

	// Drag from (10,10) to (110,110) over 5 cycles:
	// cycle 0: press at (10,10)
	// cycle 1: move to (35, 35)
	// cycle 2: move to (60, 60)
	// cycle 3: move to (85, 85)
	// cycle 4: release at (110, 110)
	w.InjectDrag(10, 10, 110, 110, 5)
	if w.PendingInjections() != 5 {
		t.Fatalf("expected 5 queued events, got %d", w.PendingInjections())
	}
	for range 5 {
		w.Update()
	}

	if got := m.Position(); got != Pt(100, 100) {
		t.Errorf("Position = %v, want (100, 100)", got)
	}
	if len(sink.events) != 2 || sink.events[0].Type != HandEventGrab || sink.events[1].Type != HandEventDrop {
		t.Errorf("events = %v, want [grab drop]", sink.types())
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	w, _ := newTestWorld(t)
	w.InjectDrag(0, 0, 100, 100, 1) // should clamp to 2
	if w.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", w.PendingInjections())
	}
}

func TestInjectQueueOrder(t *testing.T) {
	w, _ := newTestWorld(t)

	w.InjectPress(10, 20)
	w.InjectMove(30, 40)
	w.InjectRelease(50, 60)
	w.InjectKey("A", 'a')

	if len(w.injectQueue) != 4 {
		t.Fatalf("expected 4 events, got %d", len(w.injectQueue))
	}
	want := []syntheticEventKind{syntheticPress, syntheticMove, syntheticRelease, syntheticKey}
	for i, k := range want {
		if w.injectQueue[i].kind != k {
			t.Errorf("event %d kind = %d, want %d", i, w.injectQueue[i].kind, k)
		}
	}
	if w.injectQueue[0].x != 10 || w.injectQueue[1].x != 30 || w.injectQueue[2].x != 50 {
		t.Error("events should keep their coordinates in order")
	}
}

func TestProcessInjectedInput(t *testing.T) {
	w, _ := newTestWorld(t)
	m := NewMorph("m")
	m.SetBounds(NewRect(0, 0, 100, 100))
	w.Add(m)

	var downFired bool
	m.OnMouseDownLeft = func(ctx PointerContext) {
		downFired = true
		if ctx.Position != Pt(50, 50) {
			t.Errorf("expected position (50,50), got %v", ctx.Position)
		}
	}

	w.InjectPress(50, 50)
	if !w.processInjectedInput() {
		t.Error("expected processInjectedInput to consume an event")
	}
	if !downFired {
		t.Error("mouse down should have fired")
	}
	if w.PendingInjections() != 0 {
		t.Errorf("queue should be empty, got %d", w.PendingInjections())
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	w, _ := newTestWorld(t)
	if w.processInjectedInput() {
		t.Error("should not consume when queue is empty")
	}
}

func TestInjectKeyGoesToFocus(t *testing.T) {
	w, _ := newTestWorld(t)
	m := NewMorph("m")
	w.Add(m)
	var events []string
	m.OnKeyDown = func(ctx KeyContext) { events = append(events, "down "+ctx.Key) }
	m.OnKeyUp = func(ctx KeyContext) { events = append(events, "up "+ctx.Key) }
	w.SetKeyboardFocus(m)

	w.InjectKey("Enter", 0)
	w.Update()
	if len(events) != 2 || events[0] != "down Enter" || events[1] != "up Enter" {
		t.Errorf("events = %v, want [down Enter up Enter]", events)
	}
}
