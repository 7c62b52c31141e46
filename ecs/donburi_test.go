package ecs

import (
	"testing"

	"github.com/phanxgames/morphic"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []morphic.HandEvent
	HandEventType.Subscribe(world, func(w donburi.World, e morphic.HandEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(morphic.HandEvent{
		Type:    morphic.HandEventGrab,
		MorphID: 42,
		X:       100,
		Y:       200,
		Button:  morphic.MouseButtonLeft,
	})
	sink.EmitEvent(morphic.HandEvent{
		Type:     morphic.HandEventDrop,
		MorphID:  42,
		TargetID: 7,
	})

	// Events are queued; process them.
	HandEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != morphic.HandEventGrab || e0.MorphID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}

	e1 := received[1]
	if e1.Type != morphic.HandEventDrop || e1.TargetID != 7 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink morphic.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_FromWorldDrag(t *testing.T) {
	world := donburi.NewWorld()

	w := morphic.NewWorld(morphic.NewCanvas(200, 200), morphic.DefaultConfig())
	w.SetEventSink(NewDonburiSink(world))
	box := morphic.NewMorph("box")
	box.Draggable = true
	w.Add(box)

	var types []morphic.HandEventType
	HandEventType.Subscribe(world, func(_ donburi.World, e morphic.HandEvent) {
		types = append(types, e.Type)
	})

	h := w.Hand()
	h.ProcessMouseDown(morphic.Pt(10, 10), morphic.MouseButtonLeft, 0)
	h.ProcessMouseMove(morphic.Pt(40, 40), 0)
	h.ProcessMouseUp(morphic.Pt(40, 40), 0)
	events.ProcessAllEvents(world)

	if len(types) != 2 || types[0] != morphic.HandEventGrab || types[1] != morphic.HandEventDrop {
		t.Errorf("events = %v, want [grab drop]", types)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	HandEventType.Subscribe(world, func(w donburi.World, e morphic.HandEvent) {
		count1++
	})
	HandEventType.Subscribe(world, func(w donburi.World, e morphic.HandEvent) {
		count2++
	})

	sink.EmitEvent(morphic.HandEvent{Type: morphic.HandEventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
