package morphic

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "Enter", "char": "x"},
			{"action": "screenshot", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Key != "Enter" || runner.steps[3].Char != "x" {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "teleport"}]}`))
	if err == nil || !strings.Contains(err.Error(), "teleport") {
		t.Errorf("err = %v, want unknown action error", err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	w, _ := newTestWorld(t)
	data := []byte(`{"steps": [{"action": "click", "x": 50, "y": 60}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(w)
	if len(w.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events for click, got %d", len(w.injectQueue))
	}
	if w.injectQueue[0].kind != syntheticPress || w.injectQueue[0].x != 50 || w.injectQueue[0].y != 60 {
		t.Errorf("first event = %+v, want press at (50,60)", w.injectQueue[0])
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	w, _ := newTestWorld(t)

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Cycle 1: execute wait (waitCount becomes 2).
	runner.step(w)
	if runner.Done() {
		t.Error("should not be done during wait")
	}

	// Cycle 2: waitCount 2→1.
	runner.step(w)
	if runner.Done() {
		t.Error("should not be done during wait countdown")
	}

	// Cycle 3: waitCount 1→0.
	runner.step(w)
	if runner.Done() {
		t.Error("should not be done, screenshot step not yet executed")
	}

	// Cycle 4: execute screenshot step, runner finishes.
	runner.step(w)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}

	if len(w.screenshotQueue) != 1 || w.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", w.screenshotQueue)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	w, _ := newTestWorld(t)
	data := []byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(w)
	if len(w.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", len(w.injectQueue))
	}
}

func TestRunnerDone(t *testing.T) {
	w, _ := newTestWorld(t)

	data := []byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}

	runner.step(w)
	if !runner.Done() {
		t.Error("runner should be done after single screenshot step")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	w, _ := newTestWorld(t)

	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Step 1: click queues 2 events.
	runner.step(w)
	if len(w.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(w.injectQueue))
	}

	// Step again: should NOT advance because the inject queue is not drained.
	runner.step(w)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	w.injectQueue = w.injectQueue[:0]

	runner.step(w)
	if len(w.screenshotQueue) != 1 || w.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", w.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDrivesWorld(t *testing.T) {
	w, _ := newTestWorld(t)
	w.ScreenshotDir = t.TempDir()

	button := NewMorph("button")
	button.SetBounds(NewRect(40, 40, 40, 20))
	clicks := 0
	button.OnMouseClickLeft = func(PointerContext) { clicks++ }
	w.Add(button)

	field := NewMorph("field")
	field.SetBounds(NewRect(100, 40, 60, 20))
	var typed []rune
	field.OnKeyDown = func(ctx KeyContext) { typed = append(typed, ctx.Char) }
	w.Add(field)
	w.SetKeyboardFocus(field)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "key", "key": "H", "char": "h"},
		{"action": "screenshot", "label": "after click"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	w.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		w.Update()
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if string(typed) != "h" {
		t.Errorf("typed = %q, want %q", string(typed), "h")
	}
	matches, _ := filepath.Glob(filepath.Join(w.ScreenshotDir, "*_after_click.png"))
	if len(matches) != 1 {
		t.Errorf("screenshots = %v, want one after_click file", matches)
	}
}
