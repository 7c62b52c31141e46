package morphic

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Char   string  `json:"char,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "press": true,
	"move": true, "release": true, "key": true, "wait": true,
}

// TestRunner sequences injected input events and screenshots across cycles
// for automated visual testing. Attach to a World via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a World via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the world. The runner advances at
// the start of every Update.
func (w *World) SetTestRunner(runner *TestRunner) {
	w.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one cycle. Called from World.Update.
func (r *TestRunner) step(w *World) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(w.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		w.Screenshot(st.Label)
	case "click":
		w.InjectClick(st.X, st.Y)
	case "press":
		w.InjectPress(st.X, st.Y)
	case "move":
		w.InjectMove(st.X, st.Y)
	case "release":
		w.InjectRelease(st.X, st.Y)
	case "key":
		var ch rune
		if st.Char != "" {
			ch = []rune(st.Char)[0]
		}
		w.InjectKey(st.Key, ch)
	case "drag":
		w.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this cycle counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(w.injectQueue) == 0 {
		r.done = true
	}
}
