package morphic

import (
	"fmt"
	"log/slog"
	"time"
)

// globalDebug mirrors the most recently set World debug flag so that tree
// operations on detached morphs (which lack a World) can check it cheaply.
// Only valid with a single World; multiple Worlds with differing debug modes
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLogger receives tree warnings for morphs that are not in a World.
var debugLogger = NewLogger(slog.LevelWarn)

// debugEnabled reports whether tree checks should run for m.
func debugEnabled(m *Morph) bool {
	if w := m.World(); w != nil {
		return w.cfg.Debug
	}
	return globalDebug
}

func debugLoggerFor(m *Morph) *slog.Logger {
	if w := m.World(); w != nil {
		return w.logger
	}
	return debugLogger
}

// debugCheckDestroyed panics with a descriptive message when a destroyed morph
// is used in a tree operation. Only called in debug mode.
func debugCheckDestroyed(m *Morph, op string) {
	if m.destroyed {
		panic(fmt.Sprintf("morphic debug: %s on destroyed morph %q (ID was %d)", op, m.Name, m.ID))
	}
}

// debugCheckLinks verifies that m and its children agree on every parent
// link. A mismatch is a bug in the tree code, so it panics.
func debugCheckLinks(m *Morph) {
	if m.parent != nil && m.parent.indexOf(m) < 0 {
		panic(fmt.Sprintf("morphic debug: morph %q (ID %d) missing from its parent's children", m.Name, m.ID))
	}
	for _, child := range m.children {
		if child.parent != m {
			panic(fmt.Sprintf("morphic debug: child %q (ID %d) of %q does not point back to it", child.Name, child.ID, m.Name))
		}
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(m *Morph) {
	depth := 0
	for p := m; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLoggerFor(m).Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "morph", m.Name)
	}
}

// debugCheckChildCount warns if a morph has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(m *Morph) {
	if len(m.children) > debugMaxChildCount {
		debugLoggerFor(m).Warn("child count exceeds threshold",
			"morph", m.Name, "children", len(m.children), "threshold", debugMaxChildCount)
	}
}

// cycleStats holds per-cycle timing and counts. Only logged in debug mode.
type cycleStats struct {
	stepTime      time.Duration
	animationTime time.Duration
	repaintTime   time.Duration
	stepped       int
	deferred      int
	animations    int
	rawDamage     int
	damage        int
}

// debugLog writes the stats of one cycle at debug level.
func (w *World) debugLog(stats cycleStats) {
	if !w.cfg.Debug {
		return
	}
	total := stats.stepTime + stats.animationTime + stats.repaintTime
	w.logger.Debug("cycle",
		"step", stats.stepTime, "animate", stats.animationTime,
		"repaint", stats.repaintTime, "total", total)
	w.logger.Debug("cycle counts",
		"stepped", stats.stepped, "deferred", stats.deferred,
		"animations", stats.animations,
		"damage_raw", stats.rawDamage, "damage", stats.damage)
}
