package morphic

import (
	"fmt"
	"log/slog"
	"time"
)

// Failure phases reported to the logger and the widget failure metric.
const (
	phaseStep      = "step"
	phaseRender    = "render"
	phaseAnimation = "animation"
)

// World is the root of a morph tree bound to one drawing surface. It owns the
// damage list, the running animations, the Hand and the keyboard focus, and
// drives everything through DoOneCycle.
//
// A World is not safe for concurrent use. Input processing and DoOneCycle
// must be called from the same goroutine.
type World struct {
	root    *Morph
	hand    *Hand
	surface Surface
	cfg     Config

	damage        []Rect
	animations    []*Animation
	keyboardFocus *Morph

	now     func() time.Time
	logger  *slog.Logger
	metrics *Metrics
	sink    EventSink

	// Step phase
	stepBuf    []*Morph
	stepCursor uint32 // ID of the first morph to step next cycle; 0 = none

	stats     Stats
	rateStart time.Time
	rateCount int

	// Automation
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is the directory PNG screenshots are written to.
	ScreenshotDir string
}

// Stats summarizes what the World has done so far.
type Stats struct {
	Cycles          uint64
	Failures        uint64
	Drops           uint64
	LastDamage      int     // rectangles repainted by the last cycle
	LastStepped     int     // morphs stepped by the last cycle
	LastDeferred    int     // morphs left for the next cycle by the step budget
	CyclesPerSecond float64 // measured over the last full second
}

// NewWorld creates a world covering the whole surface. The initial damage
// covers the entire world so the first cycle paints everything.
func NewWorld(surface Surface, cfg Config) *World {
	if cfg.DamageCollapseLimit < 1 {
		cfg.DamageCollapseLimit = DefaultConfig().DamageCollapseLimit
	}
	w := &World{
		surface:       surface,
		cfg:           cfg,
		now:           time.Now,
		logger:        NewNopLogger(),
		ScreenshotDir: "screenshots",
	}
	sw, sh := surface.Size()
	root := NewMorph("world")
	root.bounds = NewRect(0, 0, float64(sw), float64(sh))
	root.Color = cfg.Background
	root.world = w
	w.root = root
	w.hand = newHand(w)
	if cfg.Debug {
		globalDebug = true
	}
	w.addDamage(root.bounds)
	return w
}

// Root returns the world's root morph.
func (w *World) Root() *Morph {
	return w.root
}

// Hand returns the world's pointer.
func (w *World) Hand() *Hand {
	return w.hand
}

// Surface returns the surface the world paints on.
func (w *World) Surface() Surface {
	return w.surface
}

// Config returns the world's configuration.
func (w *World) Config() Config {
	return w.cfg
}

// Bounds returns the world rectangle.
func (w *World) Bounds() Rect {
	return w.root.bounds
}

// Add attaches m as the topmost child of the world root.
func (w *World) Add(m *Morph) {
	w.root.AddChild(m)
}

// Stats returns the world's counters.
func (w *World) Stats() Stats {
	return w.stats
}

// SetClock replaces the time source used for stepping and animations.
func (w *World) SetClock(now func() time.Time) {
	w.now = now
	for _, a := range w.animations {
		a.clock = now
	}
}

// Now returns the current time of the world's clock.
func (w *World) Now() time.Time {
	return w.now()
}

// SetLogger sets the logger. A nil logger discards everything.
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	w.logger = l
}

// SetMetrics attaches Prometheus collectors; nil detaches them.
func (w *World) SetMetrics(m *Metrics) {
	w.metrics = m
}

// SetEventSink sets the optional outside event consumer.
func (w *World) SetEventSink(sink EventSink) {
	w.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, destroyed-morph
// access panics, tree links are verified after each mutation, tree depth and
// child count warnings are logged and per-cycle stats are logged at debug
// level.
func (w *World) SetDebugMode(enabled bool) {
	w.cfg.Debug = enabled
	globalDebug = enabled
}

// SetShowHoles toggles the hole overlay and repaints the world.
func (w *World) SetShowHoles(show bool) {
	w.cfg.ShowHoles = show
	w.addDamage(w.root.bounds)
}

// --- Animations ---

// AddAnimation registers a and starts it on the world's clock.
func (w *World) AddAnimation(a *Animation) {
	a.clock = w.now
	a.Start()
	w.animations = append(w.animations, a)
}

// Animations returns the registered animations. The returned slice MUST NOT
// be mutated.
func (w *World) Animations() []*Animation {
	return w.animations
}

// --- Keyboard ---

// SetKeyboardFocus directs key events to m. Nil clears the focus.
func (w *World) SetKeyboardFocus(m *Morph) {
	w.keyboardFocus = m
}

// KeyboardFocus returns the focused morph, or nil. A focused morph that has
// left the world is dropped from focus.
func (w *World) KeyboardFocus() *Morph {
	if w.keyboardFocus != nil && (w.keyboardFocus.destroyed || w.keyboardFocus.World() != w) {
		w.keyboardFocus = nil
	}
	return w.keyboardFocus
}

// ProcessKeyDown delivers a key press to the focused morph, escalating to
// the nearest ancestor with an OnKeyDown handler.
func (w *World) ProcessKeyDown(key string, char rune, mods KeyModifiers) {
	focus := w.KeyboardFocus()
	target := escalate(focus, func(m *Morph) bool { return m.OnKeyDown != nil })
	if target == nil {
		return
	}
	target.OnKeyDown(KeyContext{Morph: target, Key: key, Char: char, Modifiers: mods})
}

// ProcessKeyUp delivers a key release like ProcessKeyDown.
func (w *World) ProcessKeyUp(key string, mods KeyModifiers) {
	focus := w.KeyboardFocus()
	target := escalate(focus, func(m *Morph) bool { return m.OnKeyUp != nil })
	if target == nil {
		return
	}
	target.OnKeyUp(KeyContext{Morph: target, Key: key, Modifiers: mods})
}

// --- Cycle ---

// Update consumes one injected pointer event and advances an attached test
// runner, runs one cycle and writes any queued screenshots. Hosts that drive
// automation call Update instead of DoOneCycle.
func (w *World) Update() {
	if w.testRunner != nil {
		w.testRunner.step(w)
	}
	w.processInjectedInput()
	w.DoOneCycle()
	w.flushScreenshots()
}

// DoOneCycle runs the step phase, then the animation phase, then repaints
// the damaged regions. No phase starts before the previous one completed.
func (w *World) DoOneCycle() {
	var stats cycleStats
	start := w.now()

	stats.stepped, stats.deferred = w.stepPhase(start)
	t1 := w.now()
	stats.stepTime = t1.Sub(start)

	w.animationPhase()
	stats.animations = len(w.animations)
	t2 := w.now()
	stats.animationTime = t2.Sub(t1)

	stats.rawDamage, stats.damage = w.repaint()
	end := w.now()
	stats.repaintTime = end.Sub(t2)

	w.stats.Cycles++
	w.stats.LastStepped = stats.stepped
	w.stats.LastDeferred = stats.deferred
	w.stats.LastDamage = stats.damage
	w.measureRate(end)

	if m := w.metrics; m != nil {
		m.Cycles.Inc()
		m.CycleDuration.Observe(end.Sub(start).Seconds())
		m.DamageRects.WithLabelValues("raw").Observe(float64(stats.rawDamage))
		m.DamageRects.WithLabelValues("condensed").Observe(float64(stats.damage))
		m.ActiveAnimations.Set(float64(len(w.animations)))
	}
	w.debugLog(stats)
}

func (w *World) measureRate(now time.Time) {
	if w.rateStart.IsZero() {
		w.rateStart = now
	}
	w.rateCount++
	if elapsed := now.Sub(w.rateStart); elapsed >= time.Second {
		w.stats.CyclesPerSecond = float64(w.rateCount) / elapsed.Seconds()
		w.rateStart = now
		w.rateCount = 0
	}
}

// stepPhase steps every morph of the world tree and then of the hand, depth
// first. With a step budget, the phase stops once the budget is spent and
// the next cycle starts with the first morph that was left out.
func (w *World) stepPhase(now time.Time) (stepped, deferred int) {
	w.stepBuf = appendSteppers(w.stepBuf[:0], w.root)
	w.stepBuf = appendSteppers(w.stepBuf, w.hand.morph)
	n := len(w.stepBuf)
	if n == 0 {
		return 0, 0
	}

	first := 0
	if w.stepCursor != 0 {
		for i, m := range w.stepBuf {
			if m.ID == w.stepCursor {
				first = i
				break
			}
		}
		w.stepCursor = 0
	}

	budget := w.cfg.StepBudget
	for i := 0; i < n; i++ {
		m := w.stepBuf[(first+i)%n]
		if budget > 0 && i > 0 && w.now().Sub(now) >= budget {
			w.stepCursor = m.ID
			deferred = n - i
			break
		}
		if w.stepMorph(m, now) {
			stepped++
		}
	}
	clear(w.stepBuf)
	return stepped, deferred
}

// appendSteppers collects the morphs of a subtree that have a step handler
// or pending one-shot actions, in depth-first pre-order.
func appendSteppers(buf []*Morph, m *Morph) []*Morph {
	if m.wantsStep() {
		buf = append(buf, m)
	}
	for _, child := range m.children {
		buf = appendSteppers(buf, child)
	}
	return buf
}

// stepMorph runs the morph's queued actions and its step handler if its own
// frame interval has elapsed. Morphs that left the world during this phase
// are skipped.
func (w *World) stepMorph(m *Morph, now time.Time) bool {
	if m.destroyed || m.World() != w {
		return false
	}
	if m.FPS > 0 && !m.lastStep.IsZero() {
		interval := time.Duration(float64(time.Second) / m.FPS)
		if now.Sub(m.lastStep) < interval {
			return false
		}
	}
	m.lastStep = now

	if len(m.nextSteps) > 0 {
		actions := m.nextSteps
		m.nextSteps = nil
		for _, fn := range actions {
			w.safeCall(m, phaseStep, fn)
		}
	}
	if m.OnStep != nil {
		w.safeCall(m, phaseStep, func() { m.OnStep(m) })
	}
	return true
}

// safeCall runs fn, recovering and reporting a panic.
func (w *World) safeCall(m *Morph, phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.widgetFailed(m, phase, r)
		}
	}()
	fn()
}

// widgetFailed logs and counts a recovered widget panic. Safe on a nil World.
func (w *World) widgetFailed(m *Morph, phase string, r any) {
	if w == nil {
		return
	}
	w.stats.Failures++
	if w.metrics != nil {
		w.metrics.WidgetFailures.WithLabelValues(phase).Inc()
	}
	w.logger.Error("widget failed", "phase", phase, "morph", m.Name, "id", m.ID,
		"error", fmt.Errorf("%v", r))
}

// animationPhase advances every active animation and then drops the ones
// that became inactive. Animations added while stepping run next cycle.
func (w *World) animationPhase() {
	n := len(w.animations)
	for i := 0; i < n; i++ {
		a := w.animations[i]
		w.stepAnimation(a)
	}
	kept := w.animations[:0]
	for _, a := range w.animations {
		if a.IsActive() {
			kept = append(kept, a)
		}
	}
	clear(w.animations[len(kept):])
	w.animations = kept
}

func (w *World) stepAnimation(a *Animation) {
	defer func() {
		if r := recover(); r != nil {
			a.Stop()
			w.stats.Failures++
			if w.metrics != nil {
				w.metrics.WidgetFailures.WithLabelValues(phaseAnimation).Inc()
			}
			w.logger.Error("animation failed", "error", fmt.Errorf("%v", r))
		}
	}()
	a.Step()
}

// repaint condenses the damage list and repaints the whole tree clipped to
// each surviving rectangle, then the hand on top. The damage list is empty
// afterwards.
func (w *World) repaint() (raw, painted int) {
	raw = len(w.damage)
	w.damage = condenseDamages(w.damage, w.cfg.DamageProximity, w.cfg.DamageCollapseLimit)
	s := w.surface
	for _, r := range w.damage {
		r = r.Spread().Intersect(w.root.bounds)
		if r.IsEmpty() {
			continue
		}
		s.Save()
		s.Clip(r)
		s.Clear()
		s.Restore()
		w.root.FullDrawOn(s, r)
		w.hand.drawOn(s, r)
		painted++
	}
	w.damage = w.damage[:0]
	return raw, painted
}
