package morphic

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Animation interpolates one numeric property over time. It writes through
// Setter and reads the start value through Getter once, when started. An
// Animation does nothing on its own; it must be registered with
// World.AddAnimation, which steps it once per cycle.
type Animation struct {
	Getter     func() float64
	Setter     func(float64)
	Delta      float64
	Duration   time.Duration
	Easing     string // name from the easing table; unknown names mean "sinusoidal"
	OnComplete func()

	destination float64
	endTime     time.Time
	active      bool
	ease        EasingFunc
	clock       func() time.Time
}

// NewAnimation returns an animation that moves the property by delta over
// duration.
func NewAnimation(getter func() float64, setter func(float64), delta float64,
	duration time.Duration, easing string, onComplete func()) *Animation {
	return &Animation{
		Getter:     getter,
		Setter:     setter,
		Delta:      delta,
		Duration:   duration,
		Easing:     easing,
		OnComplete: onComplete,
	}
}

// Start captures the destination (current value plus Delta) and the end time
// and activates the animation. Starting again restarts from the current value.
func (a *Animation) Start() {
	if a.clock == nil {
		a.clock = time.Now
	}
	a.ease = Ease(a.Easing)
	a.destination = a.Getter() + a.Delta
	a.endTime = a.clock().Add(a.Duration)
	a.active = true
}

// Step writes the interpolated value for the current time. Once the end time
// is reached it writes exactly the destination, deactivates and calls
// OnComplete. Inactive animations ignore Step.
func (a *Animation) Step() {
	if !a.active {
		return
	}
	now := a.clock()
	if !now.Before(a.endTime) || a.Duration <= 0 {
		a.Setter(a.destination)
		a.active = false
		if a.OnComplete != nil {
			a.OnComplete()
		}
		return
	}
	remaining := float64(a.endTime.Sub(now)) / float64(a.Duration)
	a.Setter(a.destination - a.Delta*a.ease(remaining))
}

// IsActive reports whether the animation is still running.
func (a *Animation) IsActive() bool {
	return a.active
}

// Destination returns the value the animation ends on.
func (a *Animation) Destination() float64 {
	return a.destination
}

// Stop deactivates the animation without writing a final value or calling
// OnComplete. The World drops it on its next cycle.
func (a *Animation) Stop() {
	a.active = false
}

// --- Easing ---

// EasingFunc maps a time fraction in [0, 1] to a progress fraction. Every
// function maps 0 to 0 and 1 to 1; elastic ones overshoot in between.
type EasingFunc func(t float64) float64

// DefaultEasing is used for unknown easing names.
const DefaultEasing = "sinusoidal"

func fromTween(fn ease.TweenFunc) EasingFunc {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var easings = map[string]EasingFunc{
	"linear":      fromTween(ease.Linear),
	"sinusoidal":  fromTween(ease.InOutSine),
	"quadratic":   fromTween(ease.InOutQuad),
	"cubic":       fromTween(ease.InOutCubic),
	"elastic":     fromTween(ease.InOutElastic),
	"sine_in":     fromTween(ease.InSine),
	"sine_out":    fromTween(ease.OutSine),
	"quad_in":     fromTween(ease.InQuad),
	"quad_out":    fromTween(ease.OutQuad),
	"cubic_in":    fromTween(ease.InCubic),
	"cubic_out":   fromTween(ease.OutCubic),
	"elastic_in":  fromTween(ease.InElastic),
	"elastic_out": fromTween(ease.OutElastic),
}

// Ease looks up an easing function by name, falling back to sinusoidal.
func Ease(name string) EasingFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return easings[DefaultEasing]
}

// EasingNames lists the names in the easing table.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	return names
}

// --- Morph motion ---

// GlideTo animates the morph's position to p over duration. onComplete runs
// once both axes arrived. A morph outside a World moves immediately.
func (m *Morph) GlideTo(p Point, duration time.Duration, easing string, onComplete func()) {
	w := m.World()
	if w == nil {
		m.SetPosition(p)
		if onComplete != nil {
			onComplete()
		}
		return
	}
	start := m.Position()
	w.AddAnimation(NewAnimation(
		func() float64 { return m.Position().X },
		func(v float64) { m.SetLeft(v) },
		p.X-start.X, duration, easing, nil,
	))
	w.AddAnimation(NewAnimation(
		func() float64 { return m.Position().Y },
		func(v float64) { m.SetTop(v) },
		p.Y-start.Y, duration, easing, onComplete,
	))
}

// SlideBackTo glides the morph back to situation and re-attaches it to the
// situation's origin there. The origin's OnDrop and the morph's
// OnJustDropped run as if the morph had been dropped. If the origin was
// destroyed or left the world during the glide, the morph lands on the world
// root instead. A morph without a situation to return to is destroyed.
func (m *Morph) SlideBackTo(sit Situation, duration time.Duration, onComplete func()) {
	if sit.Origin == nil {
		m.Destroy()
		if onComplete != nil {
			onComplete()
		}
		return
	}
	w := m.World()
	target := sit.Origin.Position().Add(sit.Position)
	m.GlideTo(target, duration, "sinusoidal", func() {
		origin := sit.Origin
		if w != nil && (origin.IsDestroyed() || origin.World() != w) {
			origin = w.root
		}
		origin.AddChild(m)
		ctx := DropContext{Morph: m, Dropped: m}
		if w != nil {
			ctx.Hand = w.hand
		}
		if m.OnJustDropped != nil {
			m.OnJustDropped(ctx)
		}
		if origin.OnDrop != nil {
			ctx.Morph = origin
			origin.OnDrop(ctx)
		}
		if onComplete != nil {
			onComplete()
		}
	})
}
