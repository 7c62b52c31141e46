package morphic

// fpsMeterSamples is the number of bars shown by an FPS meter.
const fpsMeterSamples = 30

// NewFPSMeter creates a morph that graphs the world's measured cycle rate.
// It steps twice per second, records one sample per step and draws the last
// samples as bars scaled against target cycles per second.
func NewFPSMeter(target float64) *Morph {
	if target <= 0 {
		target = 60
	}
	m := NewMorph("fps_meter")
	m.SetExtent(Pt(fpsMeterSamples*3, 32))
	m.Color = Color{A: 0.5}
	m.FPS = 2

	samples := make([]float64, 0, fpsMeterSamples)
	m.OnStep = func(m *Morph) {
		w := m.World()
		if w == nil {
			return
		}
		if len(samples) == fpsMeterSamples {
			copy(samples, samples[1:])
			samples = samples[:fpsMeterSamples-1]
		}
		samples = append(samples, w.Stats().CyclesPerSecond)
		m.Rerender()
	}
	m.Drawer = DrawFunc(func(m *Morph, s Surface) {
		h := m.Height()
		s.FillRect(NewRect(0, 0, m.Width(), h), m.Color)
		barW := m.Width() / fpsMeterSamples
		for i, v := range samples {
			frac := clamp01(v / target)
			c := Color{R: 1 - frac, G: frac, B: 0.2, A: 1}
			s.FillRect(NewRect(float64(i)*barW, h*(1-frac), barW-1, h*frac), c)
		}
	})
	return m
}
