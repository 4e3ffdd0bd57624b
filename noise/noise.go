// Package noise generates short loopable ambient-noise buffers
// algorithmically; no samples are shipped or cached.
package noise

import "math/rand"

// Color selects the focus-sound flavor. Off is valid as a user setting
// but Generate rejects it: there is nothing to synthesize.
type Color int

const (
	Off Color = iota
	White
	Rain
	Brown
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Rain:
		return "rain"
	case Brown:
		return "brown"
	}
	return "off"
}

const (
	// SampleRate matches the playback device default.
	SampleRate = 44100

	// BufferSeconds is long enough that the loop seam is masked
	// perceptually without a cross-fade.
	BufferSeconds = 2

	rainAlpha = 0.08
	brownBeta = 0.02
	brownGain = 3.5
)

// Buffer is an immutable mono sample block tagged with its color.
// Samples are normalized to [-1, 1].
type Buffer struct {
	Color      Color
	SampleRate int
	Samples    []float64
}

// Generate synthesizes a fresh buffer for color. Each call draws new
// randomness; callers that need the same texture again still get a new
// signal. Buffers are never reused across activations. Returns nil for
// Off.
func Generate(color Color, sampleRate, durationSeconds int) *Buffer {
	if color == Off || sampleRate <= 0 || durationSeconds <= 0 {
		return nil
	}
	n := sampleRate * durationSeconds
	samples := make([]float64, n)
	switch color {
	case White:
		for i := range samples {
			samples[i] = rand.Float64()*2 - 1
		}
	case Rain:
		// One-pole low-pass over white noise.
		var y float64
		for i := range samples {
			x := rand.Float64()*2 - 1
			y += rainAlpha * (x - y)
			samples[i] = y
		}
	case Brown:
		// Leaky integrator; the fixed gain compensates for the
		// integrator's energy loss, otherwise the buffer is near-silent.
		var y float64
		for i := range samples {
			x := rand.Float64()*2 - 1
			y = (y + brownBeta*x) / (1 + brownBeta)
			samples[i] = clamp(y * brownGain)
		}
	}
	return &Buffer{Color: color, SampleRate: sampleRate, Samples: samples}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// PCM16 renders the buffer as 16-bit samples scaled by volume in [0,1].
func (b *Buffer) PCM16(volume float64) []int16 {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	out := make([]int16, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = int16(clamp(s) * volume * 32767)
	}
	return out
}
