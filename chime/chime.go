// Package chime plays a short synthesized completion cue. It is a
// fire-and-forget sound effect, not an arbitrated audio source.
package chime

import (
	"math"
	"sync"
	"time"

	"tomo/audio"
)

const (
	sampleRate = 44100

	workFreq  = 900
	breakFreq = 1200
	volume    = 0.5
	decay     = 40
	duration  = 0.2
)

var disabled bool

// Disable silences all chimes for the process (used by tests and the
// quiet flag).
func Disable() { disabled = true }

type Chime struct {
	ctx audio.Context

	once         sync.Once
	workSamples  []int16
	breakSamples []int16
}

func New(ctx audio.Context) *Chime {
	return &Chime{ctx: ctx}
}

func (c *Chime) init() {
	c.workSamples = generateTick(sampleRate, workFreq, duration, volume, decay)
	c.breakSamples = generateTick(sampleRate, breakFreq, duration, volume, decay)
}

// generateTick renders an exponentially decaying sine burst.
func generateTick(sampleRate int, freq, duration, volume, decay float64) []int16 {
	n := int(float64(sampleRate) * duration)
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

// PlayWorkDone cues a finished work session.
func (c *Chime) PlayWorkDone() {
	c.once.Do(c.init)
	go c.play(c.workSamples)
}

// PlayBreakDone cues a finished break.
func (c *Chime) PlayBreakDone() {
	c.once.Do(c.init)
	go c.play(c.breakSamples)
}

func (c *Chime) play(samples []int16) {
	if disabled || len(samples) == 0 {
		return
	}
	dev, err := c.ctx.NewPlayback(nil, audio.PlaybackConfig{
		SampleRate: sampleRate,
		Channels:   1,
	})
	if err != nil {
		return
	}
	defer dev.Close()

	pos := 0
	dev.SetSource(func(out []int16) int {
		if pos >= len(samples) {
			return 0
		}
		n := copy(out, samples[pos:])
		pos += n
		return n
	})
	if err := dev.Start(); err != nil {
		return
	}
	time.Sleep(time.Duration(duration*float64(time.Second)) + 150*time.Millisecond)
	dev.Stop()
}
