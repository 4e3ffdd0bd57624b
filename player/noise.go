// Package player implements the two in-process audio sources: a looping
// ambient-noise player and a local file player. Both render through an
// audio.PlaybackDevice and never sound at the same time; the engine's
// arbiter enforces that.
package player

import (
	"math"
	"sync"
	"sync/atomic"

	"tomo/audio"
	"tomo/noise"
)

// Noise loops a synthesized noise buffer through a playback device.
// The buffer is regenerated on every Play, even for the same color.
type Noise struct {
	ctx    audio.Context
	volume atomic.Uint64 // math.Float64bits

	mu      sync.Mutex
	dev     audio.PlaybackDevice
	pcm     []int16
	pos     int
	color   noise.Color
	playing bool
}

func NewNoise(ctx audio.Context) *Noise {
	n := &Noise{ctx: ctx}
	n.SetVolume(1)
	return n
}

// SetVolume sets the playback gain in [0,1]. Applied per sample at
// render time, so it takes effect without restarting the loop.
func (n *Noise) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	n.volume.Store(math.Float64bits(v))
}

// Play synthesizes a fresh buffer for color and starts looping it,
// replacing whatever was playing before.
func (n *Noise) Play(color noise.Color) error {
	n.Stop()
	if color == noise.Off {
		return nil
	}

	buf := noise.Generate(color, noise.SampleRate, noise.BufferSeconds)

	n.mu.Lock()
	defer n.mu.Unlock()

	dev, err := n.ctx.NewPlayback(nil, audio.PlaybackConfig{
		SampleRate: noise.SampleRate,
		Channels:   1,
	})
	if err != nil {
		return err
	}

	n.pcm = buf.PCM16(1)
	n.pos = 0
	n.color = color
	dev.SetSource(n.fill)
	if err := dev.Start(); err != nil {
		dev.Close()
		n.pcm = nil
		return err
	}
	n.dev = dev
	n.playing = true
	return nil
}

// fill is the device pull callback; playback wraps at the buffer end.
func (n *Noise) fill(out []int16) int {
	n.mu.Lock()
	pcm, pos := n.pcm, n.pos
	n.mu.Unlock()
	if len(pcm) == 0 {
		return 0
	}
	vol := math.Float64frombits(n.volume.Load())
	for i := range out {
		out[i] = int16(float64(pcm[pos]) * vol)
		pos = (pos + 1) % len(pcm)
	}
	n.mu.Lock()
	n.pos = pos
	n.mu.Unlock()
	return len(out)
}

// Stop ends the loop and releases the device and buffer. A later Play
// re-synthesizes from scratch.
func (n *Noise) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dev != nil {
		n.dev.ClearSource()
		n.dev.Stop()
		n.dev.Close()
		n.dev = nil
	}
	n.pcm = nil
	n.pos = 0
	n.playing = false
	n.color = noise.Off
}

func (n *Noise) Playing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.playing
}

func (n *Noise) Color() noise.Color {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.color
}
