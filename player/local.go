package player

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"tomo/audio"
)

// Track is decoded mono PCM plus display metadata.
type Track struct {
	Path       string
	Title      string
	Artist     string
	SampleRate int
	Samples    []int16
}

// Local plays one locally loaded audio file (WAV or FLAC). Pause keeps
// the position; Stop rewinds to the start. When playback reaches the
// end of the file the player stops itself and fires the done callback.
type Local struct {
	ctx    audio.Context
	volume atomic.Uint64 // math.Float64bits

	mu      sync.Mutex
	track   *Track
	dev     audio.PlaybackDevice
	pos     int
	playing bool
	onDone  func()
}

func NewLocal(ctx audio.Context) *Local {
	l := &Local{ctx: ctx}
	l.SetVolume(1)
	return l
}

// OnDone registers a callback fired (from its own goroutine) when the
// track plays to the end.
func (l *Local) OnDone(fn func()) {
	l.mu.Lock()
	l.onDone = fn
	l.mu.Unlock()
}

func (l *Local) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	l.volume.Store(math.Float64bits(v))
}

// Load decodes path and makes it the current track, stopping any
// previous playback and releasing the previous file's samples.
func (l *Local) Load(path string) error {
	var track *Track
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		track, err = decodeWAV(path)
	case ".flac":
		track, err = decodeFLAC(path)
	default:
		return fmt.Errorf("unsupported audio file %q (want .wav or .flac)", path)
	}
	if err != nil {
		return err
	}

	l.Stop()
	l.mu.Lock()
	dev := l.dev
	l.dev = nil
	l.track = track
	l.pos = 0
	l.mu.Unlock()
	// The device is pinned to the old track's sample rate; Play
	// recreates it at the new one.
	if dev != nil {
		dev.ClearSource()
		dev.Close()
	}
	return nil
}

// Play starts or resumes playback of the loaded track.
func (l *Local) Play() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.track == nil {
		return fmt.Errorf("no file loaded")
	}
	if l.playing {
		return nil
	}
	if l.pos >= len(l.track.Samples) {
		l.pos = 0
	}
	if l.dev == nil {
		dev, err := l.ctx.NewPlayback(nil, audio.PlaybackConfig{
			SampleRate: uint32(l.track.SampleRate),
			Channels:   1,
		})
		if err != nil {
			return err
		}
		dev.SetSource(l.fill)
		l.dev = dev
	}
	if err := l.dev.Start(); err != nil {
		return err
	}
	l.playing = true
	return nil
}

func (l *Local) fill(out []int16) int {
	l.mu.Lock()
	track, pos := l.track, l.pos
	l.mu.Unlock()
	if track == nil || pos >= len(track.Samples) {
		return 0
	}
	vol := math.Float64frombits(l.volume.Load())
	n := copy(out, track.Samples[pos:])
	for i := 0; i < n; i++ {
		out[i] = int16(float64(out[i]) * vol)
	}
	pos += n

	l.mu.Lock()
	l.pos = pos
	finished := pos >= len(track.Samples) && l.playing
	if finished {
		l.playing = false
	}
	done := l.onDone
	l.mu.Unlock()

	if finished {
		// fill runs inside the backend's data callback; stopping the
		// device from here deadlocks both pulse and malgo. Hand the
		// stop to a fresh goroutine. Until it runs the device renders
		// silence: playing is already false.
		go func() {
			if done != nil {
				done()
			}
			l.stopDevice()
		}()
	}
	return n
}

// Pause stops rendering but keeps the playback position.
func (l *Local) Pause() {
	l.mu.Lock()
	l.playing = false
	l.mu.Unlock()
	l.stopDevice()
}

// Stop pauses and rewinds to position 0.
func (l *Local) Stop() {
	l.mu.Lock()
	l.playing = false
	l.pos = 0
	l.mu.Unlock()
	l.stopDevice()
}

func (l *Local) stopDevice() {
	l.mu.Lock()
	dev := l.dev
	l.mu.Unlock()
	if dev != nil {
		dev.Stop()
	}
}

// Release tears down the device and drops the loaded file.
func (l *Local) Release() {
	l.mu.Lock()
	dev := l.dev
	l.dev = nil
	l.track = nil
	l.pos = 0
	l.playing = false
	l.mu.Unlock()
	if dev != nil {
		dev.ClearSource()
		dev.Stop()
		dev.Close()
	}
}

func (l *Local) Playing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playing
}

func (l *Local) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.track != nil
}

// TrackInfo returns the loaded track's title and artist, or empty
// strings when nothing is loaded.
func (l *Local) TrackInfo() (title, artist string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.track == nil {
		return "", ""
	}
	return l.track.Title, l.track.Artist
}
