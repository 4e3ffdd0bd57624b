package media

import (
	"fmt"
	"sync"
)

// FakeBridge is a scriptable bridge for tests. Sim* helpers change what
// the next Get returns; Sent records every forwarded command.
type FakeBridge struct {
	mu      sync.Mutex
	snap    Snapshot
	getErr  error
	sendErr error
	sent    []Command
}

func NewFake() *FakeBridge { return &FakeBridge{} }

func (f *FakeBridge) Get() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return Snapshot{}, f.getErr
	}
	return f.snap, nil
}

func (f *FakeBridge) Send(cmd Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, cmd)
	// A forwarded play_pause toggles the fake player like a real one.
	if cmd == CmdPlayPause && f.snap.Available {
		f.snap.IsPlaying = !f.snap.IsPlaying
	}
	return nil
}

// SimPlaying makes the fake report an available external player.
func (f *FakeBridge) SimPlaying(source, title string, playing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = Snapshot{
		Available:         true,
		Title:             title,
		Source:            source,
		IsPlaying:         playing,
		SupportsPlayPause: true,
		SupportsNext:      true,
		SupportsPrevious:  true,
	}
}

// SimGone makes the external source disappear.
func (f *FakeBridge) SimGone() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = Snapshot{}
}

// SimError makes every Get fail until cleared.
func (f *FakeBridge) SimError(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if on {
		f.getErr = fmt.Errorf("media bridge unavailable")
	} else {
		f.getErr = nil
	}
}

// Snapshot returns the fake's current scripted state.
func (f *FakeBridge) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

// Sent returns the commands forwarded so far.
func (f *FakeBridge) Sent() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.sent))
	copy(out, f.sent)
	return out
}

// Playing reports the fake player's is-playing flag.
func (f *FakeBridge) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.IsPlaying
}
