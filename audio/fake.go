package audio

import "sync"

// FakeContext hands out in-memory playback devices for tests. Nothing
// reaches a sound card; tests pull samples with Render.
type FakeContext struct {
	mu      sync.Mutex
	devices []*FakePlayback
}

func NewFakeContext() *FakeContext { return &FakeContext{} }

func (f *FakeContext) Devices() ([]DeviceInfo, error) { return nil, nil }
func (f *FakeContext) Close()                         {}

func (f *FakeContext) NewPlayback(_ *DeviceInfo, config PlaybackConfig) (PlaybackDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &FakePlayback{config: config}
	f.devices = append(f.devices, d)
	return d, nil
}

// Playing reports whether any device handed out by this context is
// currently started.
func (f *FakeContext) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.Started() {
			return true
		}
	}
	return false
}

// LastDevice returns the most recently created playback device, or nil.
func (f *FakeContext) LastDevice() *FakePlayback {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.devices) == 0 {
		return nil
	}
	return f.devices[len(f.devices)-1]
}

type FakePlayback struct {
	config PlaybackConfig

	mu                sync.Mutex
	source            SourceFunc
	started           bool
	closed            bool
	rendered          []int16
	rendering         bool
	stoppedInCallback bool
}

func (d *FakePlayback) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = true
	return nil
}

func (d *FakePlayback) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rendering {
		d.stoppedInCallback = true
	}
	d.started = false
}

func (d *FakePlayback) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	d.closed = true
}

func (d *FakePlayback) SetSource(fn SourceFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = fn
}

func (d *FakePlayback) ClearSource() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = nil
}

func (d *FakePlayback) Started() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

func (d *FakePlayback) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// StoppedInCallback reports whether Stop was ever called while a
// Render was still pulling from the source. Real backends deadlock on
// that, so sources must never do it.
func (d *FakePlayback) StoppedInCallback() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stoppedInCallback
}

// Render pulls n samples from the device's source the way a driver
// callback would, recording them for assertions. Returns the samples
// actually produced by the source (the rest would be silence).
func (d *FakePlayback) Render(n int) []int16 {
	d.mu.Lock()
	fn := d.source
	started := d.started
	d.mu.Unlock()
	if !started || fn == nil {
		return nil
	}
	d.mu.Lock()
	d.rendering = true
	d.mu.Unlock()
	buf := make([]int16, n)
	got := fn(buf)
	out := buf[:got]
	d.mu.Lock()
	d.rendering = false
	d.rendered = append(d.rendered, out...)
	d.mu.Unlock()
	return out
}

// Rendered returns everything pulled through Render so far.
func (d *FakePlayback) Rendered() []int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int16, len(d.rendered))
	copy(out, d.rendered)
	return out
}
