//go:build linux

package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

type pulseContext struct {
	client *pulse.Client
}

func NewContext() (Context, error) {
	c, err := pulse.NewClient()
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	return &pulseContext{client: c}, nil
}

func (p *pulseContext) Devices() ([]DeviceInfo, error) {
	sinks, err := p.client.ListSinks()
	if err != nil {
		return nil, fmt.Errorf("pulse list sinks: %w", err)
	}
	var devices []DeviceInfo
	for _, s := range sinks {
		devices = append(devices, DeviceInfo{
			ID:   s.ID(),
			Name: s.Name(),
		})
	}
	return devices, nil
}

func (p *pulseContext) NewPlayback(device *DeviceInfo, config PlaybackConfig) (PlaybackDevice, error) {
	return &pulsePlayback{
		client: p.client,
		device: device,
		config: config,
	}, nil
}

func (p *pulseContext) Close() {
	p.client.Close()
}

type pulsePlayback struct {
	client *pulse.Client
	device *DeviceInfo
	config PlaybackConfig
	source atomic.Pointer[SourceFunc]

	mu     sync.Mutex
	stream *pulse.PlaybackStream
}

func (d *pulsePlayback) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream != nil {
		return nil
	}

	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		fn := d.source.Load()
		if fn == nil {
			for i := range buf {
				buf[i] = 0
			}
			return len(buf), nil
		}
		n := (*fn)(buf)
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		return len(buf), nil
	})

	opts := []pulse.PlaybackOption{
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(int(d.config.SampleRate)),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(proto.VolumeNorm)}
		}),
	}
	if d.device != nil {
		sink, err := d.client.SinkByID(d.device.ID)
		if err == nil && sink != nil {
			opts = append(opts, pulse.PlaybackSink(sink))
		}
	}

	stream, err := d.client.NewPlayback(reader, opts...)
	if err != nil {
		return fmt.Errorf("pulse playback: %w", err)
	}
	stream.Start()
	d.stream = stream
	return nil
}

func (d *pulsePlayback) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream != nil {
		d.stream.Stop()
		d.stream.Close()
		d.stream = nil
	}
}

func (d *pulsePlayback) Close() {
	d.Stop()
}

func (d *pulsePlayback) SetSource(fn SourceFunc) {
	d.source.Store(&fn)
}

func (d *pulsePlayback) ClearSource() {
	d.source.Store(nil)
}
