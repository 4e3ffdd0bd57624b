package audio

// WAVHeaderSize is the canonical RIFF/fmt/data header length for the
// plain PCM files the local player accepts.
const WAVHeaderSize = 44

// SourceFunc fills out with the next mono samples and returns how many
// were written. A short return means the source is exhausted; the
// device renders silence for the remainder of that block.
type SourceFunc func(out []int16) int

type PlaybackConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewPlayback(device *DeviceInfo, config PlaybackConfig) (PlaybackDevice, error)
	Close()
}

type PlaybackDevice interface {
	Start() error
	Stop()
	Close()
	SetSource(fn SourceFunc)
	ClearSource()
}
