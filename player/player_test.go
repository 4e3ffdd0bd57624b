package player

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tomo/audio"
	"tomo/noise"
)

func writeWAV(t *testing.T, name string, frames int, tag []byte) string {
	t.Helper()
	data := make([]byte, audio.WAVHeaderSize+frames*2)
	copy(data[0:4], "RIFF")
	copy(data[8:12], "WAVE")
	binary.LittleEndian.PutUint16(data[20:], 1)
	binary.LittleEndian.PutUint16(data[22:], 1)
	binary.LittleEndian.PutUint32(data[24:], 44100)
	binary.LittleEndian.PutUint16(data[34:], 16)
	copy(data[36:40], "data")
	binary.LittleEndian.PutUint32(data[40:], uint32(frames*2))
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(data[audio.WAVHeaderSize+i*2:], uint16(int16(2000)))
	}
	data = append(data, tag...)
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func id3v1Tag(title, artist string) []byte {
	tag := make([]byte, id3v1Size)
	copy(tag[0:3], "TAG")
	copy(tag[3:33], title)
	copy(tag[33:63], artist)
	return tag
}

func TestNoisePlayerLoopsBuffer(t *testing.T) {
	ctx := audio.NewFakeContext()
	n := NewNoise(ctx)
	if err := n.Play(noise.White); err != nil {
		t.Fatal(err)
	}
	if !n.Playing() || n.Color() != noise.White {
		t.Fatalf("playing=%v color=%v", n.Playing(), n.Color())
	}

	dev := ctx.LastDevice()
	bufLen := noise.SampleRate * noise.BufferSeconds
	// Pull more than one full buffer; the loop must keep producing.
	out := dev.Render(bufLen + 100)
	if len(out) != bufLen+100 {
		t.Fatalf("rendered %d samples, want %d", len(out), bufLen+100)
	}
	nonZero := 0
	for _, s := range out {
		if s != 0 {
			nonZero++
		}
	}
	if nonZero < len(out)/2 {
		t.Fatalf("only %d of %d samples non-zero", nonZero, len(out))
	}
}

func TestNoisePlayerVolumeScalesOutput(t *testing.T) {
	ctx := audio.NewFakeContext()
	n := NewNoise(ctx)
	if err := n.Play(noise.Brown); err != nil {
		t.Fatal(err)
	}
	dev := ctx.LastDevice()

	n.SetVolume(1)
	loud := dev.Render(4096)
	n.SetVolume(0)
	quiet := dev.Render(4096)
	for i, s := range quiet {
		if s != 0 {
			t.Fatalf("sample %d = %d at zero volume", i, s)
		}
	}
	var energy float64
	for _, s := range loud {
		energy += float64(s) * float64(s)
	}
	if energy == 0 {
		t.Fatal("full volume rendered silence")
	}
}

func TestNoiseStopReleasesDevice(t *testing.T) {
	ctx := audio.NewFakeContext()
	n := NewNoise(ctx)
	if err := n.Play(noise.Rain); err != nil {
		t.Fatal(err)
	}
	n.Stop()
	if n.Playing() || ctx.Playing() {
		t.Fatal("device still running after stop")
	}
	if !ctx.LastDevice().Closed() {
		t.Fatal("device not closed after stop")
	}
}

func TestLocalPlayWithoutLoadFails(t *testing.T) {
	l := NewLocal(audio.NewFakeContext())
	if err := l.Play(); err == nil {
		t.Fatal("expected an error with no file loaded")
	}
}

func TestLocalRejectsUnsupportedExtension(t *testing.T) {
	l := NewLocal(audio.NewFakeContext())
	if err := l.Load("song.mp3"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestLocalPauseKeepsPosition(t *testing.T) {
	ctx := audio.NewFakeContext()
	l := NewLocal(ctx)
	if err := l.Load(writeWAV(t, "a.wav", 44100, nil)); err != nil {
		t.Fatal(err)
	}
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	dev := ctx.LastDevice()
	dev.Render(1000)
	l.Pause()
	if l.Playing() {
		t.Fatal("still playing after pause")
	}

	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	out := dev.Render(43100)
	// 1000 rendered before the pause, so exactly the remainder is left.
	if len(out) != 43100 {
		t.Fatalf("resumed render produced %d samples, want 43100", len(out))
	}
}

func TestLocalStopRewinds(t *testing.T) {
	ctx := audio.NewFakeContext()
	l := NewLocal(ctx)
	if err := l.Load(writeWAV(t, "a.wav", 1000, nil)); err != nil {
		t.Fatal(err)
	}
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	dev := ctx.LastDevice()
	dev.Render(500)
	l.Stop()
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	if out := dev.Render(1000); len(out) != 1000 {
		t.Fatalf("render after stop produced %d samples, want full 1000", len(out))
	}
}

func TestLocalFiresDoneAtEndOfTrack(t *testing.T) {
	ctx := audio.NewFakeContext()
	l := NewLocal(ctx)
	done := make(chan struct{})
	l.OnDone(func() { close(done) })

	if err := l.Load(writeWAV(t, "a.wav", 100, nil)); err != nil {
		t.Fatal(err)
	}
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	ctx.LastDevice().Render(200)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done callback never fired")
	}
	if l.Playing() {
		t.Fatal("still marked playing after end of track")
	}
}

func TestEndOfTrackNeverStopsDeviceFromRenderCallback(t *testing.T) {
	ctx := audio.NewFakeContext()
	l := NewLocal(ctx)
	entered := make(chan struct{})
	release := make(chan struct{})
	l.OnDone(func() {
		close(entered)
		<-release
	})

	if err := l.Load(writeWAV(t, "a.wav", 100, nil)); err != nil {
		t.Fatal(err)
	}
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	dev := ctx.LastDevice()
	dev.Render(200)

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("done callback never fired")
	}
	// Real backends deadlock when the device is stopped from its own
	// data callback, so the render path must leave the device alone.
	if dev.StoppedInCallback() {
		t.Fatal("device stopped from inside the render callback")
	}
	if !dev.Started() {
		t.Fatal("device stopped before the end-of-track goroutine ran")
	}

	close(release)
	for i := 0; dev.Started(); i++ {
		if i > 1000 {
			t.Fatal("device never stopped after end of track")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWAVTitleFallsBackToBasename(t *testing.T) {
	l := NewLocal(audio.NewFakeContext())
	if err := l.Load(writeWAV(t, "morning.wav", 10, nil)); err != nil {
		t.Fatal(err)
	}
	title, artist := l.TrackInfo()
	if title != "morning.wav" || artist != "" {
		t.Fatalf("info = %q / %q", title, artist)
	}
}

func TestWAVRejectsExtraChunksBeforeData(t *testing.T) {
	path := writeWAV(t, "list.wav", 10, nil)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	copy(data[36:40], "LIST")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	l := NewLocal(audio.NewFakeContext())
	if err := l.Load(path); err == nil {
		t.Fatal("expected an error for a WAV with extra chunks before data")
	}
}

func TestID3v1TagsRead(t *testing.T) {
	l := NewLocal(audio.NewFakeContext())
	path := writeWAV(t, "tagged.wav", 10, id3v1Tag("Morning Rain", "Nobody"))
	if err := l.Load(path); err != nil {
		t.Fatal(err)
	}
	title, artist := l.TrackInfo()
	if title != "Morning Rain" || artist != "Nobody" {
		t.Fatalf("info = %q / %q", title, artist)
	}
}

func TestLoadReplacesDevice(t *testing.T) {
	ctx := audio.NewFakeContext()
	l := NewLocal(ctx)
	if err := l.Load(writeWAV(t, "a.wav", 100, nil)); err != nil {
		t.Fatal(err)
	}
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	first := ctx.LastDevice()

	if err := l.Load(writeWAV(t, "b.wav", 100, nil)); err != nil {
		t.Fatal(err)
	}
	if !first.Closed() {
		t.Fatal("old device not closed on reload")
	}
	if err := l.Play(); err != nil {
		t.Fatal(err)
	}
	if ctx.LastDevice() == first {
		t.Fatal("device not recreated for the new track")
	}
}
