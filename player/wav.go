package player

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"tomo/audio"
)

// decodeWAV reads a plain 16-bit PCM WAV file into a mono Track.
// Stereo input is downmixed by averaging channels.
func decodeWAV(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < audio.WAVHeaderSize || string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%s: not a WAV file", filepath.Base(path))
	}

	format := binary.LittleEndian.Uint16(data[20:])
	channels := int(binary.LittleEndian.Uint16(data[22:]))
	sampleRate := int(binary.LittleEndian.Uint32(data[24:]))
	bits := int(binary.LittleEndian.Uint16(data[34:]))
	if format != 1 || bits != 16 {
		return nil, fmt.Errorf("%s: only 16-bit PCM WAV is supported", filepath.Base(path))
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%s: unsupported channel count %d", filepath.Base(path), channels)
	}
	// Only the canonical layout is supported; extra chunks (LIST,
	// fact) would otherwise be read as samples.
	if string(data[36:40]) != "data" {
		return nil, fmt.Errorf("%s: unsupported WAV layout (extra chunks before data)", filepath.Base(path))
	}

	pcm := data[audio.WAVHeaderSize:]
	// An ID3v1 trailer is metadata, not samples.
	if len(pcm) >= id3v1Size && string(pcm[len(pcm)-id3v1Size:len(pcm)-id3v1Size+3]) == "TAG" {
		pcm = pcm[:len(pcm)-id3v1Size]
	}
	frames := len(pcm) / (2 * channels)
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		if channels == 1 {
			samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		} else {
			l := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
			r := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
			samples[i] = int16((int32(l) + int32(r)) / 2)
		}
	}

	title, artist := readID3v1(data)
	if title == "" {
		title = filepath.Base(path)
	}
	return &Track{
		Path:       path,
		Title:      title,
		Artist:     artist,
		SampleRate: sampleRate,
		Samples:    samples,
	}, nil
}
