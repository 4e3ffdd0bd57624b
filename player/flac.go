package player

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"
)

// decodeFLAC reads a FLAC file into a mono Track; multi-channel audio
// is downmixed by averaging.
func decodeFLAC(path string) (*Track, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing flac: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	if channels < 1 {
		return nil, fmt.Errorf("%s: no channels", filepath.Base(path))
	}
	shift := int(info.BitsPerSample) - 16

	var samples []int16
	if info.NSamples > 0 {
		samples = make([]int16, 0, info.NSamples)
	}
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding flac frame: %w", err)
		}
		n := int(f.BlockSize)
		for i := 0; i < n; i++ {
			var sum int64
			for ch := 0; ch < channels; ch++ {
				sum += int64(f.Subframes[ch].Samples[i])
			}
			s := sum / int64(channels)
			if shift > 0 {
				s >>= uint(shift)
			} else if shift < 0 {
				s <<= uint(-shift)
			}
			samples = append(samples, int16(s))
		}
	}

	title, artist := flacTags(stream)
	if title == "" {
		title = filepath.Base(path)
	}
	return &Track{
		Path:       path,
		Title:      title,
		Artist:     artist,
		SampleRate: int(info.SampleRate),
		Samples:    samples,
	}, nil
}

func flacTags(stream *flac.Stream) (title, artist string) {
	for _, block := range stream.Blocks {
		comment, ok := block.Body.(*meta.VorbisComment)
		if !ok {
			continue
		}
		for _, tag := range comment.Tags {
			switch {
			case strings.EqualFold(tag[0], "TITLE"):
				title = tag[1]
			case strings.EqualFold(tag[0], "ARTIST"):
				artist = tag[1]
			}
		}
	}
	return title, artist
}
