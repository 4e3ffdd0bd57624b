package player

import "strings"

const id3v1Size = 128

// readID3v1 pulls title and artist from an ID3v1 trailer if the file
// carries one. Returns empty strings otherwise.
func readID3v1(data []byte) (title, artist string) {
	if len(data) < id3v1Size {
		return "", ""
	}
	tag := data[len(data)-id3v1Size:]
	if string(tag[:3]) != "TAG" {
		return "", ""
	}
	title = strings.TrimSpace(strings.TrimRight(string(tag[3:33]), "\x00"))
	artist = strings.TrimSpace(strings.TrimRight(string(tag[33:63]), "\x00"))
	return title, artist
}
