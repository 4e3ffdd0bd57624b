//go:build linux

package media

import (
	"fmt"
	"os/exec"
	"strings"
)

// playerctlBridge shells out to playerctl, which speaks MPRIS to
// whatever player is active.
type playerctlBridge struct{}

func NewBridge() Bridge {
	return &playerctlBridge{}
}

func (b *playerctlBridge) Get() (Snapshot, error) {
	if _, err := exec.LookPath("playerctl"); err != nil {
		return Snapshot{}, nil
	}
	status, err := playerctl("status")
	if err != nil {
		return Snapshot{}, nil
	}
	snap := Snapshot{
		Available:         true,
		IsPlaying:         strings.EqualFold(status, "Playing"),
		SupportsPlayPause: true,
		SupportsNext:      true,
		SupportsPrevious:  true,
	}
	if title, err := playerctl("metadata", "xesam:title"); err == nil {
		snap.Title = title
	}
	if artist, err := playerctl("metadata", "xesam:artist"); err == nil {
		snap.Artist = artist
	}
	if source, err := playerctl("-l"); err == nil {
		snap.Source = strings.SplitN(source, "\n", 2)[0]
	}
	return snap, nil
}

func (b *playerctlBridge) Send(cmd Command) error {
	var action string
	switch cmd {
	case CmdPlayPause:
		action = "play-pause"
	case CmdNext:
		action = "next"
	case CmdPrevious:
		action = "previous"
	default:
		return fmt.Errorf("unknown media command %q", cmd)
	}
	_, err := playerctl(action)
	return err
}

func playerctl(args ...string) (string, error) {
	out, err := exec.Command("playerctl", args...).Output()
	if err != nil {
		return "", fmt.Errorf("playerctl %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}
