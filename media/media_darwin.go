//go:build darwin

package media

import (
	"fmt"
	"os/exec"
	"strings"
)

// osascriptBridge drives Apple Music or Spotify through AppleScript,
// whichever is running; Music wins when both are.
type osascriptBridge struct{}

func NewBridge() Bridge {
	return &osascriptBridge{}
}

func (b *osascriptBridge) Get() (Snapshot, error) {
	player := resolvePlayer()
	if player == "" {
		return Snapshot{}, nil
	}
	script := fmt.Sprintf(
		`tell application %q to return (name of current track) & "||" & (artist of current track) & "||" & (player state as string)`,
		player,
	)
	out, err := runOsascript(script)
	if err != nil {
		// Player running but no current track; still a usable source.
		return Snapshot{
			Available:         true,
			Source:            player,
			SupportsPlayPause: true,
			SupportsNext:      true,
			SupportsPrevious:  true,
		}, nil
	}
	parts := strings.SplitN(out, "||", 3)
	snap := Snapshot{
		Available:         true,
		Source:            player,
		SupportsPlayPause: true,
		SupportsNext:      true,
		SupportsPrevious:  true,
	}
	if len(parts) > 0 {
		snap.Title = parts[0]
	}
	if len(parts) > 1 {
		snap.Artist = parts[1]
	}
	if len(parts) > 2 {
		snap.IsPlaying = strings.EqualFold(strings.TrimSpace(parts[2]), "playing")
	}
	return snap, nil
}

func (b *osascriptBridge) Send(cmd Command) error {
	player := resolvePlayer()
	if player == "" {
		return fmt.Errorf("no media player running")
	}
	var action string
	switch cmd {
	case CmdPlayPause:
		action = "playpause"
	case CmdNext:
		action = "next track"
	case CmdPrevious:
		action = "previous track"
	default:
		return fmt.Errorf("unknown media command %q", cmd)
	}
	_, err := runOsascript(fmt.Sprintf("tell application %q to %s", player, action))
	return err
}

func resolvePlayer() string {
	for _, app := range []string{"Music", "Spotify"} {
		script := fmt.Sprintf(
			`tell application "System Events" to (name of processes) contains %q`, app)
		out, err := runOsascript(script)
		if err == nil && strings.EqualFold(strings.TrimSpace(out), "true") {
			return app
		}
	}
	return ""
}

func runOsascript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
