// Package media talks to an OS-level "now playing" source: whichever
// external player (Music, Spotify, anything playerctl can see) the user
// has running outside this process.
package media

// Command is a transport control forwarded to the external player.
type Command string

const (
	CmdPlayPause Command = "play_pause"
	CmdNext      Command = "next"
	CmdPrevious  Command = "previous"
)

// Snapshot is a point-in-time read of the external player's state.
// The zero value means "no external source available".
type Snapshot struct {
	Available         bool   `json:"available"`
	Title             string `json:"title"`
	Artist            string `json:"artist"`
	Source            string `json:"source"`
	IsPlaying         bool   `json:"isPlaying"`
	SupportsPlayPause bool   `json:"supportsPlayPause"`
	SupportsNext      bool   `json:"supportsNext"`
	SupportsPrevious  bool   `json:"supportsPrevious"`
}

// Bridge is the external-collaborator interface. Both calls may fail;
// the engine treats a failed Get as an unavailable source and a failed
// Send as fire-and-forget.
type Bridge interface {
	Get() (Snapshot, error)
	Send(cmd Command) error
}
