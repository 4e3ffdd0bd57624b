package engine

import (
	"tomo/config"
	"tomo/media"
	"tomo/session"
)

// EventSink abstracts the display layer. The engine publishes value
// snapshots to it after its own state is settled; implementations must
// not call back into the engine from these methods.
type EventSink interface {
	SessionChanged(st session.State)
	AudioChanged(st AudioState)
	MediaChanged(snap media.Snapshot)
	CountdownChanged(cd session.Countdown)
	StatsChanged(st config.Stats)
	Toast(title, body string)
}

// NopSink discards every event. Used when no display layer is attached.
type NopSink struct{}

func (NopSink) SessionChanged(session.State)       {}
func (NopSink) AudioChanged(AudioState)            {}
func (NopSink) MediaChanged(media.Snapshot)        {}
func (NopSink) CountdownChanged(session.Countdown) {}
func (NopSink) StatsChanged(config.Stats)          {}
func (NopSink) Toast(string, string)               {}
