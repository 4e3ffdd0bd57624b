package engine

import (
	"fmt"

	"tomo/audio"
	"tomo/log"
	"tomo/media"
	"tomo/noise"
	"tomo/player"
	"tomo/session"
)

// Source identifies which of the three audio producers is sounding.
type Source int

const (
	SourceNone Source = iota
	SourceNoise
	SourceLocal
	SourceSystem
)

func (s Source) String() string {
	switch s {
	case SourceNoise:
		return "noise"
	case SourceLocal:
		return "local"
	case SourceSystem:
		return "system"
	}
	return "none"
}

// Suppressed records which sources were sounding immediately before an
// automatic break-time pause. At most one flag should ever be set.
type Suppressed struct {
	Noise  bool `json:"noise"`
	Local  bool `json:"local"`
	System bool `json:"system"`
}

func (s Suppressed) Any() bool { return s.Noise || s.Local || s.System }

// AudioState is a point-in-time view of the arbitration layer.
type AudioState struct {
	ActiveSource       Source      `json:"activeSource"`
	FocusSound         noise.Color `json:"focusSound"`
	Volume             float64     `json:"volume"`
	SuppressedForBreak Suppressed  `json:"suppressedForBreak"`
	TrackLoaded        bool        `json:"trackLoaded"`
	TrackTitle         string      `json:"trackTitle"`
	TrackArtist        string      `json:"trackArtist"`
}

const defaultVolume = 0.7

// Arbiter owns the three audio sources and keeps them mutually
// exclusive: starting any one of them silences the other two first,
// stop fully applied before start. It is not safe for concurrent use;
// the engine serializes every call behind its own mutex.
type Arbiter struct {
	noise  *player.Noise
	local  *player.Local
	bridge media.Bridge

	state    AudioState
	snapshot media.Snapshot
	inBreak  bool
}

func NewArbiter(ctx audio.Context, bridge media.Bridge) *Arbiter {
	a := &Arbiter{
		noise:  player.NewNoise(ctx),
		local:  player.NewLocal(ctx),
		bridge: bridge,
	}
	a.state.Volume = defaultVolume
	a.noise.SetVolume(defaultVolume)
	a.local.SetVolume(defaultVolume)
	return a
}

// State returns a copy of the current audio state.
func (a *Arbiter) State() AudioState { return a.state }

// Snapshot returns the last polled external media snapshot.
func (a *Arbiter) Snapshot() media.Snapshot { return a.snapshot }

func (a *Arbiter) setActive(src Source) {
	if a.state.ActiveSource != src {
		log.AudioSwitch(a.state.ActiveSource.String(), src.String())
	}
	a.state.ActiveSource = src
}

// pauseSystemIfPlaying asks the external player to stop sounding. Fire
// and forget: a failed command just means the next poll corrects us.
func (a *Arbiter) pauseSystemIfPlaying() {
	if !a.snapshot.IsPlaying {
		return
	}
	if err := a.bridge.Send(media.CmdPlayPause); err != nil {
		log.Warnf("media pause failed: %v", err)
		return
	}
	a.snapshot.IsPlaying = false
}

// PlayNoise switches the focus sound to color. Off stops any active
// noise and clears the focus sound. Any other color silences the local
// and system sources first, then synthesizes a fresh buffer even when
// the same color was already playing.
func (a *Arbiter) PlayNoise(color noise.Color) error {
	if a.inBreak {
		a.state.SuppressedForBreak.Noise = false
	}
	if color == noise.Off {
		a.noise.Stop()
		a.state.FocusSound = noise.Off
		if a.state.ActiveSource == SourceNoise {
			a.setActive(a.recompute())
		}
		return nil
	}

	a.local.Pause()
	a.pauseSystemIfPlaying()

	if err := a.noise.Play(color); err != nil {
		a.state.FocusSound = noise.Off
		if a.state.ActiveSource == SourceNoise {
			a.setActive(a.recompute())
		}
		return fmt.Errorf("start %s noise: %w", color, err)
	}
	a.state.FocusSound = color
	a.setActive(SourceNoise)
	return nil
}

// LoadLocal decodes path into the local player and refreshes the track
// metadata in the audio state. Loading stops any previous local
// playback but leaves the other sources alone.
func (a *Arbiter) LoadLocal(path string) error {
	if err := a.local.Load(path); err != nil {
		return err
	}
	if a.state.ActiveSource == SourceLocal {
		a.setActive(a.recompute())
	}
	a.state.TrackLoaded = true
	a.state.TrackTitle, a.state.TrackArtist = a.local.TrackInfo()
	return nil
}

// PlayLocal starts or resumes the loaded file, silencing noise and the
// system source first.
func (a *Arbiter) PlayLocal() error {
	if a.inBreak {
		a.state.SuppressedForBreak.Local = false
	}
	a.noise.Stop()
	a.state.FocusSound = noise.Off
	a.pauseSystemIfPlaying()

	if err := a.local.Play(); err != nil {
		if a.state.ActiveSource != SourceSystem {
			a.setActive(a.recompute())
		}
		return fmt.Errorf("start local playback: %w", err)
	}
	a.setActive(SourceLocal)
	return nil
}

// PauseLocal pauses the local file, keeping its position.
func (a *Arbiter) PauseLocal() {
	if a.inBreak {
		a.state.SuppressedForBreak.Local = false
	}
	a.local.Pause()
	if a.state.ActiveSource == SourceLocal {
		a.setActive(a.recompute())
	}
}

// StopLocal stops the local file and rewinds it to the start.
func (a *Arbiter) StopLocal() {
	if a.inBreak {
		a.state.SuppressedForBreak.Local = false
	}
	a.local.Stop()
	if a.state.ActiveSource == SourceLocal {
		a.setActive(a.recompute())
	}
}

// LocalDone handles the local player reaching end of track.
func (a *Arbiter) LocalDone() {
	if a.state.ActiveSource == SourceLocal {
		a.setActive(a.recompute())
	}
}

// SendCommand forwards a transport command to the external player
// unconditionally. A play/pause toggle is reflected optimistically in
// the snapshot so rapid user actions resolve last-request-wins; the
// next poll is the authority.
func (a *Arbiter) SendCommand(cmd media.Command) {
	if a.inBreak {
		a.state.SuppressedForBreak.System = false
	}
	if err := a.bridge.Send(cmd); err != nil {
		log.Warnf("media command %s failed: %v", cmd, err)
		return
	}
	if cmd == media.CmdPlayPause && a.snapshot.Available {
		a.snapshot.IsPlaying = !a.snapshot.IsPlaying
		if a.snapshot.IsPlaying {
			a.noise.Stop()
			a.state.FocusSound = noise.Off
			a.local.Pause()
			a.setActive(SourceSystem)
		} else if a.state.ActiveSource == SourceSystem {
			a.setActive(a.recompute())
		}
	}
}

// Poll refreshes the external snapshot. A failed query reads as "no
// external source". An external player that starts sounding while
// noise or the local file is active is paused immediately; in-process
// sources win over one that sneaks in.
func (a *Arbiter) Poll() {
	snap, err := a.bridge.Get()
	if err != nil {
		snap = media.Snapshot{}
	}
	a.snapshot = snap

	switch a.state.ActiveSource {
	case SourceNoise, SourceLocal:
		a.pauseSystemIfPlaying()
	case SourceSystem:
		if !snap.IsPlaying {
			a.setActive(a.recompute())
		}
	default:
		if snap.IsPlaying {
			a.setActive(SourceSystem)
		}
	}
}

// recompute derives the active source from what is actually sounding.
func (a *Arbiter) recompute() Source {
	switch {
	case a.noise.Playing():
		return SourceNoise
	case a.local.Playing():
		return SourceLocal
	case a.snapshot.IsPlaying:
		return SourceSystem
	}
	return SourceNone
}

// SetVolume applies v to both in-process sources.
func (a *Arbiter) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	a.state.Volume = v
	a.noise.SetVolume(v)
	a.local.SetVolume(v)
}

// OnModeTransition applies the pause-on-break policy. Entering a break
// from work records the one sounding source and silences all three;
// returning to work resumes exactly that source, re-synthesizing noise
// since buffers do not survive a stop. With multiple flags set the
// resume priority is noise, then local, then system.
func (a *Arbiter) OnModeTransition(prev, next session.Mode, settings session.Settings) {
	a.inBreak = next.IsBreak()
	if !settings.PauseMusicOnBreak {
		return
	}

	if prev == session.Work && next.IsBreak() {
		a.state.SuppressedForBreak = Suppressed{
			Noise:  a.noise.Playing(),
			Local:  a.local.Playing(),
			System: a.snapshot.IsPlaying,
		}
		a.noise.Stop()
		a.local.Pause()
		a.pauseSystemIfPlaying()
		a.setActive(SourceNone)
		return
	}

	if prev.IsBreak() && next == session.Work {
		sup := a.state.SuppressedForBreak
		a.state.SuppressedForBreak = Suppressed{}
		switch {
		case sup.Noise:
			if err := a.PlayNoise(a.state.FocusSound); err != nil {
				log.Errorf("resume noise after break: %v", err)
			}
		case sup.Local:
			if err := a.PlayLocal(); err != nil {
				log.Errorf("resume local playback after break: %v", err)
			}
		case sup.System:
			a.SendCommand(media.CmdPlayPause)
		}
	}
}

// Teardown releases every playback resource. No further commands are
// issued to the external player.
func (a *Arbiter) Teardown() {
	a.noise.Stop()
	a.local.Release()
	a.state.ActiveSource = SourceNone
	a.state.FocusSound = noise.Off
	a.state.SuppressedForBreak = Suppressed{}
}
