package session

// Mode is the current phase of the focus cycle.
type Mode int

const (
	Work Mode = iota
	ShortBreak
	LongBreak
)

func (m Mode) String() string {
	switch m {
	case Work:
		return "work"
	case ShortBreak:
		return "short_break"
	case LongBreak:
		return "long_break"
	}
	return "unknown"
}

// IsBreak reports whether m is either break phase.
func (m Mode) IsBreak() bool {
	return m == ShortBreak || m == LongBreak
}

// Settings holds the user-tunable session parameters. All duration fields
// are minutes and must stay >= 1; use Apply to mutate so invalid input
// falls back to the previous value instead of corrupting state.
type Settings struct {
	WorkMinutes             int  `json:"workMinutes"`
	ShortBreakMinutes       int  `json:"shortBreakMinutes"`
	LongBreakMinutes        int  `json:"longBreakMinutes"`
	SessionsBeforeLongBreak int  `json:"sessionsBeforeLongBreak"`
	AutoLongBreak           bool `json:"autoLongBreak"`
	EnableSessionReminder   bool `json:"enableSessionReminder"`
	PauseMusicOnBreak       bool `json:"pauseMusicOnBreak"`
	CompletionSound         bool `json:"completionSound"`
}

// DefaultSettings returns the hard-coded startup defaults.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
		AutoLongBreak:           true,
		EnableSessionReminder:   true,
		PauseMusicOnBreak:       false,
		CompletionSound:         true,
	}
}

// Patch is a partial settings update. Nil fields are left untouched.
type Patch struct {
	WorkMinutes             *int  `json:"workMinutes,omitempty"`
	ShortBreakMinutes       *int  `json:"shortBreakMinutes,omitempty"`
	LongBreakMinutes        *int  `json:"longBreakMinutes,omitempty"`
	SessionsBeforeLongBreak *int  `json:"sessionsBeforeLongBreak,omitempty"`
	AutoLongBreak           *bool `json:"autoLongBreak,omitempty"`
	EnableSessionReminder   *bool `json:"enableSessionReminder,omitempty"`
	PauseMusicOnBreak       *bool `json:"pauseMusicOnBreak,omitempty"`
	CompletionSound         *bool `json:"completionSound,omitempty"`
}

// Apply merges p into s. Numeric fields below 1 are rejected and the
// previous value kept. Returns true if anything changed.
func (s *Settings) Apply(p Patch) bool {
	changed := false
	applyMin := func(dst *int, src *int) {
		if src != nil && *src >= 1 && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	applyBool := func(dst *bool, src *bool) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	applyMin(&s.WorkMinutes, p.WorkMinutes)
	applyMin(&s.ShortBreakMinutes, p.ShortBreakMinutes)
	applyMin(&s.LongBreakMinutes, p.LongBreakMinutes)
	applyMin(&s.SessionsBeforeLongBreak, p.SessionsBeforeLongBreak)
	applyBool(&s.AutoLongBreak, p.AutoLongBreak)
	applyBool(&s.EnableSessionReminder, p.EnableSessionReminder)
	applyBool(&s.PauseMusicOnBreak, p.PauseMusicOnBreak)
	applyBool(&s.CompletionSound, p.CompletionSound)
	return changed
}

// Sanitize replaces any out-of-range field with its counterpart from
// prev, so a settings document loaded from disk can never leave the
// engine with a zero or negative duration.
func (s *Settings) Sanitize(prev Settings) {
	if s.WorkMinutes < 1 {
		s.WorkMinutes = prev.WorkMinutes
	}
	if s.ShortBreakMinutes < 1 {
		s.ShortBreakMinutes = prev.ShortBreakMinutes
	}
	if s.LongBreakMinutes < 1 {
		s.LongBreakMinutes = prev.LongBreakMinutes
	}
	if s.SessionsBeforeLongBreak < 1 {
		s.SessionsBeforeLongBreak = prev.SessionsBeforeLongBreak
	}
}

// Minutes returns the configured duration for mode, in minutes.
func (s Settings) Minutes(mode Mode) int {
	switch mode {
	case ShortBreak:
		return s.ShortBreakMinutes
	case LongBreak:
		return s.LongBreakMinutes
	default:
		return s.WorkMinutes
	}
}

// Seconds returns the configured duration for mode, in seconds.
func (s Settings) Seconds(mode Mode) int {
	return s.Minutes(mode) * 60
}

// State is a point-in-time view of the session clock and its counters.
type State struct {
	Mode                   Mode `json:"mode"`
	Running                bool `json:"running"`
	RemainingSeconds       int  `json:"remainingSeconds"`
	TotalSeconds           int  `json:"totalSeconds"`
	CycleWorkSessions      int  `json:"cycleWorkSessions"`
	TotalWorkSessions      int  `json:"totalWorkSessions"`
	TotalSessionsCompleted int  `json:"totalSessionsCompleted"`
}
