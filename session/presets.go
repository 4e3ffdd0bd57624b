package session

// Preset bundles the four duration knobs under a display name.
type Preset struct {
	Name              string
	Work              int
	ShortBreak        int
	LongBreak         int
	SessionsUntilLong int
}

// Presets are applied through the regular sanitizing settings path, so
// the list is data, not policy.
var Presets = []Preset{
	{Name: "Classic 25/5", Work: 25, ShortBreak: 5, LongBreak: 15, SessionsUntilLong: 4},
	{Name: "Quick 15/3", Work: 15, ShortBreak: 3, LongBreak: 10, SessionsUntilLong: 4},
	{Name: "Deep 50/10", Work: 50, ShortBreak: 10, LongBreak: 20, SessionsUntilLong: 3},
	{Name: "Gentle 20/5", Work: 20, ShortBreak: 5, LongBreak: 15, SessionsUntilLong: 4},
}

// PresetByName looks up a preset; ok is false for unknown names.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Patch converts the preset into a settings patch.
func (p Preset) Patch() Patch {
	work, short, long, n := p.Work, p.ShortBreak, p.LongBreak, p.SessionsUntilLong
	return Patch{
		WorkMinutes:             &work,
		ShortBreakMinutes:       &short,
		LongBreakMinutes:        &long,
		SessionsBeforeLongBreak: &n,
	}
}
