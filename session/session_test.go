package session

import "testing"

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	if s.WorkMinutes != 25 || s.ShortBreakMinutes != 5 || s.LongBreakMinutes != 15 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.SessionsBeforeLongBreak != 4 || !s.AutoLongBreak {
		t.Fatalf("unexpected cycle defaults: %+v", s)
	}
}

func TestApplyRejectsInvalidDurations(t *testing.T) {
	s := DefaultSettings()
	if s.Apply(Patch{WorkMinutes: intp(0)}) {
		t.Fatal("zero accepted")
	}
	if s.WorkMinutes != 25 {
		t.Fatalf("workMinutes = %d, want prior 25", s.WorkMinutes)
	}
	if s.Apply(Patch{LongBreakMinutes: intp(-10)}) {
		t.Fatal("negative accepted")
	}
	if s.LongBreakMinutes != 15 {
		t.Fatalf("longBreakMinutes = %d, want prior 15", s.LongBreakMinutes)
	}
}

func TestApplyMergesValidFields(t *testing.T) {
	s := DefaultSettings()
	changed := s.Apply(Patch{
		WorkMinutes:       intp(50),
		PauseMusicOnBreak: boolp(true),
	})
	if !changed {
		t.Fatal("valid patch reported unchanged")
	}
	if s.WorkMinutes != 50 || !s.PauseMusicOnBreak {
		t.Fatalf("patch not applied: %+v", s)
	}
	if s.ShortBreakMinutes != 5 {
		t.Fatal("untouched field changed")
	}
}

func TestApplyMixedPatchKeepsInvalidFieldOnly(t *testing.T) {
	s := DefaultSettings()
	changed := s.Apply(Patch{
		WorkMinutes:       intp(0),
		ShortBreakMinutes: intp(7),
	})
	if !changed {
		t.Fatal("partially valid patch reported unchanged")
	}
	if s.WorkMinutes != 25 || s.ShortBreakMinutes != 7 {
		t.Fatalf("got %+v, want workMinutes kept and shortBreakMinutes applied", s)
	}
}

func TestSanitizeFallsBackToPrevious(t *testing.T) {
	prev := DefaultSettings()
	s := prev
	s.WorkMinutes = 0
	s.SessionsBeforeLongBreak = -1
	s.Sanitize(prev)
	if s.WorkMinutes != 25 || s.SessionsBeforeLongBreak != 4 {
		t.Fatalf("sanitize left invalid values: %+v", s)
	}
}

func TestSecondsPerMode(t *testing.T) {
	s := DefaultSettings()
	if s.Seconds(Work) != 1500 {
		t.Fatalf("work seconds = %d, want 1500", s.Seconds(Work))
	}
	if s.Seconds(ShortBreak) != 300 || s.Seconds(LongBreak) != 900 {
		t.Fatalf("break seconds = %d/%d", s.Seconds(ShortBreak), s.Seconds(LongBreak))
	}
}

func TestModeStrings(t *testing.T) {
	cases := map[Mode]string{Work: "work", ShortBreak: "short_break", LongBreak: "long_break"}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", mode, got, want)
		}
	}
	if Work.IsBreak() || !ShortBreak.IsBreak() || !LongBreak.IsBreak() {
		t.Fatal("IsBreak misclassifies a mode")
	}
}
