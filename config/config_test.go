package config

import (
	"os"
	"path/filepath"
	"testing"

	"tomo/session"
)

func TestResolveDirFlagWins(t *testing.T) {
	t.Setenv("TOMO_CONFIG_PATH", "/tmp/env-config")
	got, err := ResolveDir("/tmp/flag-config")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/flag-config" {
		t.Errorf("got %q, want /tmp/flag-config", got)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("TOMO_CONFIG_PATH", "/tmp/env-config")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/env-config" {
		t.Errorf("got %q, want /tmp/env-config", got)
	}
}

func TestResolveDirRelativeFlag(t *testing.T) {
	got, err := ResolveDir("conf")
	if err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "conf"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadSettingsAbsentGivesDefaults(t *testing.T) {
	s := NewStore(t.TempDir())
	if got := s.LoadSettings(); got != session.DefaultSettings() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadSettingsCorruptGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(dir)
	if got := s.LoadSettings(); got != session.DefaultSettings() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadSettingsMergesPartialDocument(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`{"workMinutes": 40}`)
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), doc, 0644); err != nil {
		t.Fatal(err)
	}
	got := NewStore(dir).LoadSettings()
	if got.WorkMinutes != 40 {
		t.Fatalf("workMinutes = %d, want 40", got.WorkMinutes)
	}
	if got.ShortBreakMinutes != 5 || !got.AutoLongBreak {
		t.Fatalf("defaults lost in merge: %+v", got)
	}
}

func TestLoadSettingsSanitizesOutOfRange(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`{"workMinutes": 0, "longBreakMinutes": -2}`)
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), doc, 0644); err != nil {
		t.Fatal(err)
	}
	got := NewStore(dir).LoadSettings()
	if got.WorkMinutes != 25 || got.LongBreakMinutes != 15 {
		t.Fatalf("out-of-range fields not replaced: %+v", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	want := session.DefaultSettings()
	want.WorkMinutes = 45
	want.PauseMusicOnBreak = true
	if err := s.SaveSettings(want); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadSettings(); got != want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}
}

func TestLoadStatsMissingGivesFreshRecord(t *testing.T) {
	s := NewStore(t.TempDir())
	got := s.LoadStats("2026-08-31")
	if got.Date != "2026-08-31" || got.Pomodoros != 0 {
		t.Fatalf("got %+v, want fresh record", got)
	}
}

func TestLoadStatsStaleDateResets(t *testing.T) {
	s := NewStore(t.TempDir())
	old := Stats{Date: "2026-08-30", Pomodoros: 7, FocusSeconds: 9000}
	if err := s.SaveStats(old); err != nil {
		t.Fatal(err)
	}
	got := s.LoadStats("2026-08-31")
	if got.Pomodoros != 0 || got.Date != "2026-08-31" {
		t.Fatalf("yesterday's record survived: %+v", got)
	}
}

func TestStatsRoundTripSameDay(t *testing.T) {
	s := NewStore(t.TempDir())
	want := Stats{Date: "2026-08-31", Pomodoros: 3, ShortBreaks: 2, LongBreaks: 1,
		FocusSeconds: 4500, BreakSeconds: 1200}
	if err := s.SaveStats(want); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadStats("2026-08-31"); got != want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}
}

func TestLoadStatsCorruptGivesFreshRecord(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stats.json"), []byte("!!"), 0644); err != nil {
		t.Fatal(err)
	}
	got := NewStore(dir).LoadStats("2026-08-31")
	if got.Pomodoros != 0 || got.Date != "2026-08-31" {
		t.Fatalf("got %+v, want fresh record", got)
	}
}
