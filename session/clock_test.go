package session

import "testing"

func TestNewClockLoadsWorkDuration(t *testing.T) {
	c := NewClock(DefaultSettings())
	st := c.State()
	if st.Mode != Work || st.Running {
		t.Fatalf("initial state = %+v, want paused work", st)
	}
	if st.TotalSeconds != 1500 || st.RemainingSeconds != 1500 {
		t.Fatalf("durations = %d/%d, want 1500/1500", st.RemainingSeconds, st.TotalSeconds)
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	s := DefaultSettings()
	c := NewClock(s)
	c.Start()
	c.Tick()
	before := c.State().RemainingSeconds
	c.Start()
	if got := c.State().RemainingSeconds; got != before {
		t.Fatalf("start while running reset remaining: %d -> %d", before, got)
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	c := NewClock(DefaultSettings())
	if _, fired := c.Tick(); fired {
		t.Fatal("paused clock fired a completion")
	}
	if c.State().RemainingSeconds != 1500 {
		t.Fatal("paused clock lost time")
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	s := DefaultSettings()
	s.WorkMinutes = 1
	c := NewClock(s)
	c.Reset(s)
	c.Start()

	fires := 0
	for i := 0; i < 120; i++ {
		if _, fired := c.Tick(); fired {
			fires++
		}
	}
	if fires != 1 {
		t.Fatalf("completion fired %d times, want 1", fires)
	}
	st := c.State()
	if st.Running {
		t.Fatal("clock still running after completion")
	}
	if st.RemainingSeconds != 0 {
		t.Fatalf("remaining = %d after completion, want 0", st.RemainingSeconds)
	}
}

func TestCompletionCarriesFinishedMode(t *testing.T) {
	s := DefaultSettings()
	s.ShortBreakMinutes = 1
	c := NewClock(s)
	c.SetMode(ShortBreak, s)
	c.Start()
	for i := 0; i < 59; i++ {
		if _, fired := c.Tick(); fired {
			t.Fatalf("fired early at tick %d", i)
		}
	}
	completed, fired := c.Tick()
	if !fired || completed != ShortBreak {
		t.Fatalf("completion = %v/%v, want short_break fired", completed, fired)
	}
}

func TestStartAfterCompletionReloads(t *testing.T) {
	s := DefaultSettings()
	s.WorkMinutes = 1
	c := NewClock(s)
	c.Reset(s)
	c.Start()
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	c.Start()
	if got := c.State().RemainingSeconds; got != 60 {
		t.Fatalf("remaining = %d after restart, want full 60", got)
	}
}

func TestSetModeWhileRunningClampsOnly(t *testing.T) {
	s := DefaultSettings()
	c := NewClock(s)
	c.Start()
	c.Tick()
	c.SetMode(ShortBreak, s) // 300s, remaining was 1499
	st := c.State()
	if st.RemainingSeconds != 300 {
		t.Fatalf("remaining = %d, want clamped to 300", st.RemainingSeconds)
	}
	if !st.Running {
		t.Fatal("mode switch stopped a running clock")
	}
}

func TestSetModeWhilePausedReloads(t *testing.T) {
	s := DefaultSettings()
	c := NewClock(s)
	c.SetMode(LongBreak, s)
	st := c.State()
	if st.Mode != LongBreak || st.RemainingSeconds != 900 || st.TotalSeconds != 900 {
		t.Fatalf("state = %+v, want paused 900s long break", st)
	}
}

func TestResetReloadsCurrentMode(t *testing.T) {
	s := DefaultSettings()
	c := NewClock(s)
	c.Start()
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	c.Reset(s)
	st := c.State()
	if st.Running || st.RemainingSeconds != 1500 {
		t.Fatalf("state after reset = %+v", st)
	}
}

func TestCompleteSessionAdvancesCounters(t *testing.T) {
	s := DefaultSettings()
	c := NewClock(s)
	c.CompleteSession(Work, s)
	st := c.State()
	if st.TotalWorkSessions != 1 || st.CycleWorkSessions != 1 || st.TotalSessionsCompleted != 1 {
		t.Fatalf("counters = %+v", st)
	}
	if st.Mode != ShortBreak || st.Running {
		t.Fatalf("state = %+v, want paused short_break", st)
	}
}
