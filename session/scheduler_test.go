package session

import "testing"

func TestFourWorkSessionsReachLongBreak(t *testing.T) {
	s := DefaultSettings() // sessionsBeforeLongBreak = 4, autoLongBreak = true
	cycle := 0
	for i := 1; i <= 3; i++ {
		next, c := NextMode(Work, cycle, s)
		if next != ShortBreak {
			t.Fatalf("work session %d scheduled %v, want short_break", i, next)
		}
		cycle = c
		// break completes, cycle carries
		next, cycle = NextMode(ShortBreak, cycle, s)
		if next != Work {
			t.Fatalf("after short break got %v, want work", next)
		}
	}

	next, cycle := NextMode(Work, cycle, s)
	if next != LongBreak {
		t.Fatalf("fourth work session scheduled %v, want long_break", next)
	}
	if cycle != 4 {
		t.Fatalf("cycle = %d entering long break, want 4", cycle)
	}

	next, cycle = NextMode(LongBreak, cycle, s)
	if next != Work || cycle != 0 {
		t.Fatalf("after long break got %v cycle %d, want work cycle 0", next, cycle)
	}

	// session 5 behaves like session 1
	next, _ = NextMode(Work, cycle, s)
	if next != ShortBreak {
		t.Fatalf("fifth work session scheduled %v, want short_break", next)
	}
}

func TestAutoLongBreakDisabled(t *testing.T) {
	s := DefaultSettings()
	s.AutoLongBreak = false
	next, cycle := NextMode(Work, 10, s)
	if next != ShortBreak {
		t.Fatalf("got %v with autoLongBreak off, want short_break", next)
	}
	if cycle != 11 {
		t.Fatalf("cycle = %d, want 11", cycle)
	}
}

func TestShortBreakCarriesCycle(t *testing.T) {
	s := DefaultSettings()
	next, cycle := NextMode(ShortBreak, 2, s)
	if next != Work || cycle != 2 {
		t.Fatalf("got %v cycle %d, want work cycle 2", next, cycle)
	}
}

func TestLongBreakAlwaysResetsCycle(t *testing.T) {
	s := DefaultSettings()
	for _, start := range []int{0, 1, 4, 99} {
		next, cycle := NextMode(LongBreak, start, s)
		if next != Work || cycle != 0 {
			t.Fatalf("from cycle %d got %v cycle %d, want work cycle 0", start, next, cycle)
		}
	}
}
