package config

import (
	"encoding/json"
	"os"
	"time"
)

// Stats is the per-day productivity record. The date key makes stale
// records self-expiring: a record from yesterday reads as zeros today.
type Stats struct {
	Date         string `json:"date"`
	Pomodoros    int    `json:"count"`
	ShortBreaks  int    `json:"short_breaks"`
	LongBreaks   int    `json:"long_breaks"`
	FocusSeconds int    `json:"focus_seconds"`
	BreakSeconds int    `json:"break_seconds"`
}

// Today returns the current stats date key.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// LoadStats returns today's stats. A missing, unreadable, or
// out-of-date record yields a fresh zeroed record for today.
func (s *Store) LoadStats(today string) Stats {
	fresh := Stats{Date: today}
	data, err := os.ReadFile(s.statsPath())
	if err != nil {
		return fresh
	}
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fresh
	}
	if stats.Date != today {
		return fresh
	}
	return stats
}

// SaveStats writes the stats document.
func (s *Store) SaveStats(stats Stats) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return os.WriteFile(s.statsPath(), data, 0644)
}
