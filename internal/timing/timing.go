package timing

import (
	"fmt"
	"sync"
	"time"
)

// Stopwatch records the duration of named phases of a job.
type Stopwatch struct {
	mu    sync.Mutex
	start time.Time
	last  time.Time
	laps  map[string]int64
	now   func() time.Time
}

func NewStopwatch() *Stopwatch {
	return newStopwatch(time.Now)
}

func newStopwatch(now func() time.Time) *Stopwatch {
	t := now()
	return &Stopwatch{start: t, last: t, laps: make(map[string]int64), now: now}
}

// Lap records the time since the previous lap under name.
func (s *Stopwatch) Lap(name string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	d := t.Sub(s.last)
	s.last = t
	s.laps[name] += d.Milliseconds()
	return d
}

// Laps returns the recorded phases in milliseconds.
func (s *Stopwatch) Laps() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.laps))
	for k, v := range s.laps {
		out[k] = v
	}
	return out
}

// Total returns the time since the stopwatch was created.
func (s *Stopwatch) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Sub(s.start)
}

// FormatDuration renders d as hh:mm:ss.
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
