package timing

import (
	"testing"
	"time"
)

func TestStopwatch(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Duration{0, 1500 * time.Millisecond, 2 * time.Second, 2500 * time.Millisecond}
	i := 0
	s := newStopwatch(func() time.Time {
		t := base.Add(ticks[i])
		if i < len(ticks)-1 {
			i++
		}
		return t
	})

	if d := s.Lap("build"); d != 1500*time.Millisecond {
		t.Fatalf("build lap = %s", d)
	}
	s.Lap("rank")

	laps := s.Laps()
	if laps["build"] != 1500 || laps["rank"] != 500 {
		t.Fatalf("unexpected laps: %v", laps)
	}
	if total := s.Total(); total != 2500*time.Millisecond {
		t.Fatalf("Total = %s", total)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{26 * time.Hour, "26:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Fatalf("FormatDuration(%s) = %s, want %s", tt.d, got, tt.want)
		}
	}
}
