package domain

import "time"

// Schedule represents a host-declared availability window
// with duration bounds and an approval policy
type Schedule struct {
	ID                 int64
	HostID             int64
	WindowStart        time.Time // canonical UTC instant
	WindowEnd          time.Time // canonical UTC instant
	MinDurationMinutes int
	MaxDurationMinutes int
	AutoApprove        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WindowDuration returns the total length of the availability window
func (s *Schedule) WindowDuration() time.Duration {
	return s.WindowEnd.Sub(s.WindowStart)
}

// MinDuration returns the minimum session duration
func (s *Schedule) MinDuration() time.Duration {
	return time.Duration(s.MinDurationMinutes) * time.Minute
}

// MaxDuration returns the maximum session duration
func (s *Schedule) MaxDuration() time.Duration {
	return time.Duration(s.MaxDurationMinutes) * time.Minute
}

// ContainsInterval returns true if the window fully contains [start, end)
func (s *Schedule) ContainsInterval(start, end time.Time) bool {
	return !start.Before(s.WindowStart) && !end.After(s.WindowEnd)
}

// AllowsDuration returns true if d is within [min_duration, max_duration]
func (s *Schedule) AllowsDuration(d time.Duration) bool {
	return d >= s.MinDuration() && d <= s.MaxDuration()
}

// OverlapsWindow returns true if the window overlaps [start, end)
// Boundary-touching windows do not overlap (half-open intervals)
func (s *Schedule) OverlapsWindow(start, end time.Time) bool {
	return IntervalsOverlap(s.WindowStart, s.WindowEnd, start, end)
}
