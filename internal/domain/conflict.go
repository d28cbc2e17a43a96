package domain

import "time"

// IntervalsOverlap reports whether two half-open intervals [aStart, aEnd)
// and [bStart, bEnd) actually overlap. Intervals that merely touch at a
// boundary (one ends exactly where the other starts) do NOT overlap.
//
// Examples:
//   - [10:00, 11:00) vs [10:30, 11:30) → overlap
//   - [10:00, 11:00) vs [11:00, 11:30) → no overlap (adjacent)
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict reports whether the proposed interval [start, end) overlaps
// any confirmed session in sessions. Pending sessions hold no exclusivity
// and are skipped. The session with excludeID is ignored, so a session
// never conflicts with itself (pass 0 to exclude nothing).
//
// The predicate is pure; callers load the relevant party's sessions first
// and are responsible for doing so under the right transaction scope.
func HasConflict(sessions []*Session, start, end time.Time, excludeID int64) bool {
	for _, session := range sessions {
		if session.ID == excludeID {
			continue
		}
		if !session.IsConfirmed() {
			continue
		}
		if IntervalsOverlap(session.StartTime, session.EndTime, start, end) {
			return true
		}
	}
	return false
}
