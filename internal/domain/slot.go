package domain

import "time"

// Slot is a fixed-size, generated sub-interval of a schedule's window.
// Slots are a materialized index for discoverability only: a session may
// span any sub-interval within the duration bounds, not just a slot tile,
// so booking validity is always re-checked against the live schedule.
type Slot struct {
	ID         int64
	ScheduleID int64
	SlotStart  time.Time
	SlotEnd    time.Time
}

// GenerateSlots tiles [windowStart, windowEnd) from windowStart forward
// in minDuration increments. Slots are half-open and contiguous: no gaps,
// no overlaps. A trailing remainder shorter than minDuration is dropped.
// A window shorter than minDuration yields zero slots; that is not an error.
func GenerateSlots(windowStart, windowEnd time.Time, minDurationMinutes int) []Slot {
	step := time.Duration(minDurationMinutes) * time.Minute

	slots := make([]Slot, 0)
	for cursor := windowStart; !cursor.Add(step).After(windowEnd); cursor = cursor.Add(step) {
		slots = append(slots, Slot{
			SlotStart: cursor,
			SlotEnd:   cursor.Add(step),
		})
	}

	return slots
}
