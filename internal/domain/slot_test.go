package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("exact tiling", func(t *testing.T) {
		slots := GenerateSlots(start, start.Add(2*time.Hour), 30)
		require.Len(t, slots, 4)

		for i, slot := range slots {
			assert.Equal(t, start.Add(time.Duration(i)*30*time.Minute), slot.SlotStart)
			assert.Equal(t, 30*time.Minute, slot.SlotEnd.Sub(slot.SlotStart))
		}
	})

	t.Run("trailing remainder is dropped", func(t *testing.T) {
		// 100 минут при шаге 30 - последние 10 минут не становятся слотом
		slots := GenerateSlots(start, start.Add(100*time.Minute), 30)
		require.Len(t, slots, 3)
		assert.Equal(t, start.Add(90*time.Minute), slots[2].SlotEnd)
	})

	t.Run("window shorter than step yields zero slots", func(t *testing.T) {
		slots := GenerateSlots(start, start.Add(20*time.Minute), 30)
		assert.Empty(t, slots)
	})

	t.Run("slots are contiguous and stay inside the window", func(t *testing.T) {
		end := start.Add(7*time.Hour + 45*time.Minute)
		slots := GenerateSlots(start, end, 45)

		expected := int(end.Sub(start).Minutes()) / 45
		require.Len(t, slots, expected)

		for i, slot := range slots {
			assert.False(t, slot.SlotStart.Before(start))
			assert.False(t, slot.SlotEnd.After(end))
			if i > 0 {
				assert.Equal(t, slots[i-1].SlotEnd, slot.SlotStart, "no gaps between slots")
			}
		}
	})
}

func TestIntervalsOverlap(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"containment", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"adjacent after", at(10, 0), at(11, 0), at(11, 0), at(11, 30), false},
		{"adjacent before", at(10, 0), at(11, 0), at(9, 30), at(10, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(14, 0), at(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestHasConflict(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
	}

	confirmed := &Session{ID: 1, HostID: 7, StartTime: at(10, 0), EndTime: at(11, 0), Confirmed: true}
	pending := &Session{ID: 2, HostID: 7, StartTime: at(10, 0), EndTime: at(12, 0), Confirmed: false}
	sessions := []*Session{confirmed, pending}

	t.Run("confirmed session blocks overlapping interval", func(t *testing.T) {
		assert.True(t, HasConflict(sessions, at(10, 30), at(11, 30), 0))
	})

	t.Run("adjacent interval does not conflict", func(t *testing.T) {
		assert.False(t, HasConflict(sessions, at(11, 0), at(11, 30), 0))
	})

	t.Run("pending sessions hold no exclusivity", func(t *testing.T) {
		assert.False(t, HasConflict([]*Session{pending}, at(10, 30), at(11, 30), 0))
	})

	t.Run("excluded session never conflicts with itself", func(t *testing.T) {
		assert.False(t, HasConflict(sessions, at(10, 0), at(11, 0), confirmed.ID))
	})
}
