package schedules

import (
	"fmt"
	"time"
)

// validateWindow проверяет инварианты окна и границ длительности:
// окно непустое, 0 < min <= max, окно вмещает минимальную длительность
func validateWindow(windowStart, windowEnd time.Time, minDurationMinutes, maxDurationMinutes int) error {
	if windowStart.IsZero() || windowEnd.IsZero() {
		return fmt.Errorf("%w: window boundaries are required", ErrInvalidInput)
	}

	if !windowEnd.After(windowStart) {
		return fmt.Errorf("%w: window end must be after window start", ErrInvalidWindow)
	}

	if minDurationMinutes <= 0 || maxDurationMinutes <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidDuration)
	}

	if minDurationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: min duration exceeds max duration", ErrInvalidDuration)
	}

	if windowEnd.Sub(windowStart) < time.Duration(minDurationMinutes)*time.Minute {
		return fmt.Errorf("%w: window of %s cannot fit %d minutes",
			ErrWindowTooShort, windowEnd.Sub(windowStart), minDurationMinutes)
	}

	return nil
}
