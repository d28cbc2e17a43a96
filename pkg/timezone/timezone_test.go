package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonical(t *testing.T) {
	t.Run("moscow offset", func(t *testing.T) {
		got, err := ToCanonical("2026-09-01 13:00", "Europe/Moscow")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty zone defaults to UTC", func(t *testing.T) {
		got, err := ToCanonical("2026-09-01 10:00", "")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := ToCanonical("2026-09-01 10:00", "Mars/Olympus")
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("unparseable value", func(t *testing.T) {
		_, err := ToCanonical("01.09.2026 10:00", "UTC")
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestToDisplay(t *testing.T) {
	instant := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	got, err := ToDisplay(instant, "Europe/Moscow")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01 13:00", got)

	_, err = ToDisplay(instant, "Nowhere/Nope")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestRoundTrip(t *testing.T) {
	// Конвертация на границе не должна терять информацию
	canonical, err := ToCanonical("2026-12-15 09:30", "Asia/Tokyo")
	require.NoError(t, err)

	display, err := ToDisplay(canonical, "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-15 09:30", display)
}
