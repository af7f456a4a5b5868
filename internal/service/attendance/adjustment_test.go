package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/stretchr/testify/assert"
)

func TestOffsetDuration(t *testing.T) {
	assert.Equal(t, 2*time.Minute, offsetDuration(0.033))
	assert.Equal(t, 30*time.Minute, offsetDuration(0.5))
	assert.Equal(t, -15*time.Minute, offsetDuration(-0.25))
	assert.Equal(t, time.Duration(0), offsetDuration(0))
}

func TestAdjustEntry(t *testing.T) {
	s := testSector()

	t.Run("rounds fractional offset to minutes", func(t *testing.T) {
		got := AdjustEntry(at(2024, time.May, 15, 7, 58), s)
		assert.True(t, got.Equal(at(2024, time.May, 15, 8, 0)), "got %s", got)
	})

	t.Run("friday entry is still adjusted", func(t *testing.T) {
		got := AdjustEntry(at(2024, time.May, 17, 7, 58), s)
		assert.True(t, got.Equal(at(2024, time.May, 17, 8, 0)), "got %s", got)
	})

	t.Run("negative offset", func(t *testing.T) {
		got := AdjustEntry(at(2024, time.May, 15, 8, 10), sector.Sector{EntryOffsetHours: -0.25})
		assert.True(t, got.Equal(at(2024, time.May, 15, 7, 55)), "got %s", got)
	})
}

func TestAdjustExit(t *testing.T) {
	s := testSector()

	t.Run("wednesday exit is adjusted", func(t *testing.T) {
		got := AdjustExit(at(2024, time.May, 15, 17, 58), s, brt)
		assert.True(t, got.Equal(at(2024, time.May, 15, 18, 0)), "got %s", got)
	})

	t.Run("friday exit is not adjusted", func(t *testing.T) {
		raw := at(2024, time.May, 17, 17, 58)
		assert.True(t, AdjustExit(raw, s, brt).Equal(raw))
	})

	t.Run("friday is judged in the configured zone", func(t *testing.T) {
		// Saturday 01:00 UTC is Friday 22:00 in BRT.
		raw := time.Date(2024, time.May, 18, 1, 0, 0, 0, time.UTC)
		assert.True(t, AdjustExit(raw, s, brt).Equal(raw))
		assert.True(t, AdjustExit(raw, s, time.UTC).Equal(raw.Add(2*time.Minute)))
	})

	t.Run("nil location falls back to UTC", func(t *testing.T) {
		raw := time.Date(2024, time.May, 15, 20, 0, 0, 0, time.UTC)
		assert.True(t, AdjustExit(raw, s, nil).Equal(raw.Add(2*time.Minute)))
	})
}
