package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonvoice/booking-api/internal/models"
)

func TestWindowBounds_IgnoresTimeOfDay(t *testing.T) {
	w := Window{Open: "09:00", Close: "17:00"}

	// mid-afternoon timestamp still anchors to the full day window
	date := time.Date(2024, 3, 10, 14, 23, 5, 0, time.UTC)

	open, close, err := w.Bounds(date)
	require.NoError(t, err)

	assert.True(t, open.Equal(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, close.Equal(time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)))
}

func TestWindowBounds_Invalid(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, _, err := Window{Open: "nine", Close: "17:00"}.Bounds(date)
	assert.Error(t, err)

	_, _, err = Window{Open: "17:00", Close: "09:00"}.Bounds(date)
	assert.Error(t, err)
}

func TestForBranch_Override(t *testing.T) {
	def := Window{Open: "09:00", Close: "17:00"}

	assert.Equal(t, def, ForBranch(nil, def))
	assert.Equal(t, def, ForBranch(&models.Branch{}, def))
	assert.Equal(t, def, ForBranch(&models.Branch{OpenTime: "10:00"}, def))

	w := ForBranch(&models.Branch{OpenTime: "10:00", CloseTime: "20:00"}, def)
	assert.Equal(t, Window{Open: "10:00", Close: "20:00"}, w)
}

func TestDayBounds(t *testing.T) {
	date := time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC)

	start, end := DayBounds(date)
	assert.True(t, start.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
