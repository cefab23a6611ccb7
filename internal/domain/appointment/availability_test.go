package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2024, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestSlots_FullDayNoBookings(t *testing.T) {
	// 60-minute service, 09:00-17:00 window, 30-minute stride:
	// every half hour from 09:00 through 16:00 fits, 16:30 would run past close.
	slots := Slots(at(t, 9, 0), at(t, 17, 0), 60*time.Minute, 30*time.Minute, nil)

	require.Len(t, slots, 15)
	assert.True(t, slots[0].Equal(at(t, 9, 0)))
	assert.True(t, slots[14].Equal(at(t, 16, 0)))

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestSlots_ExcludesOverlapping(t *testing.T) {
	busy := []Interval{{Start: at(t, 10, 0), End: at(t, 11, 0)}}

	slots := Slots(at(t, 9, 0), at(t, 17, 0), 60*time.Minute, 30*time.Minute, busy)

	starts := make(map[string]bool)
	for _, s := range slots {
		starts[s.Format("15:04")] = true
	}

	assert.True(t, starts["09:00"], "09:00-10:00 touches the booking only at its boundary")
	assert.False(t, starts["09:30"], "09:30-10:30 overlaps")
	assert.False(t, starts["10:00"], "10:00-11:00 is the booking itself")
	assert.False(t, starts["10:30"], "10:30-11:30 overlaps")
	assert.True(t, starts["11:00"], "11:00 starts exactly when the booking ends")
}

func TestSlots_ServiceLongerThanWindow(t *testing.T) {
	slots := Slots(at(t, 9, 0), at(t, 17, 0), 9*time.Hour, 30*time.Minute, nil)
	assert.Empty(t, slots)
}

func TestSlots_ExactFit(t *testing.T) {
	slots := Slots(at(t, 9, 0), at(t, 17, 0), 8*time.Hour, 30*time.Minute, nil)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Equal(at(t, 9, 0)))
}

func TestSlots_DegenerateInputs(t *testing.T) {
	assert.Empty(t, Slots(at(t, 9, 0), at(t, 17, 0), 0, 30*time.Minute, nil))
	assert.Empty(t, Slots(at(t, 9, 0), at(t, 17, 0), 30*time.Minute, 0, nil))
	assert.Empty(t, Slots(at(t, 17, 0), at(t, 9, 0), 30*time.Minute, 30*time.Minute, nil))
}

func TestSlots_BackToBackBookingsLeaveGaps(t *testing.T) {
	busy := []Interval{
		{Start: at(t, 9, 0), End: at(t, 10, 0)},
		{Start: at(t, 10, 0), End: at(t, 11, 0)},
	}

	slots := Slots(at(t, 9, 0), at(t, 12, 0), 60*time.Minute, 30*time.Minute, busy)

	require.Len(t, slots, 1)
	assert.True(t, slots[0].Equal(at(t, 11, 0)))
}
