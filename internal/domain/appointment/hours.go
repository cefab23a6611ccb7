package appointment

import (
	"time"

	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/models"
)

// Window is a daily business window, times as "15:04" strings.
type Window struct {
	Open  string
	Close string
}

// ForBranch picks the branch override when both bounds are set, the
// configured default otherwise.
func ForBranch(b *models.Branch, def Window) Window {
	if b != nil && b.OpenTime != "" && b.CloseTime != "" {
		return Window{Open: b.OpenTime, Close: b.CloseTime}
	}
	return def
}

// Bounds anchors the window to date's calendar day in date's location.
// Any time-of-day on date is ignored.
func (w Window) Bounds(date time.Time) (time.Time, time.Time, error) {
	open, err := anchorHM(w.Open, date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	close, err := anchorHM(w.Close, date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if !close.After(open) {
		return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_business_window")
	}

	return open, close, nil
}

func anchorHM(hm string, date time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_business_window")
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// DayBounds is the [midnight, midnight+24h) span containing date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
