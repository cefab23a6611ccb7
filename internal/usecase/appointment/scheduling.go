package appointment

import (
	"time"

	"github.com/salonvoice/booking-api/internal/config"
	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
)

// Scheduling carries the injected slot-grid policy shared by the
// availability and create use cases.
type Scheduling struct {
	Window               domain.Window
	Stride               time.Duration
	EnforceStaffServices bool
}

func SchedulingFromConfig(cfg *config.Config) Scheduling {
	return Scheduling{
		Window: domain.Window{
			Open:  cfg.BookingOpenTime,
			Close: cfg.BookingCloseTime,
		},
		Stride:               time.Duration(cfg.SlotStrideMin) * time.Minute,
		EnforceStaffServices: cfg.EnforceStaffServices,
	}
}
