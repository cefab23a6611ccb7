package appointment

import "github.com/salonvoice/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Validations
// ===============================

// CanCancel allows cancellation from any non-terminal state. Cancelling
// twice is reported distinctly so callers never treat it as success.
func CanCancel(current Status) error {
	switch current {
	case StatusCancelled:
		return httperr.ErrAlreadyCancelled("already_cancelled")
	case StatusCompleted:
		return httperr.ErrValidation("invalid_state")
	default:
		return nil
	}
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrValidation("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrValidation("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
