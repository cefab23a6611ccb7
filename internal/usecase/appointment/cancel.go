package appointment

import (
	"context"

	"github.com/salonvoice/booking-api/internal/audit"
	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/models"
	"github.com/salonvoice/booking-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels an appointment. A non-zero customerID scopes the lookup
// to that customer's own appointments. Re-cancelling reports
// already_cancelled, never silent success.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID, customerID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(ap.Branch.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID:   ap.BranchID,
		CustomerID: &ap.CustomerID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
