package appointment

import (
	"context"

	"github.com/salonvoice/booking-api/internal/audit"
	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/models"
	"github.com/salonvoice/booking-api/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID, 0)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(ap.Branch.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID:   ap.BranchID,
		CustomerID: &ap.CustomerID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
