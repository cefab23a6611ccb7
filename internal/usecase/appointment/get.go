package appointment

import (
	"context"

	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, appointmentID, customerID)
}
