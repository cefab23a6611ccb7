package appointment

import (
	"context"

	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments ascending by start time. Every filter is
// optional; no match yields an empty slice, not an error.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.ErrValidation("invalid_date_range")
	}

	apps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}
