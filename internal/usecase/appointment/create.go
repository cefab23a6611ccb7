package appointment

import (
	"context"
	"time"

	"github.com/salonvoice/booking-api/internal/audit"
	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uint
	StaffID    uint
	ServiceID  uint
	BranchID   uint

	StartTime time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	sched Scheduling
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	sched Scheduling,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		sched: sched,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	if staff.BranchID != branch.ID {
		return nil, httperr.ErrValidation("staff_not_at_branch")
	}
	if !staff.Active {
		return nil, httperr.ErrValidation("staff_inactive")
	}

	if uc.sched.EnforceStaffServices {
		ok, err := uc.repo.StaffPerformsService(ctx, in.StaffID, in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrValidation("staff_cannot_perform_service")
		}
	}

	start := in.StartTime
	duration := time.Duration(service.DurationMin) * time.Minute
	end := start.Add(duration)

	open, close, err := domain.ForBranch(branch, uc.sched.Window).Bounds(start)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := domain.DayBounds(start)

	scope := domain.BusyScope{
		BranchID:  in.BranchID,
		ServiceID: in.ServiceID,
		StaffID:   in.StaffID,
	}

	ap := &models.Appointment{
		CustomerID: in.CustomerID,
		StaffID:    in.StaffID,
		ServiceID:  in.ServiceID,
		BranchID:   in.BranchID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	// The slot grid is re-derived from the locked rows, so the check and
	// the insert cannot interleave with a concurrent create for the same
	// scope.
	err = uc.repo.CreateAppointment(ctx, ap, scope, dayStart, dayEnd,
		func(busy []domain.Interval) error {
			for _, slot := range domain.Slots(open, close, duration, uc.sched.Stride, busy) {
				if slot.Equal(start) {
					return nil
				}
			}
			return httperr.ErrConflict("slot_unavailable")
		},
	)

	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				BranchID:   in.BranchID,
				CustomerID: &in.CustomerID,
				Action:     "appointment_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"start": start,
					"end":   end,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID:   in.BranchID,
		CustomerID: &in.CustomerID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
