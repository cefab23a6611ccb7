package appointment

import (
	"context"
	"time"

	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	sched Scheduling
}

func NewGetAvailability(repo domain.Repository, sched Scheduling) *GetAvailability {
	return &GetAvailability{repo: repo, sched: sched}
}

// Execute computes the free start times for a branch/service pair on the
// calendar day containing in.Date. A zero StaffID yields branch-wide
// slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]time.Time, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	if in.StaffID != 0 {
		staff, err := uc.repo.GetStaff(ctx, in.StaffID)
		if err != nil {
			return nil, err
		}

		// create rejects these, so no slot may be advertised either
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
	}

	open, close, err := domain.ForBranch(branch, uc.sched.Window).Bounds(in.Date)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := domain.DayBounds(in.Date)

	busy, err := uc.repo.ListBusyIntervals(
		ctx,
		domain.BusyScope{
			BranchID:  in.BranchID,
			ServiceID: in.ServiceID,
			StaffID:   in.StaffID,
		},
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	return domain.Slots(open, close, duration, uc.sched.Stride, busy), nil
}
