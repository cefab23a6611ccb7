package appointment

import (
	"context"
	"time"

	"github.com/salonvoice/booking-api/internal/models"
)

// BusyScope selects whose appointments count as busy. StaffID zero widens
// the scope to every staff member at the branch for the service.
type BusyScope struct {
	BranchID  uint
	ServiceID uint
	StaffID   uint
}

// ListFilter narrows the read-side listing. Zero CustomerID and nil bounds
// mean unfiltered; From/To are inclusive on start_time.
type ListFilter struct {
	CustomerID uint
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	// -------- References --------
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	GetServiceByName(ctx context.Context, name string) (*models.Service, error)

	GetStaff(ctx context.Context, id uint) (*models.Staff, error)

	// GetStaffByName resolves a staff member by display name, scoped to a
	// branch when branchID is non-zero.
	GetStaffByName(ctx context.Context, branchID uint, name string) (*models.Staff, error)

	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)

	StaffPerformsService(ctx context.Context, staffID, serviceID uint) (bool, error)

	// -------- Availability --------
	ListBusyIntervals(
		ctx context.Context,
		scope BusyScope,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]Interval, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment re-reads the day's busy intervals under an
	// exclusive lock, hands them to verify, and inserts only when verify
	// returns nil. Check and insert share one transaction.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		scope BusyScope,
		dayStart time.Time,
		dayEnd time.Time,
		verify func(busy []Interval) error,
	) error

	// -------- Appointment (read / state change) --------

	// GetAppointment scopes the lookup to a customer when customerID is
	// non-zero.
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
		customerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)
}
