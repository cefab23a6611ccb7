package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// sqlite rejects FOR UPDATE and serializes writers anyway; the test
	// database runs through the same repository without the clause.
	rowLocking bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		db:         db,
		rowLocking: db.Dialector.Name() != "sqlite",
	}
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBranch(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, notFound(err, "branch_not_found")
	}
	return &branch, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&svc).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, notFound(err, "staff_not_found")
	}
	return &st, nil
}

func (r *AppointmentGormRepository) GetStaffByName(
	ctx context.Context,
	branchID uint,
	name string,
) (*models.Staff, error) {

	q := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}

	var st models.Staff
	if err := q.First(&st).Error; err != nil {
		return nil, notFound(err, "staff_not_found")
	}
	return &st, nil
}

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var cust models.Customer
	if err := r.db.WithContext(ctx).First(&cust, id).Error; err != nil {
		return nil, notFound(err, "customer_not_found")
	}
	return &cust, nil
}

func (r *AppointmentGormRepository) StaffPerformsService(
	ctx context.Context,
	staffID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffService{}).
		Where("staff_id = ? AND service_id = ? AND active", staffID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func busyQuery(db *gorm.DB, scope domain.BusyScope, dayStart, dayEnd time.Time) *gorm.DB {
	q := db.
		Model(&models.Appointment{}).
		Where(
			"branch_id = ? AND service_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			scope.BranchID,
			scope.ServiceID,
			string(domain.StatusCancelled),
			dayStart,
			dayEnd,
		)

	if scope.StaffID != 0 {
		q = q.Where("staff_id = ?", scope.StaffID)
	}

	return q.Order("start_time ASC")
}

func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	scope domain.BusyScope,
	dayStart time.Time,
	dayEnd time.Time,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := busyQuery(r.db.WithContext(ctx), scope, dayStart, dayEnd).
		Select("start_time", "end_time").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return toIntervals(apps), nil
}

func toIntervals(apps []models.Appointment) []domain.Interval {
	busy := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return busy
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	scope domain.BusyScope,
	dayStart time.Time,
	dayEnd time.Time,
	verify func(busy []domain.Interval) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := busyQuery(tx, scope, dayStart, dayEnd)
		if r.rowLocking {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing []models.Appointment
		if err := q.Find(&existing).Error; err != nil {
			return err
		}

		if err := verify(toIntervals(existing)); err != nil {
			return err
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff").
		Preload("Branch").
		Where("id = ?", appointmentID)

	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}

	var ap models.Appointment
	if err := q.First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff")

	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time <= ?", *f.To)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
