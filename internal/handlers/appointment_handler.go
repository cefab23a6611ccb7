package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/httpresp"
	"github.com/salonvoice/booking-api/internal/middleware"
	"github.com/salonvoice/booking-api/internal/models"
	"github.com/salonvoice/booking-api/internal/timezone"
	ucappointment "github.com/salonvoice/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	availabilityUC *ucappointment.GetAvailability
	createUC       *ucappointment.CreateAppointment
	getUC          *ucappointment.GetAppointment
	cancelUC       *ucappointment.CancelAppointment
	confirmUC      *ucappointment.ConfirmAppointment
	completeUC     *ucappointment.CompleteAppointment
	listUC         *ucappointment.ListAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	availabilityUC *ucappointment.GetAvailability,
	createUC *ucappointment.CreateAppointment,
	getUC *ucappointment.GetAppointment,
	cancelUC *ucappointment.CancelAppointment,
	confirmUC *ucappointment.ConfirmAppointment,
	completeUC *ucappointment.CompleteAppointment,
	listUC *ucappointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		getUC:          getUC,
		cancelUC:       cancelUC,
		confirmUC:      confirmUC,
		completeUC:     completeUC,
		listUC:         listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	BranchID  uint   `json:"branch_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	branchID, ok1 := queryUint(c, "branch_id")
	serviceID, ok2 := queryUint(c, "service_id")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_request", "branch_id and service_id are required.")
		return
	}

	staffID := uint(0)
	if v := c.Query("staff_id"); v != "" {
		id, ok := queryUint(c, "staff_id")
		if !ok {
			httperr.BadRequest(c, "invalid_request", "staff_id must be numeric.")
			return
		}
		staffID = id
	}

	var branch models.Branch
	if err := h.db.First(&branch, branchID).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		c.Query("date"),
		timezone.Location(branch.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BranchID:  branchID,
		ServiceID: serviceID,
		StaffID:   staffID,
		Date:      date,
	})
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}

	httpresp.List(c, out)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var branch models.Branch
	if err := h.db.First(&branch, req.BranchID).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Invalid start_time, expected RFC 3339.")
		return
	}
	start = start.In(timezone.Location(branch.Timezone))

	ap, err := h.createUC.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		CustomerID: customerID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		BranchID:   req.BranchID,
		StartTime:  start,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// GET / LIST
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), id, customerID)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	f := domain.ListFilter{CustomerID: customerID}

	if v := c.Query("start_date"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid start_date.")
			return
		}
		f.From = &from
	}
	if v := c.Query("end_date"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid end_date.")
			return
		}
		// inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
		f.To = &to
	}

	apps, err := h.listUC.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, customerID)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// HELPERS
// ======================================================

func queryUint(c *gin.Context, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func paramUint(c *gin.Context, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
