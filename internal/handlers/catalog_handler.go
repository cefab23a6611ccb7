package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/httpresp"
	"github.com/salonvoice/booking-api/internal/models"
)

// CatalogHandler serves the public read-only listings the booking and
// voice clients browse before committing to a slot.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

func (h *CatalogHandler) ListBranches(c *gin.Context) {
	var branches []models.Branch
	if err := h.db.Where("active").Order("name ASC").Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Could not list branches.")
		return
	}

	httpresp.List(c, branches)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	q := h.db.Where("active")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) ListStaff(c *gin.Context) {
	q := h.db.Where("active")
	if branchID, ok := queryUint(c, "branch_id"); ok {
		q = q.Where("branch_id = ?", branchID)
	}

	var staff []models.Staff
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}
