package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/service"
)

// FinancialYearHandler handles financial year endpoints.
type FinancialYearHandler struct {
	fyService service.FinancialYearService
}

// NewFinancialYearHandler creates a new FinancialYearHandler.
func NewFinancialYearHandler(fyService service.FinancialYearService) *FinancialYearHandler {
	return &FinancialYearHandler{fyService: fyService}
}

// Create handles POST /api/v1/financial-years
func (h *FinancialYearHandler) Create(c *gin.Context) {
	companyID, _, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Label       string `json:"label" binding:"required"`
		StartDate   string `json:"start_date" binding:"required"`
		EndDate     string `json:"end_date" binding:"required"`
		MakeCurrent bool   `json:"make_current"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "label, start_date and end_date are required")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'start_date': must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'end_date': must be YYYY-MM-DD")
		return
	}

	fy, err := h.fyService.Create(c.Request.Context(), &service.CreateFinancialYearInput{
		CompanyID:   companyID,
		Caps:        caps,
		Label:       req.Label,
		StartDate:   start,
		EndDate:     end,
		MakeCurrent: req.MakeCurrent,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, fy)
}

// List handles GET /api/v1/financial-years
func (h *FinancialYearHandler) List(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	years, err := h.fyService.List(c.Request.Context(), companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, years)
}

// GetByID handles GET /api/v1/financial-years/:id
func (h *FinancialYearHandler) GetByID(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid financial year ID")
		return
	}

	fy, err := h.fyService.GetByID(c.Request.Context(), companyID, fyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, fy)
}

// Close handles POST /api/v1/financial-years/:id/close
func (h *FinancialYearHandler) Close(c *gin.Context) {
	h.transition(c, h.fyService.Close)
}

// Reopen handles POST /api/v1/financial-years/:id/reopen
func (h *FinancialYearHandler) Reopen(c *gin.Context) {
	h.transition(c, h.fyService.Reopen)
}

// SetCurrent handles POST /api/v1/financial-years/:id/set-current
func (h *FinancialYearHandler) SetCurrent(c *gin.Context) {
	h.transition(c, h.fyService.SetCurrent)
}

// transition runs one of the state-machine actions against the year in the
// URL path.
func (h *FinancialYearHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, input *service.FinancialYearActionInput) (*domain.FinancialYear, error),
) {
	companyID, _, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid financial year ID")
		return
	}

	fy, err := fn(c.Request.Context(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fyID,
		Caps:            caps,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, fy)
}
