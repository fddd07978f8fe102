package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/csvexport"
	"lekha/internal/service"
)

// ReportHandler handles ledger report endpoints.
type ReportHandler struct {
	reportingService service.ReportingService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportingService service.ReportingService) *ReportHandler {
	return &ReportHandler{reportingService: reportingService}
}

// TrialBalance handles GET /api/v1/reports/trial-balance
// @Summary      Trial balance
// @Description  Per-account net debit/credit balances for a financial year with equal column totals
// @Tags         reports
// @Produce      json
// @Param        financial_year_id query string true "Financial year UUID"
// @Param        format query string false "Response format: json or csv" default(json)
// @Success      200 {object} APIResponse{data=domain.TrialBalance}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/trial-balance [get]
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fyID, err := uuid.Parse(c.Query("financial_year_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "'financial_year_id' must be a valid UUID")
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, fyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteTrialBalance(tb); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+csvexport.BuildFilename("trial_balance"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	RespondOK(c, tb)
}

// ProfitAndLoss handles GET /api/v1/reports/profit-and-loss
// @Summary      Profit and loss statement
// @Description  Income and expense activity over a date range with net profit
// @Tags         reports
// @Produce      json
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse{data=domain.ProfitAndLoss}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/profit-and-loss [get]
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'from' date: must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'to' date: must be YYYY-MM-DD")
		return
	}

	pl, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, pl)
}

// BalanceSheet handles GET /api/v1/reports/balance-sheet
// @Summary      Balance sheet
// @Description  Cumulative asset, liability, and equity balances as of a date
// @Tags         reports
// @Produce      json
// @Param        as_of query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} APIResponse{data=domain.BalanceSheet}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		var err error
		asOf, err = time.Parse("2006-01-02", asOfStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'as_of' date: must be YYYY-MM-DD")
			return
		}
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bs)
}
