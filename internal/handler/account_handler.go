package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/service"
)

// AccountHandler handles chart-of-accounts endpoints.
type AccountHandler struct {
	accountService   service.AccountService
	reportingService service.ReportingService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService, reportingService service.ReportingService) *AccountHandler {
	return &AccountHandler{accountService: accountService, reportingService: reportingService}
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	companyID, _, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Code     string `json:"code" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Nature   string `json:"nature" binding:"required"`
		ParentID string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "code, name and nature are required")
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		pid, err := uuid.Parse(req.ParentID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid parent account ID")
			return
		}
		parentID = &pid
	}

	account, err := h.accountService.Create(c.Request.Context(), &service.CreateAccountInput{
		CompanyID: companyID,
		Caps:      caps,
		Code:      req.Code,
		Name:      req.Name,
		Nature:    domain.AccountNature(req.Nature),
		ParentID:  parentID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, account)
}

// List handles GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.List(c.Request.Context(), companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, accounts)
}

// GetByID handles GET /api/v1/accounts/:id
func (h *AccountHandler) GetByID(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), companyID, accountID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, account)
}

// Balance handles GET /api/v1/accounts/:id/balance
func (h *AccountHandler) Balance(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	asOf := time.Now().UTC()
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		asOf, err = time.Parse("2006-01-02", asOfStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'as_of' date: must be YYYY-MM-DD")
			return
		}
	}

	balance, err := h.reportingService.Balance(c.Request.Context(), companyID, accountID, asOf)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"account_id": accountID,
		"as_of":      asOf.Format("2006-01-02"),
		"balance":    balance,
	})
}
