package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/service"
)

// VoucherHandler handles voucher and attachment endpoints.
type VoucherHandler struct {
	voucherService    service.VoucherService
	attachmentService service.AttachmentService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherService service.VoucherService, attachmentService service.AttachmentService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService, attachmentService: attachmentService}
}

type voucherLineRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	Debit     string `json:"debit"`
	Credit    string `json:"credit"`
	TaxRate   string `json:"tax_rate"`
	TaxHead   string `json:"tax_head"`
	Narration string `json:"narration"`
}

// parseAmount parses an optional decimal string; empty means zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Create handles POST /api/v1/vouchers
func (h *VoucherHandler) Create(c *gin.Context) {
	companyID, userID, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Type      string               `json:"type" binding:"required"`
		Date      string               `json:"date" binding:"required"`
		Narration string               `json:"narration"`
		Lines     []voucherLineRequest `json:"lines" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "type, date and lines are required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'date': must be YYYY-MM-DD")
		return
	}

	lines := make([]service.VoucherLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		accountID, err := uuid.Parse(l.AccountID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID in line")
			return
		}
		debit, err := parseAmount(l.Debit)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid debit amount")
			return
		}
		credit, err := parseAmount(l.Credit)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid credit amount")
			return
		}
		taxRate, err := parseAmount(l.TaxRate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid tax rate")
			return
		}
		lines = append(lines, service.VoucherLineInput{
			AccountID: accountID,
			Debit:     debit,
			Credit:    credit,
			TaxRate:   taxRate,
			TaxHead:   domain.TaxHead(l.TaxHead),
			Narration: l.Narration,
		})
	}

	voucher, err := h.voucherService.Create(c.Request.Context(), &service.CreateVoucherInput{
		CompanyID: companyID,
		CreatedBy: userID,
		Caps:      caps,
		Type:      domain.VoucherType(req.Type),
		Date:      date,
		Narration: req.Narration,
		Lines:     lines,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, voucher)
}

// Post handles POST /api/v1/vouchers/:id/post
func (h *VoucherHandler) Post(c *gin.Context) {
	companyID, _, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	voucher, err := h.voucherService.Post(c.Request.Context(), &service.PostVoucherInput{
		CompanyID: companyID,
		VoucherID: voucherID,
		Caps:      caps,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, voucher)
}

// Reverse handles POST /api/v1/vouchers/:id/reverse
func (h *VoucherHandler) Reverse(c *gin.Context) {
	companyID, userID, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional for reversals.
	_ = c.ShouldBindJSON(&req)

	reversal, err := h.voucherService.Reverse(c.Request.Context(), &service.ReverseVoucherInput{
		CompanyID:   companyID,
		VoucherID:   voucherID,
		RequestedBy: userID,
		Caps:        caps,
		Reason:      req.Reason,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, reversal)
}

// GetByID handles GET /api/v1/vouchers/:id
func (h *VoucherHandler) GetByID(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	voucher, err := h.voucherService.GetByID(c.Request.Context(), companyID, voucherID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, voucher)
}

// List handles GET /api/v1/vouchers
func (h *VoucherHandler) List(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filter, err := parseVoucherFilter(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	vouchers, total, err := h.voucherService.List(c.Request.Context(), companyID, *filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vouchers, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// UploadAttachment handles POST /api/v1/vouchers/:id/attachments
func (h *VoucherHandler) UploadAttachment(c *gin.Context) {
	companyID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart 'file' field is required")
		return
	}
	defer file.Close()

	att, err := h.attachmentService.Upload(c.Request.Context(), service.AttachmentUploadInput{
		CompanyID:  companyID,
		VoucherID:  voucherID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// ListAttachments handles GET /api/v1/vouchers/:id/attachments
func (h *VoucherHandler) ListAttachments(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	attachments, err := h.attachmentService.ListByVoucher(c.Request.Context(), companyID, voucherID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, attachments)
}

// AttachmentDownloadURL handles GET /api/v1/attachments/:id/download
func (h *VoucherHandler) AttachmentDownloadURL(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	attachmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid attachment ID")
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), companyID, attachmentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// DeleteAttachment handles DELETE /api/v1/attachments/:id
func (h *VoucherHandler) DeleteAttachment(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	attachmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid attachment ID")
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), companyID, attachmentID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}

// parseVoucherFilter extracts voucher list filters from query params.
func parseVoucherFilter(c *gin.Context) (*port.VoucherFilter, error) {
	filter := &port.VoucherFilter{}
	filter.Offset, filter.Limit = parsePagination(c)

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.VoucherStatus(statusStr)
		filter.Status = &status
	}
	if typeStr := c.Query("type"); typeStr != "" {
		vtype := domain.VoucherType(typeStr)
		filter.Type = &vtype
	}
	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' date: must be YYYY-MM-DD")
		}
		filter.From = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' date: must be YYYY-MM-DD")
		}
		filter.To = &t
	}
	return filter, nil
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
