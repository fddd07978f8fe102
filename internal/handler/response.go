package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "PERMISSION_DENIED", "insufficient permissions for this action"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrCompanyInactive):
		return http.StatusForbidden, "COMPANY_INACTIVE", "company is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "validation failed"
	case errors.Is(err, domain.ErrEmptyVoucher):
		return http.StatusBadRequest, "EMPTY_VOUCHER", "voucher must have at least one line"
	case errors.Is(err, domain.ErrInvalidVoucherLine):
		return http.StatusBadRequest, "INVALID_VOUCHER_LINE", "each line must have exactly one non-zero side"
	case errors.Is(err, domain.ErrUnbalancedEntry):
		return http.StatusBadRequest, "UNBALANCED_ENTRY", "voucher debits do not equal credits"
	case errors.Is(err, domain.ErrCrossTenantViolation):
		return http.StatusBadRequest, "CROSS_TENANT_VIOLATION", "referenced account belongs to a different company"
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, "INVALID_PERIOD", "period must be in YYYY-MM format"
	case errors.Is(err, domain.ErrInvalidReturnType):
		return http.StatusBadRequest, "INVALID_RETURN_TYPE", "return type must be gstr1 or gstr3b"
	case errors.Is(err, domain.ErrInvalidVoucherType):
		return http.StatusBadRequest, "INVALID_VOUCHER_TYPE", "unsupported voucher type"
	case errors.Is(err, domain.ErrInvalidAccountNature):
		return http.StatusBadRequest, "INVALID_ACCOUNT_NATURE", "nature must be asset, liability, equity, income, or expense"
	case errors.Is(err, domain.ErrDuplicateAccountCode):
		return http.StatusConflict, "DUPLICATE_ACCOUNT_CODE", "account code already exists for this company"
	case errors.Is(err, domain.ErrOverlappingYear):
		return http.StatusConflict, "OVERLAPPING_YEAR", "financial year overlaps an existing year"
	case errors.Is(err, domain.ErrInvalidYearRange):
		return http.StatusBadRequest, "INVALID_YEAR_RANGE", "financial year start must precede end"
	case errors.Is(err, domain.ErrFinancialYearClosed):
		return http.StatusUnprocessableEntity, "FINANCIAL_YEAR_CLOSED", "financial year is closed for posting"
	case errors.Is(err, domain.ErrNoFinancialYear):
		return http.StatusUnprocessableEntity, "NO_FINANCIAL_YEAR", "no financial year covers this date"
	case errors.Is(err, domain.ErrCurrentYearViolation):
		return http.StatusUnprocessableEntity, "CURRENT_YEAR_VIOLATION", "the current financial year cannot be closed"
	case errors.Is(err, domain.ErrAlreadyPosted):
		return http.StatusConflict, "ALREADY_POSTED", "voucher is already posted"
	case errors.Is(err, domain.ErrAlreadyReversed):
		return http.StatusConflict, "ALREADY_REVERSED", "voucher is already reversed"
	case errors.Is(err, domain.ErrNotPosted):
		return http.StatusConflict, "NOT_POSTED", "voucher has not been posted"
	case errors.Is(err, domain.ErrIntegrityViolation):
		return http.StatusInternalServerError, "INTEGRITY_VIOLATION", "ledger integrity violation detected"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this company"
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "company slug already exists"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts company ID, user ID, and capability set from the
// request context. Returns false if auth context is missing (error response
// already written).
func extractAuthContext(c *gin.Context) (companyID, userID uuid.UUID, caps domain.CapabilitySet, ok bool) {
	var err error
	companyID, err = middleware.GetCompanyID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing company context")
		return uuid.Nil, uuid.Nil, nil, false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, nil, false
	}
	caps = middleware.GetCapabilities(c)
	return companyID, userID, caps, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
