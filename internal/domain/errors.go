package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCompanyInactive    = errors.New("company is inactive")
	ErrUserInactive       = errors.New("user is inactive")

	// Validation errors: caller-correctable, no mutation occurs.
	ErrValidation           = errors.New("validation failed")
	ErrEmptyVoucher         = errors.New("voucher has no lines")
	ErrInvalidVoucherLine   = errors.New("voucher line must have exactly one non-zero side")
	ErrUnbalancedEntry      = errors.New("voucher debits do not equal credits")
	ErrCrossTenantViolation = errors.New("account belongs to a different company")
	ErrInvalidPeriod        = errors.New("period must be in YYYY-MM format")
	ErrInvalidReturnType    = errors.New("unsupported return type")
	ErrInvalidVoucherType   = errors.New("unsupported voucher type")
	ErrInvalidAccountNature = errors.New("unsupported account nature")
	ErrDuplicateAccountCode = errors.New("account code already exists for this company")
	ErrOverlappingYear      = errors.New("financial year overlaps an existing year")
	ErrInvalidYearRange     = errors.New("financial year start must precede end")

	// Guard errors: business-rule rejections, never retried.
	ErrFinancialYearClosed  = errors.New("financial year is closed")
	ErrNoFinancialYear      = errors.New("no financial year covers this date")
	ErrCurrentYearViolation = errors.New("the current financial year cannot be closed")

	// State errors: stale or repeated request, surfaced as conflicts.
	ErrAlreadyPosted   = errors.New("voucher is already posted")
	ErrAlreadyReversed = errors.New("voucher is already reversed")
	ErrNotPosted       = errors.New("voucher is not posted")

	// Integrity errors: storage or logic corruption, never a business state.
	ErrIntegrityViolation = errors.New("ledger integrity violation")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDuplicateEmail      = errors.New("email already exists for this company")
	ErrDuplicateSlug       = errors.New("company slug already exists")
)
