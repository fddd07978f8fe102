package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company represents an isolated tenant with its own ledger.
type Company struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	StateCode string    `db:"state_code" json:"state_code"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a company.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CompanyID    uuid.UUID `db:"company_id" json:"company_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Account is a ledger account in a company's chart of accounts. Accounts
// form a tree via ParentID; Path is the materialized code path from the
// root (e.g. "1000/1100/1110").
type Account struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	CompanyID uuid.UUID     `db:"company_id" json:"company_id"`
	Code      string        `db:"code" json:"code"`
	Name      string        `db:"name" json:"name"`
	Nature    AccountNature `db:"nature" json:"nature"`
	ParentID  *uuid.UUID    `db:"parent_id" json:"parent_id"`
	Path      string        `db:"path" json:"path"`
	IsSystem  bool          `db:"is_system" json:"is_system"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// FinancialYear is a company-scoped accounting period [StartDate, EndDate)
// with its own open/closed lock state. At most one financial year per
// company is current.
type FinancialYear struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	CompanyID uuid.UUID           `db:"company_id" json:"company_id"`
	Label     string              `db:"label" json:"label"`
	StartDate time.Time           `db:"start_date" json:"start_date"`
	EndDate   time.Time           `db:"end_date" json:"end_date"`
	Status    FinancialYearStatus `db:"status" json:"status"`
	IsCurrent bool                `db:"is_current" json:"is_current"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

// Contains reports whether a date falls inside the year's [start, end) range.
func (fy *FinancialYear) Contains(date time.Time) bool {
	return !date.Before(fy.StartDate) && date.Before(fy.EndDate)
}

// Voucher is a double-entry transaction header. SequenceNo is assigned at
// posting time, never at creation, so abandoned drafts leave no gaps.
type Voucher struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	CompanyID   uuid.UUID     `db:"company_id" json:"company_id"`
	Type        VoucherType   `db:"type" json:"type"`
	VoucherDate time.Time     `db:"voucher_date" json:"voucher_date"`
	Narration   string        `db:"narration" json:"narration"`
	SequenceNo  *int64        `db:"sequence_no" json:"sequence_no"`
	Status      VoucherStatus `db:"status" json:"status"`
	PostedAt    *time.Time    `db:"posted_at" json:"posted_at"`
	ReversalOf  *uuid.UUID    `db:"reversal_of" json:"reversal_of"`
	ReversedBy  *uuid.UUID    `db:"reversed_by" json:"reversed_by"`
	CreatedBy   uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`

	Lines []VoucherLine `db:"-" json:"lines,omitempty"`
}

// VoucherLine is a single debit or credit leg of a voucher. Exactly one of
// Debit/Credit is non-zero. Lines are immutable once the voucher posts.
type VoucherLine struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	VoucherID uuid.UUID       `db:"voucher_id" json:"voucher_id"`
	CompanyID uuid.UUID       `db:"company_id" json:"company_id"`
	AccountID uuid.UUID       `db:"account_id" json:"account_id"`
	Debit     decimal.Decimal `db:"debit" json:"debit"`
	Credit    decimal.Decimal `db:"credit" json:"credit"`
	TaxRate   decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	TaxHead   TaxHead         `db:"tax_head" json:"tax_head"`
	Narration string          `db:"narration" json:"narration"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// TaxReturn is an aggregated statutory return for one (company, period,
// type). Regeneration overwrites the row; totals are always a full
// recomputation over posted vouchers.
type TaxReturn struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	CompanyID    uuid.UUID       `db:"company_id" json:"company_id"`
	Period       string          `db:"period" json:"period"`
	ReturnType   ReturnType      `db:"return_type" json:"return_type"`
	TaxableValue decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	CGST         decimal.Decimal `db:"cgst" json:"cgst"`
	SGST         decimal.Decimal `db:"sgst" json:"sgst"`
	IGST         decimal.Decimal `db:"igst" json:"igst"`
	TotalTax     decimal.Decimal `db:"total_tax" json:"total_tax"`
	VoucherCount int             `db:"voucher_count" json:"voucher_count"`
	Status       ReturnStatus    `db:"status" json:"status"`
	GeneratedBy  uuid.UUID       `db:"generated_by" json:"generated_by"`
	GeneratedAt  time.Time       `db:"generated_at" json:"generated_at"`
}

// ReturnTotals is the raw aggregation result behind a statutory return.
type ReturnTotals struct {
	TaxableValue decimal.Decimal `db:"taxable_value"`
	CGST         decimal.Decimal `db:"cgst"`
	SGST         decimal.Decimal `db:"sgst"`
	IGST         decimal.Decimal `db:"igst"`
	VoucherCount int             `db:"voucher_count"`
}

// VoucherAttachment is a supporting document stored in S3 for a voucher.
type VoucherAttachment struct {
	ID           uuid.UUID          `db:"id" json:"id"`
	VoucherID    uuid.UUID          `db:"voucher_id" json:"voucher_id"`
	CompanyID    uuid.UUID          `db:"company_id" json:"company_id"`
	UploadedBy   uuid.UUID          `db:"uploaded_by" json:"uploaded_by"`
	FileName     string             `db:"file_name" json:"file_name"`
	OriginalName string             `db:"original_name" json:"original_name"`
	FileType     AttachmentFileType `db:"file_type" json:"file_type"`
	FileSize     int64              `db:"file_size" json:"file_size"`
	S3Bucket     string             `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string             `db:"s3_key" json:"s3_key"`
	ContentType  string             `db:"content_type" json:"content_type"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
}

// TrialBalanceRow is one account's aggregated activity in a trial balance.
type TrialBalanceRow struct {
	AccountID   uuid.UUID       `db:"account_id" json:"account_id"`
	AccountCode string          `db:"account_code" json:"account_code"`
	AccountName string          `db:"account_name" json:"account_name"`
	Nature      AccountNature   `db:"nature" json:"nature"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
}

// TrialBalance is the full listing plus column totals. TotalDebit and
// TotalCredit must be equal for a consistent ledger.
type TrialBalance struct {
	FinancialYearID uuid.UUID         `json:"financial_year_id"`
	Rows            []TrialBalanceRow `json:"rows"`
	TotalDebit      decimal.Decimal   `json:"total_debit"`
	TotalCredit     decimal.Decimal   `json:"total_credit"`
}

// StatementLine is one account's nature-signed net amount in a P&L or
// balance-sheet statement.
type StatementLine struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLoss partitions income and expense activity over a date range.
type ProfitAndLoss struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Income       []StatementLine `json:"income"`
	Expenses     []StatementLine `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// BalanceSheet partitions cumulative balances by nature as of a date.
type BalanceSheet struct {
	AsOf             time.Time       `json:"as_of"`
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Equity           []StatementLine `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}
