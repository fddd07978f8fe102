package domain

// AccountNature classifies ledger accounts and fixes their normal balance side.
type AccountNature string

const (
	NatureAsset     AccountNature = "asset"
	NatureLiability AccountNature = "liability"
	NatureEquity    AccountNature = "equity"
	NatureIncome    AccountNature = "income"
	NatureExpense   AccountNature = "expense"
)

// ValidAccountNatures is the set of accepted account natures.
var ValidAccountNatures = map[AccountNature]bool{
	NatureAsset:     true,
	NatureLiability: true,
	NatureEquity:    true,
	NatureIncome:    true,
	NatureExpense:   true,
}

// DebitNormal reports whether accounts of this nature carry a debit-side
// normal balance. Asset and expense accounts are debit-normal; liability,
// equity, and income accounts are credit-normal.
func (n AccountNature) DebitNormal() bool {
	return n == NatureAsset || n == NatureExpense
}

// FinancialYearStatus is the period-lock state of a financial year.
type FinancialYearStatus string

const (
	FYStatusOpen   FinancialYearStatus = "open"
	FYStatusClosed FinancialYearStatus = "closed"
)

// VoucherType tags a voucher with its transaction category.
type VoucherType string

const (
	VoucherTypeSales    VoucherType = "sales"
	VoucherTypePurchase VoucherType = "purchase"
	VoucherTypeJournal  VoucherType = "journal"
	VoucherTypePayment  VoucherType = "payment"
	VoucherTypeReceipt  VoucherType = "receipt"
	VoucherTypeReversal VoucherType = "reversal"
)

// ValidVoucherTypes is the set of voucher types accepted at creation.
// Reversal vouchers are created only by the posting service itself.
var ValidVoucherTypes = map[VoucherType]bool{
	VoucherTypeSales:    true,
	VoucherTypePurchase: true,
	VoucherTypeJournal:  true,
	VoucherTypePayment:  true,
	VoucherTypeReceipt:  true,
}

// VoucherStatus is the lifecycle state of a voucher.
type VoucherStatus string

const (
	VoucherStatusDraft    VoucherStatus = "draft"
	VoucherStatusPosted   VoucherStatus = "posted"
	VoucherStatusReversed VoucherStatus = "reversed"
)

// TaxHead identifies the GST component a voucher line settles.
type TaxHead string

const (
	TaxHeadNone TaxHead = "none"
	TaxHeadCGST TaxHead = "cgst"
	TaxHeadSGST TaxHead = "sgst"
	TaxHeadIGST TaxHead = "igst"
)

// ValidTaxHeads is the set of accepted tax heads on a voucher line.
var ValidTaxHeads = map[TaxHead]bool{
	TaxHeadNone: true,
	TaxHeadCGST: true,
	TaxHeadSGST: true,
	TaxHeadIGST: true,
}

// ReturnType identifies a statutory return format.
type ReturnType string

const (
	ReturnTypeGSTR1  ReturnType = "gstr1"
	ReturnTypeGSTR3B ReturnType = "gstr3b"
)

// ValidReturnTypes is the set of supported statutory return types.
var ValidReturnTypes = map[ReturnType]bool{
	ReturnTypeGSTR1:  true,
	ReturnTypeGSTR3B: true,
}

// ReturnStatus is the generation state of a statutory return.
type ReturnStatus string

const (
	ReturnStatusGenerated ReturnStatus = "generated"
)

// UserRole defines the role hierarchy within a company.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleViewer     UserRole = "viewer"
)

// Capability is a single permission the engine checks before a mutation.
// Roles are resolved to capability sets at the boundary; the engine never
// inspects roles directly.
type Capability string

const (
	CapPost           Capability = "post"
	CapCloseFY        Capability = "close_fy"
	CapReopenFY       Capability = "reopen_fy"
	CapGenerateReturn Capability = "generate_return"
	CapManageChart    Capability = "manage_chart"
)

// CapabilitySet is the set of capabilities attached to one request.
type CapabilitySet map[Capability]bool

// Has reports whether the set grants the capability.
func (s CapabilitySet) Has(c Capability) bool { return s[c] }

// roleCapabilities is the static per-role capability table.
var roleCapabilities = map[UserRole][]Capability{
	RoleAdmin:      {CapPost, CapCloseFY, CapReopenFY, CapGenerateReturn, CapManageChart},
	RoleAccountant: {CapPost, CapCloseFY, CapGenerateReturn, CapManageChart},
	RoleViewer:     {},
}

// CapabilitiesFor resolves a role to its capability set. Unknown roles get
// an empty set.
func CapabilitiesFor(role UserRole) CapabilitySet {
	set := make(CapabilitySet)
	for _, c := range roleCapabilities[role] {
		set[c] = true
	}
	return set
}

// AttachmentFileType represents the allowed attachment file types.
type AttachmentFileType string

const (
	AttachmentTypePDF AttachmentFileType = "pdf"
	AttachmentTypeJPG AttachmentFileType = "jpg"
	AttachmentTypePNG AttachmentFileType = "png"
)

// AllowedAttachmentTypes maps AttachmentFileType to its MIME content type.
var AllowedAttachmentTypes = map[AttachmentFileType]string{
	AttachmentTypePDF: "application/pdf",
	AttachmentTypeJPG: "image/jpeg",
	AttachmentTypePNG: "image/png",
}

// AllowedAttachmentContentTypes maps MIME content types back to AttachmentFileType.
var AllowedAttachmentContentTypes = map[string]AttachmentFileType{
	"application/pdf": AttachmentTypePDF,
	"image/jpeg":      AttachmentTypeJPG,
	"image/png":       AttachmentTypePNG,
}

// AllowedAttachmentExtensions maps file extensions (without dot) to AttachmentFileType.
var AllowedAttachmentExtensions = map[string]AttachmentFileType{
	"pdf":  AttachmentTypePDF,
	"jpg":  AttachmentTypeJPG,
	"jpeg": AttachmentTypeJPG,
	"png":  AttachmentTypePNG,
}
