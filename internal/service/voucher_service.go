package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// VoucherLineInput is one debit or credit leg in a voucher creation request.
type VoucherLineInput struct {
	AccountID uuid.UUID
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	TaxRate   decimal.Decimal
	TaxHead   domain.TaxHead
	Narration string
}

// CreateVoucherInput is the DTO for creating a draft voucher.
type CreateVoucherInput struct {
	CompanyID uuid.UUID
	CreatedBy uuid.UUID
	Caps      domain.CapabilitySet
	Type      domain.VoucherType
	Date      time.Time
	Narration string
	Lines     []VoucherLineInput
}

// PostVoucherInput is the DTO for posting a draft voucher.
type PostVoucherInput struct {
	CompanyID uuid.UUID
	VoucherID uuid.UUID
	Caps      domain.CapabilitySet
}

// ReverseVoucherInput is the DTO for reversing a posted voucher.
type ReverseVoucherInput struct {
	CompanyID   uuid.UUID
	VoucherID   uuid.UUID
	RequestedBy uuid.UUID
	Caps        domain.CapabilitySet
	Reason      string
}

// VoucherService defines the posting engine contract.
type VoucherService interface {
	Create(ctx context.Context, input *CreateVoucherInput) (*domain.Voucher, error)
	Post(ctx context.Context, input *PostVoucherInput) (*domain.Voucher, error)
	Reverse(ctx context.Context, input *ReverseVoucherInput) (*domain.Voucher, error)
	GetByID(ctx context.Context, companyID, voucherID uuid.UUID) (*domain.Voucher, error)
	List(ctx context.Context, companyID uuid.UUID, filter port.VoucherFilter) ([]domain.Voucher, int, error)
}

type voucherService struct {
	voucherRepo port.VoucherRepository
	accountRepo port.AccountRepository
	fyRepo      port.FinancialYearRepository
	tx          port.Transactor
}

// NewVoucherService creates a new VoucherService implementation.
func NewVoucherService(
	voucherRepo port.VoucherRepository,
	accountRepo port.AccountRepository,
	fyRepo port.FinancialYearRepository,
	tx port.Transactor,
) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		fyRepo:      fyRepo,
		tx:          tx,
	}
}

// validateLine checks the exactly-one-non-zero rule at minor-unit precision.
func validateLine(line *VoucherLineInput) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return domain.ErrInvalidVoucherLine
	}
	if line.Debit.IsZero() == line.Credit.IsZero() {
		return domain.ErrInvalidVoucherLine
	}
	// Amounts beyond two decimal places cannot be settled in minor units.
	if !line.Debit.Equal(line.Debit.Round(2)) || !line.Credit.Equal(line.Credit.Round(2)) {
		return domain.ErrInvalidVoucherLine
	}
	if line.TaxHead != "" && !domain.ValidTaxHeads[line.TaxHead] {
		return domain.ErrInvalidVoucherLine
	}
	return nil
}

func (s *voucherService) Create(ctx context.Context, input *CreateVoucherInput) (*domain.Voucher, error) {
	if !input.Caps.Has(domain.CapPost) {
		return nil, domain.ErrPermissionDenied
	}
	if !domain.ValidVoucherTypes[input.Type] {
		return nil, domain.ErrInvalidVoucherType
	}
	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyVoucher
	}

	lines := make([]domain.VoucherLine, 0, len(input.Lines))
	for i := range input.Lines {
		in := &input.Lines[i]
		if err := validateLine(in); err != nil {
			return nil, err
		}

		account, err := s.accountRepo.GetByID(ctx, in.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("line %d account: %w", i, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("resolving line %d account: %w", i, err)
		}
		if account.CompanyID != input.CompanyID {
			return nil, domain.ErrCrossTenantViolation
		}

		head := in.TaxHead
		if head == "" {
			head = domain.TaxHeadNone
		}
		lines = append(lines, domain.VoucherLine{
			AccountID: in.AccountID,
			Debit:     in.Debit,
			Credit:    in.Credit,
			TaxRate:   in.TaxRate,
			TaxHead:   head,
			Narration: in.Narration,
		})
	}

	voucher := &domain.Voucher{
		ID:          uuid.New(),
		CompanyID:   input.CompanyID,
		Type:        input.Type,
		VoucherDate: input.Date,
		Narration:   input.Narration,
		Status:      domain.VoucherStatusDraft,
		CreatedBy:   input.CreatedBy,
		Lines:       lines,
	}

	// Drafts may exist for any date: no guard check and no sequence number
	// until posting.
	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, fmt.Errorf("creating voucher: %w", err)
	}

	log.Printf("voucherService.Create: draft %s (%s, %d lines) created for company %s",
		voucher.ID, voucher.Type, len(voucher.Lines), voucher.CompanyID)
	return voucher, nil
}

// lineTotals sums the debit and credit columns of a voucher.
func lineTotals(lines []domain.VoucherLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for i := range lines {
		debit = debit.Add(lines[i].Debit)
		credit = credit.Add(lines[i].Credit)
	}
	return debit, credit
}

// Post finalizes a draft voucher. The guard check, balance validation,
// sequence allocation, and status flip commit as one transaction; the
// financial year row is locked so a concurrent close cannot slip between the
// check and the write.
func (s *voucherService) Post(ctx context.Context, input *PostVoucherInput) (*domain.Voucher, error) {
	if !input.Caps.Has(domain.CapPost) {
		return nil, domain.ErrPermissionDenied
	}

	var posted *domain.Voucher
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		voucher, err := s.voucherRepo.GetByIDForUpdate(ctx, input.CompanyID, input.VoucherID)
		if err != nil {
			return err
		}
		switch voucher.Status {
		case domain.VoucherStatusPosted, domain.VoucherStatusReversed:
			return domain.ErrAlreadyPosted
		}

		if len(voucher.Lines) == 0 {
			return domain.ErrEmptyVoucher
		}
		debit, credit := lineTotals(voucher.Lines)
		if !debit.Equal(credit) {
			return domain.ErrUnbalancedEntry
		}

		fy, err := s.fyRepo.FindByDateForUpdate(ctx, voucher.CompanyID, voucher.VoucherDate)
		if err != nil {
			return err
		}
		if fy.Status == domain.FYStatusClosed {
			return domain.ErrFinancialYearClosed
		}

		seq, err := s.voucherRepo.NextSequence(ctx, voucher.CompanyID, voucher.Type)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := s.voucherRepo.MarkPosted(ctx, voucher.CompanyID, voucher.ID, seq, now); err != nil {
			return err
		}

		voucher.SequenceNo = &seq
		voucher.Status = domain.VoucherStatusPosted
		voucher.PostedAt = &now
		posted = voucher
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("voucherService.Post: voucher %s posted as %s #%d for company %s",
		posted.ID, posted.Type, *posted.SequenceNo, posted.CompanyID)
	return posted, nil
}

// Reverse posts a new voucher negating the original's lines and marks the
// original REVERSED. The reversal is its own posting event dated today, so
// today's financial year must be open; the original's lines are untouched.
func (s *voucherService) Reverse(ctx context.Context, input *ReverseVoucherInput) (*domain.Voucher, error) {
	if !input.Caps.Has(domain.CapPost) {
		return nil, domain.ErrPermissionDenied
	}

	var reversal *domain.Voucher
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		original, err := s.voucherRepo.GetByIDForUpdate(ctx, input.CompanyID, input.VoucherID)
		if err != nil {
			return err
		}
		switch original.Status {
		case domain.VoucherStatusDraft:
			return domain.ErrNotPosted
		case domain.VoucherStatusReversed:
			return domain.ErrAlreadyReversed
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		fy, err := s.fyRepo.FindByDateForUpdate(ctx, original.CompanyID, today)
		if err != nil {
			return err
		}
		if fy.Status == domain.FYStatusClosed {
			return domain.ErrFinancialYearClosed
		}

		narration := fmt.Sprintf("Reversal of %s #%d", original.Type, *original.SequenceNo)
		if input.Reason != "" {
			narration += ": " + input.Reason
		}

		lines := make([]domain.VoucherLine, 0, len(original.Lines))
		for i := range original.Lines {
			orig := &original.Lines[i]
			lines = append(lines, domain.VoucherLine{
				AccountID: orig.AccountID,
				Debit:     orig.Credit,
				Credit:    orig.Debit,
				TaxRate:   orig.TaxRate,
				TaxHead:   orig.TaxHead,
				Narration: orig.Narration,
			})
		}

		rev := &domain.Voucher{
			ID:          uuid.New(),
			CompanyID:   original.CompanyID,
			Type:        domain.VoucherTypeReversal,
			VoucherDate: today,
			Narration:   narration,
			Status:      domain.VoucherStatusDraft,
			ReversalOf:  &original.ID,
			CreatedBy:   input.RequestedBy,
			Lines:       lines,
		}
		if err := s.voucherRepo.Create(ctx, rev); err != nil {
			return err
		}

		seq, err := s.voucherRepo.NextSequence(ctx, rev.CompanyID, rev.Type)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := s.voucherRepo.MarkPosted(ctx, rev.CompanyID, rev.ID, seq, now); err != nil {
			return err
		}
		if err := s.voucherRepo.MarkReversed(ctx, original.CompanyID, original.ID, rev.ID); err != nil {
			return err
		}

		rev.SequenceNo = &seq
		rev.Status = domain.VoucherStatusPosted
		rev.PostedAt = &now
		reversal = rev
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("voucherService.Reverse: voucher %s reversed by %s for company %s",
		input.VoucherID, reversal.ID, input.CompanyID)
	return reversal, nil
}

func (s *voucherService) GetByID(ctx context.Context, companyID, voucherID uuid.UUID) (*domain.Voucher, error) {
	return s.voucherRepo.GetByID(ctx, companyID, voucherID)
}

func (s *voucherService) List(ctx context.Context, companyID uuid.UUID, filter port.VoucherFilter) ([]domain.Voucher, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.voucherRepo.List(ctx, companyID, filter)
}
