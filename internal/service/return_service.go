package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// GenerateReturnInput is the DTO for generating a statutory return.
type GenerateReturnInput struct {
	CompanyID   uuid.UUID
	GeneratedBy uuid.UUID
	Caps        domain.CapabilitySet
	Period      string
	ReturnType  domain.ReturnType
}

// ReturnService generates and retrieves statutory tax returns.
type ReturnService interface {
	Generate(ctx context.Context, input *GenerateReturnInput) (*domain.TaxReturn, error)
	GetByPeriod(ctx context.Context, companyID uuid.UUID, period string, rtype domain.ReturnType) (*domain.TaxReturn, error)
	List(ctx context.Context, companyID uuid.UUID, year string, rtype *domain.ReturnType) ([]domain.TaxReturn, error)
}

type returnService struct {
	returnRepo port.ReturnRepository
}

// NewReturnService creates a new ReturnService implementation.
func NewReturnService(returnRepo port.ReturnRepository) ReturnService {
	return &returnService{returnRepo: returnRepo}
}

// Generate recomputes a return's totals from posted vouchers and overwrites
// any previously generated row for the same (company, period, type). A period
// with no activity still yields a return with zero totals.
func (s *returnService) Generate(ctx context.Context, input *GenerateReturnInput) (*domain.TaxReturn, error) {
	if !input.Caps.Has(domain.CapGenerateReturn) {
		return nil, domain.ErrPermissionDenied
	}
	if !domain.ValidReturnTypes[input.ReturnType] {
		return nil, domain.ErrInvalidReturnType
	}

	from, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}
	to := from.AddDate(0, 1, 0)

	totals, err := s.returnRepo.AggregateOutward(ctx, input.CompanyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregating outward supplies: %w", err)
	}

	ret := &domain.TaxReturn{
		ID:           uuid.New(),
		CompanyID:    input.CompanyID,
		Period:       input.Period,
		ReturnType:   input.ReturnType,
		TaxableValue: totals.TaxableValue,
		CGST:         totals.CGST,
		SGST:         totals.SGST,
		IGST:         totals.IGST,
		TotalTax:     totals.CGST.Add(totals.SGST).Add(totals.IGST),
		VoucherCount: totals.VoucherCount,
		Status:       domain.ReturnStatusGenerated,
		GeneratedBy:  input.GeneratedBy,
		GeneratedAt:  time.Now().UTC(),
	}
	if err := s.persist(ctx, ret); err != nil {
		return nil, err
	}

	log.Printf("returnService.Generate: %s for %s generated (company %s, %d vouchers, taxable %s)",
		ret.ReturnType, ret.Period, ret.CompanyID, ret.VoucherCount, ret.TaxableValue)
	return ret, nil
}

// persist overwrites the stored return. Regeneration always replaces the
// previous row; there is no supersession history.
func (s *returnService) persist(ctx context.Context, ret *domain.TaxReturn) error {
	if err := s.returnRepo.Upsert(ctx, ret); err != nil {
		return fmt.Errorf("saving return: %w", err)
	}
	return nil
}

func (s *returnService) GetByPeriod(ctx context.Context, companyID uuid.UUID, period string, rtype domain.ReturnType) (*domain.TaxReturn, error) {
	if !domain.ValidReturnTypes[rtype] {
		return nil, domain.ErrInvalidReturnType
	}
	if _, err := domain.ParsePeriod(period); err != nil {
		return nil, err
	}
	return s.returnRepo.GetByPeriod(ctx, companyID, period, rtype)
}

func (s *returnService) List(ctx context.Context, companyID uuid.UUID, year string, rtype *domain.ReturnType) ([]domain.TaxReturn, error) {
	if rtype != nil && !domain.ValidReturnTypes[*rtype] {
		return nil, domain.ErrInvalidReturnType
	}
	if year != "" {
		if _, err := time.Parse("2006", year); err != nil {
			return nil, domain.ErrInvalidPeriod
		}
	}
	return s.returnRepo.List(ctx, companyID, year, rtype)
}
