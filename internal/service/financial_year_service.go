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

// CreateFinancialYearInput is the DTO for creating a financial year.
type CreateFinancialYearInput struct {
	CompanyID   uuid.UUID
	Caps        domain.CapabilitySet
	Label       string
	StartDate   time.Time
	EndDate     time.Time
	MakeCurrent bool
}

// FinancialYearActionInput identifies a financial year for a state transition.
type FinancialYearActionInput struct {
	CompanyID       uuid.UUID
	FinancialYearID uuid.UUID
	Caps            domain.CapabilitySet
}

// FinancialYearService manages the period-lock state machine.
type FinancialYearService interface {
	Create(ctx context.Context, input *CreateFinancialYearInput) (*domain.FinancialYear, error)
	Close(ctx context.Context, input *FinancialYearActionInput) (*domain.FinancialYear, error)
	Reopen(ctx context.Context, input *FinancialYearActionInput) (*domain.FinancialYear, error)
	SetCurrent(ctx context.Context, input *FinancialYearActionInput) (*domain.FinancialYear, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error)
	List(ctx context.Context, companyID uuid.UUID) ([]domain.FinancialYear, error)
}

type financialYearService struct {
	fyRepo port.FinancialYearRepository
	tx     port.Transactor
}

// NewFinancialYearService creates a new FinancialYearService implementation.
func NewFinancialYearService(fyRepo port.FinancialYearRepository, tx port.Transactor) FinancialYearService {
	return &financialYearService{fyRepo: fyRepo, tx: tx}
}

func (s *financialYearService) Create(ctx context.Context, input *CreateFinancialYearInput) (*domain.FinancialYear, error) {
	if !input.Caps.Has(domain.CapCloseFY) {
		return nil, domain.ErrPermissionDenied
	}
	if !input.StartDate.Before(input.EndDate) {
		return nil, domain.ErrInvalidYearRange
	}

	overlap, err := s.fyRepo.HasOverlap(ctx, input.CompanyID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("checking overlap: %w", err)
	}
	if overlap {
		return nil, domain.ErrOverlappingYear
	}

	fy := &domain.FinancialYear{
		ID:        uuid.New(),
		CompanyID: input.CompanyID,
		Label:     input.Label,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    domain.FYStatusOpen,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.fyRepo.Create(ctx, fy); err != nil {
			return err
		}
		if input.MakeCurrent {
			if err := s.fyRepo.ClearCurrent(ctx, input.CompanyID); err != nil {
				return err
			}
			if err := s.fyRepo.SetCurrent(ctx, input.CompanyID, fy.ID); err != nil {
				return err
			}
			fy.IsCurrent = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("financialYearService.Create: year %q (%s) created for company %s",
		fy.Label, fy.ID, fy.CompanyID)
	return fy, nil
}

// Close transitions a financial year to CLOSED. The current year cannot be
// closed; closing an already-closed year is a no-op. The year row is locked
// so no posting into it can commit concurrently with the transition.
func (s *financialYearService) Close(ctx context.Context, input *FinancialYearActionInput) (*domain.FinancialYear, error) {
	if !input.Caps.Has(domain.CapCloseFY) {
		return nil, domain.ErrPermissionDenied
	}

	var fy *domain.FinancialYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.fyRepo.GetByIDForUpdate(ctx, input.CompanyID, input.FinancialYearID)
		if err != nil {
			return err
		}
		if fy.Status == domain.FYStatusClosed {
			return nil
		}
		if fy.IsCurrent {
			return domain.ErrCurrentYearViolation
		}
		if err := s.fyRepo.UpdateStatus(ctx, input.CompanyID, fy.ID, domain.FYStatusClosed); err != nil {
			return err
		}
		fy.Status = domain.FYStatusClosed
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("financialYearService.Close: year %q (%s) closed for company %s",
		fy.Label, fy.ID, fy.CompanyID)
	return fy, nil
}

// Reopen transitions a CLOSED year back to OPEN. Reopening an open year is a
// no-op.
func (s *financialYearService) Reopen(ctx context.Context, input *FinancialYearActionInput) (*domain.FinancialYear, error) {
	if !input.Caps.Has(domain.CapReopenFY) {
		return nil, domain.ErrPermissionDenied
	}

	var fy *domain.FinancialYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.fyRepo.GetByIDForUpdate(ctx, input.CompanyID, input.FinancialYearID)
		if err != nil {
			return err
		}
		if fy.Status == domain.FYStatusOpen {
			return nil
		}
		if err := s.fyRepo.UpdateStatus(ctx, input.CompanyID, fy.ID, domain.FYStatusOpen); err != nil {
			return err
		}
		fy.Status = domain.FYStatusOpen
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("financialYearService.Reopen: year %q (%s) reopened for company %s",
		fy.Label, fy.ID, fy.CompanyID)
	return fy, nil
}

// SetCurrent marks a year as the company's current year. Only an OPEN year
// can become current; the previous current flag is cleared in the same
// transaction.
func (s *financialYearService) SetCurrent(ctx context.Context, input *FinancialYearActionInput) (*domain.FinancialYear, error) {
	if !input.Caps.Has(domain.CapCloseFY) {
		return nil, domain.ErrPermissionDenied
	}

	var fy *domain.FinancialYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.fyRepo.GetByIDForUpdate(ctx, input.CompanyID, input.FinancialYearID)
		if err != nil {
			return err
		}
		if fy.Status != domain.FYStatusOpen {
			return domain.ErrFinancialYearClosed
		}
		if fy.IsCurrent {
			return nil
		}
		if err := s.fyRepo.ClearCurrent(ctx, input.CompanyID); err != nil {
			return err
		}
		if err := s.fyRepo.SetCurrent(ctx, input.CompanyID, fy.ID); err != nil {
			return err
		}
		fy.IsCurrent = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("financialYearService.SetCurrent: year %q (%s) is now current for company %s",
		fy.Label, fy.ID, fy.CompanyID)
	return fy, nil
}

func (s *financialYearService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error) {
	return s.fyRepo.GetByID(ctx, companyID, id)
}

func (s *financialYearService) List(ctx context.Context, companyID uuid.UUID) ([]domain.FinancialYear, error) {
	return s.fyRepo.List(ctx, companyID)
}
