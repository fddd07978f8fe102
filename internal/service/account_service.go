package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// CreateAccountInput is the DTO for creating a ledger account.
type CreateAccountInput struct {
	CompanyID uuid.UUID
	Caps      domain.CapabilitySet
	Code      string
	Name      string
	Nature    domain.AccountNature
	ParentID  *uuid.UUID
}

// AccountService manages the chart of accounts.
type AccountService interface {
	Create(ctx context.Context, input *CreateAccountInput) (*domain.Account, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context, companyID uuid.UUID) ([]domain.Account, error)
	// SeedDefaultChart installs the built-in chart for a new company.
	// Existing codes are left untouched.
	SeedDefaultChart(ctx context.Context, companyID uuid.UUID) (int, error)
}

type accountService struct {
	accountRepo port.AccountRepository
}

// NewAccountService creates a new AccountService implementation.
func NewAccountService(accountRepo port.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) Create(ctx context.Context, input *CreateAccountInput) (*domain.Account, error) {
	if !input.Caps.Has(domain.CapManageChart) {
		return nil, domain.ErrPermissionDenied
	}
	if input.Code == "" || input.Name == "" {
		return nil, domain.ErrValidation
	}
	if !domain.ValidAccountNatures[input.Nature] {
		return nil, domain.ErrInvalidAccountNature
	}

	path := input.Code
	if input.ParentID != nil {
		parent, err := s.accountRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("parent account: %w", domain.ErrNotFound)
			}
			return nil, fmt.Errorf("resolving parent account: %w", err)
		}
		if parent.CompanyID != input.CompanyID {
			return nil, domain.ErrCrossTenantViolation
		}
		path = parent.Path + "/" + input.Code
	}

	account := &domain.Account{
		ID:        uuid.New(),
		CompanyID: input.CompanyID,
		Code:      input.Code,
		Name:      input.Name,
		Nature:    input.Nature,
		ParentID:  input.ParentID,
		Path:      path,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("accountService.Create: account %s %q (%s) created for company %s",
		account.Code, account.Name, account.Nature, account.CompanyID)
	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, domain.ErrCrossTenantViolation
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context, companyID uuid.UUID) ([]domain.Account, error) {
	return s.accountRepo.ListByCompany(ctx, companyID)
}

func (s *accountService) SeedDefaultChart(ctx context.Context, companyID uuid.UUID) (int, error) {
	created := 0
	// DefaultChart is ordered parents-first, so each parent resolves by code
	// before its children are inserted.
	byCode := make(map[string]*domain.Account)
	for _, entry := range domain.DefaultChart {
		if existing, err := s.accountRepo.GetByCode(ctx, companyID, entry.Code); err == nil {
			byCode[entry.Code] = existing
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return created, fmt.Errorf("checking code %s: %w", entry.Code, err)
		}

		account := &domain.Account{
			ID:        uuid.New(),
			CompanyID: companyID,
			Code:      entry.Code,
			Name:      entry.Name,
			Nature:    entry.Nature,
			Path:      entry.Code,
			IsSystem:  entry.IsSystem,
		}
		if entry.ParentCode != "" {
			parent, ok := byCode[entry.ParentCode]
			if !ok {
				return created, fmt.Errorf("seeding chart: parent code %s not seeded before %s", entry.ParentCode, entry.Code)
			}
			account.ParentID = &parent.ID
			account.Path = parent.Path + "/" + entry.Code
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return created, fmt.Errorf("seeding account %s: %w", entry.Code, err)
		}
		byCode[entry.Code] = account
		created++
	}

	log.Printf("accountService.SeedDefaultChart: %d accounts created for company %s", created, companyID)
	return created, nil
}
