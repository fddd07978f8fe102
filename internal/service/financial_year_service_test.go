package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/service"
	"lekha/mocks"
)

func newFYService(fyRepo *mocks.MockFinancialYearRepo) service.FinancialYearService {
	return service.NewFinancialYearService(fyRepo, mocks.NewPassthroughTransactor())
}

func TestFinancialYearService_Create(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	fyRepo.On("HasOverlap", mock.Anything, companyID, start, end).Return(false, nil)
	fyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FinancialYear")).Return(nil)

	fy, err := svc.Create(context.Background(), &service.CreateFinancialYearInput{
		CompanyID: companyID,
		Caps:      accountantCaps(),
		Label:     "FY 2025-26",
		StartDate: start,
		EndDate:   end,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FYStatusOpen, fy.Status)
	assert.False(t, fy.IsCurrent)
	fyRepo.AssertExpectations(t)
}

func TestFinancialYearService_Create_MakeCurrent(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	fyRepo.On("HasOverlap", mock.Anything, companyID, start, end).Return(false, nil)
	fyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FinancialYear")).Return(nil)
	fyRepo.On("ClearCurrent", mock.Anything, companyID).Return(nil)
	fyRepo.On("SetCurrent", mock.Anything, companyID, mock.AnythingOfType("uuid.UUID")).Return(nil)

	fy, err := svc.Create(context.Background(), &service.CreateFinancialYearInput{
		CompanyID:   companyID,
		Caps:        accountantCaps(),
		Label:       "FY 2025-26",
		StartDate:   start,
		EndDate:     end,
		MakeCurrent: true,
	})

	require.NoError(t, err)
	assert.True(t, fy.IsCurrent)
	fyRepo.AssertExpectations(t)
}

func TestFinancialYearService_Create_InvalidRange(t *testing.T) {
	svc := newFYService(new(mocks.MockFinancialYearRepo))

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), &service.CreateFinancialYearInput{
		CompanyID: uuid.New(),
		Caps:      accountantCaps(),
		StartDate: start,
		EndDate:   start,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidYearRange)
}

func TestFinancialYearService_Create_Overlap(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fyRepo.On("HasOverlap", mock.Anything, companyID, mock.Anything, mock.Anything).Return(true, nil)

	_, err := svc.Create(context.Background(), &service.CreateFinancialYearInput{
		CompanyID: companyID,
		Caps:      accountantCaps(),
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrOverlappingYear)
	fyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFinancialYearService_Close(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)

	fyRepo.On("GetByIDForUpdate", mock.Anything, companyID, fy.ID).Return(fy, nil)
	fyRepo.On("UpdateStatus", mock.Anything, companyID, fy.ID, domain.FYStatusClosed).Return(nil)

	closed, err := svc.Close(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fy.ID,
		Caps:            accountantCaps(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FYStatusClosed, closed.Status)
	fyRepo.AssertExpectations(t)
}

func TestFinancialYearService_Close_CurrentYear(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)
	fy.IsCurrent = true

	fyRepo.On("GetByIDForUpdate", mock.Anything, companyID, fy.ID).Return(fy, nil)

	_, err := svc.Close(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fy.ID,
		Caps:            accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrCurrentYearViolation)
	fyRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinancialYearService_Close_AlreadyClosedIsNoop(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)
	fy.Status = domain.FYStatusClosed

	fyRepo.On("GetByIDForUpdate", mock.Anything, companyID, fy.ID).Return(fy, nil)

	got, err := svc.Close(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fy.ID,
		Caps:            accountantCaps(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FYStatusClosed, got.Status)
	fyRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinancialYearService_Reopen_RequiresAdminCapability(t *testing.T) {
	svc := newFYService(new(mocks.MockFinancialYearRepo))

	// Accountants can close but not reopen.
	_, err := svc.Reopen(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       uuid.New(),
		FinancialYearID: uuid.New(),
		Caps:            accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestFinancialYearService_Reopen(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)
	fy.Status = domain.FYStatusClosed

	fyRepo.On("GetByIDForUpdate", mock.Anything, companyID, fy.ID).Return(fy, nil)
	fyRepo.On("UpdateStatus", mock.Anything, companyID, fy.ID, domain.FYStatusOpen).Return(nil)

	reopened, err := svc.Reopen(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fy.ID,
		Caps:            domain.CapabilitiesFor(domain.RoleAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FYStatusOpen, reopened.Status)
	fyRepo.AssertExpectations(t)
}

func TestFinancialYearService_SetCurrent_ClosedYear(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)
	fy.Status = domain.FYStatusClosed

	fyRepo.On("GetByIDForUpdate", mock.Anything, companyID, fy.ID).Return(fy, nil)

	_, err := svc.SetCurrent(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fy.ID,
		Caps:            accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrFinancialYearClosed)
	fyRepo.AssertNotCalled(t, "SetCurrent", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinancialYearService_SetCurrent(t *testing.T) {
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newFYService(fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)

	fyRepo.On("GetByIDForUpdate", mock.Anything, companyID, fy.ID).Return(fy, nil)
	fyRepo.On("ClearCurrent", mock.Anything, companyID).Return(nil)
	fyRepo.On("SetCurrent", mock.Anything, companyID, fy.ID).Return(nil)

	got, err := svc.SetCurrent(context.Background(), &service.FinancialYearActionInput{
		CompanyID:       companyID,
		FinancialYearID: fy.ID,
		Caps:            accountantCaps(),
	})

	require.NoError(t, err)
	assert.True(t, got.IsCurrent)
	fyRepo.AssertExpectations(t)
}
