package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/service"
	"lekha/mocks"
)

func accountantCaps() domain.CapabilitySet {
	return domain.CapabilitiesFor(domain.RoleAccountant)
}

func viewerCaps() domain.CapabilitySet {
	return domain.CapabilitiesFor(domain.RoleViewer)
}

func openYear(companyID uuid.UUID) *domain.FinancialYear {
	return &domain.FinancialYear{
		ID:        uuid.New(),
		CompanyID: companyID,
		Label:     "FY 2025-26",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.FYStatusOpen,
	}
}

func newVoucherService(
	voucherRepo *mocks.MockVoucherRepo,
	accountRepo *mocks.MockAccountRepo,
	fyRepo *mocks.MockFinancialYearRepo,
) service.VoucherService {
	return service.NewVoucherService(voucherRepo, accountRepo, fyRepo, mocks.NewPassthroughTransactor())
}

func TestVoucherService_Create_Draft(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	accountRepo := new(mocks.MockAccountRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, accountRepo, fyRepo)

	companyID := uuid.New()
	cashID, salesID := uuid.New(), uuid.New()

	accountRepo.On("GetByID", mock.Anything, cashID).
		Return(&domain.Account{ID: cashID, CompanyID: companyID, Nature: domain.NatureAsset}, nil)
	accountRepo.On("GetByID", mock.Anything, salesID).
		Return(&domain.Account{ID: salesID, CompanyID: companyID, Nature: domain.NatureIncome}, nil)
	voucherRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Voucher")).Return(nil)

	voucher, err := svc.Create(context.Background(), &service.CreateVoucherInput{
		CompanyID: companyID,
		CreatedBy: uuid.New(),
		Caps:      accountantCaps(),
		Type:      domain.VoucherTypeSales,
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Lines: []service.VoucherLineInput{
			{AccountID: cashID, Debit: decimal.NewFromInt(118)},
			{AccountID: salesID, Credit: decimal.NewFromInt(118)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VoucherStatusDraft, voucher.Status)
	assert.Nil(t, voucher.SequenceNo)
	assert.Len(t, voucher.Lines, 2)
	voucherRepo.AssertExpectations(t)
}

func TestVoucherService_Create_RequiresCapability(t *testing.T) {
	svc := newVoucherService(new(mocks.MockVoucherRepo), new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	_, err := svc.Create(context.Background(), &service.CreateVoucherInput{
		CompanyID: uuid.New(),
		Caps:      viewerCaps(),
		Type:      domain.VoucherTypeSales,
		Lines:     []service.VoucherLineInput{{AccountID: uuid.New(), Debit: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestVoucherService_Create_EmptyVoucher(t *testing.T) {
	svc := newVoucherService(new(mocks.MockVoucherRepo), new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	_, err := svc.Create(context.Background(), &service.CreateVoucherInput{
		CompanyID: uuid.New(),
		Caps:      accountantCaps(),
		Type:      domain.VoucherTypeJournal,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyVoucher)
}

func TestVoucherService_Create_LineMustHaveExactlyOneSide(t *testing.T) {
	svc := newVoucherService(new(mocks.MockVoucherRepo), new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	cases := []struct {
		name string
		line service.VoucherLineInput
	}{
		{"both zero", service.VoucherLineInput{AccountID: uuid.New()}},
		{"both set", service.VoucherLineInput{AccountID: uuid.New(), Debit: decimal.NewFromInt(5), Credit: decimal.NewFromInt(5)}},
		{"negative debit", service.VoucherLineInput{AccountID: uuid.New(), Debit: decimal.NewFromInt(-5)}},
		{"sub-paisa precision", service.VoucherLineInput{AccountID: uuid.New(), Debit: decimal.RequireFromString("1.005")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &service.CreateVoucherInput{
				CompanyID: uuid.New(),
				Caps:      accountantCaps(),
				Type:      domain.VoucherTypeJournal,
				Lines:     []service.VoucherLineInput{tc.line},
			})
			assert.ErrorIs(t, err, domain.ErrInvalidVoucherLine)
		})
	}
}

func TestVoucherService_Create_RejectsReversalType(t *testing.T) {
	svc := newVoucherService(new(mocks.MockVoucherRepo), new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	_, err := svc.Create(context.Background(), &service.CreateVoucherInput{
		CompanyID: uuid.New(),
		Caps:      accountantCaps(),
		Type:      domain.VoucherTypeReversal,
		Lines:     []service.VoucherLineInput{{AccountID: uuid.New(), Debit: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidVoucherType)
}

func TestVoucherService_Create_CrossCompanyAccount(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	accountRepo := new(mocks.MockAccountRepo)
	svc := newVoucherService(voucherRepo, accountRepo, new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	foreignAccount := uuid.New()
	accountRepo.On("GetByID", mock.Anything, foreignAccount).
		Return(&domain.Account{ID: foreignAccount, CompanyID: uuid.New()}, nil)

	_, err := svc.Create(context.Background(), &service.CreateVoucherInput{
		CompanyID: companyID,
		Caps:      accountantCaps(),
		Type:      domain.VoucherTypeJournal,
		Lines:     []service.VoucherLineInput{{AccountID: foreignAccount, Debit: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantViolation)
	voucherRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func balancedDraft(companyID uuid.UUID) *domain.Voucher {
	return &domain.Voucher{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Type:        domain.VoucherTypeSales,
		VoucherDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.VoucherStatusDraft,
		Lines: []domain.VoucherLine{
			{AccountID: uuid.New(), Debit: decimal.NewFromInt(118), Credit: decimal.Zero},
			{AccountID: uuid.New(), Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			{AccountID: uuid.New(), Debit: decimal.Zero, Credit: decimal.NewFromInt(9), TaxHead: domain.TaxHeadCGST},
			{AccountID: uuid.New(), Debit: decimal.Zero, Credit: decimal.NewFromInt(9), TaxHead: domain.TaxHeadSGST},
		},
	}
}

func TestVoucherService_Post_AssignsSequence(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	draft := balancedDraft(companyID)

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, draft.ID).Return(draft, nil)
	fyRepo.On("FindByDateForUpdate", mock.Anything, companyID, draft.VoucherDate).Return(openYear(companyID), nil)
	voucherRepo.On("NextSequence", mock.Anything, companyID, domain.VoucherTypeSales).Return(int64(7), nil)
	voucherRepo.On("MarkPosted", mock.Anything, companyID, draft.ID, int64(7), mock.AnythingOfType("time.Time")).Return(nil)

	posted, err := svc.Post(context.Background(), &service.PostVoucherInput{
		CompanyID: companyID,
		VoucherID: draft.ID,
		Caps:      accountantCaps(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VoucherStatusPosted, posted.Status)
	require.NotNil(t, posted.SequenceNo)
	assert.Equal(t, int64(7), *posted.SequenceNo)
	assert.NotNil(t, posted.PostedAt)
	voucherRepo.AssertExpectations(t)
}

func TestVoucherService_Post_Unbalanced(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	draft := balancedDraft(companyID)
	draft.Lines[1].Credit = decimal.NewFromInt(99)

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, draft.ID).Return(draft, nil)

	_, err := svc.Post(context.Background(), &service.PostVoucherInput{
		CompanyID: companyID,
		VoucherID: draft.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
	voucherRepo.AssertNotCalled(t, "NextSequence", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherService_Post_ClosedYear(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	draft := balancedDraft(companyID)
	closed := openYear(companyID)
	closed.Status = domain.FYStatusClosed

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, draft.ID).Return(draft, nil)
	fyRepo.On("FindByDateForUpdate", mock.Anything, companyID, draft.VoucherDate).Return(closed, nil)

	_, err := svc.Post(context.Background(), &service.PostVoucherInput{
		CompanyID: companyID,
		VoucherID: draft.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrFinancialYearClosed)
	voucherRepo.AssertNotCalled(t, "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherService_Post_NoYearCoversDate(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	draft := balancedDraft(companyID)

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, draft.ID).Return(draft, nil)
	fyRepo.On("FindByDateForUpdate", mock.Anything, companyID, draft.VoucherDate).Return(nil, domain.ErrNoFinancialYear)

	_, err := svc.Post(context.Background(), &service.PostVoucherInput{
		CompanyID: companyID,
		VoucherID: draft.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrNoFinancialYear)
}

func TestVoucherService_Post_AlreadyPosted(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	posted := balancedDraft(companyID)
	posted.Status = domain.VoucherStatusPosted

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, posted.ID).Return(posted, nil)

	_, err := svc.Post(context.Background(), &service.PostVoucherInput{
		CompanyID: companyID,
		VoucherID: posted.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted)
}

func TestVoucherService_Reverse_SwapsSides(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	seq := int64(7)
	original := balancedDraft(companyID)
	original.Status = domain.VoucherStatusPosted
	original.SequenceNo = &seq

	var created *domain.Voucher
	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, original.ID).Return(original, nil)
	fyRepo.On("FindByDateForUpdate", mock.Anything, companyID, mock.AnythingOfType("time.Time")).Return(openYear(companyID), nil)
	voucherRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Voucher")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Voucher) }).Return(nil)
	voucherRepo.On("NextSequence", mock.Anything, companyID, domain.VoucherTypeReversal).Return(int64(1), nil)
	voucherRepo.On("MarkPosted", mock.Anything, companyID, mock.AnythingOfType("uuid.UUID"), int64(1), mock.AnythingOfType("time.Time")).Return(nil)
	voucherRepo.On("MarkReversed", mock.Anything, companyID, original.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)

	reversal, err := svc.Reverse(context.Background(), &service.ReverseVoucherInput{
		CompanyID:   companyID,
		VoucherID:   original.ID,
		RequestedBy: uuid.New(),
		Caps:        accountantCaps(),
		Reason:      "wrong customer",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.VoucherTypeReversal, reversal.Type)
	assert.Equal(t, domain.VoucherStatusPosted, reversal.Status)
	require.NotNil(t, reversal.ReversalOf)
	assert.Equal(t, original.ID, *reversal.ReversalOf)
	assert.Contains(t, reversal.Narration, "wrong customer")

	require.Len(t, created.Lines, len(original.Lines))
	for i := range original.Lines {
		assert.True(t, created.Lines[i].Debit.Equal(original.Lines[i].Credit),
			"line %d debit should mirror original credit", i)
		assert.True(t, created.Lines[i].Credit.Equal(original.Lines[i].Debit),
			"line %d credit should mirror original debit", i)
		assert.Equal(t, original.Lines[i].TaxHead, created.Lines[i].TaxHead)
	}
	voucherRepo.AssertExpectations(t)
}

func TestVoucherService_Reverse_DraftNotPosted(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	draft := balancedDraft(companyID)

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, draft.ID).Return(draft, nil)

	_, err := svc.Reverse(context.Background(), &service.ReverseVoucherInput{
		CompanyID: companyID,
		VoucherID: draft.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrNotPosted)
}

func TestVoucherService_Reverse_AlreadyReversed(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	reversed := balancedDraft(companyID)
	reversed.Status = domain.VoucherStatusReversed

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, reversed.ID).Return(reversed, nil)

	_, err := svc.Reverse(context.Background(), &service.ReverseVoucherInput{
		CompanyID: companyID,
		VoucherID: reversed.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyReversed)
	voucherRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoucherService_Reverse_TodayInClosedYear(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := newVoucherService(voucherRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	seq := int64(3)
	original := balancedDraft(companyID)
	original.Status = domain.VoucherStatusPosted
	original.SequenceNo = &seq
	closed := openYear(companyID)
	closed.Status = domain.FYStatusClosed

	voucherRepo.On("GetByIDForUpdate", mock.Anything, companyID, original.ID).Return(original, nil)
	fyRepo.On("FindByDateForUpdate", mock.Anything, companyID, mock.AnythingOfType("time.Time")).Return(closed, nil)

	_, err := svc.Reverse(context.Background(), &service.ReverseVoucherInput{
		CompanyID: companyID,
		VoucherID: original.ID,
		Caps:      accountantCaps(),
	})
	assert.ErrorIs(t, err, domain.ErrFinancialYearClosed)
	voucherRepo.AssertNotCalled(t, "MarkReversed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
