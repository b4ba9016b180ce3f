package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/infrastructure/metrics"
	"github.com/theCalcaholic/findus/internal/usecase"
	"github.com/theCalcaholic/findus/internal/usecase/mocks"
)

func newReportFixture(cache usecase.Cache) (*mocks.MockAccountRepository, *mocks.MockTransactionRepository, *usecase.ReportUseCase) {
	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()

	uc := usecase.NewReportUseCase(
		accountRepo,
		transactionRepo,
		cache,
		time.Minute,
		metrics.NewWith(prometheus.NewRegistry()),
		zerolog.Nop(),
	).WithNow(func() time.Time { return testToday })

	return accountRepo, transactionRepo, uc
}

func TestReportUseCase_BalanceSeries(t *testing.T) {
	accountRepo, transactionRepo, uc := newReportFixture(nil)

	account := &domain.Account{
		ID:      "acc-own",
		IBAN:    testOwnIBAN,
		Name:    "Testbank - Girokonto",
		Type:    domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromFloat(100)),
	}
	require.NoError(t, accountRepo.Create(context.Background(), account))

	// Withdrawal of 20 dated two days ago.
	require.NoError(t, transactionRepo.CreateTx(context.Background(), &mocks.MockTransaction{}, &domain.Transaction{
		ID:       "tx-1",
		SourceID: "acc-own",
		TargetID: "acc-foreign",
		Amount:   decimal.NewFromFloat(20),
		Time:     time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	}))

	series, err := uc.BalanceSeries(context.Background(), testOwnIBAN, 5)
	require.NoError(t, err)
	require.Len(t, series.Points, 5)

	assert.Equal(t, "Testbank - Girokonto", series.Label)

	expected := []float64{100, 100, 120, 120, 120}
	for i, want := range expected {
		assert.True(t, series.Points[i].Equal(decimal.NewFromFloat(want)),
			"series[%d] = %s, want %v", i, series.Points[i], want)
	}
}

func TestReportUseCase_BalanceSeries_UnknownAccount(t *testing.T) {
	_, _, uc := newReportFixture(nil)

	_, err := uc.BalanceSeries(context.Background(), "DE00000000000000000000", 5)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestReportUseCase_BalanceSeries_InvalidDays(t *testing.T) {
	_, _, uc := newReportFixture(nil)

	_, err := uc.BalanceSeries(context.Background(), testOwnIBAN, 0)
	assert.ErrorIs(t, err, domain.ErrEmptySeries)
}

func TestReportUseCase_BalanceSeries_SecondRequestServedFromCache(t *testing.T) {
	cache := mocks.NewMockCache()
	accountRepo, transactionRepo, uc := newReportFixture(cache)

	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID:      "acc-own",
		IBAN:    testOwnIBAN,
		Name:    "Testbank",
		Type:    domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromFloat(42)),
	}))

	first, err := uc.BalanceSeries(context.Background(), testOwnIBAN, 3)
	require.NoError(t, err)

	// Storage must not be consulted on the cached path.
	storageHit := false
	transactionRepo.ListByAccountBetweenFunc = func(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
		storageHit = true
		return nil, nil
	}

	second, err := uc.BalanceSeries(context.Background(), testOwnIBAN, 3)
	require.NoError(t, err)

	assert.False(t, storageHit, "cached request must not hit storage")
	assert.Equal(t, first.Label, second.Label)
	require.Len(t, second.Points, len(first.Points))
	for i := range first.Points {
		assert.True(t, first.Points[i].Equal(second.Points[i]))
	}
}

func TestReportUseCase_AllOwnedSeries(t *testing.T) {
	accountRepo, _, uc := newReportFixture(nil)

	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-1", IBAN: testOwnIBAN, Name: "Giro", Type: domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromFloat(100)),
	}))
	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-2", IBAN: "DE02100100100006820101", Name: "Tagesgeld", Type: domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromFloat(500)),
	}))
	// Foreign accounts must be excluded from the "all" mode.
	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-3", IBAN: testForeignIBAN, Name: "ACME GmbH", Type: domain.AccountTypeForeign,
	}))

	series, err := uc.AllOwnedSeries(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, series, 2)

	labels := map[string]bool{}
	for _, s := range series {
		labels[s.Label] = true
		assert.Len(t, s.Points, 4)
	}
	assert.True(t, labels["Giro"])
	assert.True(t, labels["Tagesgeld"])
}

func TestReportUseCase_AllOwnedSeries_SecondRequestServedFromCache(t *testing.T) {
	cache := mocks.NewMockCache()
	accountRepo, transactionRepo, uc := newReportFixture(cache)

	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-1", IBAN: testOwnIBAN, Name: "Giro", Type: domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromFloat(100)),
	}))
	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-2", IBAN: "DE02100100100006820101", Name: "Tagesgeld", Type: domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromFloat(500)),
	}))

	first, err := uc.AllOwnedSeries(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Storage must not be consulted on the cached path.
	storageHits := 0
	transactionRepo.ListByAccountBetweenFunc = func(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
		storageHits++
		return nil, nil
	}

	second, err := uc.AllOwnedSeries(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Zero(t, storageHits, "cached request must not recompute any account")
	for i := range first {
		assert.Equal(t, first[i].Label, second[i].Label)
	}

	// Entries are keyed per account, so a single-account request for the
	// same window is served from the same cache.
	single, err := uc.BalanceSeries(context.Background(), testOwnIBAN, 3)
	require.NoError(t, err)
	assert.Zero(t, storageHits, "per-account entries are shared with single-account requests")
	assert.Equal(t, "Giro", single.Label)
}

func TestReportUseCase_AllOwnedSeries_RepoErrorPropagates(t *testing.T) {
	accountRepo, _, uc := newReportFixture(nil)

	repoErr := errors.New("connection reset")
	accountRepo.ListByTypeFunc = func(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
		return nil, repoErr
	}

	_, err := uc.AllOwnedSeries(context.Background(), 4)
	assert.ErrorIs(t, err, repoErr)
}
