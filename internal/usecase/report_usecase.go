package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/infrastructure/metrics"
)

// Series is a labeled day-indexed balance series. Points[0] is today's
// balance, Points[d] the balance d days before today.
type Series struct {
	Label  string            `json:"label"`
	Points []decimal.Decimal `json:"points"`
}

// ReportUseCase reconstructs balance series for charting. It is read-only.
type ReportUseCase struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	cache           Cache
	cacheTTL        time.Duration
	metrics         *metrics.Metrics
	logger          zerolog.Logger
	now             func() time.Time
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		metrics:         m,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithNow fixes the use case's clock. Used by tests.
func (uc *ReportUseCase) WithNow(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// BalanceSeries computes the day-indexed balance series for the account with
// the given IBAN, walking backward from its current balance over the last
// `days` days.
func (uc *ReportUseCase) BalanceSeries(ctx context.Context, iban string, days int) (*Series, error) {
	if days <= 0 {
		return nil, domain.ErrEmptySeries
	}

	account, err := uc.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return nil, err
	}

	return uc.cachedSeries(ctx, account, days)
}

// AllOwnedSeries computes one series per owned account, labeled by account
// name, for stacked presentation.
func (uc *ReportUseCase) AllOwnedSeries(ctx context.Context, days int) ([]*Series, error) {
	if days <= 0 {
		return nil, domain.ErrEmptySeries
	}

	accounts, err := uc.accountRepo.ListByType(ctx, domain.AccountTypeOwned)
	if err != nil {
		return nil, err
	}

	result := make([]*Series, 0, len(accounts))
	for _, account := range accounts {
		series, err := uc.cachedSeries(ctx, account, days)
		if err != nil {
			return nil, err
		}
		result = append(result, series)
	}

	return result, nil
}

// cachedSeries serves the account's series from cache when present, else
// computes and stores it. Keys are per account and day, so single-account
// and all-owned requests share entries.
func (uc *ReportUseCase) cachedSeries(ctx context.Context, account *domain.Account, days int) (*Series, error) {
	key := uc.cacheKey(account.IBAN, days)
	if cached, ok := uc.fromCache(ctx, key); ok {
		return cached, nil
	}

	series, err := uc.computeSeries(ctx, account, days)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, key, series)

	return series, nil
}

func (uc *ReportUseCase) computeSeries(ctx context.Context, account *domain.Account, days int) (*Series, error) {
	today := truncateToDay(uc.now())
	oldest := today.AddDate(0, 0, -(days - 1))

	// One load for the whole range; bucketing happens in the domain.
	txs, err := uc.transactionRepo.ListByAccountBetween(ctx, account.ID, oldest, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	points, err := domain.ReconstructBalances(account, txs, days, today)
	if err != nil {
		return nil, err
	}

	if len(txs) == 0 {
		uc.logger.Debug().Str("account_id", account.ID).Int("days", days).Msg("no transactions in range, series stays flat")
	}

	uc.metrics.SeriesComputed.Inc()

	return &Series{Label: account.Name, Points: points}, nil
}

func (uc *ReportUseCase) cacheKey(iban string, days int) string {
	today := truncateToDay(uc.now())
	return fmt.Sprintf("series:%s:%d:%s", iban, days, today.Format("2006-01-02"))
}

func (uc *ReportUseCase) fromCache(ctx context.Context, key string) (*Series, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		uc.metrics.SeriesCacheMisses.Inc()
		return nil, false
	}

	var series Series
	if err := json.Unmarshal([]byte(raw), &series); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("dropping undecodable cached series")
		_ = uc.cache.Delete(ctx, key)
		return nil, false
	}

	uc.metrics.SeriesCacheHits.Inc()

	return &series, true
}

func (uc *ReportUseCase) toCache(ctx context.Context, key string, series *Series) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(series)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, string(raw), uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("could not cache series")
	}
}
