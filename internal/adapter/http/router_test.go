package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theCalcaholic/findus/internal/adapter/chart"
	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/infrastructure/metrics"
	"github.com/theCalcaholic/findus/internal/usecase"
	"github.com/theCalcaholic/findus/internal/usecase/mocks"
)

const testIBAN = "DE02120300000000202051"

var testToday = time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func newTestRouter(t *testing.T, iban string, db Pinger) http.Handler {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()

	account := &domain.Account{
		ID:      "acc-own",
		IBAN:    testIBAN,
		Name:    "Testbank - Girokonto",
		Type:    domain.AccountTypeOwned,
		Balance: domain.NewBalance(decimal.NewFromInt(100)),
	}
	if err := accountRepo.Create(context.Background(), account); err != nil {
		t.Fatalf("seeding account: %v", err)
	}

	registry := prometheus.NewRegistry()
	report := usecase.NewReportUseCase(
		accountRepo,
		transactionRepo,
		nil,
		time.Minute,
		metrics.NewWith(registry),
		zerolog.Nop(),
	).WithNow(func() time.Time { return testToday })

	renderer := chart.NewRenderer().WithNow(func() time.Time { return testToday })

	return NewRouter(RouterConfig{
		ChartHandler:   NewChartHandler(report, renderer, iban, 5),
		HealthHandler:  NewHealthHandler(db),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
}

func TestRouter_ChartServesHTML(t *testing.T) {
	router := newTestRouter(t, testIBAN, &stubPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected / to return 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("expected HTML content type, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "Testbank - Girokonto") {
		t.Fatal("expected chart to contain the account label")
	}
}

func TestRouter_ChartUnknownAccountReturns404(t *testing.T) {
	router := newTestRouter(t, "DE00000000000000000000", &stubPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", rec.Code)
	}
}

func TestRouter_SeriesReturnsJSON(t *testing.T) {
	router := newTestRouter(t, AllAccounts, &stubPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/series?days=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var series []usecase.Series
	if err := json.Unmarshal(rec.Body.Bytes(), &series); err != nil {
		t.Fatalf("decoding series response: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected one owned series, got %d", len(series))
	}
	if len(series[0].Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series[0].Points))
	}
}

func TestRouter_SeriesInvalidDaysReturns400(t *testing.T) {
	router := newTestRouter(t, testIBAN, &stubPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/series?days=-1", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative window, got %d", rec.Code)
	}
}

func TestRouter_HealthzReflectsDatabase(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		wantCode int
	}{
		{name: "healthy", pingErr: nil, wantCode: http.StatusOK},
		{name: "unreachable", pingErr: errors.New("dial refused"), wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, testIBAN, &stubPinger{err: tt.pingErr})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	router := newTestRouter(t, testIBAN, &stubPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}
