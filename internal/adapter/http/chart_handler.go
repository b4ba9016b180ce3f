package http

import (
	"context"
	"net/http"

	"github.com/theCalcaholic/findus/internal/adapter/chart"
	"github.com/theCalcaholic/findus/internal/usecase"
)

// AllAccounts selects every owned account instead of a single IBAN.
const AllAccounts = "all"

// ChartHandler renders balance series on each request, so a running server
// picks up freshly imported transactions.
type ChartHandler struct {
	report   *usecase.ReportUseCase
	renderer *chart.Renderer
	iban     string
	days     int
}

// NewChartHandler creates a new ChartHandler. `iban` may be AllAccounts;
// `days` is the default window, overridable per request.
func NewChartHandler(report *usecase.ReportUseCase, renderer *chart.Renderer, iban string, days int) *ChartHandler {
	return &ChartHandler{
		report:   report,
		renderer: renderer,
		iban:     iban,
		days:     days,
	}
}

// Chart serves the balance chart as HTML.
func (h *ChartHandler) Chart(w http.ResponseWriter, r *http.Request) {
	series, err := h.loadSeries(r)
	if err != nil {
		writeError(w, mapDomainError(err), "could not compute balance series", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, series); err != nil {
		writeError(w, http.StatusInternalServerError, "could not render chart", err.Error())
	}
}

// Series serves the raw balance series as JSON.
func (h *ChartHandler) Series(w http.ResponseWriter, r *http.Request) {
	series, err := h.loadSeries(r)
	if err != nil {
		writeError(w, mapDomainError(err), "could not compute balance series", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, series)
}

func (h *ChartHandler) loadSeries(r *http.Request) ([]usecase.Series, error) {
	days := parseIntQuery(r, "days", h.days)

	if h.iban == AllAccounts {
		return h.allSeries(r.Context(), days)
	}

	single, err := h.report.BalanceSeries(r.Context(), h.iban, days)
	if err != nil {
		return nil, err
	}

	return []usecase.Series{*single}, nil
}

func (h *ChartHandler) allSeries(ctx context.Context, days int) ([]usecase.Series, error) {
	all, err := h.report.AllOwnedSeries(ctx, days)
	if err != nil {
		return nil, err
	}

	series := make([]usecase.Series, 0, len(all))
	for _, s := range all {
		series = append(series, *s)
	}

	return series, nil
}
