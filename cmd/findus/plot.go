package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/theCalcaholic/findus/internal/adapter/chart"
	httpAdapter "github.com/theCalcaholic/findus/internal/adapter/http"
	"github.com/theCalcaholic/findus/internal/usecase"
)

func newPlotCmd() *cobra.Command {
	var (
		serve bool
		out   string
	)

	cmd := &cobra.Command{
		Use:   "plot <iban|all> <days>",
		Short: "Render balance history as an HTML chart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q: %w", args[1], err)
			}

			return runPlot(cmd, args[0], days, serve, out)
		},
	}

	cmd.Flags().BoolVar(&serve, "serve", false, "serve the chart over HTTP instead of writing a file")
	cmd.Flags().StringVar(&out, "out", "", "output file path (defaults to CHART_OUT)")

	return cmd
}

func runPlot(cmd *cobra.Command, iban string, days int, serve bool, out string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report := usecase.NewReportUseCase(
		a.accountRepo,
		a.transactionRepo,
		a.cache,
		a.cfg.SeriesCacheTTL,
		a.metrics,
		a.logger,
	)
	renderer := chart.NewRenderer()

	if serve {
		return serveChart(ctx, a, report, renderer, iban, days)
	}

	series, err := loadSeries(ctx, report, iban, days)
	if err != nil {
		return err
	}

	if out == "" {
		out = a.cfg.ChartOut
	}
	if err := renderer.RenderFile(out, series); err != nil {
		return err
	}

	a.logger.Info().Str("path", out).Int("series", len(series)).Msg("chart written")

	return nil
}

func loadSeries(ctx context.Context, report *usecase.ReportUseCase, iban string, days int) ([]usecase.Series, error) {
	if iban == httpAdapter.AllAccounts {
		all, err := report.AllOwnedSeries(ctx, days)
		if err != nil {
			return nil, err
		}

		series := make([]usecase.Series, 0, len(all))
		for _, s := range all {
			series = append(series, *s)
		}

		return series, nil
	}

	single, err := report.BalanceSeries(ctx, iban, days)
	if err != nil {
		return nil, err
	}

	return []usecase.Series{*single}, nil
}

func serveChart(ctx context.Context, a *app, report *usecase.ReportUseCase, renderer *chart.Renderer, iban string, days int) error {
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ChartHandler:   httpAdapter.NewChartHandler(report, renderer, iban, days),
		HealthHandler:  httpAdapter.NewHealthHandler(a.pool),
		MetricsHandler: promhttp.Handler(),
	})

	server := &http.Server{
		Addr:         ":" + a.cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("port", a.cfg.HTTPPort).Msg("serving chart")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
