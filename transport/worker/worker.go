// Package worker runs the scheduled background jobs of the service.
package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"stayledger/config"
	"stayledger/infras/metrics"
	"stayledger/infras/otel"
	ledgerService "stayledger/internal/domains/ledger/service"
	"stayledger/shared/constant"
	"stayledger/shared/logger"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	jobTimeout        = 5 * time.Minute
	readHeaderTimeout = 10 * time.Second
)

type Worker struct {
	cfg     *config.Config
	otel    otel.Otel
	ledger  ledgerService.Ledger
	metrics *metrics.Metrics
	cron    *cron.Cron
}

func New(cfg *config.Config, otel otel.Otel, ledger ledgerService.Ledger, metrics *metrics.Metrics) *Worker {
	return &Worker{
		cfg:     cfg,
		otel:    otel,
		ledger:  ledger,
		metrics: metrics,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.DiscardLogger))),
	}
}

// Register adds every job to the schedule without starting it.
func (w *Worker) Register() error {
	if _, err := w.cron.AddFunc(w.cfg.Ledger.ReconcileSchedule, w.ReconcileLedger); err != nil {
		return fmt.Errorf("failed to schedule ledger reconciliation %q: %w", w.cfg.Ledger.ReconcileSchedule, err)
	}

	return nil
}

// Run blocks until ctx is cancelled, then waits for running jobs to finish.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.Register(); err != nil {
		return err
	}

	log.Info().Int("jobs", len(w.cron.Entries())).Msg("Starting worker scheduler.")

	w.cron.Start()

	server := w.serveMetrics()

	<-ctx.Done()

	log.Info().Msg("Stopping worker scheduler.")

	<-w.cron.Stop().Done()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(w.cfg.Server.Shutdown.CleanupPeriodSeconds)*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("metrics server did not shut down cleanly")
		}
	}

	return nil
}

// serveMetrics exposes the worker's registry so the reconciliation gauge can be scraped.
func (w *Worker) serveMetrics() *http.Server {
	if w.metrics == nil || !w.cfg.Metrics.Enable || w.cfg.Server.Port == "" {
		return nil
	}

	mux := chi.NewRouter()
	mux.Handle(w.cfg.Metrics.Path, w.metrics.Handler())

	server := &http.Server{
		Addr:              net.JoinHostPort(w.cfg.Server.Host, w.cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info().Str("port", w.cfg.Server.Port).Msg("Serving worker metrics.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("worker metrics server stopped")
		}
	}()

	return server
}

// ReconcileLedger checks every affiliate's balance identity and exports the violation count.
func (w *Worker) ReconcileLedger() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".ReconcileLedger")
	defer scope.End()

	report, err := w.ledger.Reconcile(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.ErrorWithStack(err)

		return
	}

	scope.SetAttribute("ledger.violations", len(report.Violations))

	if !report.Balanced {
		log.Error().Int("violations", len(report.Violations)).Msg("ledger reconciliation found drift")

		return
	}

	log.Info().Str("checked_at", report.CheckedAt).Msg("ledger reconciliation balanced")
}
