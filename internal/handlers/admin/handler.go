// Package admin exposes operator reports: platform statistics and ledger reconciliation.
package admin

import (
	"net/http"
	"stayledger/infras/otel"
	dashboardService "stayledger/internal/domains/dashboard/service"
	ledgerService "stayledger/internal/domains/ledger/service"
	"stayledger/shared/authz"
	"stayledger/shared/constant"
	"stayledger/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	dashboard dashboardService.Dashboard
	ledger    ledgerService.Ledger
	otel      otel.Otel
}

func New(dashboard dashboardService.Dashboard, ledger ledgerService.Ledger, otel otel.Otel) Handler {
	return Handler{
		dashboard: dashboard,
		ledger:    ledger,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/dashboard", handler.Stats)
		routerGroup.Get("/ledger/reconcile", handler.Reconcile)
	})
}

// Stats
// @Summary Platform statistics
// @Description Totals, revenue by product type (PAID bookings only), direct vs affiliate bookings and top products.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse]
// @Failure 403 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Stats")
	defer scope.End()

	stats, err := handler.dashboard.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// Reconcile checks totalEarned == pending + paid + reserved for every affiliate.
// @Summary Reconcile affiliate balances
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.ReconcileResponse]
// @Failure 403 {object} response.Error
// @Router /v1/admin/ledger/reconcile [get]
// @Security BearerAuth
func (handler *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reconcile")
	defer scope.End()

	// The ledger service is also driven by the worker without a caller, so the role check lives here.
	if _, err := authz.Require(ctx, constant.RoleAdmin); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	report, err := handler.ledger.Reconcile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile ledger")

		response.WithError(w, err)

		return
	}

	if !report.Balanced {
		log.Warn().Int("violations", len(report.Violations)).Msg("ledger reconciliation found drift")
	}

	response.WithJSON(w, http.StatusOK, report)
}
