package withdrawal

import (
	"net/http"
	"stayledger/infras/otel"
	"stayledger/internal/domains/withdrawal/model"
	"stayledger/internal/domains/withdrawal/model/dto"
	"stayledger/internal/domains/withdrawal/service"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/validator"
	"stayledger/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Withdrawal
	otel    otel.Otel
}

func New(service service.Withdrawal, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/withdrawals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Request)
		routerGroup.Get("/", handler.GetWithdrawals)
		routerGroup.Get("/mine", handler.Mine)
		routerGroup.Post("/{id}/decision", handler.Decide)
	})
}

// Request reserves part of the caller's pending balance for payout.
// @Summary Request a withdrawal
// @Tags Withdrawal
// @Accept json
// @Produce json
// @Param request body dto.CreateWithdrawalRequest true "Withdrawal Request"
// @Success 201 {object} response.Data[dto.WithdrawalResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 412 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/withdrawals [post]
// @Security BearerAuth
func (handler *Handler) Request(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Request")
	defer scope.End()

	req := dto.CreateWithdrawalRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	withdrawal, err := handler.service.Request(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request withdrawal")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Withdrawal requested " + withdrawal.ID)

	response.WithJSON(w, http.StatusCreated, withdrawal)
}

// Decide approves or rejects a PENDING withdrawal. A decided withdrawal cannot be decided again.
// @Summary Decide a withdrawal
// @Tags Withdrawal
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param request body dto.DecideWithdrawalRequest true "Decision"
// @Success 200 {object} response.Data[dto.WithdrawalResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/withdrawals/{id}/decision [post]
// @Security BearerAuth
func (handler *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Decide")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DecideWithdrawalRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	withdrawal, err := handler.service.Decide(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("withdrawal_id", id).Msg("failed to decide withdrawal")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Withdrawal " + withdrawal.ID + " " + withdrawal.Status)

	response.WithJSON(w, http.StatusOK, withdrawal)
}

// Mine
// @Summary List my withdrawals
// @Tags Withdrawal
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetWithdrawalsResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/withdrawals/mine [get]
// @Security BearerAuth
func (handler *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Mine")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	withdrawals, err := handler.service.Mine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own withdrawals")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, withdrawals)
}

// GetWithdrawals
// @Summary List withdrawals
// @Tags Withdrawal
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param affiliate_id query string false "Filter by affiliate"
// @Success 200 {object} response.Data[dto.GetWithdrawalsResponse]
// @Failure 403 {object} response.Error
// @Router /v1/withdrawals [get]
// @Security BearerAuth
func (handler *Handler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWithdrawals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := strings.ToUpper(r.URL.Query().Get(model.FieldStatus)); status != "" {
		filterGroup.Append(gDto.Eq(model.TableName, model.FieldStatus, status))
	}

	if affiliateID := r.URL.Query().Get(model.FieldAffiliateID); affiliateID != "" {
		filterGroup.Append(gDto.Eq(model.TableName, model.FieldAffiliateID, affiliateID))
	}

	withdrawals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get withdrawals")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, withdrawals)
}
