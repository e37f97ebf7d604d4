package affiliate

import (
	"net/http"
	"stayledger/infras/otel"
	"stayledger/internal/domains/affiliate/model"
	"stayledger/internal/domains/affiliate/model/dto"
	"stayledger/internal/domains/affiliate/service"
	"stayledger/shared"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/validator"
	"stayledger/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Affiliate
	otel    otel.Otel
}

func New(service service.Affiliate, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/affiliates", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Register)
		routerGroup.Get("/", handler.GetAffiliates)
		routerGroup.Get("/me", handler.Me)
		routerGroup.Put("/me/bank", handler.UpdateBank)
		routerGroup.Get("/me/ledger", handler.History)
		routerGroup.Post("/me/ledger/export", handler.ExportStatement)
		routerGroup.Patch("/{id}", handler.UpdateAffiliate)
	})

	router.Get("/referrals/{code}", handler.Track)
}

// Register makes the caller an affiliate. Calling it again returns the existing record.
// @Summary Register as affiliate
// @Tags Affiliate
// @Produce json
// @Success 201 {object} response.Data[dto.AffiliateResponse] "Affiliate created"
// @Success 200 {object} response.Data[dto.AffiliateResponse] "Already registered"
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/affiliates [post]
// @Security BearerAuth
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	affiliate, created, err := handler.service.Register(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register affiliate")

		response.WithError(w, err)

		return
	}

	if !created {
		response.WithJSON(w, http.StatusOK, affiliate)

		return
	}

	scope.AddEvent("Affiliate registered " + affiliate.ReferralCode)

	response.WithJSON(w, http.StatusCreated, affiliate)
}

// Me
// @Summary Affiliate dashboard
// @Description The caller's affiliate record with the last 10 attributed bookings and last 5 withdrawals.
// @Tags Affiliate
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/affiliates/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	dashboard, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get affiliate dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dashboard)
}

// UpdateBank
// @Summary Update payout bank details
// @Tags Affiliate
// @Accept json
// @Produce json
// @Param request body dto.UpdateBankRequest true "Bank details"
// @Success 200 {object} response.Data[dto.AffiliateResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/affiliates/me/bank [put]
// @Security BearerAuth
func (handler *Handler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBank")
	defer scope.End()

	req := dto.UpdateBankRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	affiliate, err := handler.service.UpdateBank(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update bank details")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bank details updated successfully")

	response.WithJSON(w, http.StatusOK, affiliate)
}

// History lists the caller's ledger entries, newest first.
// @Summary Ledger history
// @Tags Affiliate
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[ledgerDto.GetEntriesResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/affiliates/me/ledger [get]
// @Security BearerAuth
func (handler *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".History")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	entries, err := handler.service.History(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ledger history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, entries)
}

// ExportStatement
// @Summary Export ledger statement
// @Description Write the caller's full ledger history as CSV to object storage and return its URL.
// @Tags Affiliate
// @Produce json
// @Success 201 {object} response.Data[ledgerDto.ExportStatementResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/affiliates/me/ledger/export [post]
// @Security BearerAuth
func (handler *Handler) ExportStatement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportStatement")
	defer scope.End()

	statement, err := handler.service.ExportStatement(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export statement")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Statement exported")

	response.WithJSON(w, http.StatusCreated, statement)
}

// GetAffiliates
// @Summary List affiliates
// @Tags Affiliate
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query bool false "Filter by active flag"
// @Param referral_code query string false "Filter by referral code"
// @Success 200 {object} response.Data[dto.GetAffiliatesResponse]
// @Failure 403 {object} response.Error
// @Router /v1/affiliates [get]
// @Security BearerAuth
func (handler *Handler) GetAffiliates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAffiliates")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive)); active != nil {
		filterGroup.Append(gDto.Eq(model.TableName, model.FieldActive, *active))
	}

	if code := r.URL.Query().Get(model.FieldReferralCode); code != "" {
		filterGroup.Append(gDto.Eq(model.TableName, model.FieldReferralCode, model.NormalizeReferralCode(code)))
	}

	affiliates, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get affiliates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, affiliates)
}

// UpdateAffiliate toggles the active flag or changes the commission rate for future bookings.
// @Summary Update an affiliate
// @Tags Affiliate
// @Accept json
// @Produce json
// @Param id path string true "Affiliate ID"
// @Param request body dto.UpdateAffiliateRequest true "Update Affiliate Request"
// @Success 200 {object} response.Data[dto.AffiliateResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/affiliates/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAffiliate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAffiliate")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAffiliateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	affiliate, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update affiliate")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Affiliate updated successfully")

	response.WithJSON(w, http.StatusOK, affiliate)
}

// Track captures a referral code and returns the attribution token the client should keep
// and send back in X-Referral-Token when booking.
// @Summary Track a referral link
// @Tags Referral
// @Produce json
// @Param code path string true "Referral code"
// @Param X-Referral-Token header string false "Previously issued attribution token"
// @Success 200 {object} response.Data[dto.TrackResponse]
// @Failure 404 {object} response.Error
// @Router /v1/referrals/{code} [get]
func (handler *Handler) Track(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Track")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)
	token := strings.TrimSpace(r.Header.Get(constant.RequestHeaderReferralToken))

	tracked, err := handler.service.Track(ctx, code, token)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("code", code).Msg("failed to track referral")

		response.WithError(w, err)

		return
	}

	if tracked.Captured {
		scope.AddEvent("Referral captured " + tracked.ReferralCode)
	}

	response.WithJSON(w, http.StatusOK, tracked)
}
