package product

import (
	"net/http"
	"stayledger/infras/otel"
	"stayledger/internal/domains/product/model"
	"stayledger/internal/domains/product/service"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
	"stayledger/shared/validator"
	"stayledger/transport/http/response"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Product
	otel    otel.Otel
}

func New(service service.Product, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/products", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProducts)
		routerGroup.Get("/{id}", handler.GetProductByID)
	})
}

// GetProducts lists the catalog. Only active products are listed unless active=false is asked for.
// @Summary List products
// @Tags Product
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by type (ROOM, TOUR, FOOD, SERVICE, MERCH)"
// @Param active query bool false "Filter by active flag, defaults to true"
// @Success 200 {object} response.Data[dto.GetProductsResponse] "List of products"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products [get]
func (handler *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	active := true

	if raw := r.URL.Query().Get(constant.RequestParamActive); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			err = failure.BadRequestFromString("active must be true or false")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		active = parsed
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    active,
				Table:    model.TableName,
			},
		},
	}

	if productType := strings.ToUpper(r.URL.Query().Get(constant.RequestParamType)); productType != "" {
		if err := validator.ValidateVar(productType, "producttype"); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("invalid product type filter")

			response.WithError(w, err)

			return
		}

		filterGroup.Append(gDto.Eq(model.TableName, model.FieldType, productType))
	}

	products, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get products")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Products retrieved successfully")

	response.WithJSON(w, http.StatusOK, products)
}

// GetProductByID
// @Summary Get a product by ID
// @Tags Product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Data[dto.ProductResponse] "Product details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [get]
func (handler *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProductByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.NotFound("product not found"))

		return
	}

	product, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get product by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, product)
}
