package service

import (
	"context"
	"database/sql"
	"fmt"
	"stayledger/config"
	"stayledger/infras/jwt"
	"stayledger/infras/kafka"
	"stayledger/infras/metrics"
	"stayledger/infras/otel"
	"stayledger/infras/promptpay"
	affiliateModel "stayledger/internal/domains/affiliate/model"
	affiliateRepo "stayledger/internal/domains/affiliate/repository"
	"stayledger/internal/domains/booking/model"
	"stayledger/internal/domains/booking/model/dto"
	"stayledger/internal/domains/booking/repository"
	couponModel "stayledger/internal/domains/coupon/model"
	couponService "stayledger/internal/domains/coupon/service"
	ledgerService "stayledger/internal/domains/ledger/service"
	productService "stayledger/internal/domains/product/service"
	"stayledger/shared"
	"stayledger/shared/authz"
	"stayledger/shared/cache"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
	gModel "stayledger/shared/model"
	gRepo "stayledger/shared/repository"
	"stayledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cachePrefixBooking = "booking"
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Mine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (dto.BookingResponse, error)
	PaymentQR(ctx context.Context, id string) (dto.PaymentQRResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	items      repository.Item
	affiliates affiliateRepo.Affiliate
	catalog    productService.Catalog
	coupons    couponService.Redeemer
	ledger     ledgerService.Ledger
	tx         gRepo.Transactor
	jwt        jwt.JWT
	payment    promptpay.Generator
	kafka      kafka.Client
	cache      cache.RedisCache
	cfg        *config.Config
	otel       otel.Otel
	metrics    *metrics.Metrics
}

func New(
	repo repository.Booking,
	items repository.Item,
	affiliates affiliateRepo.Affiliate,
	catalog productService.Catalog,
	coupons couponService.Redeemer,
	ledger ledgerService.Ledger,
	tx gRepo.Transactor,
	jwt jwt.JWT,
	payment promptpay.Generator,
	kafka kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Booking {
	return &serviceImpl{
		repo:       repo,
		items:      items,
		affiliates: affiliates,
		catalog:    catalog,
		coupons:    coupons,
		ledger:     ledger,
		tx:         tx,
		jwt:        jwt,
		payment:    payment,
		kafka:      kafka,
		cache:      cache,
		cfg:        cfg,
		otel:       otel,
		metrics:    metrics,
	}
}

// Create prices the cart from the catalog, redeems the coupon, resolves attribution and writes
// the booking, its items and the commission credit in one transaction. Commission is earned on
// the discounted total.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	lines, err := req.ToCart()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if len(lines) == 0 {
		return res, failure.BadRequestFromString("booking must contain at least one item") //nolint:wrapcheck
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	now := timezone.Now()
	metadata := gModel.NewMetadata(now, caller.UserID)

	var (
		booking model.Booking
		quote   model.Quote
	)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		products, err := s.catalog.GetProducts(ctx, sqltx, ids)
		if err != nil {
			return err //nolint:wrapcheck
		}

		quote, err = model.PriceCart(lines, products, decimal.Zero)
		if err != nil {
			return err //nolint:wrapcheck
		}

		var coupon couponModel.Redemption

		if req.CouponCode != constant.Empty {
			coupon, err = s.coupons.Redeem(ctx, sqltx, req.CouponCode, quote.Subtotal, now)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if quote, err = quote.WithDiscount(coupon.Discount); err != nil {
				return err //nolint:wrapcheck
			}
		}

		affiliate, err := s.resolveAffiliate(ctx, sqltx, req)
		if err != nil {
			return err
		}

		booking = model.Booking{
			ID:               uuid.NewString(),
			BookingNumber:    model.NewBookingNumber(now),
			UserID:           caller.UserID,
			GuestName:        req.GuestName,
			GuestEmail:       req.GuestEmail,
			GuestPhone:       req.GuestPhone,
			CheckIn:          quote.CheckIn,
			CheckOut:         quote.CheckOut,
			Subtotal:         quote.Subtotal,
			Discount:         quote.Discount,
			Total:            quote.Total,
			Status:           model.StatusPending,
			PaymentStatus:    model.PaymentUnpaid,
			CommissionRate:   decimal.Zero,
			CommissionAmount: decimal.Zero,
			Notes:            req.Notes,
			Metadata:         metadata,
		}

		if coupon.CouponID != constant.Empty {
			booking.CouponID = sql.NullString{String: coupon.CouponID, Valid: true}
		}

		if affiliate.CanEarn() {
			booking.AffiliateID = sql.NullString{String: affiliate.ID, Valid: true}
			booking.CommissionRate = affiliate.CommissionRate
			booking.CommissionAmount = model.Commission(quote.Total, affiliate.CommissionRate)
		}

		if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		for i := range quote.Items {
			quote.Items[i].BookingID = booking.ID
			quote.Items[i].Metadata = metadata
		}

		if err = s.items.InsertBulkTx(ctx, sqltx, quote.Items); err != nil {
			return fmt.Errorf("failed to insert booking items: %w", err)
		}

		if !booking.AffiliateID.Valid {
			return nil
		}

		_, err = s.ledger.CreditBooking(ctx, sqltx, booking.AffiliateID.String, booking.ID, booking.CommissionAmount)

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("user", caller.UserID).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	log.Info().
		Str("booking", booking.BookingNumber).
		Str("total", booking.Total.StringFixed(constant.MoneyScale)).
		Bool("attributed", booking.AffiliateID.Valid).
		Bool("coupon", booking.CouponID.Valid).
		Msg("booking created")

	s.metrics.BookingCreated(booking.AffiliateID.Valid, booking.CommissionAmount)

	res.FromModel(booking, quote.Items)

	s.publish(ctx, booking.ID, kafka.EventBookingCreated, res)
	s.invalidate(ctx)

	return res, nil
}

// resolveAffiliate returns the zero affiliate when nothing usable was supplied. Unknown or
// inactive references are not errors; the booking is simply unattributed.
func (s *serviceImpl) resolveAffiliate(ctx context.Context, sqltx *sqlx.Tx, req dto.CreateBookingRequest) (affiliateModel.Affiliate, error) {
	var filter gDto.FilterGroup

	switch {
	case req.AffiliateID != constant.Empty:
		if uuid.Validate(req.AffiliateID) != nil {
			return affiliateModel.Affiliate{}, nil
		}

		filter = shared.FilterByID(req.AffiliateID, affiliateModel.FieldID, affiliateModel.TableName)
	case req.ReferralCode != constant.Empty:
		filter = shared.FilterByID(affiliateModel.NormalizeReferralCode(req.ReferralCode), affiliateModel.FieldReferralCode, affiliateModel.TableName)
	case req.AttributionToken != constant.Empty:
		claims, err := s.jwt.ParseAttribution(ctx, req.AttributionToken)
		if err != nil {
			log.Debug().Err(err).Msg("ignoring attribution token")

			return affiliateModel.Affiliate{}, nil
		}

		filter = shared.FilterByID(claims.AffiliateID, affiliateModel.FieldID, affiliateModel.TableName)
	default:
		return affiliateModel.Affiliate{}, nil
	}

	affiliate, err := s.affiliates.GetTx(ctx, sqltx, filter, gRepo.LockForUpdate)
	if err != nil {
		return affiliate, fmt.Errorf("failed to resolve affiliate: %w", err)
	}

	if !affiliate.CanEarn() {
		log.Debug().Str("referral", req.ReferralCode).Msg("booking left unattributed")
	}

	return affiliate, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		res, err = s.load(ctx, id)
		if err != nil {
			return res, err
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if !caller.Owns(res.UserID) && !caller.IsAdmin() {
		return dto.BookingResponse{}, failure.ForbiddenError
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	if uuid.Validate(id) != nil {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	items, err := s.items.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(booking.ID, model.ItemFieldBookingID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking items")

		return res, fmt.Errorf("failed to get booking items: %w", err)
	}

	res.FromModel(booking, items)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = authz.Require(ctx, constant.RoleAdmin); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, req, shared.FilterByID(caller.UserID, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves the booking along its lifecycle. The write is conditional on the status
// that was read, so two admins racing on one booking cannot both succeed.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx, constant.RoleAdmin)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	next := model.Status(req.Status)

	booking, err := s.transition(ctx, id, caller, func(current model.Booking) (map[string]any, gDto.Filter, error) {
		if !current.Status.CanTransitionTo(next) {
			return nil, gDto.Filter{}, failure.Conflict(fmt.Sprintf("booking cannot move from %s to %s", current.Status, next)) //nolint:wrapcheck
		}

		guard := gDto.Filter{
			ArgName:  model.ArgCurrentStatus,
			Field:    model.FieldStatus,
			Value:    current.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}

		return map[string]any{model.FieldStatus: next}, guard, nil
	})
	if err != nil {
		return res, err
	}

	booking.Status = next
	res.FromModel(booking, nil)

	s.publish(ctx, booking.ID, kafka.EventBookingStatusChanged, res)
	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePaymentStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx, constant.RoleAdmin)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	next := model.PaymentStatus(req.PaymentStatus)

	booking, err := s.transition(ctx, id, caller, func(current model.Booking) (map[string]any, gDto.Filter, error) {
		if !current.PaymentStatus.CanTransitionTo(next) {
			return nil, gDto.Filter{}, failure.Conflict(fmt.Sprintf("payment cannot move from %s to %s", current.PaymentStatus, next)) //nolint:wrapcheck
		}

		guard := gDto.Filter{
			ArgName:  model.ArgCurrentPaymentStatus,
			Field:    model.FieldPaymentStatus,
			Value:    current.PaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}

		return map[string]any{model.FieldPaymentStatus: next}, guard, nil
	})
	if err != nil {
		return res, err
	}

	booking.PaymentStatus = next
	res.FromModel(booking, nil)

	s.publish(ctx, booking.ID, kafka.EventBookingStatusChanged, res)
	s.invalidate(ctx)

	return res, nil
}

type transitionFunc func(current model.Booking) (map[string]any, gDto.Filter, error)

func (s *serviceImpl) transition(ctx context.Context, id string, caller authz.Caller, fn transitionFunc) (model.Booking, error) {
	var booking model.Booking

	if uuid.Validate(id) != nil {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		byID := shared.FilterByID(id, model.FieldID, model.TableName)

		current, err := s.repo.GetTx(ctx, sqltx, byID, gRepo.LockForUpdate)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("booking not found") //nolint:wrapcheck
		}

		mod, guard, err := fn(current)
		if err != nil {
			return err
		}

		mod[constant.FieldModifiedAt] = timezone.Now()
		mod[constant.FieldModifiedBy] = caller.UserID

		filter := gDto.FilterGroup{
			Filters:  append(byID.Filters, guard),
			Operator: gDto.FilterGroupOperatorAnd,
		}

		affected, err := s.repo.CompareAndUpdateTx(ctx, sqltx, mod, filter)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if affected == 0 {
			return failure.Conflict("booking was changed by another request") //nolint:wrapcheck
		}

		booking = current

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to update booking")

		return booking, err //nolint:wrapcheck
	}

	return booking, nil
}

// PaymentQR builds a PromptPay payload for the booking total. Only the owner may ask for it.
func (s *serviceImpl) PaymentQR(ctx context.Context, id string) (res dto.PaymentQRResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentQR")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if uuid.Validate(id) != nil {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if !caller.Owns(booking.UserID) {
		return res, failure.ForbiddenError
	}

	if booking.PaymentStatus == model.PaymentPaid {
		return res, failure.PreconditionFailed("booking is already paid") //nolint:wrapcheck
	}

	payload, err := s.payment.GeneratePayable(booking.Total, s.cfg.Payment.PromptPayID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate payment payload")

		return res, failure.Infrastructure(fmt.Errorf("failed to generate payment payload: %w", err)) //nolint:wrapcheck
	}

	return dto.PaymentQRResponse{
		Payload:       payload,
		Amount:        booking.Total,
		BookingNumber: booking.BookingNumber,
		Payee:         s.cfg.Payment.PromptPayID,
	}, nil
}

func (s *serviceImpl) publish(ctx context.Context, key, eventType string, data any) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.NewEventMessage(key, eventType, data)
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Booking, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cachePrefixBooking)
	}()
}
