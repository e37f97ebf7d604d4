package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"stayledger/config"
	"stayledger/infras/otel"
	"stayledger/internal/domains/coupon/model"
	"stayledger/internal/domains/coupon/model/dto"
	"stayledger/internal/domains/coupon/repository"
	"stayledger/shared"
	"stayledger/shared/authz"
	"stayledger/shared/cache"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
	gRepo "stayledger/shared/repository"
	"stayledger/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheGetAllCoupon = "coupon:gets"

var maxPercent = decimal.NewFromInt(100)

// Redeemer turns a coupon code into a discount while a booking is being written.
type Redeemer interface {
	// Redeem takes one use of the coupon and returns the discount it grants on subtotal.
	// Unknown, inactive, expired or exhausted coupons are rejected.
	Redeem(ctx context.Context, sqltx *sqlx.Tx, code string, subtotal decimal.Decimal, at time.Time) (model.Redemption, error)
}

type Coupon interface {
	Redeemer
	Create(ctx context.Context, req dto.CreateCouponRequest) (dto.CouponResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCouponsResponse, error)
}

type serviceImpl struct {
	repo  repository.Coupon
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Coupon, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Coupon {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCouponRequest) (res dto.CouponResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx, constant.RoleAdmin)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if model.DiscountType(req.DiscountType) == model.DiscountPercent && req.DiscountValue.GreaterThan(maxPercent) {
		return res, failure.BadRequestFromString("percent discount cannot exceed 100") //nolint:wrapcheck
	}

	coupon := req.ToModel(timezone.Now(), caller.UserID)

	err = s.repo.Insert(ctx, coupon)
	if errors.Is(err, gRepo.ErrDuplicate) {
		return res, failure.Conflict("coupon code already exists") //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create coupon")

		return res, fmt.Errorf("failed to create coupon: %w", err)
	}

	log.Info().Str("coupon", coupon.Code).Str("by", caller.UserID).Msg("coupon created")

	res.FromModel(coupon)
	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCouponsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = authz.Require(ctx, constant.RoleAdmin); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCoupon, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for coupons")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count coupons")

		return res, fmt.Errorf("failed to count coupons: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get coupons")

		return res, fmt.Errorf("failed to get coupons: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save coupons to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Redeem(ctx context.Context, sqltx *sqlx.Tx, code string, subtotal decimal.Decimal, at time.Time) (res model.Redemption, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Redeem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(model.NormalizeCode(code), model.FieldCode, model.TableName)

	coupon, err := s.repo.GetTx(ctx, sqltx, filter, gRepo.LockForUpdate)
	if err != nil {
		return res, fmt.Errorf("failed to get coupon: %w", err)
	}

	if coupon.ID == constant.Empty {
		return res, failure.NotFound("coupon not found") //nolint:wrapcheck
	}

	if !coupon.Usable(at) {
		return res, failure.BadRequestFromString("coupon is inactive, expired or fully used") //nolint:wrapcheck
	}

	redeemed, err := s.repo.RedeemTx(ctx, sqltx, coupon.ID, at)
	if err != nil {
		return res, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	if !redeemed {
		return res, failure.BadRequestFromString("coupon is inactive, expired or fully used") //nolint:wrapcheck
	}

	res = model.Redemption{CouponID: coupon.ID, Discount: coupon.DiscountFor(subtotal)}

	log.Debug().Str("coupon", coupon.Code).Str("discount", res.Discount.StringFixed(constant.MoneyScale)).Msg("coupon redeemed")

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCoupon)
	}()
}
