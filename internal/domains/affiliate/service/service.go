package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayledger/config"
	"stayledger/infras/jwt"
	"stayledger/infras/kafka"
	"stayledger/infras/metrics"
	"stayledger/infras/otel"
	"stayledger/internal/domains/affiliate/model"
	"stayledger/internal/domains/affiliate/model/dto"
	"stayledger/internal/domains/affiliate/repository"
	bookingModel "stayledger/internal/domains/booking/model"
	bookingDto "stayledger/internal/domains/booking/model/dto"
	bookingRepo "stayledger/internal/domains/booking/repository"
	ledgerDto "stayledger/internal/domains/ledger/model/dto"
	ledgerService "stayledger/internal/domains/ledger/service"
	userModel "stayledger/internal/domains/user/model"
	userRepo "stayledger/internal/domains/user/repository"
	withdrawalModel "stayledger/internal/domains/withdrawal/model"
	withdrawalDto "stayledger/internal/domains/withdrawal/model/dto"
	withdrawalRepo "stayledger/internal/domains/withdrawal/repository"
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
	cacheGetAllAffiliate = "affiliate:gets"

	recentBookings    = 10
	recentWithdrawals = 5

	// registerAttempts bounds retries on referral code collisions.
	registerAttempts = 5
)

var maxCommissionRate = decimal.NewFromInt(100)

type Affiliate interface {
	Register(ctx context.Context) (dto.AffiliateResponse, bool, error)
	Me(ctx context.Context) (dto.DashboardResponse, error)
	UpdateBank(ctx context.Context, req dto.UpdateBankRequest) (dto.AffiliateResponse, error)
	Track(ctx context.Context, code, token string) (dto.TrackResponse, error)
	History(ctx context.Context, req gDto.QueryParams) (ledgerDto.GetEntriesResponse, error)
	ExportStatement(ctx context.Context) (ledgerDto.ExportStatementResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAffiliatesResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateAffiliateRequest) (dto.AffiliateResponse, error)
}

type serviceImpl struct {
	repo        repository.Affiliate
	bookings    bookingRepo.Booking
	withdrawals withdrawalRepo.Withdrawal
	users       userRepo.User
	ledger      ledgerService.Ledger
	tx          gRepo.Transactor
	jwt         jwt.JWT
	kafka       kafka.Client
	cache       cache.RedisCache
	cfg         *config.Config
	otel        otel.Otel
	metrics     *metrics.Metrics
}

func New(
	repo repository.Affiliate,
	bookings bookingRepo.Booking,
	withdrawals withdrawalRepo.Withdrawal,
	users userRepo.User,
	ledger ledgerService.Ledger,
	tx gRepo.Transactor,
	jwt jwt.JWT,
	kafka kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Affiliate {
	return &serviceImpl{
		repo:        repo,
		bookings:    bookings,
		withdrawals: withdrawals,
		users:       users,
		ledger:      ledger,
		tx:          tx,
		jwt:         jwt,
		kafka:       kafka,
		cache:       cache,
		cfg:         cfg,
		otel:        otel,
		metrics:     metrics,
	}
}

// Register creates the caller's affiliate record and promotes a guest account to affiliate.
// Calling it again returns the existing record unchanged with created set to false.
func (s *serviceImpl) Register(ctx context.Context) (res dto.AffiliateResponse, created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, false, err //nolint:wrapcheck
	}

	byUser := shared.FilterByID(caller.UserID, model.FieldUserID, model.TableName)

	var affiliate model.Affiliate

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		affiliate, err = s.repo.GetTx(ctx, sqltx, byUser, gRepo.LockNone)
		if err != nil {
			return fmt.Errorf("failed to get affiliate: %w", err)
		}

		if affiliate.ID != constant.Empty {
			return nil
		}

		for range registerAttempts {
			candidate, err := s.newAffiliate(caller.UserID)
			if err != nil {
				return err
			}

			created, err = s.repo.InsertIfAbsentTx(ctx, sqltx, candidate)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if created {
				affiliate = candidate

				break
			}

			// Either a concurrent registration for the same user won or the code collided.
			affiliate, err = s.repo.GetTx(ctx, sqltx, byUser, gRepo.LockNone)
			if err != nil {
				return fmt.Errorf("failed to get affiliate: %w", err)
			}

			if affiliate.ID != constant.Empty {
				return nil
			}
		}

		if !created {
			return failure.Conflict("could not allocate a referral code, try again") //nolint:wrapcheck
		}

		if caller.Role != constant.RoleGuest {
			return nil
		}

		promote := map[string]any{
			userModel.FieldLevel:     constant.RoleAffiliate,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: caller.UserID,
		}

		return s.users.UpdateTx(ctx, sqltx, promote, shared.FilterByID(caller.UserID, userModel.FieldID, userModel.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("user", caller.UserID).Msg("failed to register affiliate")

		return res, false, err //nolint:wrapcheck
	}

	res.FromModel(affiliate)

	if created {
		log.Info().Str("user", caller.UserID).Str("code", affiliate.ReferralCode).Msg("affiliate registered")

		s.publish(ctx, affiliate.ID, kafka.EventAffiliateRegistered, res)
		s.invalidate(ctx)
	}

	return res, created, nil
}

func (s *serviceImpl) newAffiliate(userID string) (model.Affiliate, error) {
	code, err := model.NewReferralCode()
	if err != nil {
		return model.Affiliate{}, fmt.Errorf("failed to generate referral code: %w", err)
	}

	now := timezone.Now()

	return model.Affiliate{
		ID:             uuid.NewString(),
		UserID:         userID,
		ReferralCode:   code,
		CommissionRate: s.cfg.Ledger.DefaultCommissionRate,
		TotalEarned:    decimal.Zero,
		PendingBalance: decimal.Zero,
		PaidBalance:    decimal.Zero,
		Active:         true,
		Metadata:       gModel.NewMetadata(now, userID),
	}, nil
}

// mine resolves the caller's affiliate record. Balances are never served from cache.
func (s *serviceImpl) mine(ctx context.Context) (model.Affiliate, error) {
	caller, err := authz.Require(ctx)
	if err != nil {
		return model.Affiliate{}, err //nolint:wrapcheck
	}

	affiliate, err := s.repo.Get(ctx, shared.FilterByID(caller.UserID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get affiliate")

		return affiliate, fmt.Errorf("failed to get affiliate: %w", err)
	}

	if affiliate.ID == constant.Empty {
		return affiliate, failure.NotFound("affiliate not registered") //nolint:wrapcheck
	}

	return affiliate, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affiliate, err := s.mine(ctx)
	if err != nil {
		return res, err
	}

	latest := func(limit int) gDto.QueryParams {
		return gDto.QueryParams{Page: 1, Limit: limit, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}
	}

	bookings, err := s.bookings.GetAll(ctx, latest(recentBookings),
		shared.FilterByID(affiliate.ID, bookingModel.FieldAffiliateID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get attributed bookings")

		return res, fmt.Errorf("failed to get attributed bookings: %w", err)
	}

	withdrawals, err := s.withdrawals.GetAll(ctx, latest(recentWithdrawals),
		shared.FilterByID(affiliate.ID, withdrawalModel.FieldAffiliateID, withdrawalModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get withdrawals")

		return res, fmt.Errorf("failed to get withdrawals: %w", err)
	}

	res.Affiliate.FromModel(affiliate)

	res.RecentBookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res.RecentBookings[i].FromModel(booking, nil)
	}

	res.RecentWithdrawals = make([]withdrawalDto.WithdrawalResponse, len(withdrawals))
	for i, withdrawal := range withdrawals {
		res.RecentWithdrawals[i].FromModel(withdrawal)
	}

	return res, nil
}

func (s *serviceImpl) UpdateBank(ctx context.Context, req dto.UpdateBankRequest) (res dto.AffiliateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBank")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affiliate, err := s.mine(ctx)
	if err != nil {
		return res, err
	}

	caller := authz.FromContext(ctx)

	if err = s.repo.Update(ctx, shared.TransformFields(req, caller.UserID),
		shared.FilterByID(affiliate.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update bank details")

		return res, fmt.Errorf("failed to update bank details: %w", err)
	}

	affiliate.BankName = req.BankName
	affiliate.BankAccount = req.BankAccount
	affiliate.BankAccountName = req.BankAccountName

	res.FromModel(affiliate)
	s.invalidate(ctx)

	return res, nil
}

// Track captures a referral. A client that already holds a valid token for the same code gets
// it back untouched and is not counted again; any other presentation counts one click and
// starts a fresh attribution window.
func (s *serviceImpl) Track(ctx context.Context, code, token string) (res dto.TrackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Track")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code = model.NormalizeReferralCode(code)
	if code == constant.Empty {
		return res, failure.BadRequestFromString("referral code is required") //nolint:wrapcheck
	}

	if token != constant.Empty {
		claims, err := s.jwt.ParseAttribution(ctx, token)
		if err == nil && claims.Code == code {
			return dto.TrackResponse{
				ReferralCode: code,
				Token:        token,
				ExpiresAt:    claims.ExpiresAt().Format(constant.DateFormat),
			}, nil
		}
	}

	affiliate, err := s.repo.Get(ctx, shared.FilterByID(code, model.FieldReferralCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get affiliate by code")

		return res, fmt.Errorf("failed to get affiliate: %w", err)
	}

	if !affiliate.CanEarn() {
		return res, failure.NotFound("referral code not found") //nolint:wrapcheck
	}

	counted, err := s.repo.IncrementClicks(ctx, affiliate.ID)
	if err != nil {
		return res, fmt.Errorf("failed to count click: %w", err)
	}

	if !counted {
		return res, failure.NotFound("referral code not found") //nolint:wrapcheck
	}

	capturedAt := timezone.Now()

	signed, err := s.jwt.SignAttribution(ctx, code, affiliate.ID, capturedAt)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign attribution")

		return res, fmt.Errorf("failed to sign attribution: %w", err)
	}

	s.metrics.ReferralCaptured()

	return dto.TrackResponse{
		ReferralCode: code,
		Token:        signed,
		ExpiresAt:    capturedAt.Add(jwt.AttributionWindow).Format(constant.DateFormat),
		Captured:     true,
	}, nil
}

func (s *serviceImpl) History(ctx context.Context, req gDto.QueryParams) (res ledgerDto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affiliate, err := s.mine(ctx)
	if err != nil {
		return res, err
	}

	return s.ledger.History(ctx, affiliate.ID, req) //nolint:wrapcheck
}

func (s *serviceImpl) ExportStatement(ctx context.Context) (res ledgerDto.ExportStatementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportStatement")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affiliate, err := s.mine(ctx)
	if err != nil {
		return res, err
	}

	return s.ledger.ExportStatement(ctx, affiliate.ID) //nolint:wrapcheck
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAffiliatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = authz.Require(ctx, constant.RoleAdmin); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAffiliate, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for affiliates")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count affiliates")

		return res, fmt.Errorf("failed to count affiliates: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get affiliates")

		return res, fmt.Errorf("failed to get affiliates: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save affiliates to cache")
		}
	}()

	return res, nil
}

// Update lets an admin suspend an affiliate or change its rate. Balances are not writable here.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateAffiliateRequest) (res dto.AffiliateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx, constant.RoleAdmin)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.Active == nil && req.CommissionRate == nil {
		return res, failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	mod := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller.UserID,
	}

	if req.Active != nil {
		mod[model.FieldActive] = *req.Active
	}

	if req.CommissionRate != nil {
		rate := *req.CommissionRate
		if rate.IsNegative() || rate.GreaterThan(maxCommissionRate) {
			return res, failure.BadRequestFromString("commission rate must be between 0 and 100") //nolint:wrapcheck
		}

		mod[model.FieldCommissionRate] = rate
	}

	if uuid.Validate(id) != nil {
		return res, failure.NotFound("affiliate not found") //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	affiliate, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get affiliate")

		return res, fmt.Errorf("failed to get affiliate: %w", err)
	}

	if affiliate.ID == constant.Empty {
		return res, failure.NotFound("affiliate not found") //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, mod, filter); err != nil {
		log.Error().Err(err).Msg("failed to update affiliate")

		return res, fmt.Errorf("failed to update affiliate: %w", err)
	}

	if req.Active != nil {
		affiliate.Active = *req.Active
	}

	if req.CommissionRate != nil {
		affiliate.CommissionRate = *req.CommissionRate
	}

	log.Info().Str("affiliate", id).Str("by", caller.UserID).Msg("affiliate updated")

	res.FromModel(affiliate)
	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, key, eventType string, data any) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.NewEventMessage(key, eventType, data)
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Affiliate, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish affiliate event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAffiliate)
	}()
}
