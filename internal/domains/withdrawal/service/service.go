package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayledger/config"
	"stayledger/infras/kafka"
	"stayledger/infras/metrics"
	"stayledger/infras/otel"
	affiliateModel "stayledger/internal/domains/affiliate/model"
	affiliateRepo "stayledger/internal/domains/affiliate/repository"
	ledgerService "stayledger/internal/domains/ledger/service"
	"stayledger/internal/domains/withdrawal/model"
	"stayledger/internal/domains/withdrawal/model/dto"
	"stayledger/internal/domains/withdrawal/repository"
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
)

const (
	cachePrefixWithdrawal = "withdrawal"
	cacheGetAllWithdrawal = "withdrawal:gets"
)

type Withdrawal interface {
	Request(ctx context.Context, req dto.CreateWithdrawalRequest) (dto.WithdrawalResponse, error)
	Decide(ctx context.Context, id string, req dto.DecideWithdrawalRequest) (dto.WithdrawalResponse, error)
	Mine(ctx context.Context, req gDto.QueryParams) (dto.GetWithdrawalsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetWithdrawalsResponse, error)
}

type serviceImpl struct {
	repo       repository.Withdrawal
	affiliates affiliateRepo.Affiliate
	ledger     ledgerService.Ledger
	tx         gRepo.Transactor
	kafka      kafka.Client
	cache      cache.RedisCache
	cfg        *config.Config
	otel       otel.Otel
	metrics    *metrics.Metrics
}

func New(
	repo repository.Withdrawal,
	affiliates affiliateRepo.Affiliate,
	ledger ledgerService.Ledger,
	tx gRepo.Transactor,
	kafka kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Withdrawal {
	return &serviceImpl{
		repo:       repo,
		affiliates: affiliates,
		ledger:     ledger,
		tx:         tx,
		kafka:      kafka,
		cache:      cache,
		cfg:        cfg,
		otel:       otel,
		metrics:    metrics,
	}
}

// Request creates a PENDING withdrawal and reserves its amount from the pending balance in the
// same transaction. The balance check here only produces a friendlier error; the reservation
// itself is the authoritative check.
func (s *serviceImpl) Request(ctx context.Context, req dto.CreateWithdrawalRequest) (res dto.WithdrawalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	affiliate, err := s.affiliates.Get(ctx, shared.FilterByID(caller.UserID, affiliateModel.FieldUserID, affiliateModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get affiliate")

		return res, fmt.Errorf("failed to get affiliate: %w", err)
	}

	if affiliate.ID == constant.Empty {
		return res, failure.NotFound("affiliate not registered") //nolint:wrapcheck
	}

	if !affiliate.HasBankDetails() {
		return res, failure.PreconditionFailed("bank details are required before requesting a withdrawal") //nolint:wrapcheck
	}

	if req.Amount.LessThan(s.cfg.Ledger.MinimumWithdrawal) {
		return res, failure.BadRequestFromString(fmt.Sprintf("minimum withdrawal is %s", //nolint:wrapcheck
			s.cfg.Ledger.MinimumWithdrawal.StringFixed(constant.MoneyScale)))
	}

	if req.Amount.GreaterThan(affiliate.PendingBalance) {
		return res, failure.InsufficientBalance("amount exceeds pending balance") //nolint:wrapcheck
	}

	now := timezone.Now()
	withdrawal := model.Withdrawal{
		ID:              uuid.NewString(),
		AffiliateID:     affiliate.ID,
		Amount:          req.Amount,
		Status:          model.StatusPending,
		BankName:        affiliate.BankName,
		BankAccount:     affiliate.BankAccount,
		BankAccountName: affiliate.BankAccountName,
		Notes:           req.Notes,
		Metadata:        gModel.NewMetadata(now, caller.UserID),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, sqltx, withdrawal); err != nil {
			return fmt.Errorf("failed to insert withdrawal: %w", err)
		}

		_, err := s.ledger.ReserveForWithdrawal(ctx, sqltx, affiliate.ID, withdrawal.ID, withdrawal.Amount)

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("affiliate", affiliate.ID).Msg("failed to request withdrawal")

		return res, err //nolint:wrapcheck
	}

	log.Info().
		Str("withdrawal", withdrawal.ID).
		Str("affiliate", affiliate.ID).
		Str("amount", withdrawal.Amount.StringFixed(constant.MoneyScale)).
		Msg("withdrawal requested")

	s.metrics.WithdrawalRequested()

	res.FromModel(withdrawal)

	s.publish(ctx, withdrawal.ID, kafka.EventWithdrawalRequested, res)
	s.invalidate(ctx)

	return res, nil
}

// Decide applies an admin decision to a PENDING withdrawal. The status change is conditional on
// the row still being PENDING so only one of several concurrent decisions takes effect.
func (s *serviceImpl) Decide(ctx context.Context, id string, req dto.DecideWithdrawalRequest) (res dto.WithdrawalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Decide")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx, constant.RoleAdmin)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	decision := model.Decision(req.Decision)
	if decision != model.DecisionApprove && decision != model.DecisionReject {
		return res, failure.BadRequestFromString("decision must be approve or reject") //nolint:wrapcheck
	}

	if uuid.Validate(id) != nil {
		return res, failure.NotFound("withdrawal not found") //nolint:wrapcheck
	}

	var withdrawal model.Withdrawal

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		withdrawal, err = s.repo.GetTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName), gRepo.LockForUpdate)
		if err != nil {
			return fmt.Errorf("failed to get withdrawal: %w", err)
		}

		if withdrawal.ID == constant.Empty {
			return failure.NotFound("withdrawal not found") //nolint:wrapcheck
		}

		if withdrawal.Status != model.StatusPending {
			return failure.Conflict(fmt.Sprintf("withdrawal already %s", withdrawal.Status)) //nolint:wrapcheck
		}

		update := dto.UpdateDecisionRequest{
			Status:      decision.Status(),
			ProcessedAt: timezone.Now(),
			ProcessedBy: caller.UserID,
			TransferRef: req.TransferRef,
			Notes:       req.Notes,
		}

		affected, err := s.repo.CompareAndUpdateTx(ctx, sqltx, shared.TransformFields(update, caller.UserID), pendingGuard(id))
		if err != nil {
			return fmt.Errorf("failed to update withdrawal: %w", err)
		}

		if affected == 0 {
			return failure.Conflict("withdrawal was decided concurrently") //nolint:wrapcheck
		}

		withdrawal.Status = update.Status
		withdrawal.ProcessedAt.Time, withdrawal.ProcessedAt.Valid = update.ProcessedAt, true
		withdrawal.ProcessedBy = update.ProcessedBy

		if req.TransferRef != constant.Empty {
			withdrawal.TransferRef = req.TransferRef
		}

		if req.Notes != constant.Empty {
			withdrawal.Notes = req.Notes
		}

		if decision == model.DecisionApprove {
			_, err = s.ledger.FinalizeWithdrawal(ctx, sqltx, withdrawal.AffiliateID, withdrawal.ID, withdrawal.Amount)
		} else {
			_, err = s.ledger.ReleaseWithdrawal(ctx, sqltx, withdrawal.AffiliateID, withdrawal.ID, withdrawal.Amount)
		}

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("withdrawal", id).Msg("failed to decide withdrawal")

		return res, err //nolint:wrapcheck
	}

	log.Info().
		Str("withdrawal", withdrawal.ID).
		Str("status", string(withdrawal.Status)).
		Str("by", caller.UserID).
		Msg("withdrawal decided")

	s.metrics.WithdrawalDecided(string(withdrawal.Status))

	res.FromModel(withdrawal)

	s.publish(ctx, withdrawal.ID, kafka.EventWithdrawalDecided, res)
	s.invalidate(ctx)

	return res, nil
}

func pendingGuard(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  model.ArgCurrentStatus,
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusPending,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams) (res dto.GetWithdrawalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := authz.Require(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	affiliate, err := s.affiliates.Get(ctx, shared.FilterByID(caller.UserID, affiliateModel.FieldUserID, affiliateModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get affiliate")

		return res, fmt.Errorf("failed to get affiliate: %w", err)
	}

	if affiliate.ID == constant.Empty {
		return res, failure.NotFound("affiliate not registered") //nolint:wrapcheck
	}

	return s.list(ctx, req, shared.FilterByID(affiliate.ID, model.FieldAffiliateID, model.TableName))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetWithdrawalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = authz.Require(ctx, constant.RoleAdmin); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetWithdrawalsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllWithdrawal, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for withdrawals")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count withdrawals")

		return res, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get withdrawals")

		return res, fmt.Errorf("failed to get withdrawals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save withdrawals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, key, eventType string, data any) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.NewEventMessage(key, eventType, data)
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Withdrawal, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish withdrawal event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cachePrefixWithdrawal)
	}()
}
