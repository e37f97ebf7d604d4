package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"stayledger/config"
	"stayledger/infras/metrics"
	"stayledger/infras/otel"
	"stayledger/infras/s3"
	"stayledger/internal/domains/ledger/model"
	"stayledger/internal/domains/ledger/model/dto"
	"stayledger/internal/domains/ledger/repository"
	"stayledger/shared"
	"stayledger/shared/authz"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
	gModel "stayledger/shared/model"
	"stayledger/shared/timezone"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const statementTimeFormat = "20060102150405"

var statementHeader = []string{"created_at", "kind", "amount", "reference_id", "total_earned", "pending_balance", "paid_balance"}

// Ledger is the only writer of affiliate balances. Every mutation runs inside the caller's
// transaction and appends one entry with the balances it produced.
type Ledger interface {
	CreditBooking(ctx context.Context, sqltx *sqlx.Tx, affiliateID, bookingID string, amount decimal.Decimal) (model.Balance, error)
	ReserveForWithdrawal(ctx context.Context, sqltx *sqlx.Tx, affiliateID, withdrawalID string, amount decimal.Decimal) (model.Balance, error)
	FinalizeWithdrawal(ctx context.Context, sqltx *sqlx.Tx, affiliateID, withdrawalID string, amount decimal.Decimal) (model.Balance, error)
	ReleaseWithdrawal(ctx context.Context, sqltx *sqlx.Tx, affiliateID, withdrawalID string, amount decimal.Decimal) (model.Balance, error)
	History(ctx context.Context, affiliateID string, params gDto.QueryParams) (dto.GetEntriesResponse, error)
	ExportStatement(ctx context.Context, affiliateID string) (dto.ExportStatementResponse, error)
	Reconcile(ctx context.Context) (dto.ReconcileResponse, error)
}

type serviceImpl struct {
	repo    repository.Ledger
	cfg     *config.Config
	otel    otel.Otel
	s3      s3.S3
	metrics *metrics.Metrics
}

func New(repo repository.Ledger, cfg *config.Config, otel otel.Otel, s3 s3.S3, metrics *metrics.Metrics) Ledger {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		otel:    otel,
		s3:      s3,
		metrics: metrics,
	}
}

// CreditBooking adds a booking's commission to earned and pending and counts the booking.
// A zero commission still counts the booking but writes no entry.
func (s *serviceImpl) CreditBooking(ctx context.Context, sqltx *sqlx.Tx, affiliateID, bookingID string, amount decimal.Decimal) (res model.Balance, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreditBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if amount.IsNegative() {
		return res, failure.BadRequestFromString("commission must not be negative") //nolint:wrapcheck
	}

	res, err = s.repo.Credit(ctx, sqltx, affiliateID, amount)
	if err != nil {
		return res, fmt.Errorf("failed to credit commission: %w", err)
	}

	if !res.Found() {
		return res, failure.NotFound("affiliate not found") //nolint:wrapcheck
	}

	if amount.IsZero() {
		return res, nil
	}

	return res, s.appendEntry(ctx, sqltx, model.KindBookingCommission, bookingID, amount, res)
}

// ReserveForWithdrawal moves amount out of pending balance in one conditional statement.
// It fails with an insufficient balance failure when pending balance is smaller than amount
// at the instant the statement runs.
func (s *serviceImpl) ReserveForWithdrawal(ctx context.Context, sqltx *sqlx.Tx, affiliateID, withdrawalID string, amount decimal.Decimal) (res model.Balance, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReserveForWithdrawal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !amount.IsPositive() {
		return res, failure.BadRequestFromString("amount must be positive") //nolint:wrapcheck
	}

	res, err = s.repo.Reserve(ctx, sqltx, affiliateID, amount)
	if err != nil {
		return res, fmt.Errorf("failed to reserve balance: %w", err)
	}

	if !res.Found() {
		return res, failure.InsufficientBalance("amount exceeds pending balance") //nolint:wrapcheck
	}

	return res, s.appendEntry(ctx, sqltx, model.KindWithdrawalReserved, withdrawalID, amount, res)
}

func (s *serviceImpl) FinalizeWithdrawal(ctx context.Context, sqltx *sqlx.Tx, affiliateID, withdrawalID string, amount decimal.Decimal) (res model.Balance, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FinalizeWithdrawal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !amount.IsPositive() {
		return res, failure.BadRequestFromString("amount must be positive") //nolint:wrapcheck
	}

	res, err = s.repo.Finalize(ctx, sqltx, affiliateID, amount)
	if err != nil {
		return res, fmt.Errorf("failed to finalize withdrawal: %w", err)
	}

	if !res.Found() {
		return res, failure.NotFound("affiliate not found") //nolint:wrapcheck
	}

	return res, s.appendEntry(ctx, sqltx, model.KindWithdrawalPaid, withdrawalID, amount, res)
}

func (s *serviceImpl) ReleaseWithdrawal(ctx context.Context, sqltx *sqlx.Tx, affiliateID, withdrawalID string, amount decimal.Decimal) (res model.Balance, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseWithdrawal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !amount.IsPositive() {
		return res, failure.BadRequestFromString("amount must be positive") //nolint:wrapcheck
	}

	res, err = s.repo.Release(ctx, sqltx, affiliateID, amount)
	if err != nil {
		return res, fmt.Errorf("failed to release withdrawal: %w", err)
	}

	if !res.Found() {
		return res, failure.NotFound("affiliate not found") //nolint:wrapcheck
	}

	return res, s.appendEntry(ctx, sqltx, model.KindWithdrawalReleased, withdrawalID, amount, res)
}

func (s *serviceImpl) appendEntry(ctx context.Context, sqltx *sqlx.Tx, kind model.Kind, referenceID string, amount decimal.Decimal, balance model.Balance) error {
	now := timezone.Now()

	entry := model.Entry{
		ID:             uuid.NewString(),
		AffiliateID:    balance.AffiliateID,
		Kind:           kind,
		Amount:         amount,
		ReferenceID:    referenceID,
		TotalEarned:    balance.TotalEarned,
		PendingBalance: balance.PendingBalance,
		PaidBalance:    balance.PaidBalance,
	}
	actor := authz.FromContext(ctx).UserID
	if actor == constant.Empty {
		actor = constant.ActorSystem
	}

	entry.Metadata = gModel.NewMetadata(now, actor)

	if err := s.repo.InsertTx(ctx, sqltx, entry); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("affiliate_id", balance.AffiliateID).Msg("failed to append ledger entry")

		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}

func (s *serviceImpl) History(ctx context.Context, affiliateID string, params gDto.QueryParams) (res dto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(affiliateID, model.FieldAffiliateID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	entries, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	res.FromModels(entries, total, params.Limit)

	return res, nil
}

// ExportStatement renders the affiliate's full history as CSV, oldest first, and uploads it.
func (s *serviceImpl) ExportStatement(ctx context.Context, affiliateID string) (res dto.ExportStatementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportStatement")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, shared.FilterByID(affiliateID, model.FieldAffiliateID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	data, checksum, err := statementCSV(entries)
	if err != nil {
		log.Error().Err(err).Str("affiliate_id", affiliateID).Msg("failed to render statement")

		return res, fmt.Errorf("failed to render statement: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s.csv", affiliateID, timezone.Now().Format(statementTimeFormat))

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, s.cfg.Ledger.StatementDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		return res, failure.Infrastructure(fmt.Errorf("failed to upload statement: %w", err)) //nolint:wrapcheck
	}

	res.URL = url
	res.Entries = len(entries)
	res.Checksum = checksum

	return res, nil
}

// Reconcile reports every affiliate whose stored balances break the ledger equation and
// publishes the count as a gauge.
func (s *serviceImpl) Reconcile(ctx context.Context) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	violations, err := s.repo.FindViolations(ctx)
	if err != nil {
		return res, failure.Infrastructure(fmt.Errorf("failed to reconcile ledger: %w", err)) //nolint:wrapcheck
	}

	s.metrics.LedgerViolations(len(violations))

	for _, v := range violations {
		log.Error().
			Str("affiliate_id", v.AffiliateID).
			Str("total_earned", v.TotalEarned.String()).
			Str("pending_balance", v.PendingBalance.String()).
			Str("paid_balance", v.PaidBalance.String()).
			Str("reserved", v.Reserved.String()).
			Msg("ledger invariant violated")
	}

	res.FromModels(violations)
	res.CheckedAt = timezone.Now().Format(constant.DateFormat)

	return res, nil
}

func statementCSV(entries []model.Entry) ([]byte, string, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	if err := writer.Write(statementHeader); err != nil {
		return nil, constant.Empty, fmt.Errorf("failed to write statement header: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.CreatedAt.Format(constant.DateFormat),
			string(entry.Kind),
			entry.Amount.StringFixed(constant.MoneyScale),
			entry.ReferenceID,
			entry.TotalEarned.StringFixed(constant.MoneyScale),
			entry.PendingBalance.StringFixed(constant.MoneyScale),
			entry.PaidBalance.StringFixed(constant.MoneyScale),
		}

		if err := writer.Write(record); err != nil {
			return nil, constant.Empty, fmt.Errorf("failed to write statement row %s: %w", strconv.Quote(entry.ID), err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, constant.Empty, fmt.Errorf("failed to flush statement: %w", err)
	}

	data := buffer.Bytes()
	sum := sha256.Sum256(data)

	return data, hex.EncodeToString(sum[:]), nil
}
