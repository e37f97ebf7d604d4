package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/internal/domains/ledger/model"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/logger"
	gRepo "stayledger/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const balanceColumns = "id, total_earned, pending_balance, paid_balance, total_bookings"

// Each mutation is a single UPDATE evaluated against the stored row, so concurrent writers
// serialize on the row lock instead of overwriting each other's reads.
const (
	queryCredit = `UPDATE affiliates
		SET total_earned = total_earned + $2, pending_balance = pending_balance + $2,
			total_bookings = total_bookings + 1, modified_at = NOW()
		WHERE id = $1
		RETURNING ` + balanceColumns

	queryReserve = `UPDATE affiliates
		SET pending_balance = pending_balance - $2, modified_at = NOW()
		WHERE id = $1 AND pending_balance >= $2
		RETURNING ` + balanceColumns

	queryFinalize = `UPDATE affiliates
		SET paid_balance = paid_balance + $2, modified_at = NOW()
		WHERE id = $1
		RETURNING ` + balanceColumns

	queryRelease = `UPDATE affiliates
		SET pending_balance = pending_balance + $2, modified_at = NOW()
		WHERE id = $1
		RETURNING ` + balanceColumns

	queryViolations = `SELECT a.id, a.referral_code, a.total_earned, a.pending_balance, a.paid_balance,
			COALESCE(SUM(w.amount) FILTER (WHERE w.status = 'PENDING'), 0) AS reserved
		FROM affiliates a
		LEFT JOIN withdrawals w ON w.affiliate_id = a.id
		GROUP BY a.id
		HAVING a.total_earned <> a.pending_balance + a.paid_balance
			+ COALESCE(SUM(w.amount) FILTER (WHERE w.status = 'PENDING'), 0)
		ORDER BY a.id`
)

type Ledger interface {
	Credit(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error)
	Reserve(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error)
	Finalize(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error)
	Release(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, entry model.Entry) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Entry, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	FindViolations(ctx context.Context) ([]model.Violation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Entry]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Ledger {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Entry](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Credit(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error) {
	return r.mutate(ctx, sqltx, "Credit", queryCredit, affiliateID, amount)
}

// Reserve returns a zero Balance when the affiliate does not hold amount in pending balance.
func (r *repositoryImpl) Reserve(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error) {
	return r.mutate(ctx, sqltx, "Reserve", queryReserve, affiliateID, amount)
}

func (r *repositoryImpl) Finalize(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error) {
	return r.mutate(ctx, sqltx, "Finalize", queryFinalize, affiliateID, amount)
}

func (r *repositoryImpl) Release(ctx context.Context, sqltx *sqlx.Tx, affiliateID string, amount decimal.Decimal) (model.Balance, error) {
	return r.mutate(ctx, sqltx, "Release", queryRelease, affiliateID, amount)
}

func (r *repositoryImpl) mutate(ctx context.Context, sqltx *sqlx.Tx, name, query, affiliateID string, amount decimal.Decimal) (model.Balance, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ledger."+name)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var balance model.Balance

	err := sqltx.GetContext(ctx, &balance, query, affiliateID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Balance{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Balance{}, fmt.Errorf("failed to apply ledger %s: %w", name, err)
	}

	return balance, nil
}

func (r *repositoryImpl) FindViolations(ctx context.Context) ([]model.Violation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ledger.FindViolations")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryViolations)

	violations := []model.Violation{}

	if err := r.db.Read.SelectContext(ctx, &violations, queryViolations); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find ledger violations: %w", err)
	}

	return violations, nil
}
