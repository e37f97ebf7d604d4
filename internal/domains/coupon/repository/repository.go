package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/internal/domains/coupon/model"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/logger"
	gRepo "stayledger/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// queryRedeem re-checks usability under the row lock so two bookings cannot take the last use.
const queryRedeem = `UPDATE coupons SET used_count = used_count + 1
		WHERE id = $1 AND active AND valid_from <= $2 AND valid_until >= $2
		AND (max_uses IS NULL OR used_count < max_uses)`

type Coupon interface {
	Insert(ctx context.Context, model model.Coupon) error
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, lock string) (model.Coupon, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Coupon, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	RedeemTx(ctx context.Context, sqltx *sqlx.Tx, id string, at time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Coupon]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Coupon {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Coupon](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RedeemTx takes one use of the coupon. It reports false when the coupon stopped being usable.
func (r *repositoryImpl) RedeemTx(ctx context.Context, sqltx *sqlx.Tx, id string, at time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".coupon.RedeemTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryRedeem)

	result, err := sqltx.ExecContext(ctx, queryRedeem, id, at)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (coupon): %w", err)
	}

	return affected == 1, nil
}
