package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/internal/domains/affiliate/model"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/logger"
	gRepo "stayledger/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	queryInsertIfAbsent = `INSERT INTO affiliates (id, user_id, referral_code, commission_rate, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :user_id, :referral_code, :commission_rate, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT DO NOTHING`

	queryIncrementClicks = `UPDATE affiliates SET total_clicks = total_clicks + 1 WHERE id = $1 AND active`
)

type Affiliate interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Affiliate, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, lock string) (model.Affiliate, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Affiliate, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	InsertIfAbsentTx(ctx context.Context, sqltx *sqlx.Tx, affiliate model.Affiliate) (bool, error)
	IncrementClicks(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Affiliate]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Affiliate {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Affiliate](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertIfAbsentTx reports false when a row with the same user or referral code already exists.
func (r *repositoryImpl) InsertIfAbsentTx(ctx context.Context, sqltx *sqlx.Tx, affiliate model.Affiliate) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".affiliate.InsertIfAbsentTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryInsertIfAbsent)

	result, err := sqltx.NamedExecContext(ctx, queryInsertIfAbsent, affiliate)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to insert affiliate: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (affiliate): %w", err)
	}

	return affected == 1, nil
}

func (r *repositoryImpl) IncrementClicks(ctx context.Context, id string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".affiliate.IncrementClicks")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryIncrementClicks)

	result, err := r.db.Write.ExecContext(ctx, queryIncrementClicks, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to increment clicks: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (affiliate): %w", err)
	}

	return affected == 1, nil
}
