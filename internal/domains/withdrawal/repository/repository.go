package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/internal/domains/withdrawal/model"
	gDto "stayledger/shared/dto"
	gRepo "stayledger/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Withdrawal interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Withdrawal) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Withdrawal, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, lock string) (model.Withdrawal, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Withdrawal, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CompareAndUpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Withdrawal]
}

func New(db *postgres.Connection, otel otel.Otel) Withdrawal {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Withdrawal](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
