package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/internal/domains/product/model"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	gRepo "stayledger/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Product interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Product, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Product, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	FindByIDsTx(ctx context.Context, sqltx *sqlx.Tx, ids []string) (map[string]model.Product, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Product]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Product {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Product](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// FindByIDsTx reads every requested product in a single statement, holding a share lock so
// no price update can commit between the read and the end of the caller's transaction.
// Ids that do not exist are simply absent from the result.
func (r *repositoryImpl) FindByIDsTx(ctx context.Context, sqltx *sqlx.Tx, ids []string) (map[string]model.Product, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".product.FindByIDsTx")
	defer scope.End()

	res := make(map[string]model.Product, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    model.TableName,
			},
		},
	}

	products, err := r.SelectTx(ctx, sqltx, filter, gRepo.LockForShare)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	for _, product := range products {
		res[product.ID] = product
	}

	return res, nil
}
