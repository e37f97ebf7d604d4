package repository

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/shared/constant"
	"stayledger/shared/failure"
	"stayledger/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// TxFunc runs inside a single database transaction.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// Transactor commits everything a TxFunc writes as one unit, or nothing.
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type transactorImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewTransactor(db *postgres.Connection, otl otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otl,
	}
}

// WithinTx rolls back on any error or panic. Errors that are not already a *failure.Failure
// come from the store and are reported as retryable infrastructure failures.
func (t *transactorImpl) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".WithinTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return failure.Infrastructure(fmt.Errorf("failed to begin transaction: %w", err)) //nolint:wrapcheck
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		var fail *failure.Failure
		if errors.As(err, &fail) {
			return err
		}

		return failure.Infrastructure(err) //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return failure.Infrastructure(fmt.Errorf("failed to commit transaction: %w", err)) //nolint:wrapcheck
	}

	return nil
}
