package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/internal/domains/dashboard/model"
	"stayledger/shared/constant"
	"stayledger/shared/logger"
)

// Revenue only counts settled money.
const (
	queryTotals = `SELECT
			(SELECT COUNT(*) FROM bookings) AS bookings,
			(SELECT COALESCE(SUM(total), 0) FROM bookings WHERE payment_status = 'PAID') AS revenue,
			(SELECT COUNT(*) FROM affiliates) AS affiliates,
			(SELECT COUNT(*) FROM withdrawals WHERE status = 'PENDING') AS pending_withdrawals,
			(SELECT COUNT(*) FROM bookings WHERE affiliate_id IS NULL) AS direct_bookings,
			(SELECT COUNT(*) FROM bookings WHERE affiliate_id IS NOT NULL) AS affiliate_bookings`

	queryRevenueByType = `SELECT p.type, COALESCE(SUM(i.total_price), 0) AS revenue
		FROM booking_items i
		JOIN bookings b ON b.id = i.booking_id
		JOIN products p ON p.id = i.product_id
		WHERE b.payment_status = 'PAID'
		GROUP BY p.type
		ORDER BY revenue DESC`

	queryTopProducts = `SELECT p.id AS product_id, p.name, SUM(i.quantity) AS quantity
		FROM booking_items i
		JOIN products p ON p.id = i.product_id
		GROUP BY p.id, p.name
		ORDER BY quantity DESC, p.name
		LIMIT $1`
)

type Dashboard interface {
	Totals(ctx context.Context) (model.Totals, error)
	RevenueByType(ctx context.Context) ([]model.RevenueByType, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Dashboard {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) Totals(ctx context.Context) (model.Totals, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dashboard.Totals")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTotals)

	var totals model.Totals

	if err := r.db.Read.GetContext(ctx, &totals, queryTotals); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return totals, fmt.Errorf("failed to get dashboard totals: %w", err)
	}

	return totals, nil
}

func (r *repositoryImpl) RevenueByType(ctx context.Context) ([]model.RevenueByType, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dashboard.RevenueByType")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryRevenueByType)

	rows := []model.RevenueByType{}

	if err := r.db.Read.SelectContext(ctx, &rows, queryRevenueByType); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get revenue by type: %w", err)
	}

	return rows, nil
}

func (r *repositoryImpl) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dashboard.TopProducts")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTopProducts)

	rows := []model.TopProduct{}

	if err := r.db.Read.SelectContext(ctx, &rows, queryTopProducts, limit); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get top products: %w", err)
	}

	return rows, nil
}
