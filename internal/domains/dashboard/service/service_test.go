package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stayledger/config"
	"stayledger/infras/otel/mocks"
	dashboardMocks "stayledger/internal/domains/dashboard/mocks"
	"stayledger/internal/domains/dashboard/model"
	"stayledger/internal/domains/dashboard/model/dto"
	"stayledger/internal/domains/dashboard/service"
	"stayledger/shared/authz"
	cacheMocks "stayledger/shared/cache/mocks"
	"stayledger/shared/constant"
	"stayledger/shared/failure"
)

func TestDashboardService_Stats(t *testing.T) {
	adminCtx := authz.WithCaller(context.Background(), authz.Caller{UserID: "admin-1", Role: constant.RoleAdmin})

	tests := []struct {
		name       string
		ctx        context.Context
		setupMock  func(repo *dashboardMocks.MockDashboard, redis *cacheMocks.MockRedisCache)
		wantReason string
	}{
		{
			name: "computes on cache miss",
			ctx:  adminCtx,
			setupMock: func(repo *dashboardMocks.MockDashboard, redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Get(gomock.Any(), "dashboard:stats", gomock.Any()).Return(errors.New("cache miss"))
				redis.EXPECT().Save(gomock.Any(), "dashboard:stats", gomock.Any(), 60).Return(nil).AnyTimes()
				repo.EXPECT().Totals(gomock.Any()).Return(model.Totals{
					Bookings:          4,
					Revenue:           decimal.NewFromInt(5960),
					Affiliates:        2,
					DirectBookings:    3,
					AffiliateBookings: 1,
				}, nil)
				repo.EXPECT().RevenueByType(gomock.Any()).Return([]model.RevenueByType{
					{Type: "ROOM", Revenue: decimal.NewFromInt(5960)},
				}, nil)
				repo.EXPECT().TopProducts(gomock.Any(), 5).Return([]model.TopProduct{
					{ProductID: "p1", Name: "Deluxe Room", Quantity: 4},
				}, nil)
			},
		},
		{
			name: "cache hit",
			ctx:  adminCtx,
			setupMock: func(_ *dashboardMocks.MockDashboard, redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Get(gomock.Any(), "dashboard:stats", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res := value.(*dto.StatsResponse)
						res.TotalBookings = 4
						res.DirectBookings = 3
						res.AffiliateBookings = 1
						res.TotalRevenue = decimal.NewFromInt(5960)

						return nil
					})
			},
		},
		{
			name: "repository error",
			ctx:  adminCtx,
			setupMock: func(repo *dashboardMocks.MockDashboard, redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Totals(gomock.Any()).Return(model.Totals{}, errors.New("db down"))
			},
			wantReason: failure.ReasonInternal,
		},
		{
			name:       "not admin",
			ctx:        authz.WithCaller(context.Background(), authz.Caller{UserID: "u", Role: constant.RoleAffiliate}),
			setupMock:  func(*dashboardMocks.MockDashboard, *cacheMocks.MockRedisCache) {},
			wantReason: failure.ReasonForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := dashboardMocks.NewMockDashboard(ctrl)
			redis := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(repo, redis)

			cfg := &config.Config{}
			cfg.Cache.TTL = 60

			svc := service.New(repo, cfg, redis, mocks.NewOtel())

			res, err := svc.Stats(tt.ctx)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 4, res.TotalBookings)
			assert.Equal(t, res.TotalBookings, res.DirectBookings+res.AffiliateBookings)
			assert.True(t, res.TotalRevenue.Equal(decimal.NewFromInt(5960)))

			time.Sleep(10 * time.Millisecond)
		})
	}
}
