package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stayledger/config"
	"stayledger/infras/jwt"
	jwtMocks "stayledger/infras/jwt/mocks"
	kafkaMocks "stayledger/infras/kafka/mocks"
	"stayledger/infras/metrics"
	"stayledger/infras/otel/mocks"
	affiliateMocks "stayledger/internal/domains/affiliate/mocks"
	"stayledger/internal/domains/affiliate/model"
	"stayledger/internal/domains/affiliate/model/dto"
	"stayledger/internal/domains/affiliate/service"
	bookingMocks "stayledger/internal/domains/booking/mocks"
	bookingModel "stayledger/internal/domains/booking/model"
	ledgerDto "stayledger/internal/domains/ledger/model/dto"
	ledgerMocks "stayledger/internal/domains/ledger/service/mocks"
	userMocks "stayledger/internal/domains/user/mocks"
	userModel "stayledger/internal/domains/user/model"
	withdrawalMocks "stayledger/internal/domains/withdrawal/mocks"
	withdrawalModel "stayledger/internal/domains/withdrawal/model"
	"stayledger/shared/authz"
	cacheMocks "stayledger/shared/cache/mocks"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
	gRepo "stayledger/shared/repository"
	repoMocks "stayledger/shared/repository/mocks"
)

const (
	userID      = "user-1"
	affiliateID = "a3c1d1de-6f5e-4c1e-8a3f-2b9f9d8e7c02"
)

type fixture struct {
	svc         service.Affiliate
	repo        *affiliateMocks.MockAffiliate
	bookings    *bookingMocks.MockBooking
	withdrawals *withdrawalMocks.MockWithdrawal
	users       *userMocks.MockUser
	ledger      *ledgerMocks.MockLedger
	jwt         *jwtMocks.MockJWT
	cache       *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        affiliateMocks.NewMockAffiliate(ctrl),
		bookings:    bookingMocks.NewMockBooking(ctrl),
		withdrawals: withdrawalMocks.NewMockWithdrawal(ctrl),
		users:       userMocks.NewMockUser(ctrl),
		ledger:      ledgerMocks.NewMockLedger(ctrl),
		jwt:         jwtMocks.NewMockJWT(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	tx := repoMocks.NewMockTransactor(ctrl)
	tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Ledger.DefaultCommissionRate = decimal.NewFromInt(10)
	cfg.Kafka.Topics.Affiliate = "stayledger.affiliate"

	f.svc = service.New(f.repo, f.bookings, f.withdrawals, f.users, f.ledger, tx, f.jwt,
		mockKafka, f.cache, cfg, mocks.NewOtel(), metrics.New())

	return f
}

func asCaller(role string) context.Context {
	return authz.WithCaller(context.Background(), authz.Caller{UserID: userID, Email: "aff@example.com", Role: role})
}

func existing() model.Affiliate {
	return model.Affiliate{
		ID:             affiliateID,
		UserID:         userID,
		ReferralCode:   "REFABC234",
		CommissionRate: decimal.NewFromInt(10),
		PendingBalance: decimal.NewFromInt(500),
		TotalEarned:    decimal.NewFromInt(500),
		Active:         true,
	}
}

func TestAffiliateService_Register(t *testing.T) {
	tests := []struct {
		name        string
		ctx         context.Context
		setupMock   func(f fixture)
		wantCreated bool
		wantReason  string
	}{
		{
			name: "guest becomes affiliate",
			ctx:  asCaller(constant.RoleGuest),
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil)
				f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, affiliate model.Affiliate) (bool, error) {
						assert.Equal(t, userID, affiliate.UserID)
						assert.Regexp(t, `^REF[A-Z2-9]{6}$`, affiliate.ReferralCode)
						assert.True(t, affiliate.CommissionRate.Equal(decimal.NewFromInt(10)))
						assert.True(t, affiliate.PendingBalance.IsZero())
						assert.True(t, affiliate.Active)

						return true, nil
					})
				f.users.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoleAffiliate, fields[userModel.FieldLevel])

						return nil
					})
			},
			wantCreated: true,
		},
		{
			name: "admin keeps role",
			ctx:  asCaller(constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil)
				f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCreated: true,
		},
		{
			name: "already registered is idempotent",
			ctx:  asCaller(constant.RoleAffiliate),
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(existing(), nil)
			},
			wantCreated: false,
		},
		{
			name: "concurrent registration wins",
			ctx:  asCaller(constant.RoleGuest),
			setupMock: func(f fixture) {
				gomock.InOrder(
					f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil),
					f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
					f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(existing(), nil),
				)
			},
			wantCreated: false,
		},
		{
			name: "code collision retries",
			ctx:  asCaller(constant.RoleAdmin),
			setupMock: func(f fixture) {
				gomock.InOrder(
					f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil),
					f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
					f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil),
					f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil),
				)
			},
			wantCreated: true,
		},
		{
			name: "codes exhausted",
			ctx:  asCaller(constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil).Times(6)
				f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(5)
			},
			wantReason: failure.ReasonConflict,
		},
		{
			name:       "anonymous",
			ctx:        context.Background(),
			setupMock:  func(fixture) {},
			wantReason: failure.ReasonUnauthorized,
		},
		{
			name: "promotion fails rolls back",
			ctx:  asCaller(constant.RoleGuest),
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone).Return(model.Affiliate{}, nil)
				f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.users.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantReason: failure.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, created, err := f.svc.Register(tt.ctx)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.NotEmpty(t, res.ReferralCode)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestAffiliateService_Track(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		token        string
		setupMock    func(f fixture)
		wantToken    string
		wantCaptured bool
		wantReason   string
	}{
		{
			name: "first capture counts a click",
			code: " refabc234 ",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
				f.repo.EXPECT().IncrementClicks(gomock.Any(), affiliateID).Return(true, nil)
				f.jwt.EXPECT().SignAttribution(gomock.Any(), "REFABC234", affiliateID, gomock.Any()).Return("signed", nil)
			},
			wantToken:    "signed",
			wantCaptured: true,
		},
		{
			name:  "same code with current token is not recounted",
			code:  "REFABC234",
			token: "held",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ParseAttribution(gomock.Any(), "held").
					Return(&jwt.AttributionClaims{Code: "REFABC234", AffiliateID: affiliateID, CapturedAt: time.Now()}, nil)
			},
			wantToken: "held",
		},
		{
			name:  "different code replaces attribution",
			code:  "REFABC234",
			token: "held",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ParseAttribution(gomock.Any(), "held").
					Return(&jwt.AttributionClaims{Code: "REFOTHER1", AffiliateID: "other", CapturedAt: time.Now()}, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
				f.repo.EXPECT().IncrementClicks(gomock.Any(), affiliateID).Return(true, nil)
				f.jwt.EXPECT().SignAttribution(gomock.Any(), "REFABC234", affiliateID, gomock.Any()).Return("fresh", nil)
			},
			wantToken:    "fresh",
			wantCaptured: true,
		},
		{
			name:  "expired token recaptures",
			code:  "REFABC234",
			token: "old",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ParseAttribution(gomock.Any(), "old").Return(nil, jwt.ErrExpiredToken)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
				f.repo.EXPECT().IncrementClicks(gomock.Any(), affiliateID).Return(true, nil)
				f.jwt.EXPECT().SignAttribution(gomock.Any(), "REFABC234", affiliateID, gomock.Any()).Return("fresh", nil)
			},
			wantToken:    "fresh",
			wantCaptured: true,
		},
		{
			name: "unknown code",
			code: "REFNOPE22",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Affiliate{}, nil)
			},
			wantReason: failure.ReasonNotFound,
		},
		{
			name: "inactive affiliate",
			code: "REFABC234",
			setupMock: func(f fixture) {
				inactive := existing()
				inactive.Active = false

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantReason: failure.ReasonNotFound,
		},
		{
			name: "deactivated between read and count",
			code: "REFABC234",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
				f.repo.EXPECT().IncrementClicks(gomock.Any(), affiliateID).Return(false, nil)
			},
			wantReason: failure.ReasonNotFound,
		},
		{
			name:       "blank code",
			code:       "   ",
			setupMock:  func(fixture) {},
			wantReason: failure.ReasonValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Track(context.Background(), tt.code, tt.token)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, res.Token)
			assert.Equal(t, tt.wantCaptured, res.Captured)
			assert.Equal(t, "REFABC234", res.ReferralCode)
			assert.NotEmpty(t, res.ExpiresAt)
		})
	}
}

func TestAffiliateService_Me(t *testing.T) {
	t.Run("dashboard", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
				assert.Equal(t, 10, params.Limit)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []bookingModel.Booking{{ID: "b1"}, {ID: "b2"}}, nil
			})
		f.withdrawals.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]withdrawalModel.Withdrawal, error) {
				assert.Equal(t, 5, params.Limit)

				return []withdrawalModel.Withdrawal{{ID: "w1", Status: withdrawalModel.StatusPending}}, nil
			})

		res, err := f.svc.Me(asCaller(constant.RoleAffiliate))

		assert.NoError(t, err)
		assert.Equal(t, affiliateID, res.Affiliate.ID)
		assert.True(t, res.Affiliate.PendingBalance.Equal(decimal.NewFromInt(500)))
		assert.Len(t, res.RecentBookings, 2)
		assert.Len(t, res.RecentWithdrawals, 1)
	})

	t.Run("not registered", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Affiliate{}, nil)

		_, err := f.svc.Me(asCaller(constant.RoleGuest))

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})
}

func TestAffiliateService_UpdateBank(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "KBank", fields[model.FieldBankName])
			assert.Equal(t, "123-4-56789-0", fields[model.FieldBankAccount])

			return nil
		})

	res, err := f.svc.UpdateBank(asCaller(constant.RoleAffiliate), dto.UpdateBankRequest{
		BankName:        "KBank",
		BankAccount:     "123-4-56789-0",
		BankAccountName: "Somchai Jaidee",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Somchai Jaidee", res.BankAccountName)

	time.Sleep(10 * time.Millisecond)
}

func TestAffiliateService_Update(t *testing.T) {
	active := false
	rate := decimal.NewFromInt(15)
	tooHigh := decimal.NewFromInt(101)

	adminCtx := asCaller(constant.RoleAdmin)

	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.UpdateAffiliateRequest
		setupMock  func(f fixture)
		wantReason string
	}{
		{
			name: "suspend and change rate",
			ctx:  adminCtx,
			req:  dto.UpdateAffiliateRequest{Active: &active, CommissionRate: &rate},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldActive])
						assert.Equal(t, rate, fields[model.FieldCommissionRate])
						assert.NotContains(t, fields, "pending_balance")

						return nil
					})
			},
		},
		{
			name:       "not admin",
			ctx:        asCaller(constant.RoleAffiliate),
			req:        dto.UpdateAffiliateRequest{Active: &active},
			setupMock:  func(fixture) {},
			wantReason: failure.ReasonForbidden,
		},
		{
			name:       "empty request",
			ctx:        adminCtx,
			req:        dto.UpdateAffiliateRequest{},
			setupMock:  func(fixture) {},
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "rate out of range",
			ctx:        adminCtx,
			req:        dto.UpdateAffiliateRequest{CommissionRate: &tooHigh},
			setupMock:  func(fixture) {},
			wantReason: failure.ReasonValidation,
		},
		{
			name: "unknown affiliate",
			ctx:  adminCtx,
			req:  dto.UpdateAffiliateRequest{Active: &active},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Affiliate{}, nil)
			},
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(tt.ctx, affiliateID, tt.req)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.False(t, res.Active)
			assert.True(t, res.CommissionRate.Equal(rate))

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestAffiliateService_History(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 20}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
	f.ledger.EXPECT().History(gomock.Any(), affiliateID, params).
		Return(ledgerDto.GetEntriesResponse{TotalData: 3}, nil)

	res, err := f.svc.History(asCaller(constant.RoleAffiliate), params)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
}

func TestAffiliateService_ExportStatement(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(), nil)
	f.ledger.EXPECT().ExportStatement(gomock.Any(), affiliateID).
		Return(ledgerDto.ExportStatementResponse{URL: "https://bucket/statements/a.csv", Entries: 2}, nil)

	res, err := f.svc.ExportStatement(asCaller(constant.RoleAffiliate))

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Entries)
}

func TestAffiliateService_GetAll(t *testing.T) {
	t.Run("admin list", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Affiliate{existing()}, nil)

		res, err := f.svc.GetAll(asCaller(constant.RoleAdmin), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Affiliates, 1)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("forbidden for affiliates", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetAll(asCaller(constant.RoleAffiliate), gDto.QueryParams{}, gDto.FilterGroup{})

		assert.Equal(t, failure.ReasonForbidden, failure.GetReason(err))
	})
}
