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
	"stayledger/infras/jwt"
	jwtMocks "stayledger/infras/jwt/mocks"
	kafkaMocks "stayledger/infras/kafka/mocks"
	"stayledger/infras/metrics"
	"stayledger/infras/otel/mocks"
	promptpayMocks "stayledger/infras/promptpay/mocks"
	affiliateMocks "stayledger/internal/domains/affiliate/mocks"
	affiliateModel "stayledger/internal/domains/affiliate/model"
	bookingMocks "stayledger/internal/domains/booking/mocks"
	"stayledger/internal/domains/booking/model"
	"stayledger/internal/domains/booking/model/dto"
	"stayledger/internal/domains/booking/service"
	couponModel "stayledger/internal/domains/coupon/model"
	couponMocks "stayledger/internal/domains/coupon/service/mocks"
	ledgerModel "stayledger/internal/domains/ledger/model"
	ledgerMocks "stayledger/internal/domains/ledger/service/mocks"
	productModel "stayledger/internal/domains/product/model"
	productMocks "stayledger/internal/domains/product/service/mocks"
	"stayledger/shared"
	"stayledger/shared/authz"
	cacheMocks "stayledger/shared/cache/mocks"
	"stayledger/shared/constant"
	"stayledger/shared/failure"
	gRepo "stayledger/shared/repository"
	repoMocks "stayledger/shared/repository/mocks"
)

const (
	productID   = "5f0c7a52-1e0b-4a53-9c55-8d4b0a0f1a01"
	affiliateID = "a3c1d1de-6f5e-4c1e-8a3f-2b9f9d8e7c02"
	bookingID   = "b7e2f6a4-3d9c-4b8e-9f1a-0c2d3e4f5a03"
	ownerID     = "user-1"
)

type fixture struct {
	svc        service.Booking
	repo       *bookingMocks.MockBooking
	items      *bookingMocks.MockItem
	affiliates *affiliateMocks.MockAffiliate
	catalog    *productMocks.MockCatalog
	coupons    *couponMocks.MockRedeemer
	ledger     *ledgerMocks.MockLedger
	tx         *repoMocks.MockTransactor
	jwt        *jwtMocks.MockJWT
	payment    *promptpayMocks.MockGenerator
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		items:      bookingMocks.NewMockItem(ctrl),
		affiliates: affiliateMocks.NewMockAffiliate(ctrl),
		catalog:    productMocks.NewMockCatalog(ctrl),
		coupons:    couponMocks.NewMockRedeemer(ctrl),
		ledger:     ledgerMocks.NewMockLedger(ctrl),
		tx:         repoMocks.NewMockTransactor(ctrl),
		jwt:        jwtMocks.NewMockJWT(ctrl),
		payment:    promptpayMocks.NewMockGenerator(ctrl),
	}

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Payment.PromptPayID = "0812345678"
	cfg.Kafka.Topics.Booking = "stayledger.booking"

	f.svc = service.New(f.repo, f.items, f.affiliates, f.catalog, f.coupons, f.ledger, f.tx, f.jwt, f.payment,
		mockKafka, mockCache, cfg, mocks.NewOtel(), metrics.New())

	return f
}

func asCaller(userID, role string) context.Context {
	return authz.WithCaller(context.Background(), authz.Caller{UserID: userID, Role: role})
}

func roomCatalog() map[string]productModel.Product {
	return map[string]productModel.Product{
		productID: {ID: productID, Name: "Deluxe Room", Type: productModel.TypeRoom, Price: decimal.RequireFromString("1490"), Active: true},
	}
}

func roomCart() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Items: []dto.CreateBookingItem{
			{ProductID: productID, Quantity: 2, CheckIn: "2025-01-02", CheckOut: "2025-01-04"},
		},
		GuestName: "Somchai",
	}
}

func activeAffiliate() affiliateModel.Affiliate {
	return affiliateModel.Affiliate{
		ID:             affiliateID,
		ReferralCode:   "REFABC123",
		CommissionRate: decimal.RequireFromString("10"),
		Active:         true,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	expectWrite := func(attributed bool) {
		f.catalog.EXPECT().GetProducts(gomock.Any(), gomock.Any(), []string{productID}).Return(roomCatalog(), nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, booking model.Booking) error {
				assert.True(t, booking.Subtotal.Equal(decimal.RequireFromString("2980")))
				assert.True(t, booking.Total.Equal(decimal.RequireFromString("2980")))
				assert.Equal(t, attributed, booking.AffiliateID.Valid)
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, model.PaymentUnpaid, booking.PaymentStatus)
				assert.True(t, booking.CheckIn.Valid)

				return nil
			})
		f.items.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, items []model.Item) error {
				assert.Len(t, items, 1)
				assert.NotEmpty(t, items[0].BookingID)

				return nil
			})
	}

	expectCredit := func() {
		f.ledger.EXPECT().
			CreditBooking(gomock.Any(), gomock.Any(), affiliateID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _, _ string, amount decimal.Decimal) (ledgerModel.Balance, error) {
				assert.True(t, amount.Equal(decimal.RequireFromString("298")), amount.String())

				return ledgerModel.Balance{AffiliateID: affiliateID, TotalEarned: amount, PendingBalance: amount, TotalBookings: 1}, nil
			})
	}

	tests := []struct {
		name           string
		ctx            context.Context
		req            func() dto.CreateBookingRequest
		setupMock      func()
		wantErr        bool
		wantReason     string
		wantCommission string
		wantAffiliate  string
	}{
		{
			name:           "unattributed booking",
			ctx:            asCaller(ownerID, constant.RoleGuest),
			req:            roomCart,
			setupMock:      func() { expectWrite(false) },
			wantCommission: "0",
		},
		{
			name: "booking attributed by affiliate id",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.AffiliateID = affiliateID

				return req
			},
			setupMock: func() {
				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(activeAffiliate(), nil)
				expectWrite(true)
				expectCredit()
			},
			wantCommission: "298",
			wantAffiliate:  affiliateID,
		},
		{
			name: "unknown referral code is silently ignored",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.ReferralCode = "REFNOPE00"

				return req
			},
			setupMock: func() {
				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(affiliateModel.Affiliate{}, nil)
				expectWrite(false)
			},
			wantCommission: "0",
		},
		{
			name: "referral code is matched case-insensitively",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.ReferralCode = "  refabc123 "

				return req
			},
			setupMock: func() {
				byCode := shared.FilterByID("REFABC123", affiliateModel.FieldReferralCode, affiliateModel.TableName)

				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), byCode, gRepo.LockForUpdate).Return(activeAffiliate(), nil)
				expectWrite(true)
				expectCredit()
			},
			wantCommission: "298",
			wantAffiliate:  affiliateID,
		},
		{
			name: "inactive affiliate is silently ignored",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.ReferralCode = "REFABC123"

				return req
			},
			setupMock: func() {
				inactive := activeAffiliate()
				inactive.Active = false

				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(inactive, nil)
				expectWrite(false)
			},
			wantCommission: "0",
		},
		{
			name: "malformed affiliate id never reaches the store",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.AffiliateID = "not-a-uuid"

				return req
			},
			setupMock:      func() { expectWrite(false) },
			wantCommission: "0",
		},
		{
			name: "attribution token resolves the affiliate",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.AttributionToken = "signed-token"

				return req
			},
			setupMock: func() {
				f.jwt.EXPECT().
					ParseAttribution(gomock.Any(), "signed-token").
					Return(&jwt.AttributionClaims{Code: "REFABC123", AffiliateID: affiliateID, CapturedAt: time.Now()}, nil)
				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(activeAffiliate(), nil)
				expectWrite(true)
				expectCredit()
			},
			wantCommission: "298",
			wantAffiliate:  affiliateID,
		},
		{
			name: "expired attribution token leaves the booking unattributed",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.AttributionToken = "old-token"

				return req
			},
			setupMock: func() {
				f.jwt.EXPECT().ParseAttribution(gomock.Any(), "old-token").Return(nil, jwt.ErrExpiredToken)
				expectWrite(false)
			},
			wantCommission: "0",
		},
		{
			name: "unknown product fails the whole booking",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req:  roomCart,
			setupMock: func() {
				f.catalog.EXPECT().GetProducts(gomock.Any(), gomock.Any(), []string{productID}).Return(nil, failure.NotFound("product not found"))
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
		{
			name: "ledger failure rolls back the booking",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.AffiliateID = affiliateID

				return req
			},
			setupMock: func() {
				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(activeAffiliate(), nil)
				expectWrite(true)
				f.ledger.EXPECT().
					CreditBooking(gomock.Any(), gomock.Any(), affiliateID, gomock.Any(), gomock.Any()).
					Return(ledgerModel.Balance{}, failure.Infrastructure(errors.New("connection reset")))
			},
			wantErr:    true,
			wantReason: failure.ReasonInfrastructure,
		},
		{
			name: "room without stay dates",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.Items[0].CheckIn = ""
				req.Items[0].CheckOut = ""

				return req
			},
			setupMock: func() {
				f.catalog.EXPECT().GetProducts(gomock.Any(), gomock.Any(), []string{productID}).Return(roomCatalog(), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "malformed date",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			req: func() dto.CreateBookingRequest {
				req := roomCart()
				req.Items[0].CheckIn = "02/01/2025"

				return req
			},
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "empty cart",
			ctx:        asCaller(ownerID, constant.RoleGuest),
			req:        func() dto.CreateBookingRequest { return dto.CreateBookingRequest{} },
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "anonymous caller",
			ctx:        context.Background(),
			req:        roomCart,
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(tt.ctx, tt.req())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.True(t, res.Total.Equal(decimal.RequireFromString("2980")))
			assert.True(t, res.CommissionAmount.Equal(decimal.RequireFromString(tt.wantCommission)), res.CommissionAmount.String())
			assert.Equal(t, tt.wantAffiliate, res.AffiliateID)
			assert.Regexp(t, `^BK\d{6}-[0-9A-F]{8}$`, res.BookingNumber)
			assert.Equal(t, ownerID, res.UserID)
			assert.Equal(t, "2025-01-02", res.CheckIn)
			assert.Len(t, res.Items, 1)
			assert.Equal(t, "Deluxe Room", res.Items[0].ProductName)
		})
	}

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	admin := asCaller("admin-1", constant.RoleAdmin)

	tests := []struct {
		name       string
		ctx        context.Context
		status     string
		setupMock  func()
		wantErr    bool
		wantReason string
	}{
		{
			name:   "pending to confirmed",
			ctx:    admin,
			status: string(model.StatusConfirmed),
			setupMock: func() {
				f.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
					Return(model.Booking{ID: bookingID, Status: model.StatusPending, PaymentStatus: model.PaymentUnpaid}, nil)
				f.repo.EXPECT().
					CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, mod map[string]any, _ any) (int64, error) {
						assert.Equal(t, model.StatusConfirmed, mod[model.FieldStatus])
						assert.Equal(t, "admin-1", mod[constant.FieldModifiedBy])

						return 1, nil
					})
			},
		},
		{
			name:   "lost race",
			ctx:    admin,
			status: string(model.StatusCancelled),
			setupMock: func() {
				f.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
					Return(model.Booking{ID: bookingID, Status: model.StatusConfirmed}, nil)
				f.repo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonConflict,
		},
		{
			name:   "terminal booking cannot move",
			ctx:    admin,
			status: string(model.StatusCancelled),
			setupMock: func() {
				f.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
					Return(model.Booking{ID: bookingID, Status: model.StatusCompleted}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonConflict,
		},
		{
			name:   "unknown booking",
			ctx:    admin,
			status: string(model.StatusConfirmed),
			setupMock: func() {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(model.Booking{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
		{
			name:       "guests cannot change status",
			ctx:        asCaller(ownerID, constant.RoleGuest),
			status:     string(model.StatusConfirmed),
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.UpdateStatus(tt.ctx, bookingID, dto.UpdateStatusRequest{Status: tt.status})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
		})
	}

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_UpdatePaymentStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	admin := asCaller("admin-1", constant.RoleSuperAdmin)

	f.repo.EXPECT().
		GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
		Return(model.Booking{ID: bookingID, Status: model.StatusConfirmed, PaymentStatus: model.PaymentUnpaid}, nil)
	f.repo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

	res, err := f.svc.UpdatePaymentStatus(admin, bookingID, dto.UpdatePaymentStatusRequest{PaymentStatus: string(model.PaymentPaid)})
	assert.NoError(t, err)
	assert.Equal(t, string(model.PaymentPaid), res.PaymentStatus)

	f.repo.EXPECT().
		GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
		Return(model.Booking{ID: bookingID, PaymentStatus: model.PaymentRefunded}, nil)

	_, err = f.svc.UpdatePaymentStatus(admin, bookingID, dto.UpdatePaymentStatusRequest{PaymentStatus: string(model.PaymentPaid)})
	assert.Error(t, err)
	assert.Equal(t, failure.ReasonConflict, failure.GetReason(err))

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	stored := model.Booking{ID: bookingID, UserID: ownerID, BookingNumber: "BK250102-0A1B2C3D", Total: decimal.RequireFromString("2980")}

	tests := []struct {
		name       string
		ctx        context.Context
		setupMock  func()
		wantErr    bool
		wantReason string
	}{
		{
			name: "owner reads booking with items",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.items.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Item{{ID: "item-1", ProductName: "Deluxe Room", Quantity: 2}}, nil)
			},
		},
		{
			name: "admin reads any booking",
			ctx:  asCaller("admin-1", constant.RoleAdmin),
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{}, nil)
			},
		},
		{
			name: "other guest is forbidden",
			ctx:  asCaller("user-2", constant.RoleGuest),
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
		{
			name: "not found",
			ctx:  asCaller(ownerID, constant.RoleGuest),
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(tt.ctx, bookingID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, bookingID, res.ID)
		})
	}

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_PaymentQR(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	unpaid := model.Booking{
		ID:            bookingID,
		UserID:        ownerID,
		BookingNumber: "BK250102-0A1B2C3D",
		Total:         decimal.RequireFromString("2980"),
		PaymentStatus: model.PaymentUnpaid,
	}

	t.Run("owner gets a payload", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unpaid, nil)
		f.payment.EXPECT().GeneratePayable(gomock.Any(), "0812345678").Return("00020101021129370016A000000677010111", nil)

		res, err := f.svc.PaymentQR(asCaller(ownerID, constant.RoleGuest), bookingID)

		assert.NoError(t, err)
		assert.Equal(t, "00020101021129370016A000000677010111", res.Payload)
		assert.True(t, res.Amount.Equal(decimal.RequireFromString("2980")))
		assert.Equal(t, "BK250102-0A1B2C3D", res.BookingNumber)
		assert.Equal(t, "0812345678", res.Payee)
	})

	t.Run("paid booking", func(t *testing.T) {
		paid := unpaid
		paid.PaymentStatus = model.PaymentPaid

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paid, nil)

		_, err := f.svc.PaymentQR(asCaller(ownerID, constant.RoleGuest), bookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.ReasonPrecondition, failure.GetReason(err))
	})

	t.Run("not the owner", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unpaid, nil)

		_, err := f.svc.PaymentQR(asCaller("user-2", constant.RoleGuest), bookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.ReasonForbidden, failure.GetReason(err))
	})

	t.Run("generator failure", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unpaid, nil)
		f.payment.EXPECT().GeneratePayable(gomock.Any(), gomock.Any()).Return("", errors.New("invalid target"))

		_, err := f.svc.PaymentQR(asCaller(ownerID, constant.RoleGuest), bookingID)

		assert.Error(t, err)
		assert.True(t, failure.IsRetryable(err))
	})
}

func TestBookingService_CreateWithCoupon(t *testing.T) {
	const couponID = "c4d5e6f7-8a9b-4c0d-9e1f-2a3b4c5d6e07"

	withCoupon := func() dto.CreateBookingRequest {
		req := roomCart()
		req.CouponCode = "summer10"

		return req
	}

	tests := []struct {
		name           string
		req            func() dto.CreateBookingRequest
		setupMock      func(f fixture)
		wantReason     string
		wantTotal      string
		wantCommission string
		wantCoupon     string
	}{
		{
			name: "coupon discounts the total before commission",
			req: func() dto.CreateBookingRequest {
				req := withCoupon()
				req.AffiliateID = affiliateID

				return req
			},
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetProducts(gomock.Any(), gomock.Any(), []string{productID}).Return(roomCatalog(), nil)
				f.coupons.EXPECT().
					Redeem(gomock.Any(), gomock.Any(), "summer10", decimal.RequireFromString("2980"), gomock.Any()).
					Return(couponModel.Redemption{CouponID: couponID, Discount: decimal.RequireFromString("298")}, nil)
				f.affiliates.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(activeAffiliate(), nil)
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, booking model.Booking) error {
						assert.True(t, booking.Subtotal.Equal(decimal.RequireFromString("2980")))
						assert.True(t, booking.Discount.Equal(decimal.RequireFromString("298")))
						assert.True(t, booking.Total.Equal(decimal.RequireFromString("2682")))
						assert.Equal(t, couponID, booking.CouponID.String)

						return nil
					})
				f.items.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.ledger.EXPECT().
					CreditBooking(gomock.Any(), gomock.Any(), affiliateID, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, _, _ string, amount decimal.Decimal) (ledgerModel.Balance, error) {
						assert.True(t, amount.Equal(decimal.RequireFromString("268.2")), amount.String())

						return ledgerModel.Balance{AffiliateID: affiliateID, TotalEarned: amount, PendingBalance: amount}, nil
					})
			},
			wantTotal:      "2682",
			wantCommission: "268.2",
			wantCoupon:     couponID,
		},
		{
			name: "rejected coupon fails the whole booking",
			req:  withCoupon,
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetProducts(gomock.Any(), gomock.Any(), []string{productID}).Return(roomCatalog(), nil)
				f.coupons.EXPECT().
					Redeem(gomock.Any(), gomock.Any(), "summer10", gomock.Any(), gomock.Any()).
					Return(couponModel.Redemption{}, failure.BadRequestFromString("coupon is inactive, expired or fully used"))
			},
			wantReason: failure.ReasonValidation,
		},
		{
			name: "unknown coupon fails the whole booking",
			req:  withCoupon,
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetProducts(gomock.Any(), gomock.Any(), []string{productID}).Return(roomCatalog(), nil)
				f.coupons.EXPECT().
					Redeem(gomock.Any(), gomock.Any(), "summer10", gomock.Any(), gomock.Any()).
					Return(couponModel.Redemption{}, failure.NotFound("coupon not found"))
			},
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.Create(asCaller(ownerID, constant.RoleGuest), tt.req())

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.True(t, res.Total.Equal(decimal.RequireFromString(tt.wantTotal)), res.Total.String())
			assert.True(t, res.CommissionAmount.Equal(decimal.RequireFromString(tt.wantCommission)), res.CommissionAmount.String())
			assert.Equal(t, tt.wantCoupon, res.CouponID)

			time.Sleep(10 * time.Millisecond)
		})
	}
}
