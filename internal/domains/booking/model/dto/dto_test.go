package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayledger/internal/domains/booking/model/dto"
	"stayledger/shared/validator"
)

func TestCreateBookingRequest_Limits(t *testing.T) {
	valid := func() dto.CreateBookingRequest {
		return dto.CreateBookingRequest{
			Items: []dto.CreateBookingItem{
				{ProductID: "5f0c7a52-1e0b-4a53-9c55-8d4b0a0f1a01", Quantity: 1},
			},
		}
	}

	tests := []struct {
		name            string
		mutate          func(req *dto.CreateBookingRequest)
		expectedMessage string
	}{
		{name: "bare cart", mutate: func(*dto.CreateBookingRequest) {}},
		{
			name:   "phone fills the column",
			mutate: func(req *dto.CreateBookingRequest) { req.GuestPhone = strings.Repeat("9", 30) },
		},
		{
			name:            "phone wider than the column",
			mutate:          func(req *dto.CreateBookingRequest) { req.GuestPhone = strings.Repeat("9", 31) },
			expectedMessage: "guest_phone must be at most 30 long",
		},
		{
			name:            "coupon code wider than the column",
			mutate:          func(req *dto.CreateBookingRequest) { req.CouponCode = strings.Repeat("C", 31) },
			expectedMessage: "coupon_code",
		},
		{
			name:            "referral code too long",
			mutate:          func(req *dto.CreateBookingRequest) { req.ReferralCode = strings.Repeat("R", 21) },
			expectedMessage: "referral_code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectedMessage == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.expectedMessage)
		})
	}
}
