package dto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayledger/internal/domains/coupon/model"
	"stayledger/internal/domains/coupon/model/dto"
	"stayledger/shared/validator"
)

func TestCreateCouponRequest_Validate(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{
			name: "percent coupon",
			body: `{"code":"SUMMER10","partner_name":"Island Ferries","discount_type":"PERCENT","discount_value":"10",` +
				`"valid_from":"2025-01-01T00:00:00+07:00","valid_until":"2025-12-31T23:59:59+07:00","max_uses":100}`,
		},
		{
			name: "unknown discount type",
			body: `{"code":"SUMMER10","partner_name":"Island Ferries","discount_type":"BOGO","discount_value":"10",` +
				`"valid_from":"2025-01-01T00:00:00+07:00","valid_until":"2025-12-31T23:59:59+07:00"}`,
			expectedMessage: "discount_type must be one of PERCENT FIXED",
		},
		{
			name: "window ends before it starts",
			body: `{"code":"SUMMER10","partner_name":"Island Ferries","discount_type":"FIXED","discount_value":"300",` +
				`"valid_from":"2025-12-31T00:00:00+07:00","valid_until":"2025-01-01T00:00:00+07:00"}`,
			expectedMessage: "valid_until must be later than",
		},
		{
			name: "zero value",
			body: `{"code":"SUMMER10","partner_name":"Island Ferries","discount_type":"FIXED","discount_value":"0",` +
				`"valid_from":"2025-01-01T00:00:00+07:00","valid_until":"2025-12-31T23:59:59+07:00"}`,
			expectedMessage: "discount_value",
		},
		{
			name: "code with spaces",
			body: `{"code":"SUMMER 10","partner_name":"Island Ferries","discount_type":"FIXED","discount_value":"300",` +
				`"valid_from":"2025-01-01T00:00:00+07:00","valid_until":"2025-12-31T23:59:59+07:00"}`,
			expectedMessage: "code must contain letters and digits only",
		},
		{
			name: "zero max uses",
			body: `{"code":"SUMMER10","partner_name":"Island Ferries","discount_type":"FIXED","discount_value":"300",` +
				`"valid_from":"2025-01-01T00:00:00+07:00","valid_until":"2025-12-31T23:59:59+07:00","max_uses":0}`,
			expectedMessage: "max_uses must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateCouponRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectedMessage == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.expectedMessage)
		})
	}
}

func TestCreateCouponRequest_ToModel(t *testing.T) {
	maxUses := 50
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	req := dto.CreateCouponRequest{Code: "summer10", DiscountType: "FIXED", MaxUses: &maxUses}
	coupon := req.ToModel(now, "admin-1")

	assert.NotEmpty(t, coupon.ID)
	assert.Equal(t, "SUMMER10", coupon.Code)
	assert.Equal(t, model.DiscountFixed, coupon.DiscountType)
	assert.True(t, coupon.Active)
	assert.True(t, coupon.MaxUses.Valid)
	assert.Equal(t, int64(50), coupon.MaxUses.Int64)
	assert.Equal(t, "admin-1", coupon.CreatedBy)
}
