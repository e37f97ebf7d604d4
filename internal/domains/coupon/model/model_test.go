package model_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stayledger/internal/domains/coupon/model"
)

func TestCoupon_DiscountFor(t *testing.T) {
	tests := []struct {
		name     string
		coupon   model.Coupon
		subtotal string
		want     string
	}{
		{
			name:     "percent of subtotal",
			coupon:   model.Coupon{DiscountType: model.DiscountPercent, DiscountValue: decimal.NewFromInt(10)},
			subtotal: "2500.00",
			want:     "250",
		},
		{
			name:     "percent rounds half to even",
			coupon:   model.Coupon{DiscountType: model.DiscountPercent, DiscountValue: decimal.NewFromInt(5)},
			subtotal: "0.50",
			want:     "0.02",
		},
		{
			name:     "fixed amount",
			coupon:   model.Coupon{DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(300)},
			subtotal: "2500.00",
			want:     "300",
		},
		{
			name:     "fixed amount is capped at the subtotal",
			coupon:   model.Coupon{DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(300)},
			subtotal: "120.00",
			want:     "120",
		},
		{
			name:     "unknown type gives nothing",
			coupon:   model.Coupon{DiscountType: "BOGO", DiscountValue: decimal.NewFromInt(300)},
			subtotal: "120.00",
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.coupon.DiscountFor(decimal.RequireFromString(tt.subtotal))

			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestCoupon_Usable(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	inside := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	base := model.Coupon{ID: "c", Active: true, ValidFrom: from, ValidUntil: until}

	tests := []struct {
		name   string
		mutate func(c *model.Coupon)
		at     time.Time
		want   bool
	}{
		{name: "inside the window", mutate: func(*model.Coupon) {}, at: inside, want: true},
		{name: "first instant", mutate: func(*model.Coupon) {}, at: from, want: true},
		{name: "last instant", mutate: func(*model.Coupon) {}, at: until, want: true},
		{name: "before the window", mutate: func(*model.Coupon) {}, at: from.Add(-time.Second), want: false},
		{name: "after the window", mutate: func(*model.Coupon) {}, at: until.Add(time.Second), want: false},
		{name: "inactive", mutate: func(c *model.Coupon) { c.Active = false }, at: inside, want: false},
		{
			name: "uses left",
			mutate: func(c *model.Coupon) {
				c.MaxUses = sql.NullInt64{Int64: 3, Valid: true}
				c.UsedCount = 2
			},
			at:   inside,
			want: true,
		},
		{
			name: "exhausted",
			mutate: func(c *model.Coupon) {
				c.MaxUses = sql.NullInt64{Int64: 3, Valid: true}
				c.UsedCount = 3
			},
			at:   inside,
			want: false,
		},
		{name: "unlimited", mutate: func(c *model.Coupon) { c.UsedCount = 10_000 }, at: inside, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := base
			tt.mutate(&coupon)

			assert.Equal(t, tt.want, coupon.Usable(tt.at))
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SUMMER10", model.NormalizeCode("  summer10 "))
}
