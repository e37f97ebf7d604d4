package model

import (
	"database/sql"
	"stayledger/shared/constant"
	"stayledger/shared/model"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "coupons"
	EntityName = "coupon"

	FieldID     = "id"
	FieldCode   = "code"
	FieldActive = "active"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

const percent = 100

// Coupon is a partner discount code. MaxUses is unlimited when null.
type Coupon struct {
	ID            string          `db:"id"`
	Code          string          `db:"code"`
	PartnerName   string          `db:"partner_name"`
	Description   string          `db:"description"`
	DiscountType  DiscountType    `db:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value"`
	ValidFrom     time.Time       `db:"valid_from"`
	ValidUntil    time.Time       `db:"valid_until"`
	MaxUses       sql.NullInt64   `db:"max_uses"`
	UsedCount     int             `db:"used_count"`
	Active        bool            `db:"active"`
	model.Metadata
}

// Redemption is what a booking keeps from a coupon it used.
type Redemption struct {
	CouponID string
	Discount decimal.Decimal
}

// Usable reports whether the coupon may be applied at the given instant.
// The validity window is closed at both ends.
func (c Coupon) Usable(at time.Time) bool {
	if !c.Active || at.Before(c.ValidFrom) || at.After(c.ValidUntil) {
		return false
	}

	return !c.MaxUses.Valid || int64(c.UsedCount) < c.MaxUses.Int64
}

// DiscountFor never exceeds the subtotal. Percentages round half to even at the minor unit.
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal

	switch c.DiscountType {
	case DiscountPercent:
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(percent)).RoundBank(constant.MoneyScale)
	case DiscountFixed:
		discount = c.DiscountValue
	default:
		return decimal.Zero
	}

	return decimal.Min(discount, subtotal)
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
