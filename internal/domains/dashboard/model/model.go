package model

import "github.com/shopspring/decimal"

type Totals struct {
	Bookings           int             `db:"bookings"`
	Revenue            decimal.Decimal `db:"revenue"`
	Affiliates         int             `db:"affiliates"`
	PendingWithdrawals int             `db:"pending_withdrawals"`
	DirectBookings     int             `db:"direct_bookings"`
	AffiliateBookings  int             `db:"affiliate_bookings"`
}

type RevenueByType struct {
	Type    string          `db:"type"`
	Revenue decimal.Decimal `db:"revenue"`
}

type TopProduct struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Quantity  int    `db:"quantity"`
}

type Stats struct {
	Totals
	RevenueByType []RevenueByType
	TopProducts   []TopProduct
}
