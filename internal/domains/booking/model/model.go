package model

import (
	"database/sql"
	"slices"
	"stayledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldBookingNumber = "booking_number"
	FieldUserID        = "user_id"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldAffiliateID   = "affiliate_id"

	ArgCurrentStatus        = "current_status"
	ArgCurrentPaymentStatus = "current_payment_status"
)

const (
	ItemTableName  = "booking_items"
	ItemEntityName = "booking_item"

	ItemFieldID        = "id"
	ItemFieldBookingID = "booking_id"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(statusTransitions[s], next)
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentPartial  PaymentStatus = "PARTIAL"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:  {PaymentPaid, PaymentPartial},
	PaymentPartial: {PaymentPaid, PaymentRefunded},
	PaymentPaid:    {PaymentRefunded},
}

func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return slices.Contains(paymentTransitions[p], next)
}

type Booking struct {
	ID               string          `db:"id"`
	BookingNumber    string          `db:"booking_number"`
	UserID           string          `db:"user_id"`
	GuestName        string          `db:"guest_name"`
	GuestEmail       string          `db:"guest_email"`
	GuestPhone       string          `db:"guest_phone"`
	CheckIn          sql.NullTime    `db:"check_in"`
	CheckOut         sql.NullTime    `db:"check_out"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	Discount         decimal.Decimal `db:"discount"`
	Total            decimal.Decimal `db:"total"`
	Status           Status          `db:"status"`
	PaymentStatus    PaymentStatus   `db:"payment_status"`
	AffiliateID      sql.NullString  `db:"affiliate_id"`
	CouponID         sql.NullString  `db:"coupon_id"`
	CommissionRate   decimal.Decimal `db:"commission_rate"`
	CommissionAmount decimal.Decimal `db:"commission_amount"`
	Notes            string          `db:"notes"`
	model.Metadata
}

// Item is a priced line. Product columns are read through the join and never written.
type Item struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	ProductID   string          `db:"product_id"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	ServiceDate sql.NullTime    `db:"service_date"`
	Notes       string          `db:"notes"`
	ProductName string          `column:"name" db:"product_name" table:"products"`
	ProductType string          `column:"type" db:"product_type" table:"products"`
	model.Metadata
}

func (Item) GetJoinQuery() string {
	return "JOIN products ON products.id = booking_items.product_id"
}
