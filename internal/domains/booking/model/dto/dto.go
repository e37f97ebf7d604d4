package dto

import (
	"database/sql"
	"fmt"
	"stayledger/internal/domains/booking/model"
	"stayledger/shared"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
	"stayledger/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingItem struct {
	ProductID   string `json:"product_id"   validate:"required,uuid"`
	Quantity    int    `json:"quantity"     validate:"required,gt=0"`
	CheckIn     string `json:"check_in"     validate:"omitempty,datetime=2006-01-02"`
	CheckOut    string `json:"check_out"    validate:"omitempty,datetime=2006-01-02"`
	ServiceDate string `json:"service_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes"        validate:"omitempty,max=500"`
}

type CreateBookingRequest struct {
	Items        []CreateBookingItem `json:"items"         validate:"required,min=1,dive"`
	GuestName    string              `json:"guest_name"    validate:"omitempty,max=255"`
	GuestEmail   string              `json:"guest_email"   validate:"omitempty,email,max=255"`
	GuestPhone   string              `json:"guest_phone"   validate:"omitempty,max=30"`
	Notes        string              `json:"notes"         validate:"omitempty,max=1000"`
	AffiliateID  string              `json:"affiliate_id"  validate:"omitempty"`
	ReferralCode string              `json:"referral_code" validate:"omitempty,max=20"`
	CouponCode   string              `json:"coupon_code"   validate:"omitempty,max=30"`

	// AttributionToken is read from the referral header, never from the body.
	AttributionToken string `json:"-"`
}

// ToCart converts the request lines. Date strings are parsed here so pricing only sees times.
func (c *CreateBookingRequest) ToCart() ([]model.CartLine, error) {
	lines := make([]model.CartLine, len(c.Items))

	for i, item := range c.Items {
		checkIn, err := parseDate(item.CheckIn)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("item %d: invalid check_in", i)) //nolint:wrapcheck
		}

		checkOut, err := parseDate(item.CheckOut)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("item %d: invalid check_out", i)) //nolint:wrapcheck
		}

		serviceDate, err := parseDate(item.ServiceDate)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("item %d: invalid service_date", i)) //nolint:wrapcheck
		}

		lines[i] = model.CartLine{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			ServiceDate: serviceDate,
			Notes:       item.Notes,
		}
	}

	return lines, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	t, err := timezone.ParseDate(value)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &t, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CHECKED_IN COMPLETED CANCELLED"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=UNPAID PAID PARTIAL REFUNDED"`
}

type ItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductType string          `json:"product_type"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ServiceDate string          `json:"service_date,omitempty"`
	Notes       string          `json:"notes"`
}

func (r *ItemResponse) FromModel(item model.Item) {
	r.ID = item.ID
	r.ProductID = item.ProductID
	r.ProductName = item.ProductName
	r.ProductType = item.ProductType
	r.Quantity = item.Quantity
	r.UnitPrice = item.UnitPrice
	r.TotalPrice = item.TotalPrice
	r.ServiceDate = formatDate(item.ServiceDate)
	r.Notes = item.Notes
}

type BookingResponse struct {
	ID               string          `json:"id"`
	BookingNumber    string          `json:"booking_number"`
	UserID           string          `json:"user_id"`
	GuestName        string          `json:"guest_name"`
	GuestEmail       string          `json:"guest_email"`
	GuestPhone       string          `json:"guest_phone"`
	CheckIn          string          `json:"check_in,omitempty"`
	CheckOut         string          `json:"check_out,omitempty"`
	Nights           int             `json:"nights,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	Total            decimal.Decimal `json:"total"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status"`
	AffiliateID      string          `json:"affiliate_id,omitempty"`
	CouponID         string          `json:"coupon_id,omitempty"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Notes            string          `json:"notes"`
	Items            []ItemResponse  `json:"items,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, items []model.Item) {
	r.ID = booking.ID
	r.BookingNumber = booking.BookingNumber
	r.UserID = booking.UserID
	r.GuestName = booking.GuestName
	r.GuestEmail = booking.GuestEmail
	r.GuestPhone = booking.GuestPhone
	r.CheckIn = formatDate(booking.CheckIn)
	r.CheckOut = formatDate(booking.CheckOut)

	if booking.CheckIn.Valid && booking.CheckOut.Valid {
		r.Nights = timezone.Nights(booking.CheckIn.Time, booking.CheckOut.Time)
	}

	r.Subtotal = booking.Subtotal
	r.Discount = booking.Discount
	r.Total = booking.Total
	r.Status = string(booking.Status)
	r.PaymentStatus = string(booking.PaymentStatus)
	r.AffiliateID = booking.AffiliateID.String
	r.CouponID = booking.CouponID.String
	r.CommissionRate = booking.CommissionRate
	r.CommissionAmount = booking.CommissionAmount
	r.Notes = booking.Notes
	r.Metadata.FromModel(booking.Metadata)

	if len(items) == 0 {
		return
	}

	r.Items = make([]ItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}

type PaymentQRResponse struct {
	Payload       string          `json:"payload"`
	Amount        decimal.Decimal `json:"amount"`
	BookingNumber string          `json:"booking_number"`
	Payee         string          `json:"payee"`
}

func formatDate(t sql.NullTime) string {
	if !t.Valid {
		return constant.Empty
	}

	return timezone.FormatDate(t.Time)
}
