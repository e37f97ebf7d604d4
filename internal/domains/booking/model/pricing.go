package model

import (
	"database/sql"
	"fmt"
	productModel "stayledger/internal/domains/product/model"
	"stayledger/shared/constant"
	"stayledger/shared/failure"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	bookingNumberPrefix     = "BK"
	bookingNumberDateFormat = "060102"
	bookingNumberSuffixLen  = 8

	percent = 100
)

// CartLine is one requested line before it is priced.
type CartLine struct {
	ProductID   string
	Quantity    int
	CheckIn     *time.Time
	CheckOut    *time.Time
	ServiceDate *time.Time
	Notes       string
}

// Quote is a cart priced against one catalog snapshot.
type Quote struct {
	Items    []Item
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	CheckIn  sql.NullTime
	CheckOut sql.NullTime
}

// PriceCart prices every line from the catalog snapshot. Prices sent by clients never reach
// this function. discount is applied once and must lie within [0, subtotal].
func PriceCart(lines []CartLine, products map[string]productModel.Product, discount decimal.Decimal) (Quote, error) {
	quote := Quote{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}

	if len(lines) == 0 {
		return quote, failure.BadRequestFromString("booking must contain at least one item") //nolint:wrapcheck
	}

	for i, line := range lines {
		if line.Quantity <= 0 {
			return quote, failure.BadRequestFromString(fmt.Sprintf("item %d: quantity must be a positive integer", i)) //nolint:wrapcheck
		}

		product, ok := products[line.ProductID]
		if !ok {
			return quote, failure.NotFound(fmt.Sprintf("product not found: %s", line.ProductID)) //nolint:wrapcheck
		}

		total := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))

		item := Item{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  total,
			Notes:       line.Notes,
			ProductName: product.Name,
			ProductType: string(product.Type),
		}

		if line.ServiceDate != nil {
			item.ServiceDate = sql.NullTime{Time: *line.ServiceDate, Valid: true}
		}

		quote.Items = append(quote.Items, item)
		quote.Subtotal = quote.Subtotal.Add(total)
	}

	quote, err := quote.WithDiscount(discount)
	if err != nil {
		return quote, err
	}

	checkIn, checkOut, err := StayDates(lines, products)
	if err != nil {
		return quote, err
	}

	quote.CheckIn = checkIn
	quote.CheckOut = checkOut

	return quote, nil
}

// WithDiscount applies discount once against the subtotal. It must lie within [0, subtotal].
func (q Quote) WithDiscount(discount decimal.Decimal) (Quote, error) {
	if discount.IsNegative() || discount.GreaterThan(q.Subtotal) {
		return q, failure.BadRequestFromString("discount must be between zero and the subtotal") //nolint:wrapcheck
	}

	q.Discount = discount
	q.Total = q.Subtotal.Sub(discount)

	return q, nil
}

// StayDates takes the stay from ROOM lines only. Every ROOM line must carry the same
// check-in and check-out pair with check-out after check-in. Carts without rooms have no stay.
func StayDates(lines []CartLine, products map[string]productModel.Product) (sql.NullTime, sql.NullTime, error) {
	var checkIn, checkOut sql.NullTime

	for i, line := range lines {
		if products[line.ProductID].Type != productModel.TypeRoom {
			continue
		}

		if line.CheckIn == nil || line.CheckOut == nil {
			return checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("item %d: room requires check-in and check-out", i)) //nolint:wrapcheck
		}

		if !line.CheckOut.After(*line.CheckIn) {
			return checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("item %d: check-out must be after check-in", i)) //nolint:wrapcheck
		}

		if !checkIn.Valid {
			checkIn = sql.NullTime{Time: *line.CheckIn, Valid: true}
			checkOut = sql.NullTime{Time: *line.CheckOut, Valid: true}

			continue
		}

		if !checkIn.Time.Equal(*line.CheckIn) || !checkOut.Time.Equal(*line.CheckOut) {
			return checkIn, checkOut, failure.BadRequestFromString("all rooms in one booking must share the same stay dates") //nolint:wrapcheck
		}
	}

	return checkIn, checkOut, nil
}

// Commission is total * rate / 100 rounded half to even at the minor unit.
func Commission(total, rate decimal.Decimal) decimal.Decimal {
	return total.Mul(rate).Div(decimal.NewFromInt(percent)).RoundBank(constant.MoneyScale)
}

// NewBookingNumber returns BK<yymmdd>-<8 hex>, e.g. BK250102-9F3A61C0.
func NewBookingNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:bookingNumberSuffixLen]

	return bookingNumberPrefix + now.Format(bookingNumberDateFormat) + "-" + suffix
}
