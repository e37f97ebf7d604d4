package validator_test

import (
	"strings"
	"testing"

	"stayledger/shared/failure"
	"stayledger/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type cartItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
	CheckIn   string `json:"check_in"   validate:"omitempty,datetime=2006-01-02"`
}

type cart struct {
	GuestEmail string     `json:"guest_email" validate:"omitempty,email"`
	Items      []cartItem `json:"items"       validate:"required,min=1,dive"`
}

type payout struct {
	Amount decimal.Decimal `json:"amount" validate:"required,money"`
	Type   string          `json:"type"   validate:"required,producttype"`
	Notes  string          `json:"notes"  validate:"max=10"`
}

const productID = "8a1f1a36-5d52-4c3c-9f2e-2c1d3a4b5c6d"

func TestValidate(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{
			name: "valid cart",
			body: `{"items":[{"product_id":"` + productID + `","quantity":2,"check_in":"2024-05-01"}]}`,
		},
		{
			name:            "malformed json",
			body:            `{"items":`,
			expectedMessage: "failed to decode request body",
		},
		{
			name:            "empty cart",
			body:            `{"items":[]}`,
			expectedMessage: "items must be at least 1 long",
		},
		{
			name:            "bad product id reports json name",
			body:            `{"items":[{"product_id":"abc","quantity":1}]}`,
			expectedMessage: "product_id must be a valid UUID",
		},
		{
			name:            "zero quantity",
			body:            `{"items":[{"product_id":"` + productID + `","quantity":-1}]}`,
			expectedMessage: "quantity must be greater than 0",
		},
		{
			name:            "bad date",
			body:            `{"items":[{"product_id":"` + productID + `","quantity":1,"check_in":"01/05/2024"}]}`,
			expectedMessage: "check_in must match the format 2006-01-02",
		},
		{
			name:            "bad email",
			body:            `{"guest_email":"nope","items":[{"product_id":"` + productID + `","quantity":1}]}`,
			expectedMessage: "guest_email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := cart{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectedMessage == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedMessage)
			assert.Equal(t, failure.ReasonValidation, failure.GetReason(err))
		})
	}
}

func TestValidateStruct_Money(t *testing.T) {
	tests := []struct {
		name            string
		data            payout
		expectedMessage string
	}{
		{name: "valid", data: payout{Amount: decimal.RequireFromString("1490.50"), Type: "ROOM"}},
		{name: "zero", data: payout{Amount: decimal.Zero, Type: "TOUR"}, expectedMessage: "amount must be a positive amount"},
		{name: "negative", data: payout{Amount: decimal.NewFromInt(-5), Type: "FOOD"}, expectedMessage: "at most 2 decimal places"},
		{name: "three decimals", data: payout{Amount: decimal.RequireFromString("10.005"), Type: "MERCH"}, expectedMessage: "at most 2 decimal places"},
		{name: "unknown type", data: payout{Amount: decimal.NewFromInt(100), Type: "SPA"}, expectedMessage: "type must be one of ROOM TOUR FOOD SERVICE MERCH"},
		{name: "notes too long", data: payout{Amount: decimal.NewFromInt(100), Type: "ROOM", Notes: "far too long here"}, expectedMessage: "notes must be at most 10 long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectedMessage == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.expectedMessage)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar(productID, "uuid"))
	assert.EqualError(t, validator.ValidateVar("nope", "uuid"), "value must be a valid UUID")
	assert.NoError(t, validator.ValidateVar("ROOM", "producttype"))
	assert.Error(t, validator.ValidateVar("room", "producttype"))
}
