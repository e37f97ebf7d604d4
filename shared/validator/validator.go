// Package validator decodes request bodies and checks them with go-playground/validator.
// Every failure comes back as a failure.BadRequest naming the JSON field.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"stayledger/shared/constant"
	"stayledger/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxBodyBytes bounds what a single request body may decode.
const maxBodyBytes = 1 << 20

var validate *val.Validate

var productTypes = []string{"ROOM", "TOUR", "FOOD", "SERVICE", "MERCH"}

// moneyValidation accepts positive amounts with at most two fractional digits.
func moneyValidation(field val.FieldLevel) bool {
	amount, ok := field.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return amount.IsPositive() && amount.Equal(amount.Truncate(constant.MoneyScale))
}

func productTypeValidation(field val.FieldLevel) bool {
	return slices.Contains(productTypes, field.Field().String())
}

// jsonFieldName reports fields by their wire name so messages match what clients sent.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.RegisterValidation("money", moneyValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("producttype", productTypeValidation); err != nil {
		panic(err)
	}
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(io.LimitReader(r, maxBodyBytes))

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a single value, e.g. ValidateVar(id, "uuid").
func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
