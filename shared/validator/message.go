package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param} long",
	"min":         "{field} must be at least {param} long",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"money":       "{field} must be a positive amount with at most 2 decimal places",
	"producttype": "{field} must be one of ROOM TOUR FOOD SERVICE MERCH",
	"datetime":    "{field} must match the format {param}",
	"gtfield":     "{field} must be later than {param}",
	"alphanum":    "{field} must contain letters and digits only",
}

// message reports the first violation only. Validator stops at the first failing tag per field.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		field := valErr.Field()
		if field == "" {
			field = "value"
		}

		return strings.NewReplacer("{field}", field, "{param}", valErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
