package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const messageSeparator = "; "

var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"gtfield":  "{field} must be after {param}",
	"max":      "{field} must be at most {param} characters",
	"min":      "{field} must be at least {param} characters",
	"email":    "{field} must be a valid email address",
}

// fieldPath drops the root struct name, e.g. SalleRequest.equipments[0].id becomes equipments[0].id.
func fieldPath(fieldErr val.FieldError) string {
	namespace := fieldErr.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}

	return fieldErr.Field()
}

// message renders every violation, in field order, joined by "; ".
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	rendered := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			rendered = append(rendered, valErr.Error())

			continue
		}

		msg := strings.ReplaceAll(template, "{field}", fieldPath(valErr))
		msg = strings.ReplaceAll(msg, "{param}", valErr.Param())
		rendered = append(rendered, msg)
	}

	return strings.Join(rendered, messageSeparator)
}
