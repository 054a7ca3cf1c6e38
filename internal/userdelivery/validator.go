package userdelivery

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pluto-fin/pluto/internal/domain"
)

// ValidTimezone validates that the value is a loadable IANA timezone name.
var ValidTimezone validator.Func = func(fl validator.FieldLevel) bool {
	if tz, ok := fl.Field().Interface().(string); ok && tz != "" {
		_, err := time.LoadLocation(tz)
		return err == nil
	}

	return false
}

// bindingError maps the first failing form field to its stable error code.
func bindingError(err error, codes map[string]domain.ValidationError) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		if code, ok := codes[ve[0].Field()]; ok {
			return code
		}
	}

	return err
}
