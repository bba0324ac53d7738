package validator

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired      = "is required"
	ErrMinValue      = "must be at least %s"
	ErrMaxValue      = "must be at most %s"
	ErrMinLength     = "must be at least %s characters long"
	ErrMaxLength     = "must be at most %s characters long"
	ErrMinItems      = "must contain at least %s item(s)"
	ErrNotNegative   = "must not be negative"
	ErrUnique        = "must not contain duplicates"
	ErrURL           = "must be a valid URL"
	ErrAfterStart    = "must be after startTime"
	ErrOneOf         = "must be one of: %s"
	ErrInvalidFormat = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return validator
}

// decimalValue lets numeric tags such as gte=0 run against prices.
func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	f, _ := d.Float64()
	return f
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		switch err.Kind() {
		case reflect.String:
			return fmt.Sprintf(ErrMinLength, err.Param())
		case reflect.Slice:
			return fmt.Sprintf(ErrMinItems, err.Param())
		default:
			return fmt.Sprintf(ErrMinValue, err.Param())
		}
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gte":
		return ErrNotNegative
	case "unique":
		return ErrUnique
	case "url":
		return ErrURL
	case "gtfield":
		return ErrAfterStart
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	default:
		return ErrInvalidFormat
	}
}
