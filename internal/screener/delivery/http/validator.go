package http

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validator *validator.Validate
}

// NewRequestValidator creates a RequestValidator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
