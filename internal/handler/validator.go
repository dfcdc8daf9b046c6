package handler

import (
    "github.com/go-playground/validator/v10"

    "github.com/gatherly/event-registration/internal/service"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface.  Struct tags on the request DTOs spell out the field rules
// (capacity >= 1, date/time formats); a violation surfaces as
// service.ErrInvalidInput so respondError turns it into a 400.
type Validator struct {
    validate *validator.Validate
}

// NewValidator constructs a Validator with the default tag rules.
func NewValidator() *Validator {
    return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
    if err := v.validate.Struct(i); err != nil {
        return service.ErrInvalidInput
    }
    return nil
}
