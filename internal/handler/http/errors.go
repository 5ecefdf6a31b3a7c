package http

import (
	"errors"

	"github.com/sirupsen/logrus"

	"soil-advisor/internal/ml"
	"soil-advisor/internal/service"
)

// Form-boundary errors. Both wrap the offending field name when raised.
var (
	ErrMissingField          = errors.New("missing form field")
	ErrMalformedNumericField = errors.New("not a number")
)

// userMessage maps an error to the text shown on the form. Input-triggered
// errors surface their own message; everything else is hidden behind a
// generic one and logged.
func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		return "Invalid Credentials!"
	case errors.Is(err, service.ErrUsernameTaken):
		return "User already exists!"
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrMalformedNumericField),
		errors.Is(err, ml.ErrUnknownCategory):
		return err.Error()
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		return "An unexpected error occurred"
	}
}
