package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRejected           = errors.New("operation rejected by remote service")
)

// ValidationError is returned before any remote call is made.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func Invalid(field, msg string) error { return ValidationError{Field: field, Msg: msg} }

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func RequireID(field string, id int64) error {
	if id <= 0 {
		return Invalid(field, "must be a positive integer")
	}
	return nil
}

func RequireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return Invalid(field, "is required")
	}
	return nil
}

func RequireRange(from, to string) error {
	if err := RequireText("fechaInicio", from); err != nil {
		return err
	}
	return RequireText("fechaFin", to)
}
