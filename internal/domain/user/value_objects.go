package user

import (
	"regexp"
	"strings"

	"store-fulfillment/internal/pkg/errs"
)

var (
	ErrNotFound     = errs.Define(errs.ErrNotFound, "user not found")
	ErrInvalidEmail = errs.Define(errs.ErrValidation, "invalid email format")
	ErrInvalidRole  = errs.Define(errs.ErrValidation, "invalid role")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) String() string {
	return e.value
}
