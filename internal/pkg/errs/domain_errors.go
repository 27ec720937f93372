package errs

import "errors"

// Error classes shared by every layer. Transport code maps classes, not individual sentinels.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("resource not found")
	ErrBusinessRule        = errors.New("business rule violation")
	ErrExternalService     = errors.New("external service failure")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

type sentinel struct {
	msg   string
	class error
}

func (s *sentinel) Error() string { return s.msg }

func (s *sentinel) Is(target error) bool { return target == s.class }

// Define creates a sentinel that also matches its class under errors.Is.
func Define(class error, msg string) error {
	return &sentinel{msg: msg, class: class}
}

type classified struct {
	cause error
	class error
}

func (c *classified) Error() string { return c.cause.Error() }

func (c *classified) Unwrap() error { return c.cause }

func (c *classified) Is(target error) bool {
	return target == c.class || errors.Is(c.class, target)
}

// As exposes a sentinel class so Message reports it.
func (c *classified) As(target any) bool {
	s, ok := c.class.(*sentinel)
	if !ok {
		return false
	}
	if t, ok := target.(**sentinel); ok {
		*t = s
		return true
	}
	return false
}

// Classify tags an arbitrary error with a class, or with a sentinel from Define, without hiding
// the original cause.
func Classify(err error, class error) error {
	if err == nil {
		return nil
	}
	return &classified{cause: err, class: class}
}

func IsValidation(err error) bool          { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsBusinessRule(err error) bool        { return errors.Is(err, ErrBusinessRule) }
func IsExternalService(err error) bool     { return errors.Is(err, ErrExternalService) }
func IsConcurrencyConflict(err error) bool { return errors.Is(err, ErrConcurrencyConflict) }

var classes = []error{ErrValidation, ErrNotFound, ErrBusinessRule, ErrExternalService, ErrConcurrencyConflict}

// Message returns a caller-safe message: the outermost defined sentinel's text, else the
// class text, else a generic one.
func Message(err error) string {
	var s *sentinel
	if errors.As(err, &s) {
		return s.msg
	}
	for _, c := range classes {
		if errors.Is(err, c) {
			return c.Error()
		}
	}
	return "internal server error"
}
