package delivery

import (
	"store-fulfillment/internal/pkg/errs"
)

// Status is shared by the store's order view and the delivery service. The numeric value is the
// wire code exchanged between services.
type Status int

const (
	StatusEmpty Status = iota
	StatusSetup
	StatusPickup
	StatusDelivering
	StatusCompleted
	StatusCancelled
)

var ErrInvalidStatus = errs.Define(errs.ErrValidation, "invalid delivery status")

var statusNames = [...]string{"EMPTY", "SETUP", "PICKUP", "DELIVERING", "COMPLETED", "CANCELLED"}

func (s Status) String() string {
	if !s.IsValid() {
		return "UNKNOWN"
	}
	return statusNames[s]
}

func (s Status) IsValid() bool {
	return s >= StatusEmpty && s <= StatusCancelled
}

func (s Status) Code() int {
	return int(s)
}

// IsTerminal reports whether no further transition can happen.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// next returns the status a scheduled firing moves to.
func (s Status) next() (Status, bool) {
	switch s {
	case StatusSetup:
		return StatusPickup, true
	case StatusPickup:
		return StatusDelivering, true
	case StatusDelivering:
		return StatusCompleted, true
	default:
		return s, false
	}
}

func StatusFromCode(code int) (Status, error) {
	s := Status(code)
	if !s.IsValid() {
		return 0, ErrInvalidStatus
	}
	return s, nil
}

func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return 0, ErrInvalidStatus
}
