package billing

import "errors"

var (
	// ErrNegativeReadingValue is returned when a reading carries a negative kWh value.
	ErrNegativeReadingValue = errors.New("billing: negative reading value")
	// ErrInvalidReadingTime is returned when a reading timestamp is zero.
	ErrInvalidReadingTime = errors.New("billing: invalid reading timestamp")
	// ErrUnknownDirection is returned when a flow direction is not import or export.
	ErrUnknownDirection = errors.New("billing: unknown flow direction")
	// ErrNilPlan is returned when a nil price plan is supplied.
	ErrNilPlan = errors.New("billing: nil price plan")
	// ErrInvalidPeriod is returned when a billing period day count is not positive.
	ErrInvalidPeriod = errors.New("billing: period days must be positive")
)
