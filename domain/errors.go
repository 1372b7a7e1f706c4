package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTooManyBuyers    = fmt.Errorf("a deal can have at most %d buyers", MaxBuyers)
	ErrDuplicateBuyer   = errors.New("duplicate buyer id")
	ErrBuyerNotFound    = errors.New("buyer not found")
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid exit scenario")
	ErrUnknownEditField = errors.New("unknown edit field")
	ErrInvalidTerm      = errors.New("invalid loan term")
)

// DecodeError reports a share token that could not be turned back into state.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode share token: %s: %v", e.Reason, e.Err)
	}
	return "decode share token: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
