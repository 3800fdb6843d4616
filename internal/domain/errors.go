package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrEmptyCart               = fmt.Errorf("%w: empty cart", ErrValidation)
	ErrNotFound                = errors.New("not found")
	ErrConflict                = errors.New("conflict")
	ErrEditWindowExpired       = errors.New("edit window expired")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrExternalService         = errors.New("external service error")
	ErrUnauthorized            = errors.New("unauthorized")
)
