package item

import (
	"errors"
)

var (
	ErrUnknownType    = errors.New("unknown item type")
	ErrUnknownField   = errors.New("unknown item field")
	ErrMissingField   = errors.New("required field is missing")
	ErrDuplicateID    = errors.New("duplicate item id")
	ErrInvalidPayload = errors.New("invalid item payload")
	ErrInvalidDate    = errors.New("invalid date input")
)
