package vault

import (
	"errors"
	"fmt"
)

var (
	// ошибки хранилища
	ErrNotFound     = errors.New("secure store: no item")
	ErrDuplicateKey = errors.New("secure store: duplicated item")
	ErrUnexpected   = errors.New("secure store: unexpected state")

	// ошибки проверки, до обращения к хранилищу
	ErrCannotSave    = errors.New("required fields are not filled")
	ErrFieldRequired = errors.New("cannot save, field required")
	ErrUnchanged     = errors.New("field text has not changed")
	ErrItemNotFound  = errors.New("item not found")
)

// StoreError - прочая ошибка хранилища, операция прерывается.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("secure store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Describe возвращает текст ошибки для пользователя.
func Describe(err error) string {
	var storeErr *StoreError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnexpected):
		return "Unexpected error has occurred."
	case errors.Is(err, ErrDuplicateKey):
		return "Attempted to save a duplicated item."
	case errors.Is(err, ErrNotFound):
		return "No item."
	case errors.Is(err, ErrFieldRequired):
		return "Cannot save, field required."
	case errors.Is(err, ErrCannotSave):
		return "Please fill in all required fields."
	case errors.Is(err, ErrUnchanged):
		return "Nothing to save."
	case errors.Is(err, ErrItemNotFound):
		return "Item not found."
	case errors.As(err, &storeErr):
		return storeErr.Err.Error()
	default:
		return err.Error()
	}
}
