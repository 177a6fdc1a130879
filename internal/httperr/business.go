package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindAuth
	KindForbidden
	KindStorage
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindStorage:
		return "storage"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// BusinessError is the typed failure every use case returns. Code is a
// stable snake_case identifier; Err optionally carries the root cause.
type BusinessError struct {
	Kind Kind
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// ErrBusiness keeps the old constructor: a plain validation failure.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrAuth(code string) error {
	return BusinessError{Kind: KindAuth, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func ErrStorage(code string, cause error) error {
	return BusinessError{Kind: KindStorage, Code: code, Err: cause}
}

func ErrPersistence(code string, cause error) error {
	return BusinessError{Kind: KindPersistence, Code: code, Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the taxonomy of err. Untyped errors are persistence
// failures: they come from the store or a driver.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindPersistence
}
