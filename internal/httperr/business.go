package httperr

import "errors"

// Kind classifies a domain failure so the HTTP layer can pick a status
// without inspecting individual codes. Anything outside these kinds is a
// server-side failure and must surface as 500.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindAlreadyCancelled Kind = "already_cancelled"
	KindValidation       Kind = "validation"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrAlreadyCancelled(code string) error {
	return BusinessError{Kind: KindAlreadyCancelled, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
