package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used as marks on internal errors. Callers classify
// errors with the Is* helpers instead of comparing directly.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrVersionConflict  = errors.New("version_conflict")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrDatabase         = errors.New("database_error")
	ErrSinkUnavailable  = errors.New("sink_unavailable")
	ErrInternal         = errors.New("internal_error")
)

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func IsSinkUnavailable(err error) bool {
	return errors.Is(err, ErrSinkUnavailable)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
