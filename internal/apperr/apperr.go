// Package apperr holds the error taxonomy shared by services, storage and the
// HTTP layer. Callers wrap one of the sentinels and test with errors.Is.
package apperr

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

var (
	ErrValidation         = stderrors.New("validation failed")
	ErrNotFound           = stderrors.New("not found")
	ErrConflict           = stderrors.New("conflict")
	ErrBackendUnavailable = stderrors.New("backend unavailable")
	ErrBackend            = stderrors.New("backend failure")
)

func Validation(format string, args ...any) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

func NotFound(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return errors.Wrapf(ErrConflict, format, args...)
}

// Backend marks err as a store/integration failure unless it already carries
// one of the taxonomy sentinels.
func Backend(err error, msg string) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return errors.Wrap(err, msg)
	}
	return errors.Wrap(&wrapped{sentinel: ErrBackend, cause: err}, msg)
}

// Unavailable marks err as "store misconfigured or schema missing".
func Unavailable(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(&wrapped{sentinel: ErrBackendUnavailable, cause: err}, msg)
}

func Classified(err error) bool {
	return stderrors.Is(err, ErrValidation) ||
		stderrors.Is(err, ErrNotFound) ||
		stderrors.Is(err, ErrConflict) ||
		stderrors.Is(err, ErrBackendUnavailable) ||
		stderrors.Is(err, ErrBackend)
}

// Code is the stable machine-readable name used in API responses.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrValidation):
		return "validation_error"
	case stderrors.Is(err, ErrNotFound):
		return "not_found"
	case stderrors.Is(err, ErrConflict):
		return "conflict"
	case stderrors.Is(err, ErrBackendUnavailable):
		return "backend_unavailable"
	case stderrors.Is(err, ErrBackend):
		return "backend_error"
	default:
		return "internal_error"
	}
}

// wrapped keeps both the sentinel and the original cause reachable by errors.Is.
type wrapped struct {
	sentinel error
	cause    error
}

func (w *wrapped) Error() string {
	return w.sentinel.Error() + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() []error {
	return []error{w.sentinel, w.cause}
}
