package apperr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructors_ClassifyAndKeepMessage(t *testing.T) {
	err := NotFound("lead %s", "abc")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "not_found", Code(err))
	require.Contains(t, err.Error(), "lead abc")

	require.Equal(t, "validation_error", Code(Validation("stage is required")))
	require.Equal(t, "conflict", Code(Conflict("dup")))
}

func TestBackend_KeepsCauseAndSentinel(t *testing.T) {
	cause := context.DeadlineExceeded
	err := Backend(cause, "insert lead")
	require.ErrorIs(t, err, ErrBackend)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, "backend_error", Code(err))

	// already classified errors keep their class
	nf := Backend(NotFound("order 1"), "get order")
	require.ErrorIs(t, nf, ErrNotFound)
	require.False(t, errors.Is(nf, ErrBackend))

	require.Nil(t, Backend(nil, "noop"))
}

func TestUnavailable(t *testing.T) {
	err := Unavailable(errors.New("relation \"leads\" does not exist"), "list leads")
	require.ErrorIs(t, err, ErrBackendUnavailable)
	require.Equal(t, "backend_unavailable", Code(err))
	require.Equal(t, "internal_error", Code(errors.New("boom")))
}
