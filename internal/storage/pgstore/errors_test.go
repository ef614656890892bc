package pgstore

import (
	"context"
	"testing"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	require.NoError(t, mapErr(nil, "op"))

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperr.ErrNotFound},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, apperr.ErrBackendUnavailable},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_partners_source_lead"}, apperr.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, apperr.ErrNotFound},
		{"connection", &pgconn.PgError{Code: "08006"}, apperr.ErrBackendUnavailable},
		{"deadline", context.DeadlineExceeded, apperr.ErrBackendUnavailable},
		{"other pg", &pgconn.PgError{Code: "22001"}, apperr.ErrBackend},
		{"other", errors.New("boom"), apperr.ErrBackend},
		{"already classified", apperr.Conflict("x"), apperr.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mapErr(errors.Wrap(tc.in, "wrapped"), "op")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}
