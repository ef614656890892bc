package pgstore

import (
	"context"
	"strings"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const (
	codeUndefinedTable   = "42P01"
	codeUniqueViolation  = "23505"
	codeForeignKey       = "23503"
	codeAdminShutdown    = "57P01"
	codeCannotConnectNow = "57P03"
)

// mapErr translates driver errors into the apperr taxonomy.
func mapErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if apperr.Classified(err) {
		return errors.Wrap(err, op)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("%s", op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUndefinedTable:
			return apperr.Unavailable(err, op)
		case pgErr.Code == codeUniqueViolation:
			return errors.Wrap(apperr.Conflict("duplicate %s", pgErr.ConstraintName), op)
		case pgErr.Code == codeForeignKey:
			return errors.Wrap(apperr.NotFound("referenced row (%s)", pgErr.ConstraintName), op)
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCannotConnectNow:
			return apperr.Unavailable(err, op)
		}
		return apperr.Backend(err, op)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Unavailable(err, op)
	}
	return apperr.Backend(err, op)
}
