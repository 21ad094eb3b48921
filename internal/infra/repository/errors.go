package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// translate maps driver errors onto the error taxonomy. Errors already in
// the taxonomy pass through untouched.
func translate(err error, notFoundCode, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(notFoundCode, notFoundMsg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return httperr.Conflict("already_exists", "A record with these details already exists.")
	}

	return httperr.Internal("db_error", err)
}
