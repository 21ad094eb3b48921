package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x", "x"))

	err := translate(gorm.ErrRecordNotFound, "booking_not_found", "Booking not found.")
	assert.True(t, httperr.Is(err, "booking_not_found"))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(translate(dup, "x", "x")))

	passthrough := httperr.AlreadyPaid()
	assert.Same(t, passthrough, translate(passthrough, "x", "x"))

	other := translate(errors.New("connection reset"), "x", "x")
	assert.Equal(t, httperr.KindInternal, httperr.KindOf(other))
	assert.ErrorContains(t, other, "connection reset")
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, "%hair%", likePattern("  Hair "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
