package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	return httpErr
}

func TestHandleErrorForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		TableName:      "fooddetail",
		ConstraintName: "fooddetail_foodid_fkey",
		Message:        `insert or update on table "fooddetail" violates foreign key constraint`,
	}

	httpErr := handle(t, fmt.Errorf("execute non-query: %w", pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "FOOD_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced food does not exist", httpErr.Message)
}

func TestHandleErrorSecondOpenSession(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "usagesession",
		ConstraintName: "usagesession_open_per_computer",
	}

	httpErr := handle(t, pgErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "BILLING_ALREADY_EXISTS", httpErr.Code)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23514",
		TableName:      "fooddetail",
		ConstraintName: "fooddetail_count_check",
	}

	httpErr := handle(t, pgErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ORDER_LINE_INVALID", httpErr.Code)
	assert.Equal(t, "The Count value does not meet required conditions", httpErr.Message)
}

func TestHandleErrorNotNull(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "food", ColumnName: "FoodName"}

	httpErr := handle(t, pgErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "foodname", httpErr.Errors[0].Field)
	assert.Equal(t, "FOOD_REQUIRED", httpErr.Code)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("computer 9 not found", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorFallbacks(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, handle(t, pgx.ErrNoRows).Status)
	assert.Equal(t, http.StatusServiceUnavailable, handle(t, &pgconn.PgError{Code: "08006"}).Status)
	assert.Equal(t, http.StatusInternalServerError, handle(t, &pgconn.PgError{Code: "42P01"}).Status)
	assert.Equal(t, http.StatusInternalServerError, handle(t, errors.New("boom")).Status)
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Severity: "ERROR"}

	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", pgErr)))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(pgErr)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestMapCodeAndSeverity(t *testing.T) {
	assert.Equal(t, ConnectionFailure, MapCode("08001"))
	assert.Equal(t, DeadlockDetected, MapCode("40P01"))
	assert.Equal(t, Other, MapCode("XX000"))

	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity(""))
}

func TestConvertedErrorUnwraps(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", Message: "fk"}
	sqlErr := ConvertPgError(pgErr)

	var target *pgconn.PgError
	assert.ErrorAs(t, sqlErr, &target)
	assert.Equal(t, "foreign_key_violation (SQLSTATE 23503): fk", sqlErr.Error())
}
