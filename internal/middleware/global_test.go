package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "domain error passes through",
			err:    fmt.Errorf("checkout: %w", errs.NewConflictError("Computer is busy", "COMPUTER_NOT_AVAILABLE")),
			status: http.StatusConflict,
			code:   "COMPUTER_NOT_AVAILABLE",
		},
		{
			name:   "unknown route",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "method not allowed",
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed,
			code:   "METHOD_NOT_ALLOWED",
		},
		{
			name:   "foreign key violation",
			err:    &pgconn.PgError{Code: "23503", TableName: "fooddetail", ConstraintName: "fooddetail_foodid_fkey"},
			status: http.StatusBadRequest,
		},
		{
			name:   "no rows",
			err:    fmt.Errorf("load billing: %w", pgx.ErrNoRows),
			status: http.StatusNotFound,
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "anything else",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toHTTPError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.status, statusOf(tt.err))
			if tt.code != "" {
				assert.Equal(t, tt.code, got.Code)
			}
		})
	}
}

func TestRequestIDReplacesOversizedHeader(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec := httptest.NewRecorder()

	assert.NoError(t, handler(e.NewContext(req, rec)))

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set(RequestIDHeader, "till-7")
	rec = httptest.NewRecorder()

	assert.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "till-7", rec.Header().Get(RequestIDHeader))
}
