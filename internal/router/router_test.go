package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/netcafe/internal/config"
	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/database/databasetest"
	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/deppfellow/netcafe/internal/handler"
	"github.com/deppfellow/netcafe/internal/middleware"
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/deppfellow/netcafe/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*echo.Echo, *databasetest.MockStore) {
	t.Helper()

	store := databasetest.NewMockStore(t)
	log := zerolog.Nop()

	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "8080",
				CORSAllowedOrigins: []string{"*"},
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
		Store:  store,
	}

	services := service.NewServices(s, repository.NewRepositories(s))
	return NewRouter(s, handler.NewHandlers(s, services)), store
}

func serve(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func computerTable(status model.ComputerStatus) *database.Table {
	return database.NewTable("computerid", "computername", "computerstatus").
		AddRow(int16(3), "Máy 03", int16(status))
}

func TestGetComputer(t *testing.T) {
	r, store := newTestRouter(t)
	store.On("ExecuteQuery", mock.Anything, mock.Anything, []any{int16(3)}).
		Return(computerTable(model.StatusInUse), nil)

	rec := serve(r, http.MethodGet, "/api/v1/computers/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var computer model.Computer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &computer))
	assert.Equal(t, model.Computer{ID: 3, Name: "Máy 03", Status: model.StatusInUse}, computer)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestListComputersRejectsUnknownStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := serve(r, http.MethodGet, "/api/v1/computers?status=9", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "status", body.Errors[0].Field)
}

func TestStartSessionUnknownComputer(t *testing.T) {
	r, store := newTestRouter(t)
	store.On("ExecuteQuery", mock.Anything, mock.Anything, []any{int16(99)}).
		Return(database.NewTable("computerid", "computername", "computerstatus"), nil)

	rec := serve(r, http.MethodPost, "/api/v1/computers/99/session", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "COMPUTER_NOT_FOUND", decodeError(t, rec).Code)
}

func TestSetFoodQuantity(t *testing.T) {
	r, store := newTestRouter(t)
	store.On("ExecuteScalar", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "EndTime IS NULL")
	}), []any{int16(3)}).Return(int32(31), nil)
	store.On("ExecuteScalar", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.HasPrefix(q, "SELECT 1 FROM FoodDetail")
	}), []any{31, 2}).Return(nil, nil)
	store.On("ExecuteNonQuery", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.HasPrefix(q, "CALL ProcFoodDetailINIT")
	}), []any{31, 2, 1}).Return(int64(0), nil)

	rec := serve(r, http.MethodPut, "/api/v1/computers/3/foods", `{"food_id":2,"count":1}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSetFoodQuantityRequiresCount(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := serve(r, http.MethodPut, "/api/v1/computers/3/foods", `{"food_id":2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []errs.FieldError{{Field: "count", Error: "is required"}}, decodeError(t, rec).Errors)
}

func TestDatabaseErrorsAreClassified(t *testing.T) {
	r, store := newTestRouter(t)
	store.On("ExecuteQuery", mock.Anything, mock.Anything, []any{int16(3)}).
		Return(computerTable(model.StatusAvailable), nil)
	store.On("ExecuteScalar", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "EndTime IS NULL")
	}), []any{int16(3)}).Return(nil, nil)
	store.On("ExecuteScalar", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.HasPrefix(q, "INSERT INTO UsageSession")
	}), []any{int16(3)}).Return(nil, &pgconn.PgError{
		Code:           "23505",
		TableName:      "usagesession",
		ConstraintName: "usagesession_open_per_computer",
	})

	rec := serve(r, http.MethodPost, "/api/v1/computers/3/session", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "BILLING_ALREADY_EXISTS", decodeError(t, rec).Code)
}

func TestUnknownErrorsAreHidden(t *testing.T) {
	r, store := newTestRouter(t)
	store.On("ExecuteQuery", mock.Anything, mock.Anything, []any(nil)).
		Return(nil, errors.New("pq: secret internals"))

	rec := serve(r, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, rec).Message)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := serve(r, http.MethodGet, "/api/v1/printers", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r, store := newTestRouter(t)
		store.On("ExecuteScalar", mock.Anything, "SELECT 1", []any(nil)).Return(int32(1), nil)

		// database is not checked: the test server has no pool.
		rec := serve(r, http.MethodGet, "/status", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store down", func(t *testing.T) {
		r, store := newTestRouter(t)
		store.On("ExecuteScalar", mock.Anything, "SELECT 1", []any(nil)).Return(nil, errors.New("dial tcp: refused"))

		rec := serve(r, http.MethodGet, "/status", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unhealthy"`)
	})
}
