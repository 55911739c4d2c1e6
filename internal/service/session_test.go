package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartSession(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteQuery", mock.Anything, sql("FROM Computer WHERE ComputerID"), []any{int16(3)}).
		Return(computerTable(3, int16(model.StatusAvailable)), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(nil, nil)
	store.On("ExecuteScalar", mock.Anything, sql("INSERT INTO UsageSession"), []any{int16(3)}).Return(int32(31), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE Computer"), []any{int16(model.StatusInUse), int16(3)}).
		Return(int64(1), nil)

	billingID, err := services.Session.Start(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 31, billingID)
	assert.Equal(t, 1, store.Commits)
}

func TestStartSessionRollsBackWhenStatusUpdateFails(t *testing.T) {
	services, store := newTestServices(t)
	storeErr := errors.New("connection reset by peer")

	store.On("ExecuteQuery", mock.Anything, sql("FROM Computer WHERE ComputerID"), []any{int16(3)}).
		Return(computerTable(3, int16(model.StatusAvailable)), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(nil, nil)
	store.On("ExecuteScalar", mock.Anything, sql("INSERT INTO UsageSession"), []any{int16(3)}).Return(int32(31), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE Computer"), []any{int16(model.StatusInUse), int16(3)}).
		Return(int64(0), storeErr)

	billingID, err := services.Session.Start(context.Background(), 3)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, repository.NoBilling, billingID)
	assert.Equal(t, 0, store.Commits)
	assert.Equal(t, 1, store.Rollbacks)
}

func TestStartSessionUnknownComputer(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteQuery", mock.Anything, sql("FROM Computer WHERE ComputerID"), []any{int16(99)}).
		Return(database.NewTable("computerid", "computername", "computerstatus"), nil)

	billingID, err := services.Session.Start(context.Background(), 99)
	requireHTTPError(t, err, http.StatusNotFound, "COMPUTER_NOT_FOUND")
	assert.Equal(t, repository.NoBilling, billingID)
}

func TestStartSessionComputerBusy(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteQuery", mock.Anything, sql("FROM Computer WHERE ComputerID"), []any{int16(3)}).
		Return(computerTable(3, int16(model.StatusInUse)), nil)

	_, err := services.Session.Start(context.Background(), 3)
	requireHTTPError(t, err, http.StatusConflict, "COMPUTER_NOT_AVAILABLE")
}

func TestStartSessionAlreadyOpen(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteQuery", mock.Anything, sql("FROM Computer WHERE ComputerID"), []any{int16(3)}).
		Return(computerTable(3, int16(model.StatusAvailable)), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(int32(30), nil)

	_, err := services.Session.Start(context.Background(), 3)
	requireHTTPError(t, err, http.StatusConflict, "BILLING_ALREADY_OPEN")
}

func TestCheckout(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteScalar", mock.Anything, sql("SELECT 1 FROM Computer"), []any{int16(3)}).Return(int32(1), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(int32(31), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE UsageSession"), []any{31}).Return(int64(1), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE Computer"), []any{int16(model.StatusAvailable), int16(3)}).
		Return(int64(1), nil)
	store.On("ExecuteQuery", mock.Anything, sql("FROM UsageSession WHERE BillingID"), []any{31}).
		Return(billingTable(31, 3, "10000"), nil)
	store.On("ExecuteQuery", mock.Anything, sql("FROM FoodDetail fd JOIN Food"), []any{31}).
		Return(linesTable(), nil)

	bill, err := services.Session.Checkout(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 31, bill.Billing.ID)
	assert.False(t, bill.Billing.IsOpen())
	require.Len(t, bill.Lines, 1)
	assert.True(t, decimal.NewFromInt(24000).Equal(bill.FoodTotal))
	assert.True(t, decimal.NewFromInt(34000).Equal(bill.Total))
	assert.Equal(t, 1, store.Commits)
}

func TestCheckoutRollsBackWhenStatusUpdateFails(t *testing.T) {
	services, store := newTestServices(t)
	storeErr := errors.New("connection reset by peer")

	store.On("ExecuteScalar", mock.Anything, sql("SELECT 1 FROM Computer"), []any{int16(3)}).Return(int32(1), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(int32(31), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE UsageSession"), []any{31}).Return(int64(1), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE Computer"), []any{int16(model.StatusAvailable), int16(3)}).
		Return(int64(0), storeErr)

	_, err := services.Session.Checkout(context.Background(), 3)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, store.Commits)
	assert.Equal(t, 1, store.Rollbacks)
}

func TestCheckoutWithoutOpenBilling(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteScalar", mock.Anything, sql("SELECT 1 FROM Computer"), []any{int16(3)}).Return(int32(1), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(nil, nil)

	_, err := services.Session.Checkout(context.Background(), 3)
	requireHTTPError(t, err, http.StatusBadRequest, "NO_OPEN_BILLING")
}

func TestCheckoutRaceLost(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteScalar", mock.Anything, sql("SELECT 1 FROM Computer"), []any{int16(3)}).Return(int32(1), nil)
	store.On("ExecuteScalar", mock.Anything, sql("EndTime IS NULL"), []any{int16(3)}).Return(int32(31), nil)
	store.On("ExecuteNonQuery", mock.Anything, sql("UPDATE UsageSession"), []any{31}).Return(int64(0), nil)

	_, err := services.Session.Checkout(context.Background(), 3)
	requireHTTPError(t, err, http.StatusConflict, "BILLING_ALREADY_CLOSED")
	assert.Equal(t, 1, store.Rollbacks)
}

func TestCheckoutPropagatesStoreErrors(t *testing.T) {
	services, store := newTestServices(t)
	storeErr := errors.New("connection reset by peer")

	store.On("ExecuteScalar", mock.Anything, sql("SELECT 1 FROM Computer"), []any{int16(3)}).Return(nil, storeErr)

	_, err := services.Session.Checkout(context.Background(), 3)
	assert.ErrorIs(t, err, storeErr)
}

func TestBillNotFound(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteQuery", mock.Anything, sql("FROM UsageSession WHERE BillingID"), []any{404}).
		Return(database.NewTable("billingid", "computerid", "starttime", "endtime", "usagecost"), nil)

	_, err := services.Session.Bill(context.Background(), 404)
	requireHTTPError(t, err, http.StatusNotFound, "BILLING_NOT_FOUND")
}

func TestHistory(t *testing.T) {
	services, store := newTestServices(t)

	store.On("ExecuteScalar", mock.Anything, sql("SELECT 1 FROM Computer"), []any{int16(3)}).Return(int32(1), nil)
	store.On("ExecuteQuery", mock.Anything, sql("WHERE ComputerID = @ComputerID ORDER BY StartTime DESC"), []any{int16(3)}).
		Return(billingTable(31, 3, "10000"), nil)

	history, err := services.Session.History(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 31, history[0].ID)
}
