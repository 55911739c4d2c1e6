package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/shopspring/decimal"
)

const (
	queryOpenSession = "INSERT INTO UsageSession (ComputerID) VALUES (@ComputerID) RETURNING BillingID"

	// Usage is charged pro rata from the computer's hourly rate.
	queryCloseSession = `UPDATE UsageSession us
SET EndTime = now(),
    UsageCost = ROUND((EXTRACT(EPOCH FROM (now() - us.StartTime)) / 3600)::numeric * c.HourlyRate, 2)
FROM Computer c
WHERE c.ComputerID = us.ComputerID AND us.BillingID = @BillingID AND us.EndTime IS NULL`

	queryBillingByID      = "SELECT BillingID, ComputerID, StartTime, EndTime, UsageCost FROM UsageSession WHERE BillingID = @BillingID"
	queryBillingLines     = "SELECT f.FoodID, f.FoodName, fd.Count, f.Price FROM FoodDetail fd JOIN Food f ON f.FoodID = fd.FoodID WHERE fd.BillingID = @BillingID ORDER BY f.FoodName"
	queryBillingFoodTotal = "SELECT COALESCE(SUM(fd.Count * f.Price), 0) FROM FoodDetail fd JOIN Food f ON f.FoodID = fd.FoodID WHERE fd.BillingID = @BillingID"
	queryBillingHistory   = "SELECT BillingID, ComputerID, StartTime, EndTime, UsageCost FROM UsageSession WHERE ComputerID = @ComputerID ORDER BY StartTime DESC"
)

// BillingRepository manages usage sessions.
type BillingRepository struct {
	store database.Store
}

func NewBillingRepository(store database.Store) *BillingRepository {
	return &BillingRepository{store: store}
}

// OpenSession starts a session on a computer and returns its billing id.
func (r *BillingRepository) OpenSession(ctx context.Context, computerID int16) (int, error) {
	v, err := r.store.ExecuteScalar(ctx, queryOpenSession, computerID)
	if err != nil {
		return NoBilling, err
	}

	id, ok, err := scalarInt(v)
	if err != nil {
		return NoBilling, err
	}
	if !ok {
		return NoBilling, fmt.Errorf("open session for computer %d returned no billing id", computerID)
	}
	return id, nil
}

// CloseSession ends an open session and charges its usage cost. It
// reports false when the billing is unknown or already closed.
func (r *BillingRepository) CloseSession(ctx context.Context, billingID int) (bool, error) {
	n, err := r.store.ExecuteNonQuery(ctx, queryCloseSession, billingID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetBilling returns the billing, or nil when it does not exist.
func (r *BillingRepository) GetBilling(ctx context.Context, billingID int) (*model.Billing, error) {
	table, err := r.store.ExecuteQuery(ctx, queryBillingByID, billingID)
	if err != nil {
		return nil, err
	}

	row := firstRow(table)
	if row == nil {
		return nil, nil
	}

	billing, err := model.BillingFromRow(row)
	if err != nil {
		return nil, err
	}
	return &billing, nil
}

// Lines returns the order lines of any billing, open or closed.
func (r *BillingRepository) Lines(ctx context.Context, billingID int) ([]model.FoodDetail, error) {
	table, err := r.store.ExecuteQuery(ctx, queryBillingLines, billingID)
	if err != nil {
		return nil, err
	}
	return database.MapRows(table, model.FoodDetailFromRow)
}

// FoodTotal sums the order lines of a billing; zero when there are none.
func (r *BillingRepository) FoodTotal(ctx context.Context, billingID int) (decimal.Decimal, error) {
	v, err := r.store.ExecuteScalar(ctx, queryBillingFoodTotal, billingID)
	if err != nil {
		return decimal.Zero, err
	}
	return database.ToDecimal(v)
}

// ListByComputer returns the session history of a computer, newest first.
func (r *BillingRepository) ListByComputer(ctx context.Context, computerID int16) ([]model.Billing, error) {
	table, err := r.store.ExecuteQuery(ctx, queryBillingHistory, computerID)
	if err != nil {
		return nil, err
	}
	return database.MapRows(table, model.BillingFromRow)
}
