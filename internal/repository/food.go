package repository

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/model"
)

// NoBilling is returned by GetUncheckBillingID when the computer has no
// open session.
const NoBilling = -1

const (
	queryCategories        = "SELECT CategoryName FROM Category"
	queryFoodsByCategory   = "SELECT f.FoodID, f.FoodName, c.CategoryName, f.Price FROM Food f JOIN Category c ON c.CategoryID = f.CategoryID WHERE c.CategoryName = @CategoryName ORDER BY f.FoodName"
	queryFoodDetail        = "SELECT FoodID, FoodName, Count, Price FROM GetFoodDetailsByComputerID(@ComputerID)"
	queryUncheckBillingID  = "SELECT BillingID FROM UsageSession WHERE ComputerID = @ComID AND EndTime IS NULL"
	queryFoodDetailExists  = "SELECT 1 FROM FoodDetail WHERE BillingID = @BillingID AND FoodID = @FoodID"
	querySaveFoodDetails   = "CALL ProcFoodDetailINIT(@BillingID, @FoodID, @Count)"
	queryUpdateFoodDetails = "UPDATE FoodDetail SET Count = @Count WHERE BillingID = @BillingID AND FoodID = @FoodID"
	queryDeleteFoodDetails = "DELETE FROM FoodDetail WHERE BillingID = @BillingID AND FoodID = @FoodID"
)

// FoodRepository covers the menu and the order lines of open sessions.
type FoodRepository struct {
	store database.Store
}

func NewFoodRepository(store database.Store) *FoodRepository {
	return &FoodRepository{store: store}
}

// GetCategories returns the categoryname column of every category.
func (r *FoodRepository) GetCategories(ctx context.Context) (*database.Table, error) {
	return r.store.ExecuteQuery(ctx, queryCategories)
}

// GetFoodsByCategory returns the menu items of one category.
func (r *FoodRepository) GetFoodsByCategory(ctx context.Context, categoryName string) ([]model.Food, error) {
	table, err := r.store.ExecuteQuery(ctx, queryFoodsByCategory, categoryName)
	if err != nil {
		return nil, err
	}
	return database.MapRows(table, model.FoodFromRow)
}

// GetFoodDetail returns the order lines of the open session on a computer.
func (r *FoodRepository) GetFoodDetail(ctx context.Context, computerID int16) ([]model.FoodDetail, error) {
	table, err := r.store.ExecuteQuery(ctx, queryFoodDetail, computerID)
	if err != nil {
		return nil, err
	}
	return database.MapRows(table, model.FoodDetailFromRow)
}

// GetUncheckBillingID returns the open billing id of a computer, or
// NoBilling when there is none.
func (r *FoodRepository) GetUncheckBillingID(ctx context.Context, computerID int16) (int, error) {
	v, err := r.store.ExecuteScalar(ctx, queryUncheckBillingID, computerID)
	if err != nil {
		return NoBilling, err
	}

	id, ok, err := scalarInt(v)
	if err != nil || !ok {
		return NoBilling, err
	}
	return id, nil
}

// FoodDetailsExist reports whether the billing already has a line for the food.
func (r *FoodRepository) FoodDetailsExist(ctx context.Context, billingID, foodID int) (bool, error) {
	v, err := r.store.ExecuteScalar(ctx, queryFoodDetailExists, billingID, foodID)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// SaveFoodDetails adds count items of a food to the billing. An existing
// line is increased by count.
func (r *FoodRepository) SaveFoodDetails(ctx context.Context, billingID, foodID, count int) error {
	_, err := r.store.ExecuteNonQuery(ctx, querySaveFoodDetails, billingID, foodID, count)
	return err
}

// UpdateFoodDetails sets the count of an existing line.
func (r *FoodRepository) UpdateFoodDetails(ctx context.Context, billingID, foodID, count int) error {
	_, err := r.store.ExecuteNonQuery(ctx, queryUpdateFoodDetails, count, billingID, foodID)
	return err
}

// DeleteFoodDetails removes a line.
func (r *FoodRepository) DeleteFoodDetails(ctx context.Context, billingID, foodID int) error {
	_, err := r.store.ExecuteNonQuery(ctx, queryDeleteFoodDetails, billingID, foodID)
	return err
}
