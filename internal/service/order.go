package service

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/shopspring/decimal"
)

// OrderService edits the food order of a computer's open billing.
type OrderService struct {
	server   *server.Server
	foods    *repository.FoodRepository
	billings *repository.BillingRepository
}

func NewOrderService(s *server.Server, repos *repository.Repositories) *OrderService {
	return &OrderService{
		server:   s,
		foods:    repos.Food,
		billings: repos.Billing,
	}
}

// SetFoodQuantity makes the open billing of a computer hold count items
// of a food. Zero removes the line.
func (o *OrderService) SetFoodQuantity(ctx context.Context, computerID int16, foodID, count int) error {
	if count < 0 {
		return errs.NewBadRequestError("Count must not be negative", true, &codeInvalidCount,
			[]errs.FieldError{{Field: "count", Error: "must be at least 0"}})
	}

	billingID, err := o.foods.GetUncheckBillingID(ctx, computerID)
	if err != nil {
		return err
	}
	if billingID == repository.NoBilling {
		return noOpenBilling(computerID)
	}

	log := o.server.Logger.With().
		Int16("computer_id", computerID).
		Int("billing_id", billingID).
		Int("food_id", foodID).
		Int("count", count).
		Logger()

	if count == 0 {
		if err := o.foods.DeleteFoodDetails(ctx, billingID, foodID); err != nil {
			return err
		}
		log.Debug().Msg("order line removed")
		return nil
	}

	exists, err := o.foods.FoodDetailsExist(ctx, billingID, foodID)
	if err != nil {
		return err
	}

	if exists {
		err = o.foods.UpdateFoodDetails(ctx, billingID, foodID, count)
	} else {
		err = o.foods.SaveFoodDetails(ctx, billingID, foodID, count)
	}
	if err != nil {
		return err
	}

	log.Debug().Bool("updated", exists).Msg("order line saved")
	return nil
}

// Lines returns the running order of a computer. A computer without an
// open billing has an empty order.
func (o *OrderService) Lines(ctx context.Context, computerID int16) (*model.Order, error) {
	billingID, err := o.foods.GetUncheckBillingID(ctx, computerID)
	if err != nil {
		return nil, err
	}

	order := &model.Order{BillingID: billingID, Lines: []model.FoodDetail{}, FoodTotal: decimal.Zero}
	if billingID == repository.NoBilling {
		return order, nil
	}

	lines, err := o.foods.GetFoodDetail(ctx, computerID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	order.FoodTotal, err = o.billings.FoodTotal(ctx, billingID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Categories returns the menu categories.
func (o *OrderService) Categories(ctx context.Context) ([]model.Category, error) {
	table, err := o.foods.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	return database.MapRows(table, model.CategoryFromRow)
}

// Foods returns the menu items of a category.
func (o *OrderService) Foods(ctx context.Context, category string) ([]model.Food, error) {
	return o.foods.GetFoodsByCategory(ctx, category)
}
