package handler

import (
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/deppfellow/netcafe/internal/service"
	"github.com/labstack/echo/v4"
)

type FoodHandler struct {
	Handler
	orders *service.OrderService
}

func NewFoodHandler(s *server.Server, services *service.Services) *FoodHandler {
	return &FoodHandler{
		Handler: NewHandler(s),
		orders:  services.Order,
	}
}

func (h *FoodHandler) GetOrder(c echo.Context, req *ComputerIDRequest) (*model.Order, error) {
	return h.orders.Lines(c.Request().Context(), req.ID)
}

func (h *FoodHandler) SetFoodQuantity(c echo.Context, req *SetFoodQuantityRequest) error {
	return h.orders.SetFoodQuantity(c.Request().Context(), req.ComputerID, req.FoodID, *req.Count)
}

func (h *FoodHandler) ListCategories(c echo.Context, _ *EmptyRequest) ([]model.Category, error) {
	return h.orders.Categories(c.Request().Context())
}

func (h *FoodHandler) ListFoods(c echo.Context, req *CategoryFoodsRequest) ([]model.Food, error) {
	return h.orders.Foods(c.Request().Context(), req.Name)
}
