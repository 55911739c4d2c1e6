package router

import (
	"net/http"

	"github.com/deppfellow/netcafe/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerV1Routes(g *echo.Group, h *handler.Handlers) {
	computers := g.Group("/computers")
	computers.GET("", handler.Handle(h.Computer.Handler, h.Computer.ListComputers, http.StatusOK, handler.NewRequest[handler.ListComputersRequest]))
	computers.GET("/:id", handler.Handle(h.Computer.Handler, h.Computer.GetComputer, http.StatusOK, handler.NewRequest[handler.ComputerIDRequest]))
	computers.POST("/:id/session", handler.Handle(h.Computer.Handler, h.Computer.StartSession, http.StatusCreated, handler.NewRequest[handler.ComputerIDRequest]))
	computers.POST("/:id/checkout", handler.Handle(h.Computer.Handler, h.Computer.Checkout, http.StatusOK, handler.NewRequest[handler.ComputerIDRequest]))
	computers.GET("/:id/billings", handler.Handle(h.Computer.Handler, h.Computer.ListBillings, http.StatusOK, handler.NewRequest[handler.ComputerIDRequest]))
	computers.GET("/:id/foods", handler.Handle(h.Food.Handler, h.Food.GetOrder, http.StatusOK, handler.NewRequest[handler.ComputerIDRequest]))
	computers.PUT("/:id/foods", handler.HandleNoContent(h.Food.Handler, h.Food.SetFoodQuantity, http.StatusNoContent, handler.NewRequest[handler.SetFoodQuantityRequest]))

	categories := g.Group("/categories")
	categories.GET("", handler.Handle(h.Food.Handler, h.Food.ListCategories, http.StatusOK, handler.NewRequest[handler.EmptyRequest]))
	categories.GET("/:name/foods", handler.Handle(h.Food.Handler, h.Food.ListFoods, http.StatusOK, handler.NewRequest[handler.CategoryFoodsRequest]))

	g.GET("/billings/:id", handler.Handle(h.Billing.Handler, h.Billing.GetBill, http.StatusOK, handler.NewRequest[handler.BillingIDRequest]))
}
