package handler

import (
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/deppfellow/netcafe/internal/service"
	"github.com/labstack/echo/v4"
)

type BillingHandler struct {
	Handler
	sessions *service.SessionService
}

func NewBillingHandler(s *server.Server, services *service.Services) *BillingHandler {
	return &BillingHandler{
		Handler:  NewHandler(s),
		sessions: services.Session,
	}
}

func (h *BillingHandler) GetBill(c echo.Context, req *BillingIDRequest) (*model.Bill, error) {
	return h.sessions.Bill(c.Request().Context(), req.ID)
}
