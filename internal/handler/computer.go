package handler

import (
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/deppfellow/netcafe/internal/service"
	"github.com/labstack/echo/v4"
)

type ComputerHandler struct {
	Handler
	computers *service.ComputerService
	sessions  *service.SessionService
}

func NewComputerHandler(s *server.Server, services *service.Services) *ComputerHandler {
	return &ComputerHandler{
		Handler:   NewHandler(s),
		computers: services.Computer,
		sessions:  services.Session,
	}
}

type StartSessionResponse struct {
	ComputerID int16 `json:"computer_id"`
	BillingID  int   `json:"billing_id"`
}

func (h *ComputerHandler) ListComputers(c echo.Context, req *ListComputersRequest) ([]model.Computer, error) {
	return h.computers.List(c.Request().Context(), req.StatusFilter())
}

func (h *ComputerHandler) GetComputer(c echo.Context, req *ComputerIDRequest) (*model.Computer, error) {
	return h.computers.Get(c.Request().Context(), req.ID)
}

func (h *ComputerHandler) StartSession(c echo.Context, req *ComputerIDRequest) (*StartSessionResponse, error) {
	billingID, err := h.sessions.Start(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &StartSessionResponse{ComputerID: req.ID, BillingID: billingID}, nil
}

func (h *ComputerHandler) Checkout(c echo.Context, req *ComputerIDRequest) (*model.Bill, error) {
	return h.sessions.Checkout(c.Request().Context(), req.ID)
}

func (h *ComputerHandler) ListBillings(c echo.Context, req *ComputerIDRequest) ([]model.Billing, error) {
	return h.sessions.History(c.Request().Context(), req.ID)
}
