package handler

import (
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/deppfellow/netcafe/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	Computer *ComputerHandler
	Food     *FoodHandler
	Billing  *BillingHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Computer: NewComputerHandler(s, services),
		Food:     NewFoodHandler(s, services),
		Billing:  NewBillingHandler(s, services),
	}
}
