package service

import (
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/deppfellow/netcafe/internal/server"
)

type Services struct {
	Computer *ComputerService
	Session  *SessionService
	Order    *OrderService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Computer: NewComputerService(s, repos),
		Session:  NewSessionService(s, repos),
		Order:    NewOrderService(s, repos),
	}
}
