package service

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/deppfellow/netcafe/internal/server"
)

type ComputerService struct {
	server    *server.Server
	computers *repository.ComputerRepository
}

func NewComputerService(s *server.Server, repos *repository.Repositories) *ComputerService {
	return &ComputerService{server: s, computers: repos.Computer}
}

// List returns every computer, or only those in status when it is set.
func (cs *ComputerService) List(ctx context.Context, status *model.ComputerStatus) ([]model.Computer, error) {
	if status == nil {
		return cs.computers.LoadAll(ctx)
	}

	table, err := cs.computers.ListByStatus(ctx, *status)
	if err != nil {
		return nil, err
	}

	return database.MapRows(table, func(row database.Row) (model.Computer, error) {
		id, err := row.Int16("ComputerID")
		if err != nil {
			return model.Computer{}, err
		}
		name, err := row.String("ComputerName")
		if err != nil {
			return model.Computer{}, err
		}
		return model.Computer{ID: id, Name: name, Status: *status}, nil
	})
}

// Get returns one computer.
func (cs *ComputerService) Get(ctx context.Context, id int16) (*model.Computer, error) {
	computer, err := cs.computers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if computer == nil {
		return nil, computerNotFound(id)
	}
	return computer, nil
}
