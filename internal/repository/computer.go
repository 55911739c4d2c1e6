package repository

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/model"
)

const (
	queryLoadComputers       = "SELECT ComputerID, ComputerName, ComputerStatus FROM Computer ORDER BY ComputerID"
	queryComputersByStatus   = "SELECT ComputerID, ComputerName FROM Computer WHERE ComputerStatus = @Status ORDER BY ComputerID"
	queryComputerByID        = "SELECT ComputerID, ComputerName, ComputerStatus FROM Computer WHERE ComputerID = @ComputerID"
	queryComputerExists      = "SELECT 1 FROM Computer WHERE ComputerID = @ComputerID"
	queryUpdateComputerState = "UPDATE Computer SET ComputerStatus = @Status WHERE ComputerID = @ComputerID"
)

// ComputerRepository reads and updates seats.
type ComputerRepository struct {
	store database.Store
}

func NewComputerRepository(store database.Store) *ComputerRepository {
	return &ComputerRepository{store: store}
}

// LoadAll returns every computer ordered by id.
func (r *ComputerRepository) LoadAll(ctx context.Context) ([]model.Computer, error) {
	table, err := r.store.ExecuteQuery(ctx, queryLoadComputers)
	if err != nil {
		return nil, err
	}
	return database.MapRows(table, model.ComputerFromRow)
}

// ListByStatus returns the id and name of the computers in status.
func (r *ComputerRepository) ListByStatus(ctx context.Context, status model.ComputerStatus) (*database.Table, error) {
	return r.store.ExecuteQuery(ctx, queryComputersByStatus, int16(status))
}

// GetByID returns the computer, or nil when it does not exist.
func (r *ComputerRepository) GetByID(ctx context.Context, id int16) (*model.Computer, error) {
	table, err := r.store.ExecuteQuery(ctx, queryComputerByID, id)
	if err != nil {
		return nil, err
	}

	row := firstRow(table)
	if row == nil {
		return nil, nil
	}

	computer, err := model.ComputerFromRow(row)
	if err != nil {
		return nil, err
	}
	return &computer, nil
}

// Exists reports whether the computer is known.
func (r *ComputerRepository) Exists(ctx context.Context, id int16) (bool, error) {
	v, err := r.store.ExecuteScalar(ctx, queryComputerExists, id)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// UpdateStatus sets the status and reports whether a row changed.
func (r *ComputerRepository) UpdateStatus(ctx context.Context, id int16, status model.ComputerStatus) (bool, error) {
	n, err := r.store.ExecuteNonQuery(ctx, queryUpdateComputerState, int16(status), id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
