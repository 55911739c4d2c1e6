package repository

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	store database.Store

	Computer *ComputerRepository
	Food     *FoodRepository
	Billing  *BillingRepository
}

// NewRepositories builds every repository over the server's Store.
func NewRepositories(s *server.Server) *Repositories {
	return ForStore(s.Store)
}

// ForStore builds every repository over store.
func ForStore(store database.Store) *Repositories {
	return &Repositories{
		store:    store,
		Computer: NewComputerRepository(store),
		Food:     NewFoodRepository(store),
		Billing:  NewBillingRepository(store),
	}
}

// InTx runs fn with repositories bound to one transaction, committing
// when fn returns nil.
func (r *Repositories) InTx(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.store.InTx(ctx, func(tx database.Store) error {
		return fn(ForStore(tx))
	})
}
