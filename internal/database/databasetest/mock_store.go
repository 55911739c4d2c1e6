// Package databasetest provides a testify mock of database.Store so
// repositories and services can be tested without PostgreSQL.
package databasetest

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/stretchr/testify/mock"
)

// MockStore records calls and returns the values configured with On.
//
// Variadic args are recorded as a single []any (nil when there are none),
// so expectations read
//
//	store.On("ExecuteScalar", mock.Anything, query, []any{int16(1)}).Return(nil, nil)
//
// InTx needs no expectation: fn runs against the same mock, and the
// outcome is counted in Commits or Rollbacks.
type MockStore struct {
	mock.Mock

	Commits   int
	Rollbacks int
}

var _ database.Store = (*MockStore)(nil)

// NewMockStore returns a MockStore whose expectations are asserted at test cleanup.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	m := &MockStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ExecuteQuery implements database.Store.
func (m *MockStore) ExecuteQuery(ctx context.Context, query string, args ...any) (*database.Table, error) {
	ret := m.Called(ctx, query, normalize(args))

	var table *database.Table
	if v := ret.Get(0); v != nil {
		table = v.(*database.Table)
	}
	return table, ret.Error(1)
}

// ExecuteScalar implements database.Store.
func (m *MockStore) ExecuteScalar(ctx context.Context, query string, args ...any) (any, error) {
	ret := m.Called(ctx, query, normalize(args))
	return ret.Get(0), ret.Error(1)
}

// ExecuteNonQuery implements database.Store.
func (m *MockStore) ExecuteNonQuery(ctx context.Context, query string, args ...any) (int64, error) {
	ret := m.Called(ctx, query, normalize(args))

	var affected int64
	if v := ret.Get(0); v != nil {
		affected = v.(int64)
	}
	return affected, ret.Error(1)
}

// InTx implements database.Store.
func (m *MockStore) InTx(ctx context.Context, fn func(tx database.Store) error) error {
	if err := fn(m); err != nil {
		m.Rollbacks++
		return err
	}
	m.Commits++
	return nil
}

// normalize records calls without args as []any(nil).
func normalize(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	return args
}
