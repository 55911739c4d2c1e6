// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Every method runs one fixed statement through database.Store.
package repository

import (
	"fmt"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/spf13/cast"
)

// firstRow returns the only row we care about, or nil when the result is empty.
func firstRow(table *database.Table) database.Row {
	if table.Len() == 0 {
		return nil
	}
	return table.Rows[0]
}

// scalarInt converts a scalar result to int; nil yields ok=false.
func scalarInt(v any) (n int, ok bool, err error) {
	if v == nil {
		return 0, false, nil
	}
	n, err = cast.ToIntE(v)
	if err != nil {
		return 0, false, fmt.Errorf("unexpected scalar %T: %w", v, err)
	}
	return n, true, nil
}
