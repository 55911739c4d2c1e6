// Package model holds the café entity records.
//
// Records are plain values built from one row of a query result. They
// have no lifecycle of their own: callers build them, use them and drop
// them.
package model
