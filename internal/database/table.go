package database

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	// ErrColumnNotFound is returned by Row getters for unknown columns.
	ErrColumnNotFound = errors.New("column not found")

	// ErrOutOfRange is returned when a value does not fit the requested type.
	ErrOutOfRange = errors.New("value out of range")
)

// Table is the tabular result of a query: ordered column names and one
// Row per result row.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Row maps column names to values. Lookups ignore case, the same way
// Postgres folds unquoted identifiers.
type Row map[string]any

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns, Rows: []Row{}}
}

// AddRow appends one row, values in column order. It panics when the
// value count differs from the column count.
func (t *Table) AddRow(values ...any) *Table {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("database: row has %d values, table has %d columns", len(values), len(t.Columns)))
	}

	row := make(Row, len(values))
	for i, column := range t.Columns {
		row[strings.ToLower(column)] = values[i]
	}
	t.Rows = append(t.Rows, row)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// MapRows builds one record per row of t. A nil table yields an empty
// slice.
func MapRows[T any](t *Table, build func(Row) (T, error)) ([]T, error) {
	out := make([]T, 0, t.Len())
	if t == nil {
		return out, nil
	}

	for i, row := range t.Rows {
		record, err := build(row)
		if err != nil {
			return nil, fmt.Errorf("map row %d: %w", i, err)
		}
		out = append(out, record)
	}
	return out, nil
}

// Value returns the raw value of column.
func (r Row) Value(column string) (any, bool) {
	v, ok := r[strings.ToLower(column)]
	return v, ok
}

// IsNull reports whether column is SQL NULL. Missing columns count as NULL.
func (r Row) IsNull(column string) bool {
	v, ok := r.Value(column)
	return !ok || v == nil
}

func (r Row) lookup(column string) (any, error) {
	v, ok := r.Value(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}
	return v, nil
}

// String reads column as text. NULL reads as "".
func (r Row) String(column string) (string, error) {
	v, err := r.lookup(column)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("column %s: %w", column, err)
	}
	return s, nil
}

// Int reads column as int. NULL reads as 0.
func (r Row) Int(column string) (int, error) {
	v, err := r.lookup(column)
	if err != nil {
		return 0, err
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return i, nil
}

// Int16 reads a smallint column. NULL reads as 0.
func (r Row) Int16(column string) (int16, error) {
	v, err := r.lookup(column)
	if err != nil {
		return 0, err
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	if i < math.MinInt16 || i > math.MaxInt16 {
		return 0, fmt.Errorf("column %s: %w: %d does not fit int16", column, ErrOutOfRange, i)
	}
	return int16(i), nil
}

// Decimal reads a numeric column. NULL reads as zero.
func (r Row) Decimal(column string) (decimal.Decimal, error) {
	v, err := r.lookup(column)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := ToDecimal(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %s: %w", column, err)
	}
	return d, nil
}

// Time reads a timestamp column.
func (r Row) Time(column string) (time.Time, error) {
	v, err := r.lookup(column)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: %w", column, err)
	}
	return ts, nil
}

// NullTime reads a nullable timestamp column; NULL reads as nil.
func (r Row) NullTime(column string) (*time.Time, error) {
	if _, err := r.lookup(column); err != nil {
		return nil, err
	}
	if r.IsNull(column) {
		return nil, nil
	}
	ts, err := r.Time(column)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// ToDecimal converts a value read from pgx (pgtype.Numeric for numeric
// columns) or supplied by a caller into a decimal. nil converts to zero.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, nil
		}
		return *x, nil
	case pgtype.Numeric:
		if !x.Valid {
			return decimal.Zero, nil
		}
		text, err := x.Value()
		if err != nil {
			return decimal.Zero, err
		}
		s, ok := text.(string)
		if !ok {
			return decimal.Zero, fmt.Errorf("unexpected numeric encoding %T", text)
		}
		return decimal.NewFromString(s)
	case *pgtype.Numeric:
		if x == nil {
			return decimal.Zero, nil
		}
		return ToDecimal(*x)
	case string:
		return decimal.NewFromString(x)
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	default:
		i, err := cast.ToInt64E(x)
		if err != nil {
			return decimal.Zero, fmt.Errorf("unable to convert %T to decimal", v)
		}
		return decimal.NewFromInt(i), nil
	}
}
