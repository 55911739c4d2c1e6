package database

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLookupIgnoresCase(t *testing.T) {
	table := NewTable("computerid", "computername", "computerstatus").
		AddRow(int32(1), "Máy 01", uint8(1)).
		AddRow(int32(2), "Máy 02", uint8(0))

	require.Equal(t, 2, table.Len())

	row := table.Rows[0]
	id, err := row.Int("ComputerID")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	name, err := row.String("ComputerName")
	require.NoError(t, err)
	assert.Equal(t, "Máy 01", name)

	status, err := row.Int16("COMPUTERSTATUS")
	require.NoError(t, err)
	assert.Equal(t, int16(1), status)
}

func TestRowMissingColumn(t *testing.T) {
	row := NewTable("a").AddRow(1).Rows[0]

	_, err := row.String("b")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.True(t, row.IsNull("b"))
}

func TestInt16RejectsWiderValues(t *testing.T) {
	row := NewTable("computerid", "big", "small").AddRow(int64(40), int32(70000), int64(-40000)).Rows[0]

	id, err := row.Int16("ComputerID")
	require.NoError(t, err)
	assert.Equal(t, int16(40), id)

	_, err = row.Int16("big")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = row.Int16("small")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAddRowPanicsOnWidthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewTable("a", "b").AddRow(1)
	})
}

func TestMapRows(t *testing.T) {
	table := NewTable("computerid").AddRow(int32(1)).AddRow(int32(2))

	ids, err := MapRows(table, func(r Row) (int, error) { return r.Int("ComputerID") })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)

	ids, err = MapRows(nil, func(r Row) (int, error) { return r.Int("ComputerID") })
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	_, err = MapRows(table, func(r Row) (int, error) { return r.Int("missing") })
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.ErrorContains(t, err, "map row 0")
}

func TestNullTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	row := NewTable("starttime", "endtime").AddRow(now, nil).Rows[0]

	start, err := row.NullTime("StartTime")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.True(t, now.Equal(*start))

	end, err := row.NullTime("EndTime")
	require.NoError(t, err)
	assert.Nil(t, end)
}

func TestToDecimal(t *testing.T) {
	numeric := pgtype.Numeric{Int: big.NewInt(2550), Exp: -2, Valid: true}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "0"},
		{"numeric", numeric, "25.5"},
		{"numeric pointer", &numeric, "25.5"},
		{"invalid numeric", pgtype.Numeric{}, "0"},
		{"string", "12.75", "12.75"},
		{"float", 1.5, "1.5"},
		{"int32", int32(7), "7"},
		{"decimal", decimal.RequireFromString("3.10"), "3.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.value)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	_, err := ToDecimal(struct{}{})
	assert.Error(t, err)
}
