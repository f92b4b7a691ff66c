package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddColumn(t *testing.T) {
	t.Run("Columns preserve insertion order", func(t *testing.T) {
		tbl := New("orders")
		require.NoError(t, tbl.AddColumn("order_id", []interface{}{"A", "B"}))
		require.NoError(t, tbl.AddColumn("amount", []interface{}{int64(1), int64(2)}))

		assert.Equal(t, []string{"order_id", "amount"}, tbl.ColumnNames())
		assert.Equal(t, 2, tbl.NumRows())
		assert.Equal(t, 2, tbl.NumColumns())
	})

	t.Run("Duplicate column rejected", func(t *testing.T) {
		tbl := New("orders")
		require.NoError(t, tbl.AddColumn("order_id", []interface{}{"A"}))

		err := tbl.AddColumn("order_id", []interface{}{"B"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Length mismatch rejected", func(t *testing.T) {
		tbl := New("orders")
		require.NoError(t, tbl.AddColumn("order_id", []interface{}{"A", "B"}))

		err := tbl.AddColumn("amount", []interface{}{int64(1)})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expected 2")
	})
}

func TestTable_Column(t *testing.T) {
	tbl := New("products")
	require.NoError(t, tbl.AddColumn("price", []interface{}{1.5, 2.5}))

	col, err := tbl.Column("price")
	require.NoError(t, err)
	assert.Equal(t, "price", col.Name)
	assert.Len(t, col.Values, 2)

	_, err = tbl.Column("rating")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing expected column rating")
	assert.Contains(t, err.Error(), "products")

	assert.True(t, tbl.HasColumn("price"))
	assert.False(t, tbl.HasColumn("rating"))
}

func TestTable_EmptyTable(t *testing.T) {
	tbl := New("empty")
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumColumns())

	// Zero-row columns still define a full schema
	require.NoError(t, tbl.AddColumn("id", []interface{}{}))
	require.NoError(t, tbl.AddColumn("value", []interface{}{}))
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumColumns())
}

func TestTable_Clone(t *testing.T) {
	tbl := New("source")
	require.NoError(t, tbl.AddColumn("id", []interface{}{"A", "B"}))

	clone := tbl.Clone("derived")
	assert.Equal(t, "derived", clone.Name())
	assert.Equal(t, tbl.NumRows(), clone.NumRows())

	// Mutating the clone must not alias the original
	col, err := clone.Column("id")
	require.NoError(t, err)
	col.Values[0] = "Z"

	origCol, err := tbl.Column("id")
	require.NoError(t, err)
	assert.Equal(t, "A", origCol.Values[0])
}

func TestColumn_IsNumeric(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   bool
	}{
		{"All floats", []interface{}{1.0, 2.0}, true},
		{"Ints with nil", []interface{}{int64(1), nil, int64(3)}, true},
		{"Strings", []interface{}{"a", "b"}, false},
		{"Mixed numeric and string", []interface{}{1.0, "b"}, false},
		{"All nil", []interface{}{nil, nil}, false},
		{"Empty", []interface{}{}, false},
		{"Timestamps", []interface{}{time.Now()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &Column{Name: "c", Values: tt.values}
			assert.Equal(t, tt.want, col.IsNumeric())
		})
	}
}

func TestColumn_FloatValues(t *testing.T) {
	col := &Column{Name: "c", Values: []interface{}{int64(2), 1.5, nil}}
	assert.Equal(t, []float64{2, 1.5, 0}, col.FloatValues())
}
