package warehouse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gopipeline/internal/config"
	"github.com/dbsmedya/gopipeline/internal/table"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.WarehouseConfig
		want string
	}{
		{
			name: "basic",
			cfg: &config.WarehouseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "pipeline",
				Password: "secret",
				Database: "warehouse",
			},
			want: "pipeline:secret@tcp(localhost:3306)/warehouse?parseTime=true&multiStatements=true&tls=preferred",
		},
		{
			name: "tls disabled",
			cfg: &config.WarehouseConfig{
				Host:     "db.example.com",
				Port:     3307,
				User:     "u",
				Password: "p",
				Database: "dw",
				TLS:      "disable",
			},
			want: "u:p@tcp(db.example.com:3307)/dw?parseTime=true&multiStatements=true&tls=false",
		},
		{
			name: "tls required",
			cfg: &config.WarehouseConfig{
				Host:     "db.example.com",
				Port:     3306,
				User:     "u",
				Password: "p",
				Database: "dw",
				TLS:      "required",
			},
			want: "u:p@tcp(db.example.com:3306)/dw?parseTime=true&multiStatements=true&tls=true",
		},
		{
			name: "no database",
			cfg: &config.WarehouseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "u",
				Password: "p",
			},
			want: "u:p@tcp(localhost:3306)/?parseTime=true&multiStatements=true&tls=preferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDSN(tt.cfg))
		})
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := connect(&config.WarehouseConfig{Driver: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported warehouse driver")
}

func TestOpen_SqliteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "warehouse.db")

	m, err := Open(context.Background(), &config.WarehouseConfig{
		Driver: "sqlite",
		Path:   path,
	})
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Ping(context.Background()))
}

func TestOpen_SqliteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	m, err := Open(context.Background(), &config.WarehouseConfig{
		Driver: "sqlite",
		Path:   path,
	})
	require.NoError(t, err)
	defer m.Close()

	w, err := NewWriter(m.DB, nil)
	require.NoError(t, err)

	tbl := table.New("products")
	require.NoError(t, tbl.AddColumn("product_id", []interface{}{"PROD_000001", "PROD_000002"}))
	require.NoError(t, tbl.AddColumn("price", []interface{}{19.99, 250.0}))
	require.NoError(t, tbl.AddColumn("reviews_count", []interface{}{int64(12), int64(44)}))

	tables := table.NewSet()
	tables.Put("products", tbl)

	require.True(t, w.Load(context.Background(), tables))

	var count int
	require.NoError(t, m.DB.QueryRow(`SELECT COUNT(*) FROM "products"`).Scan(&count))
	assert.Equal(t, 2, count)

	var statsRows int
	require.NoError(t, m.DB.QueryRow(
		`SELECT COUNT(*) FROM "summary_statistics"`).Scan(&statsRows))
	assert.Equal(t, 1, statsRows)

	var price float64
	require.NoError(t, m.DB.QueryRow(
		`SELECT "price" FROM "products" WHERE "product_id" = ?`, "PROD_000001").Scan(&price))
	assert.Equal(t, 19.99, price)
}

func TestWriter_ReplacesExistingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	m, err := Open(context.Background(), &config.WarehouseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	defer m.Close()

	w, err := NewWriter(m.DB, nil)
	require.NoError(t, err)

	build := func(n int) *table.Set {
		tbl := table.New("user_events")
		ids := make([]interface{}, n)
		for i := range ids {
			ids[i] = int64(i)
		}
		require.NoError(t, tbl.AddColumn("event_id", ids))
		set := table.NewSet()
		set.Put("user_events", tbl)
		return set
	}

	require.True(t, w.Load(context.Background(), build(10)))
	require.True(t, w.Load(context.Background(), build(3)))

	var count int
	require.NoError(t, m.DB.QueryRow(`SELECT COUNT(*) FROM "user_events"`).Scan(&count))
	assert.Equal(t, 3, count)
}
