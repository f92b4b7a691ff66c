package warehouse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gopipeline/internal/config"
	"github.com/dbsmedya/gopipeline/internal/logger"
	"github.com/dbsmedya/gopipeline/internal/table"
)

func newMockWriter(t *testing.T) (*Writer, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	w, err := NewWriter(db, nil)
	require.NoError(t, err)
	return w, mock
}

func smallTable(t *testing.T, name string) *table.Table {
	t.Helper()
	tbl := table.New(name)
	require.NoError(t, tbl.AddColumn("id", []interface{}{"A_1", "A_2"}))
	require.NoError(t, tbl.AddColumn("amount", []interface{}{12.5, 30.0}))
	require.NoError(t, tbl.AddColumn("count", []interface{}{int64(3), int64(7)}))
	return tbl
}

func TestNewWriter_NilDB(t *testing.T) {
	_, err := NewWriter(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is nil")
}

func TestWriter_Load_Success(t *testing.T) {
	w, mock := newMockWriter(t)

	tables := table.NewSet()
	tables.Put("products", smallTable(t, "products"))

	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		`CREATE TABLE "products" ("id" TEXT, "amount" REAL, "count" INTEGER)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "products" ("id", "amount", "count") VALUES (?, ?, ?), (?, ?, ?)`)).
		WithArgs("A_1", 12.5, int64(3), "A_2", 30.0, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// summary_statistics is written after the data tables
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "summary_statistics"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "summary_statistics"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "summary_statistics"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok := w.Load(context.Background(), tables)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Load_DropFails(t *testing.T) {
	w, mock := newMockWriter(t)

	tables := table.NewSet()
	tables.Put("products", smallTable(t, "products"))

	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "products"`)).
		WillReturnError(fmt.Errorf("disk I/O error"))

	ok := w.Load(context.Background(), tables)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Load_InsertFails(t *testing.T) {
	w, mock := newMockWriter(t)

	tables := table.NewSet()
	tables.Put("products", smallTable(t, "products"))

	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnError(fmt.Errorf("constraint violation"))

	ok := w.Load(context.Background(), tables)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Load_StopsAfterFirstFailure(t *testing.T) {
	w, mock := newMockWriter(t)

	tables := table.NewSet()
	tables.Put("products", smallTable(t, "products"))
	tables.Put("transactions", smallTable(t, "transactions"))

	// Only the first table is touched; no statements for the second.
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "products"`)).
		WillReturnError(fmt.Errorf("locked"))

	ok := w.Load(context.Background(), tables)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Load_InvalidTableName(t *testing.T) {
	w, _ := newMockWriter(t)

	tables := table.NewSet()
	tables.Put("bad;name", smallTable(t, "bad;name"))

	ok := w.Load(context.Background(), tables)
	assert.False(t, ok)
}

func TestWriter_EmptyTableSkipsInsert(t *testing.T) {
	w, mock := newMockWriter(t)

	empty := table.New("user_events")
	require.NoError(t, empty.AddColumn("event_id", []interface{}{}))

	tables := table.NewSet()
	tables.Put("user_events", empty)

	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "user_events"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "user_events" ("event_id" TEXT)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "summary_statistics"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "summary_statistics"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "summary_statistics"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok := w.Load(context.Background(), tables)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   string
	}{
		{"integers", []interface{}{int64(1)}, "INTEGER"},
		{"floats", []interface{}{1.5}, "REAL"},
		{"strings", []interface{}{"x"}, "TEXT"},
		{"timestamps", []interface{}{time.Now()}, "TEXT"},
		{"leading nil", []interface{}{nil, int64(2)}, "INTEGER"},
		{"all nil", []interface{}{nil, nil}, "TEXT"},
		{"empty", []interface{}{}, "TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &table.Column{Name: "c", Values: tt.values}
			assert.Equal(t, tt.want, columnType(col))
		})
	}
}

func TestCellValue_FormatsTime(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15T10:30:00Z", cellValue(ts))
	assert.Equal(t, int64(5), cellValue(int64(5)))
	assert.Nil(t, cellValue(nil))
}

func TestLoad_LogsTableContext(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pipeline.log")
	log, err := logger.New(&config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: logPath,
	})
	require.NoError(t, err)

	m, err := Open(context.Background(), &config.WarehouseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "warehouse.db"),
	})
	require.NoError(t, err)
	defer m.Close()

	set := table.NewSet()
	set.Put("products", smallTable(t, "products"))

	w, err := NewWriter(m.DB, log)
	require.NoError(t, err)
	require.True(t, w.Load(context.Background(), set))
	_ = log.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"table":"products"`)
	assert.Contains(t, string(data), `"table":"summary_statistics"`)
}
