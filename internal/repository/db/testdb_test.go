package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"service-currencies/internal/repository/db"
	"service-currencies/internal/repository/migrations"
)

// newTestDB поднимает чистую in-memory базу со схемой на каждый тест.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	bdb, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, migrations.New(bdb, "sqlite").Setup(context.Background()))

	return bdb
}
