package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-currencies/internal/repository/db"
)

func TestRequestLogStorage_Insert(t *testing.T) {
	bdb := newTestDB(t)
	storage := db.NewRequestLogStorage(bdb)
	ctx := context.Background()

	status := 200
	require.NoError(t, storage.Insert(ctx, "api/v1/currencies", &status))
	require.NoError(t, storage.Insert(ctx, "api/v1/rate", nil))
	require.NoError(t, storage.Insert(ctx, "   ", nil))

	var rows []db.RequestLogModel
	err := bdb.NewSelect().Model(&rows).OrderExpr("id").Scan(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "api/v1/currencies", rows[0].Path)
	require.NotNil(t, rows[0].Status)
	assert.Equal(t, 200, *rows[0].Status)

	assert.Equal(t, "api/v1/rate", rows[1].Path)
	assert.Nil(t, rows[1].Status)

	assert.Equal(t, "unknown", rows[2].Path)
}
