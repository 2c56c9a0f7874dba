package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"service-currencies/internal/service/logger"
)

type mockLoggerStorage struct {
	testifymock.Mock
}

func (m *mockLoggerStorage) Insert(ctx context.Context, path string, status *int) error {
	args := m.Called(ctx, path, status)
	return args.Error(0)
}

func TestDBRequestLogger_LogRequest_TrimsSlashes(t *testing.T) {
	storage := &mockLoggerStorage{}
	status := 200
	storage.On("Insert", testifymock.Anything, "api/v1/rate", &status).Return(nil).Once()

	reqLogger := logger.New(storage)

	require.NoError(t, reqLogger.LogRequest(context.Background(), "/api/v1/rate/", &status))
	storage.AssertExpectations(t)
}

func TestDBRequestLogger_LogRequest_EmptyPath(t *testing.T) {
	storage := &mockLoggerStorage{}
	storage.On("Insert", testifymock.Anything, "unknown", (*int)(nil)).Return(nil).Once()

	reqLogger := logger.New(storage)

	require.NoError(t, reqLogger.LogRequest(context.Background(), "  ", nil))
	storage.AssertExpectations(t)
}

func TestDBRequestLogger_LogRequest_StorageError(t *testing.T) {
	storage := &mockLoggerStorage{}
	storage.On("Insert", testifymock.Anything, "api/v1/rate", (*int)(nil)).
		Return(errors.New("database error")).
		Once()

	reqLogger := logger.New(storage)

	err := reqLogger.LogRequest(context.Background(), "api/v1/rate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}
