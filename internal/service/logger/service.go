package logger

import (
	"context"
	"fmt"
	"strings"
)

type DBRequestLogger struct {
	storage LoggerStorage
}

func New(storage LoggerStorage) *DBRequestLogger {
	return &DBRequestLogger{storage: storage}
}

func (l *DBRequestLogger) LogRequest(ctx context.Context, endpoint string, status *int) error {
	p := strings.TrimSpace(endpoint)
	p = strings.Trim(p, "/")
	if p == "" {
		p = "unknown"
	}

	if err := l.storage.Insert(ctx, p, status); err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}
	return nil
}
