package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type RequestLogModel struct {
	bun.BaseModel `bun:"table:request_log"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Path      string    `bun:"path,notnull"`
	Status    *int      `bun:"status"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type RequestLogStorage struct {
	db *bun.DB
}

func NewRequestLogStorage(db *bun.DB) *RequestLogStorage {
	return &RequestLogStorage{db: db}
}

func (s *RequestLogStorage) Insert(ctx context.Context, path string, status *int) error {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "unknown"
	}

	row := RequestLogModel{Path: path, Status: status}
	_, err := s.db.NewInsert().
		Model(&row).
		Column("path", "status").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert request_log: %w", err)
	}
	return nil
}
