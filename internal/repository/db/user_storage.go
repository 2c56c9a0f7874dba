package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"service-currencies/internal/models"
)

type UserModel struct {
	bun.BaseModel `bun:"table:user"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

type UserStorage struct {
	db *bun.DB
}

func NewUserStorage(db *bun.DB) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) Insert(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name is empty")
	}

	// Returning заполняет сгенерированный id одинаково для sqlite и postgres.
	row := UserModel{Name: name}
	if _, err := s.db.NewInsert().
		Model(&row).
		Column("name").
		Returning("id").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &models.User{ID: row.ID, Name: row.Name}, nil
}

func (s *UserStorage) List(ctx context.Context) ([]models.User, error) {
	var rows []UserModel
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	out := make([]models.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.User{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

// GetByID возвращает (nil, nil), когда пользователя нет.
func (s *UserStorage) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var row UserModel
	err := s.db.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return &models.User{ID: row.ID, Name: row.Name}, nil
}
