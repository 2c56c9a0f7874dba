package users

import (
	"context"
	"fmt"
	"strings"

	"service-currencies/internal/models"
)

type Storage interface {
	Insert(ctx context.Context, name string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

func (s *Service) Add(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.BizError("invalid_name", "user name must not be empty")
	}
	return s.storage.Insert(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.storage.List(ctx)
}

// Get возвращает nil без ошибки, если пользователя нет.
func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.storage.GetByID(ctx, id)
}

// Seed заводит стартовых пользователей в пустой базе. Повторный запуск
// с той же базой ничего не добавляет.
func (s *Service) Seed(ctx context.Context, names []string) error {
	existing, err := s.storage.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range names {
		if _, err := s.Add(ctx, name); err != nil {
			return fmt.Errorf("seed user %q: %w", name, err)
		}
	}
	return nil
}
