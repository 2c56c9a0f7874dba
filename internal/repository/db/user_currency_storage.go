package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"service-currencies/internal/models"
)

type UserCurrencyModel struct {
	bun.BaseModel `bun:"table:user_currency"`

	ID         int64 `bun:"id,pk,autoincrement"`
	UserID     int64 `bun:"user_id,notnull"`
	CurrencyID int64 `bun:"currency_id,notnull"`
}

// UserCurrencyStorage хранит связку "пользователь — отслеживаемая валюта".
type UserCurrencyStorage struct {
	db *bun.DB
}

func NewUserCurrencyStorage(db *bun.DB) *UserCurrencyStorage {
	return &UserCurrencyStorage{db: db}
}

func (s *UserCurrencyStorage) Assign(ctx context.Context, userID, currencyID int64) error {
	row := UserCurrencyModel{UserID: userID, CurrencyID: currencyID}
	_, err := s.db.NewInsert().
		Model(&row).
		Column("user_id", "currency_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert user_currency %d/%d: %w", userID, currencyID, err)
	}
	return nil
}

func (s *UserCurrencyStorage) ListForUser(ctx context.Context, userID int64) ([]models.Currency, error) {
	var rows []CurrencyModel
	err := s.db.NewSelect().
		Model(&rows).
		Join("JOIN user_currency AS uc ON uc.currency_id = currency.id").
		Where("uc.user_id = ?", userID).
		OrderExpr("currency.id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select currencies for user %d: %w", userID, err)
	}

	out := make([]models.Currency, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCurrency(row))
	}
	return out, nil
}
