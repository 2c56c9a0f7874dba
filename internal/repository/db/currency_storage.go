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

// Алиас совпадает с именем таблицы, чтобы join-выражения могли
// ссылаться на currency.id.
type CurrencyModel struct {
	bun.BaseModel `bun:"table:currency,alias:currency"`

	ID       int64   `bun:"id,pk,autoincrement"`
	NumCode  string  `bun:"num_code,notnull"`
	CharCode string  `bun:"char_code,notnull"`
	Name     string  `bun:"name,notnull"`
	Value    float64 `bun:"value"`
	Nominal  int64   `bun:"nominal"`
}

type CurrencyStorage struct {
	db *bun.DB
}

func NewCurrencyStorage(db *bun.DB) *CurrencyStorage {
	return &CurrencyStorage{db: db}
}

// Create вставляет пачку валют одной транзакцией: либо все записи,
// либо ни одной. Пустые name и num_code получают значения по умолчанию,
// дубль char_code возвращает ErrDuplicate.
func (s *CurrencyStorage) Create(ctx context.Context, currencies []models.Currency) error {
	if len(currencies) == 0 {
		return nil
	}

	rows := make([]CurrencyModel, 0, len(currencies))
	for _, cur := range currencies {
		code := strings.ToUpper(strings.TrimSpace(cur.CharCode))
		if code == "" {
			return fmt.Errorf("char_code is empty")
		}
		name := strings.TrimSpace(cur.Name)
		if name == "" {
			name = code
		}
		numCode := strings.TrimSpace(cur.NumCode)
		if numCode == "" {
			numCode = "000"
		}
		nominal := cur.Nominal
		if nominal < 1 {
			nominal = 1
		}
		rows = append(rows, CurrencyModel{
			NumCode:  numCode,
			CharCode: code,
			Name:     name,
			Value:    cur.Value,
			Nominal:  nominal,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, row := range rows {
		_, err := tx.NewInsert().
			Model(&row).
			Column("num_code", "char_code", "name", "value", "nominal").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert currency %s: %w", row.CharCode, mapDBError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *CurrencyStorage) List(ctx context.Context) ([]models.Currency, error) {
	var rows []CurrencyModel
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select currencies: %w", err)
	}

	out := make([]models.Currency, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCurrency(row))
	}
	return out, nil
}

// GetByCharCode ищет валюту без учёта регистра кода.
// Отсутствие записи — не ошибка: вернётся (nil, nil).
func (s *CurrencyStorage) GetByCharCode(ctx context.Context, charCode string) (*models.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(charCode))

	var row CurrencyModel
	err := s.db.NewSelect().
		Model(&row).
		Where("char_code = ?", code).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select currency %s: %w", code, err)
	}

	cur := toCurrency(row)
	return &cur, nil
}

// UpdateValue выставляет курс по коду. Если записи нет, молча
// ничего не делает.
func (s *CurrencyStorage) UpdateValue(ctx context.Context, charCode string, value float64) error {
	code := strings.ToUpper(strings.TrimSpace(charCode))

	_, err := s.db.NewUpdate().
		Model((*CurrencyModel)(nil)).
		Set("value = ?", value).
		Where("char_code = ?", code).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update currency %s: %w", code, err)
	}
	return nil
}

// Delete удаляет валюту по id. Несуществующий id — не ошибка.
func (s *CurrencyStorage) Delete(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().
		Model((*CurrencyModel)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete currency %d: %w", id, err)
	}
	return nil
}

func toCurrency(row CurrencyModel) models.Currency {
	return models.Currency{
		ID:       row.ID,
		NumCode:  row.NumCode,
		CharCode: row.CharCode,
		Name:     row.Name,
		Value:    row.Value,
		Nominal:  row.Nominal,
	}
}
