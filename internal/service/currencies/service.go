package currencies

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"service-currencies/internal/models"
)

// Feed отдаёт курсы к рублю по буквенным кодам валют.
type Feed interface {
	Currencies(ctx context.Context, codes []string) (map[string]float64, error)
}

type Storage interface {
	Create(ctx context.Context, currencies []models.Currency) error
	List(ctx context.Context) ([]models.Currency, error)
	GetByCharCode(ctx context.Context, charCode string) (*models.Currency, error)
	UpdateValue(ctx context.Context, charCode string, value float64) error
	Delete(ctx context.Context, id int64) error
}

type AssignmentStorage interface {
	Assign(ctx context.Context, userID, currencyID int64) error
	ListForUser(ctx context.Context, userID int64) ([]models.Currency, error)
}

// Числовые коды ISO 4217 для известных валют, остальным достаётся "000".
var numCodes = map[string]string{
	"USD": "840",
	"EUR": "978",
	"GBP": "826",
	"AUD": "036",
}

const defaultNumCode = "000"

type Service struct {
	feed        Feed
	storage     Storage
	assignments AssignmentStorage

	// сериализует синхронизацию и ручные мутации справочника
	mu sync.Mutex
}

func New(feed Feed, storage Storage, assignments AssignmentStorage) *Service {
	return &Service{feed: feed, storage: storage, assignments: assignments}
}

func (s *Service) List(ctx context.Context) ([]models.Currency, error) {
	return s.storage.List(ctx)
}

// Get возвращает nil без ошибки, если кода в справочнике нет.
func (s *Service) Get(ctx context.Context, charCode string) (*models.Currency, error) {
	return s.storage.GetByCharCode(ctx, charCode)
}

// SetRate вручную выставляет курс. Курс обязан быть конечным и
// неотрицательным; неизвестный код молча игнорируется.
func (s *Service) SetRate(ctx context.Context, charCode string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return models.BizError("invalid_rate", "rate must be a finite number")
	}
	if value < 0 {
		return models.BizError("invalid_rate", "rate must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.UpdateValue(ctx, charCode, value)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Delete(ctx, id)
}

// SyncFromFeed подтягивает курсы и вливает их в справочник: новый код
// вставляется с дефолтами, у существующего обновляется только курс.
// Фид опрашивается до первой записи в базу, поэтому ошибка фида
// оставляет справочник нетронутым. Коды обрабатываются в порядке
// запроса, каждый — отдельной операцией.
func (s *Service) SyncFromFeed(ctx context.Context, codes []string) error {
	rates, err := s.feed.Currencies(ctx, codes)
	if err != nil {
		return fmt.Errorf("fetch rates: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		rate, ok := rates[code]
		if !ok {
			continue
		}

		existing, err := s.storage.GetByCharCode(ctx, code)
		if err != nil {
			return fmt.Errorf("read currency %s: %w", code, err)
		}

		if existing == nil {
			record := models.Currency{
				NumCode:  numCodeFor(code),
				CharCode: code,
				Name:     code,
				Value:    rate,
				Nominal:  1,
			}
			if err := s.storage.Create(ctx, []models.Currency{record}); err != nil {
				return fmt.Errorf("create currency %s: %w", code, err)
			}
			continue
		}

		if err := s.storage.UpdateValue(ctx, code, rate); err != nil {
			return fmt.Errorf("update currency %s: %w", code, err)
		}
	}
	return nil
}

func (s *Service) AssignToUser(ctx context.Context, userID, currencyID int64) error {
	return s.assignments.Assign(ctx, userID, currencyID)
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Currency, error) {
	return s.assignments.ListForUser(ctx, userID)
}

func numCodeFor(charCode string) string {
	if num, ok := numCodes[charCode]; ok {
		return num
	}
	return defaultNumCode
}
