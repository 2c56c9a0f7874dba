package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"service-currencies/internal/models"
)

const (
	baseCCY  = "RUB"
	decimals = 4
)

type Storage interface {
	GetByCharCode(ctx context.Context, charCode string) (*models.Currency, error)
}

type Service struct {
	st Storage
}

func New(st Storage) *Service { return &Service{st: st} }

type PairRate struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
	Rate  string `json:"rate"`
}

// GetPairRate считает, сколько quote стоит одна единица base.
// Справочник хранит курсы к рублю (Value рублей за Nominal единиц),
// поэтому кросс-курс идёт через рублёвую опору.
func (s *Service) GetPairRate(ctx context.Context, base, quote string) (*PairRate, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))

	if base == "" || quote == "" {
		return nil, models.BizError("invalid_currency", "base and quote are required")
	}
	if base == quote {
		return nil, models.BizError("same_currency", "base and quote must be different")
	}

	// 1) RUB to Any
	if base == baseCCY {
		perQuote, err := s.rubPerUnit(ctx, quote)
		if err != nil {
			return nil, err
		}
		rate := decimal.NewFromInt(1).Div(perQuote)
		return &PairRate{Base: base, Quote: quote, Rate: rate.StringFixed(decimals)}, nil
	}

	// 2) Any to RUB
	if quote == baseCCY {
		perBase, err := s.rubPerUnit(ctx, base)
		if err != nil {
			return nil, err
		}
		return &PairRate{Base: base, Quote: quote, Rate: perBase.StringFixed(decimals)}, nil
	}

	// 3) Any to Any
	perBase, err := s.rubPerUnit(ctx, base)
	if err != nil {
		return nil, err
	}
	perQuote, err := s.rubPerUnit(ctx, quote)
	if err != nil {
		return nil, err
	}

	cross := perBase.Div(perQuote)
	return &PairRate{Base: base, Quote: quote, Rate: cross.StringFixed(decimals)}, nil
}

// rubPerUnit — сколько рублей стоит одна единица валюты.
func (s *Service) rubPerUnit(ctx context.Context, code string) (decimal.Decimal, error) {
	cur, err := s.st.GetByCharCode(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get currency %s: %w", code, err)
	}
	if cur == nil {
		return decimal.Zero, models.BizError("rate_not_available", fmt.Sprintf("currency %s is not loaded", code))
	}
	if cur.Value <= 0 {
		return decimal.Zero, fmt.Errorf("rate for %s is zero, cannot convert", code)
	}

	return decimal.NewFromFloat(cur.Value).Div(decimal.NewFromInt(cur.Nominal)), nil
}
