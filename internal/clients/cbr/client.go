package cbr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultFeedURL = "https://www.cbr-xml-daily.ru/daily_json.js"
	maxBodyBytes   = 256 << 10
)

var (
	ErrUnavailable     = errors.New("rates feed is unavailable")
	ErrBadResponse     = errors.New("malformed rates feed response")
	ErrCurrencyMissing = errors.New("currency is not present in the feed")
	ErrBadValueKind    = errors.New("currency value has unexpected type")
)

type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func New(feedURL string) *Client {
	if strings.TrimSpace(feedURL) == "" {
		feedURL = defaultFeedURL
	}
	return &Client{
		BaseURL: feedURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Valute в дневном фиде несёт и NumCode, и Name, но контракт у нас
// только на Value — остальное намеренно не читаем.
type valute struct {
	Value any `json:"Value"`
}

type dailyDocument struct {
	Valute map[string]valute `json:"Valute"`
}

// Currencies возвращает курс к рублю для каждого из запрошенных кодов.
// Ровно одно обращение к фиду на вызов; коды сверяются без учёта регистра.
func (c *Client) Currencies(ctx context.Context, codes []string) (map[string]float64, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("currency codes are empty")
	}

	doc, err := c.fetchDaily(ctx)
	if err != nil {
		return nil, err
	}

	valutes := make(map[string]valute, len(doc.Valute))
	for code, v := range doc.Valute {
		valutes[strings.ToUpper(strings.TrimSpace(code))] = v
	}

	out := make(map[string]float64, len(codes))
	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		entry, ok := valutes[code]
		if !ok {
			return nil, fmt.Errorf("%s: %w", code, ErrCurrencyMissing)
		}
		value, ok := entry.Value.(float64)
		if !ok {
			return nil, fmt.Errorf("%s: got %T: %w", code, entry.Value, ErrBadValueKind)
		}
		out[code] = value
	}
	return out, nil
}

func (c *Client) fetchDaily(ctx context.Context) (*dailyDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var doc dailyDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if doc.Valute == nil {
		return nil, fmt.Errorf("%w: no Valute object", ErrBadResponse)
	}
	return &doc, nil
}
