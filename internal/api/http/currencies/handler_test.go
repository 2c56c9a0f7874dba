package currencies_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "service-currencies/internal/api/http/currencies"
	"service-currencies/internal/clients/cbr"
	"service-currencies/internal/models"
	"service-currencies/internal/repository/db"
	"service-currencies/internal/repository/migrations"
	currsvc "service-currencies/internal/service/currencies"
)

const feedBody = `{
	"Date": "2026-08-21T11:30:00+03:00",
	"Valute": {
		"USD": {"ID": "R01235", "NumCode": "840", "CharCode": "USD", "Nominal": 1, "Name": "Доллар США", "Value": 91.2, "Previous": 90.85},
		"EUR": {"ID": "R01239", "NumCode": "978", "CharCode": "EUR", "Nominal": 1, "Name": "Евро", "Value": 98.75, "Previous": 99.1}
	}
}`

func newTestRouter(t *testing.T, feedURL string) *mux.Router {
	t.Helper()

	bdb, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })
	require.NoError(t, migrations.New(bdb, "sqlite").Setup(context.Background()))

	svc := currsvc.New(cbr.New(feedURL), db.NewCurrencyStorage(bdb), db.NewUserCurrencyStorage(bdb))

	r := mux.NewRouter()
	handler.New(svc, []string{"USD", "EUR"}).Register(r)
	return r
}

func doRequest(r *mux.Router, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Sync_PopulatesCatalog(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	defer feed.Close()

	router := newTestRouter(t, feed.URL)

	rec := doRequest(router, http.MethodPost, "/api/v1/currencies/sync", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/currencies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Currency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "USD", list[0].CharCode)
	assert.Equal(t, 91.2, list[0].Value)
	assert.Equal(t, "EUR", list[1].CharCode)
}

func TestHandler_Sync_FeedDown(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	feed.Close()

	router := newTestRouter(t, feed.URL)

	rec := doRequest(router, http.MethodPost, "/api/v1/currencies/sync", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var be models.BusinessError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &be))
	assert.Equal(t, "feed_unavailable", be.Code)
}

func TestHandler_Sync_MissingCodeInFeed(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	defer feed.Close()

	router := newTestRouter(t, feed.URL)

	// GBP в фиде нет: синхронизация падает целиком
	rec := doRequest(router, http.MethodPost, "/api/v1/currencies/sync?codes=USD,GBP", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var be models.BusinessError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &be))
	assert.Equal(t, "feed_currency_not_found", be.Code)
	assert.Contains(t, be.Message, "GBP")

	rec = doRequest(router, http.MethodGet, "/api/v1/currencies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Currency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestHandler_GetCurrency_NotFound(t *testing.T) {
	router := newTestRouter(t, "http://feed.invalid")

	rec := doRequest(router, http.MethodGet, "/api/v1/currency?code=USD", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var be models.BusinessError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &be))
	assert.Equal(t, "currency_not_found", be.Code)
}

func TestHandler_Update_UnknownCodeIsOK(t *testing.T) {
	router := newTestRouter(t, "http://feed.invalid")

	body := []byte(`{"code": "ZZZ", "value": 5}`)
	rec := doRequest(router, http.MethodPost, "/api/v1/currency/update", body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Update_RejectsNegative(t *testing.T) {
	router := newTestRouter(t, "http://feed.invalid")

	body := []byte(`{"code": "USD", "value": -1}`)
	rec := doRequest(router, http.MethodPost, "/api/v1/currency/update", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var be models.BusinessError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &be))
	assert.Equal(t, "invalid_rate", be.Code)
}
