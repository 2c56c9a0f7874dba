package currencies

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"service-currencies/internal/api/http/respond"
	"service-currencies/internal/models"
	currsvc "service-currencies/internal/service/currencies"
)

type Handler struct {
	currencies *currsvc.Service
	syncCodes  []string
}

func New(svc *currsvc.Service, syncCodes []string) *Handler {
	return &Handler{currencies: svc, syncCodes: syncCodes}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/currencies", h.listCurrencies).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/currencies/sync", h.syncCurrencies).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/currency", h.getCurrency).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/currency", h.deleteCurrency).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/currency/update", h.updateCurrency).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/user/currencies", h.assignCurrency).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/user/currencies", h.listUserCurrencies).Methods(http.MethodGet)
}

func (h *Handler) listCurrencies(w http.ResponseWriter, r *http.Request) {
	list, err := h.currencies.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *Handler) getCurrency(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		respond.Error(w, models.BizError("invalid_code", "code query parameter is required"))
		return
	}

	cur, err := h.currencies.Get(r.Context(), code)
	if err != nil {
		respond.Error(w, err)
		return
	}
	if cur == nil {
		respond.JSON(w, http.StatusNotFound, models.BizError("currency_not_found", "currency "+strings.ToUpper(code)+" is not in the catalog"))
		return
	}
	respond.JSON(w, http.StatusOK, cur)
}

type updateRequest struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}

// Обновление несуществующего кода отвечает 200: справочник трактует
// такую запись как no-op.
func (h *Handler) updateCurrency(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, models.BizError("bad_request", "invalid json body"))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		respond.Error(w, models.BizError("invalid_code", "code is required"))
		return
	}

	if err := h.currencies.SetRate(r.Context(), req.Code, req.Value); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "rate updated"})
}

func (h *Handler) deleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id < 1 {
		respond.Error(w, models.BizError("invalid_id", "id must be a positive integer"))
		return
	}

	if err := h.currencies.Remove(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "currency removed"})
}

func (h *Handler) syncCurrencies(w http.ResponseWriter, r *http.Request) {
	codes := h.syncCodes
	if raw := strings.TrimSpace(r.URL.Query().Get("codes")); raw != "" {
		var override []string
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				override = append(override, code)
			}
		}
		if len(override) == 0 {
			respond.Error(w, models.BizError("invalid_codes", "codes list is empty"))
			return
		}
		codes = override
	}

	if err := h.currencies.SyncFromFeed(r.Context(), codes); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "rates synchronized"})
}

type assignRequest struct {
	UserID     int64 `json:"user_id"`
	CurrencyID int64 `json:"currency_id"`
}

func (h *Handler) assignCurrency(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, models.BizError("bad_request", "invalid json body"))
		return
	}
	if req.UserID < 1 || req.CurrencyID < 1 {
		respond.Error(w, models.BizError("invalid_assignment", "user_id and currency_id must be positive"))
		return
	}

	if err := h.currencies.AssignToUser(r.Context(), req.UserID, req.CurrencyID); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"message": "currency assigned"})
}

func (h *Handler) listUserCurrencies(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID < 1 {
		respond.Error(w, models.BizError("invalid_id", "user_id must be a positive integer"))
		return
	}

	list, err := h.currencies.ListForUser(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
