package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"service-currencies/internal/clients/cbr"
	"service-currencies/internal/models"
	"service-currencies/internal/repository/db"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error переводит ошибку в статус и JSON-тело BusinessError:
// ошибки фида — 502/404, дубликат — 409, бизнес-валидация — 400,
// всё остальное — 500.
func Error(w http.ResponseWriter, err error) int {
	var (
		status = http.StatusInternalServerError
		body   *models.BusinessError
	)

	switch {
	case errors.Is(err, cbr.ErrCurrencyMissing):
		status = http.StatusNotFound
		body = models.BizError("feed_currency_not_found", err.Error())
	case errors.Is(err, cbr.ErrUnavailable):
		status = http.StatusBadGateway
		body = models.BizError("feed_unavailable", err.Error())
	case errors.Is(err, cbr.ErrBadResponse), errors.Is(err, cbr.ErrBadValueKind):
		status = http.StatusBadGateway
		body = models.BizError("bad_feed_response", err.Error())
	case errors.Is(err, db.ErrDuplicate):
		status = http.StatusConflict
		body = models.BizError("duplicate_currency", err.Error())
	default:
		if be, ok := models.AsBizError(err); ok {
			status = http.StatusBadRequest
			body = be
		} else {
			body = models.BizError("internal_error", err.Error())
		}
	}

	JSON(w, status, body)
	return status
}
