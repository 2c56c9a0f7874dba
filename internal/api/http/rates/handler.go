package rates

import (
	"net/http"

	"github.com/gorilla/mux"

	"service-currencies/internal/api/http/respond"
	ratesvc "service-currencies/internal/service/rates"
)

type Handler struct {
	rates *ratesvc.Service
}

func New(svc *ratesvc.Service) *Handler {
	return &Handler{rates: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/rate", h.getRate).Methods(http.MethodGet)
}

func (h *Handler) getRate(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	quote := r.URL.Query().Get("quote")

	out, err := h.rates.GetPairRate(r.Context(), base, quote)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
