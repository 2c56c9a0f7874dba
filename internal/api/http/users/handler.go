package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"service-currencies/internal/api/http/respond"
	"service-currencies/internal/models"
	usersvc "service-currencies/internal/service/users"
)

type Handler struct {
	users *usersvc.Service
}

func New(svc *usersvc.Service) *Handler {
	return &Handler{users: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/users", h.addUser).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/user", h.getUser).Methods(http.MethodGet)
}

type addRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, models.BizError("bad_request", "invalid json body"))
		return
	}

	user, err := h.users.Add(r.Context(), req.Name)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id < 1 {
		respond.Error(w, models.BizError("invalid_id", "id must be a positive integer"))
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	if user == nil {
		respond.JSON(w, http.StatusNotFound, models.BizError("user_not_found", "user "+strconv.FormatInt(id, 10)+" does not exist"))
		return
	}
	respond.JSON(w, http.StatusOK, user)
}
