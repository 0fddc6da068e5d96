package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leandrostclaradev/delicias-da-katie/internal/identity/application"
	"github.com/leandrostclaradev/delicias-da-katie/internal/identity/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) AuthRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	return r
}

func (h *Handler) UserRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrBadCredentials) {
			web.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, users)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req application.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, user)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	user, err := h.service.User(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, user)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req application.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	user, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, user)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
