package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leandrostclaradev/delicias-da-katie/internal/cashflow/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/cashflow/infrastructure/postgres"
	"github.com/leandrostclaradev/delicias-da-katie/internal/web"
)

type Handler struct {
	log     *slog.Logger
	entries *postgres.Repository
}

func NewHandler(log *slog.Logger, entries *postgres.Repository) *Handler {
	return &Handler{log: log, entries: entries}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.List(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, entries)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var e domain.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := e.Validate(); err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.entries.Create(r.Context(), &e); err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, e)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	e, err := h.entries.Entry(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, e)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var e domain.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	e.ID = id
	if err := e.Validate(); err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.entries.Update(r.Context(), &e); err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, e)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.entries.Delete(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
