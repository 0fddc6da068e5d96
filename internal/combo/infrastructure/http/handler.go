package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leandrostclaradev/delicias-da-katie/internal/combo/application"
	"github.com/leandrostclaradev/delicias-da-katie/internal/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	combos  application.ComboRepository
}

func NewHandler(log *slog.Logger, service *application.Service, combos application.ComboRepository) *Handler {
	return &Handler{log: log, service: service, combos: combos}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}/status", h.setActive)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	combos, err := h.combos.List(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, combos)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req application.ComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	combo, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, combo)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	combo, err := h.combos.Combo(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, combo)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req application.ComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	combo, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, combo)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.combos.Delete(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.combos.SetActive(r.Context(), id, req.Active); err != nil {
		web.Fail(w, err)
		return
	}
	combo, err := h.combos.Combo(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, combo)
}
