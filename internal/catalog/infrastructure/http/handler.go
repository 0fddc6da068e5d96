package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/catalog/infrastructure/postgres"
	"github.com/leandrostclaradev/delicias-da-katie/internal/web"
)

type Handler struct {
	log        *slog.Logger
	products   *postgres.ProductRepository
	promotions *postgres.PromotionRepository
}

func NewHandler(log *slog.Logger, products *postgres.ProductRepository, promotions *postgres.PromotionRepository) *Handler {
	return &Handler{log: log, products: products, promotions: promotions}
}

func (h *Handler) ProductRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listProducts)
	r.Post("/", h.createProduct)
	r.Get("/{id}", h.getProduct)
	r.Put("/{id}", h.updateProduct)
	r.Delete("/{id}", h.deleteProduct)
	return r
}

func (h *Handler) PromotionRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listPromotions)
	r.Post("/", h.createPromotion)
	r.Get("/{id}", h.getPromotion)
	r.Put("/{id}", h.updatePromotion)
	r.Delete("/{id}", h.deletePromotion)
	return r
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := p.Validate(); err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.products.Create(r.Context(), &p); err != nil {
		web.Fail(w, err)
		return
	}
	h.log.Info("product created", "id", p.ID, "name", p.Name)
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	p, err := h.products.Product(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	p.ID = id
	if err := p.Validate(); err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.products.Update(r.Context(), &p); err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotions.List(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, promotions)
}

func (h *Handler) createPromotion(w http.ResponseWriter, r *http.Request) {
	var p domain.Promotion
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := p.Validate(); err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.promotions.Create(r.Context(), &p); err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) getPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	p, err := h.promotions.Promotion(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) updatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var p domain.Promotion
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	p.ID = id
	if err := p.Validate(); err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.promotions.Update(r.Context(), &p); err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) deletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.promotions.Delete(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
