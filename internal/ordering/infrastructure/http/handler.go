package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/application"
	"github.com/leandrostclaradev/delicias-da-katie/internal/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("ordering-http"),
	}
}

func (h *Handler) SaleRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listSales)
	r.Post("/", h.createSale)
	r.Get("/search", h.searchSales)
	r.Get("/status/{status}", h.listSalesByStatus)
	r.Get("/{id}", h.getSale)
	r.Put("/{id}", h.replaceSale)
	r.Delete("/{id}", h.deleteSale)
	r.Put("/{id}/status", h.updateSaleStatus)
	return r
}

func (h *Handler) OrderRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listOrders)
	r.Post("/", h.createOrder)
	r.Get("/search", h.searchOrders)
	r.Get("/status/{status}", h.listOrdersByStatus)
	r.Get("/{id}", h.getOrder)
	r.Put("/{id}", h.replaceOrder)
	r.Delete("/{id}", h.deleteOrder)
	r.Put("/{id}/status", h.updateOrderStatus)
	return r
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSales(sales))
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateSale")
	defer span.End()

	var req application.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	sale, err := h.service.CreateSale(ctx, req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSale(sale))
}

func (h *Handler) searchSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.SearchSales(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSales(sales))
}

func (h *Handler) listSalesByStatus(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSalesByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSales(sales))
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	sale, err := h.service.Sale(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSale(sale))
}

func (h *Handler) replaceSale(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReplaceSale")
	defer span.End()

	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req application.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	sale, err := h.service.ReplaceSale(ctx, id, req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSale(sale))
}

func (h *Handler) updateSaleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateSaleStatus")
	defer span.End()

	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	sale, err := h.service.UpdateSaleStatus(ctx, id, req.Status)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectSale(sale))
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.service.DeleteSale(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrders(orders))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var req application.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	order, err := h.service.CreateOrder(ctx, req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrder(order))
}

func (h *Handler) searchOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.SearchOrders(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrders(orders))
}

func (h *Handler) listOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrdersByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrders(orders))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	order, err := h.service.Order(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrder(order))
}

func (h *Handler) replaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReplaceOrder")
	defer span.End()

	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req application.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	order, err := h.service.ReplaceOrder(ctx, id, req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrder(order))
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()

	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	order, err := h.service.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, application.ProjectOrder(order))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := web.ID(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
