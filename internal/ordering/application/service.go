package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/tracing"
)

const timeLayout = "15:04:05"

// LineRequest describes one inbound line. At most one of CatalogItemID and
// ComboID may be set; when the referenced id does not resolve the line is
// dropped with a warning, never failing the request.
type LineRequest struct {
	CatalogItemID *int64          `json:"catalogItemId"`
	ComboID       *int64          `json:"comboId"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

type SaleRequest struct {
	Customer    string          `json:"customer"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Items       []LineRequest   `json:"items"`
}

type OrderRequest struct {
	Customer     string          `json:"customer"`
	Description  string          `json:"description"`
	DeliveryDate string          `json:"deliveryDate"`
	Amount       decimal.Decimal `json:"amount"`
	Items        []LineRequest   `json:"items"`
}

type Service struct {
	log      *slog.Logger
	sales    SaleRepository
	orders   OrderRepository
	products ProductFinder
	combos   ComboFinder
}

func NewService(log *slog.Logger, sales SaleRepository, orders OrderRepository, products ProductFinder, combos ComboFinder) *Service {
	return &Service{log: log, sales: sales, orders: orders, products: products, combos: combos}
}

func (s *Service) CreateSale(ctx context.Context, req SaleRequest) (domain.Sale, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.Sale{}, err
	}
	saleTime, err := parseTime(req.Time)
	if err != nil {
		return domain.Sale{}, err
	}
	items, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return domain.Sale{}, err
	}

	sale := domain.NewSale(req.Customer, req.TotalAmount, date, saleTime, items)
	payload, err := json.Marshal(domain.SaleCreated{
		Customer:    sale.Customer,
		TotalAmount: sale.TotalAmount,
		Items:       len(sale.Items),
	})
	if err != nil {
		return domain.Sale{}, err
	}
	if err := s.sales.Create(ctx, &sale, domain.EventSaleCreated, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Sale{}, err
	}
	s.log.Info("sale created", "id", sale.ID, "customer", sale.Customer, "items", len(sale.Items))
	return sale, nil
}

func (s *Service) Sale(ctx context.Context, id int64) (domain.Sale, error) {
	return s.sales.Sale(ctx, id)
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.List(ctx)
}

func (s *Service) ListSalesByStatus(ctx context.Context, statusName string) ([]domain.Sale, error) {
	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	return s.sales.ListByStatus(ctx, status)
}

func (s *Service) SearchSales(ctx context.Context, term string) ([]domain.Sale, error) {
	return s.sales.Search(ctx, term)
}

// ReplaceSale rebuilds the sale from the request, re-resolving every line
// through the tolerant path. The stored status is preserved; status changes
// go through UpdateSaleStatus.
func (s *Service) ReplaceSale(ctx context.Context, id int64, req SaleRequest) (domain.Sale, error) {
	existing, err := s.sales.Sale(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.Sale{}, err
	}
	saleTime, err := parseTime(req.Time)
	if err != nil {
		return domain.Sale{}, err
	}
	items, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return domain.Sale{}, err
	}

	sale := domain.Sale{
		ID:          id,
		Customer:    req.Customer,
		TotalAmount: req.TotalAmount,
		Date:        date,
		Time:        saleTime,
		Status:      existing.Status,
		Items:       items,
	}
	payload, err := json.Marshal(domain.SaleReplaced{
		AggregateID: id,
		Customer:    sale.Customer,
		TotalAmount: sale.TotalAmount,
		Items:       len(sale.Items),
	})
	if err != nil {
		return domain.Sale{}, err
	}
	if err := s.sales.Replace(ctx, &sale, domain.EventSaleReplaced, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

func (s *Service) UpdateSaleStatus(ctx context.Context, id int64, statusName string) (domain.Sale, error) {
	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return domain.Sale{}, err
	}
	sale, err := s.sales.Sale(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}
	payload, err := json.Marshal(domain.StatusChanged{AggregateID: id, From: sale.Status, To: status})
	if err != nil {
		return domain.Sale{}, err
	}
	if err := s.sales.UpdateStatus(ctx, id, status, domain.EventSaleStatusChanged, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Sale{}, err
	}
	sale.Status = status
	return sale, nil
}

func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	payload, err := json.Marshal(domain.Deleted{AggregateID: id})
	if err != nil {
		return err
	}
	return s.sales.Delete(ctx, id, domain.EventSaleDeleted, payload, tracing.Traceparent(ctx))
}

func (s *Service) CreateOrder(ctx context.Context, req OrderRequest) (domain.Order, error) {
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.NewOrder(req.Customer, req.Description, deliveryDate, req.Amount, items)
	payload, err := json.Marshal(domain.OrderCreated{
		Customer:     order.Customer,
		Amount:       order.Amount,
		DeliveryDate: order.DeliveryDate,
		Items:        len(order.Items),
	})
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.orders.Create(ctx, &order, domain.EventOrderCreated, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Order{}, err
	}
	s.log.Info("order created", "id", order.ID, "customer", order.Customer, "items", len(order.Items))
	return order, nil
}

func (s *Service) Order(ctx context.Context, id int64) (domain.Order, error) {
	return s.orders.Order(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *Service) ListOrdersByStatus(ctx context.Context, statusName string) ([]domain.Order, error) {
	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByStatus(ctx, status)
}

func (s *Service) SearchOrders(ctx context.Context, term string) ([]domain.Order, error) {
	return s.orders.Search(ctx, term)
}

func (s *Service) ReplaceOrder(ctx context.Context, id int64, req OrderRequest) (domain.Order, error) {
	existing, err := s.orders.Order(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:           id,
		Customer:     req.Customer,
		Description:  req.Description,
		DeliveryDate: deliveryDate,
		Amount:       req.Amount,
		Status:       existing.Status,
		Items:        items,
	}
	payload, err := json.Marshal(domain.OrderReplaced{
		AggregateID:  id,
		Customer:     order.Customer,
		Amount:       order.Amount,
		DeliveryDate: order.DeliveryDate,
		Items:        len(order.Items),
	})
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.orders.Replace(ctx, &order, domain.EventOrderReplaced, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, statusName string) (domain.Order, error) {
	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.orders.Order(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	payload, err := json.Marshal(domain.StatusChanged{AggregateID: id, From: order.Status, To: status})
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.orders.UpdateStatus(ctx, id, status, domain.EventOrderStatusChanged, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Order{}, err
	}
	order.Status = status
	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	payload, err := json.Marshal(domain.Deleted{AggregateID: id})
	if err != nil {
		return err
	}
	return s.orders.Delete(ctx, id, domain.EventOrderDeleted, payload, tracing.Traceparent(ctx))
}

// resolveLines binds each request line to a catalog item or combo. A line
// whose reference does not resolve, or that carries no reference at all, is
// skipped; resolved lines keep the input order. Given the same store
// snapshot and input this is deterministic.
func (s *Service) resolveLines(ctx context.Context, reqs []LineRequest) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(reqs))
	for _, lr := range reqs {
		switch {
		case lr.CatalogItemID != nil:
			product, err := s.products.Product(ctx, *lr.CatalogItemID)
			if errors.Is(err, errs.ErrNotFound) {
				s.log.Warn("skipping line, catalog item not found", "catalog_item_id", *lr.CatalogItemID)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolving catalog item %d: %w", *lr.CatalogItemID, err)
			}
			item, err := domain.ProductLine(product, lr.Quantity, lr.UnitPrice)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case lr.ComboID != nil:
			combo, err := s.combos.Combo(ctx, *lr.ComboID)
			if errors.Is(err, errs.ErrNotFound) {
				s.log.Warn("skipping line, combo not found", "combo_id", *lr.ComboID)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolving combo %d: %w", *lr.ComboID, err)
			}
			item, err := domain.ComboLine(combo, lr.Quantity, lr.UnitPrice)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		default:
			s.log.Warn("skipping line without catalog item or combo reference")
		}
	}
	return items, nil
}

func parseDate(d string) (string, error) {
	t, err := time.Parse(catalog.DateLayout, d)
	if err != nil {
		return "", errs.Invalidf("invalid date %q: %v", d, err)
	}
	return t.Format(catalog.DateLayout), nil
}

// parseTime accepts "15:04:05" or "15:04" and normalizes to "15:04:05".
func parseTime(v string) (string, error) {
	if t, err := time.Parse(timeLayout, v); err == nil {
		return t.Format(timeLayout), nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return "", errs.Invalidf("invalid time %q: %v", v, err)
	}
	return t.Format(timeLayout), nil
}
