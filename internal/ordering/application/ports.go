package application

import (
	"context"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	combos "github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/domain"
)

// SaleRepository persists sale aggregates. Every mutation records the given
// event in the transactional outbox, in the same transaction as the
// aggregate write.
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale, eventType string, payload []byte, traceparent string) error
	Sale(ctx context.Context, id int64) (domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Sale, error)
	Search(ctx context.Context, term string) ([]domain.Sale, error)
	Replace(ctx context.Context, s *domain.Sale, eventType string, payload []byte, traceparent string) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status, eventType string, payload []byte, traceparent string) error
	Delete(ctx context.Context, id int64, eventType string, payload []byte, traceparent string) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order, eventType string, payload []byte, traceparent string) error
	Order(ctx context.Context, id int64) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	Search(ctx context.Context, term string) ([]domain.Order, error)
	Replace(ctx context.Context, o *domain.Order, eventType string, payload []byte, traceparent string) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status, eventType string, payload []byte, traceparent string) error
	Delete(ctx context.Context, id int64, eventType string, payload []byte, traceparent string) error
}

type ProductFinder interface {
	Product(ctx context.Context, id int64) (catalog.Product, error)
}

type ComboFinder interface {
	Combo(ctx context.Context, id int64) (combos.Combo, error)
}
