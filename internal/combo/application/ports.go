package application

import (
	"context"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
)

type ComboRepository interface {
	Create(ctx context.Context, c *domain.Combo) error
	Combo(ctx context.Context, id int64) (domain.Combo, error)
	List(ctx context.Context) ([]domain.Combo, error)
	// Update replaces the stored combo wholesale, including a
	// delete-then-insert swap of its item set.
	Update(ctx context.Context, c *domain.Combo) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type ProductFinder interface {
	Product(ctx context.Context, id int64) (catalog.Product, error)
}
