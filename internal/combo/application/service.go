package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type ItemRequest struct {
	CatalogItemID int64           `json:"catalogItemId"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

type ComboRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Active      *bool           `json:"active"`
	Items       []ItemRequest   `json:"items"`
}

type Service struct {
	log      *slog.Logger
	combos   ComboRepository
	products ProductFinder
}

func NewService(log *slog.Logger, combos ComboRepository, products ProductFinder) *Service {
	return &Service{log: log, combos: combos, products: products}
}

// Create builds a combo from the request. Unlike sale/order assembly, every
// catalog item reference must resolve; one miss fails the whole operation and
// nothing is persisted.
func (s *Service) Create(ctx context.Context, req ComboRequest) (domain.Combo, error) {
	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return domain.Combo{}, err
	}

	combo := domain.Combo{
		Name:        req.Name,
		Description: req.Description,
		TotalPrice:  req.TotalPrice,
		Active:      true,
		Items:       items,
	}
	if req.Active != nil {
		combo.Active = *req.Active
	}
	if err := s.combos.Create(ctx, &combo); err != nil {
		return domain.Combo{}, err
	}
	s.log.Info("combo created", "id", combo.ID, "name", combo.Name, "items", len(combo.Items))
	return combo, nil
}

// Update replaces the combo's fields and its entire item set. Omitting
// `active` preserves the stored value.
func (s *Service) Update(ctx context.Context, id int64, req ComboRequest) (domain.Combo, error) {
	combo, err := s.combos.Combo(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return domain.Combo{}, errs.NotFoundf("combo not found for id %d", id)
		}
		return domain.Combo{}, err
	}

	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return domain.Combo{}, err
	}

	combo.Name = req.Name
	combo.Description = req.Description
	combo.TotalPrice = req.TotalPrice
	if req.Active != nil {
		combo.Active = *req.Active
	}
	combo.Items = items

	if err := s.combos.Update(ctx, &combo); err != nil {
		return domain.Combo{}, err
	}
	s.log.Info("combo updated", "id", combo.ID, "items", len(combo.Items))
	return combo, nil
}

func (s *Service) resolveItems(ctx context.Context, reqs []ItemRequest) ([]domain.ComboItem, error) {
	items := make([]domain.ComboItem, 0, len(reqs))
	for _, ir := range reqs {
		product, err := s.products.Product(ctx, ir.CatalogItemID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.Invalidf("catalog item not found for id %d", ir.CatalogItemID)
			}
			return nil, fmt.Errorf("resolving catalog item %d: %w", ir.CatalogItemID, err)
		}
		item, err := domain.NewComboItem(product, ir.Quantity, ir.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
