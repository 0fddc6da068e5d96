package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

// Combo is a named bundle of catalog items sold as a unit. It owns its items:
// deleting the combo or replacing its item set discards them. Items reference
// catalog items only, so combos cannot nest.
type Combo struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Active      bool            `json:"active"`
	Items       []ComboItem     `json:"items"`
}

type ComboItem struct {
	ID        int64           `json:"id"`
	Product   catalog.Product `json:"catalogItem"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func NewComboItem(product catalog.Product, quantity int, unitPrice decimal.Decimal) (ComboItem, error) {
	if quantity <= 0 {
		return ComboItem{}, errs.Invalidf("combo item quantity must be positive, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return ComboItem{}, errs.Invalidf("combo item unit price must not be negative")
	}
	return ComboItem{Product: product, Quantity: quantity, UnitPrice: unitPrice}, nil
}
