package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	combos "github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type RefKind string

const (
	RefCatalogItem RefKind = "catalog_item"
	RefCombo       RefKind = "combo"
	RefNone        RefKind = "none"
)

// LineItem is one row of a sale or commission. Its reference is a tagged
// union: exactly one of catalog item or combo, enforced by construction. The
// RefNone case only exists for defensive handling of rows whose reference was
// never resolved; such lines project as empty.
type LineItem struct {
	ID        int64
	Quantity  int
	UnitPrice decimal.Decimal

	kind    RefKind
	product catalog.Product
	combo   combos.Combo
}

func ProductLine(product catalog.Product, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	li, err := newLine(quantity, unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	li.kind = RefCatalogItem
	li.product = product
	return li, nil
}

func ComboLine(combo combos.Combo, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	li, err := newLine(quantity, unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	li.kind = RefCombo
	li.combo = combo
	return li, nil
}

// UnresolvedLine carries quantity and price but no reference.
func UnresolvedLine(quantity int, unitPrice decimal.Decimal) LineItem {
	return LineItem{Quantity: quantity, UnitPrice: unitPrice, kind: RefNone}
}

func newLine(quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, errs.Invalidf("line quantity must be positive, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.Invalidf("line unit price must not be negative")
	}
	return LineItem{Quantity: quantity, UnitPrice: unitPrice}, nil
}

func (li LineItem) Kind() RefKind {
	if li.kind == "" {
		return RefNone
	}
	return li.kind
}

func (li LineItem) CatalogItem() (catalog.Product, bool) {
	return li.product, li.kind == RefCatalogItem
}

func (li LineItem) Combo() (combos.Combo, bool) {
	return li.combo, li.kind == RefCombo
}

// Total is the computed line total, never stored.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
