package application

import (
	"github.com/shopspring/decimal"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	combos "github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/domain"
)

// Wire shapes for sales and commissions. The contract the UI depends on:
// every projected line carries exactly one of catalogItem/combo, never both,
// and its total is computed here as unitPrice * quantity, never read from
// storage.

type SaleView struct {
	ID          int64           `json:"id"`
	Customer    string          `json:"customer"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Status      string          `json:"status"`
	Items       []LineView      `json:"items"`
}

type OrderView struct {
	ID           int64           `json:"id"`
	Customer     string          `json:"customer"`
	Description  string          `json:"description"`
	DeliveryDate string          `json:"deliveryDate"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Items        []LineView      `json:"items"`
}

type LineView struct {
	ID          int64           `json:"id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	CatalogItem *ProductView    `json:"catalogItem,omitempty"`
	Combo       *ComboView      `json:"combo,omitempty"`
}

type ProductView struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
}

type ComboView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Active      bool            `json:"active"`
	Items       []ComboLineView `json:"items"`
}

type ComboLineView struct {
	ID          int64           `json:"id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	CatalogItem ProductView     `json:"catalogItem"`
}

// ProjectSale is a pure read-side transform: no mutation, no persistence,
// identical output for identical input.
func ProjectSale(s domain.Sale) SaleView {
	return SaleView{
		ID:          s.ID,
		Customer:    s.Customer,
		TotalAmount: s.TotalAmount,
		Date:        s.Date,
		Time:        s.Time,
		Status:      string(s.Status),
		Items:       projectLines(s.Items),
	}
}

func ProjectSales(sales []domain.Sale) []SaleView {
	views := make([]SaleView, 0, len(sales))
	for _, s := range sales {
		views = append(views, ProjectSale(s))
	}
	return views
}

func ProjectOrder(o domain.Order) OrderView {
	return OrderView{
		ID:           o.ID,
		Customer:     o.Customer,
		Description:  o.Description,
		DeliveryDate: o.DeliveryDate,
		Amount:       o.Amount,
		Status:       string(o.Status),
		Items:        projectLines(o.Items),
	}
}

func ProjectOrders(orders []domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, ProjectOrder(o))
	}
	return views
}

func projectLines(items []domain.LineItem) []LineView {
	views := make([]LineView, 0, len(items))
	for _, li := range items {
		lv := LineView{
			ID:        li.ID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Total:     li.Total(),
		}
		if product, ok := li.CatalogItem(); ok {
			pv := projectProduct(product)
			lv.CatalogItem = &pv
		} else if combo, ok := li.Combo(); ok {
			cv := projectCombo(combo)
			lv.Combo = &cv
		}
		// a line with neither reference projects as an empty line
		views = append(views, lv)
	}
	return views
}

func projectProduct(p catalog.Product) ProductView {
	return ProductView{
		ID:             p.ID,
		Name:           p.Name,
		UnitPrice:      p.UnitPrice,
		ExpirationDate: p.ExpirationDate,
	}
}

func projectCombo(c combos.Combo) ComboView {
	items := make([]ComboLineView, 0, len(c.Items))
	for _, ci := range c.Items {
		items = append(items, ComboLineView{
			ID:          ci.ID,
			Quantity:    ci.Quantity,
			UnitPrice:   ci.UnitPrice,
			CatalogItem: projectProduct(ci.Product),
		})
	}
	return ComboView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		TotalPrice:  c.TotalPrice,
		Active:      c.Active,
		Items:       items,
	}
}
