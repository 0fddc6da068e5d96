package application

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	combos "github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/domain"
)

func productLine(t *testing.T, p catalog.Product, qty int, price decimal.Decimal) domain.LineItem {
	t.Helper()
	li, err := domain.ProductLine(p, qty, price)
	require.NoError(t, err)
	return li
}

func comboLine(t *testing.T, c combos.Combo, qty int, price decimal.Decimal) domain.LineItem {
	t.Helper()
	li, err := domain.ComboLine(c, qty, price)
	require.NoError(t, err)
	return li
}

func TestProjectSaleProductLine(t *testing.T) {
	bolo := catalog.Product{ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}
	sale := domain.Sale{
		ID:          7,
		Customer:    "Maria",
		TotalAmount: decimal.NewFromInt(100),
		Date:        "2026-08-30",
		Time:        "14:30:00",
		Status:      domain.StatusPending,
		Items:       []domain.LineItem{productLine(t, bolo, 2, decimal.NewFromInt(50))},
	}

	view := ProjectSale(sale)

	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "PENDING", view.Status)
	require.Len(t, view.Items, 1)

	line := view.Items[0]
	assert.True(t, line.Total.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, line.CatalogItem)
	assert.Nil(t, line.Combo)
	assert.Equal(t, "Bolo", line.CatalogItem.Name)
}

func TestProjectSaleComboLine(t *testing.T) {
	festa := combos.Combo{
		ID:          10,
		Name:        "Festa",
		Description: "bolo e doces",
		TotalPrice:  decimal.NewFromInt(120),
		Active:      true,
		Items: []combos.ComboItem{
			{ID: 100, Product: catalog.Product{ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			{ID: 101, Product: catalog.Product{ID: 2, Name: "Brigadeiro", UnitPrice: decimal.RequireFromString("2.50")}, Quantity: 20, UnitPrice: decimal.RequireFromString("2.50")},
		},
	}
	sale := domain.Sale{
		ID:       8,
		Customer: "Ana",
		Status:   domain.StatusReady,
		Items:    []domain.LineItem{comboLine(t, festa, 1, decimal.NewFromInt(120))},
	}

	view := ProjectSale(sale)

	require.Len(t, view.Items, 1)
	line := view.Items[0]
	assert.Nil(t, line.CatalogItem)
	require.NotNil(t, line.Combo)
	assert.Equal(t, "Festa", line.Combo.Name)
	assert.True(t, line.Total.Equal(decimal.NewFromInt(120)))
	require.Len(t, line.Combo.Items, 2)
	assert.Equal(t, "Brigadeiro", line.Combo.Items[1].CatalogItem.Name)
	assert.Equal(t, 20, line.Combo.Items[1].Quantity)
}

func TestProjectSaleTotalIsComputedNotStored(t *testing.T) {
	bolo := catalog.Product{ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}
	li := productLine(t, bolo, 3, decimal.RequireFromString("12.50"))
	sale := domain.Sale{Items: []domain.LineItem{li}}

	view := ProjectSale(sale)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].Total.Equal(decimal.RequireFromString("37.50")))
}

func TestProjectSaleUnresolvedLineIsEmpty(t *testing.T) {
	sale := domain.Sale{
		Items: []domain.LineItem{domain.UnresolvedLine(2, decimal.NewFromInt(5))},
	}

	view := ProjectSale(sale)
	require.Len(t, view.Items, 1)
	line := view.Items[0]
	assert.Nil(t, line.CatalogItem)
	assert.Nil(t, line.Combo)
	assert.True(t, line.Total.Equal(decimal.NewFromInt(10)))
}

func TestProjectSaleIsPure(t *testing.T) {
	bolo := catalog.Product{ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}
	sale := domain.Sale{
		ID:       9,
		Customer: "Maria",
		Status:   domain.StatusPending,
		Items:    []domain.LineItem{productLine(t, bolo, 2, decimal.NewFromInt(50))},
	}

	first := ProjectSale(sale)
	second := ProjectSale(sale)
	assert.Equal(t, first, second)

	// input untouched
	assert.Equal(t, domain.StatusPending, sale.Status)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)
}

func TestProjectOrder(t *testing.T) {
	bolo := catalog.Product{ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}
	order := domain.Order{
		ID:           3,
		Customer:     "Ana",
		Description:  "bolo de casamento",
		DeliveryDate: "2026-09-10",
		Amount:       decimal.NewFromInt(300),
		Status:       domain.StatusInPreparation,
		Items:        []domain.LineItem{productLine(t, bolo, 1, decimal.NewFromInt(300))},
	}

	view := ProjectOrder(order)

	assert.Equal(t, "IN_PREPARATION", view.Status)
	assert.Equal(t, "2026-09-10", view.DeliveryDate)
	require.Len(t, view.Items, 1)
	require.NotNil(t, view.Items[0].CatalogItem)
	assert.True(t, view.Items[0].Total.Equal(decimal.NewFromInt(300)))
}

func TestProjectSalesKeepsOrder(t *testing.T) {
	sales := []domain.Sale{
		{ID: 1, Customer: "a"},
		{ID: 2, Customer: "b"},
		{ID: 3, Customer: "c"},
	}

	views := ProjectSales(sales)
	require.Len(t, views, 3)
	for i, v := range views {
		assert.Equal(t, sales[i].ID, v.ID)
		assert.NotNil(t, v.Items)
	}
}
