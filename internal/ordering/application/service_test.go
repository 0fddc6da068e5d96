package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	combos "github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type fakeProducts map[int64]catalog.Product

func (f fakeProducts) Product(_ context.Context, id int64) (catalog.Product, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return catalog.Product{}, errs.NotFoundf("catalog item %d", id)
}

type fakeCombos map[int64]combos.Combo

func (f fakeCombos) Combo(_ context.Context, id int64) (combos.Combo, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return combos.Combo{}, errs.NotFoundf("combo %d", id)
}

type fakeSaleRepo struct {
	sales  map[int64]domain.Sale
	nextID int64
	events []string
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[int64]domain.Sale{}}
}

func (r *fakeSaleRepo) Create(_ context.Context, s *domain.Sale, eventType string, _ []byte, _ string) error {
	r.nextID++
	s.ID = r.nextID
	r.sales[s.ID] = *s
	r.events = append(r.events, eventType)
	return nil
}

func (r *fakeSaleRepo) Sale(_ context.Context, id int64) (domain.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return domain.Sale{}, errs.NotFoundf("sale %d", id)
	}
	return s, nil
}

func (r *fakeSaleRepo) List(_ context.Context) ([]domain.Sale, error) { return nil, nil }

func (r *fakeSaleRepo) ListByStatus(_ context.Context, _ domain.Status) ([]domain.Sale, error) {
	return nil, nil
}

func (r *fakeSaleRepo) Search(_ context.Context, _ string) ([]domain.Sale, error) { return nil, nil }

func (r *fakeSaleRepo) Replace(_ context.Context, s *domain.Sale, eventType string, _ []byte, _ string) error {
	if _, ok := r.sales[s.ID]; !ok {
		return errs.NotFoundf("sale %d", s.ID)
	}
	r.sales[s.ID] = *s
	r.events = append(r.events, eventType)
	return nil
}

func (r *fakeSaleRepo) UpdateStatus(_ context.Context, id int64, status domain.Status, eventType string, _ []byte, _ string) error {
	s, ok := r.sales[id]
	if !ok {
		return errs.NotFoundf("sale %d", id)
	}
	s.Status = status
	r.sales[id] = s
	r.events = append(r.events, eventType)
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id int64, eventType string, _ []byte, _ string) error {
	if _, ok := r.sales[id]; !ok {
		return errs.NotFoundf("sale %d", id)
	}
	delete(r.sales, id)
	r.events = append(r.events, eventType)
	return nil
}

type fakeOrderRepo struct {
	orders map[int64]domain.Order
	nextID int64
	events []string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]domain.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *domain.Order, eventType string, _ []byte, _ string) error {
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = *o
	r.events = append(r.events, eventType)
	return nil
}

func (r *fakeOrderRepo) Order(_ context.Context, id int64) (domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, errs.NotFoundf("order %d", id)
	}
	return o, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]domain.Order, error) { return nil, nil }

func (r *fakeOrderRepo) ListByStatus(_ context.Context, _ domain.Status) ([]domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Search(_ context.Context, _ string) ([]domain.Order, error) { return nil, nil }

func (r *fakeOrderRepo) Replace(_ context.Context, o *domain.Order, eventType string, _ []byte, _ string) error {
	if _, ok := r.orders[o.ID]; !ok {
		return errs.NotFoundf("order %d", o.ID)
	}
	r.orders[o.ID] = *o
	r.events = append(r.events, eventType)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.Status, eventType string, _ []byte, _ string) error {
	o, ok := r.orders[id]
	if !ok {
		return errs.NotFoundf("order %d", id)
	}
	o.Status = status
	r.orders[id] = o
	r.events = append(r.events, eventType)
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id int64, eventType string, _ []byte, _ string) error {
	if _, ok := r.orders[id]; !ok {
		return errs.NotFoundf("order %d", id)
	}
	delete(r.orders, id)
	r.events = append(r.events, eventType)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v int64) *int64 { return &v }

func newTestService(sales *fakeSaleRepo, orders *fakeOrderRepo) *Service {
	products := fakeProducts{
		1: {ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)},
		2: {ID: 2, Name: "Brigadeiro", UnitPrice: decimal.RequireFromString("2.50")},
	}
	comboStore := fakeCombos{
		10: {
			ID: 10, Name: "Festa", TotalPrice: decimal.NewFromInt(120), Active: true,
			Items: []combos.ComboItem{
				{ID: 100, Product: catalog.Product{ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			},
		},
	}
	return NewService(testLogger(), sales, orders, products, comboStore)
}

func TestCreateSaleDropsUnresolvableLines(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer:    "Maria",
		TotalAmount: decimal.NewFromInt(105),
		Date:        "2026-08-30",
		Time:        "14:30:00",
		Items: []LineRequest{
			{CatalogItemID: ptr(1), Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
			{CatalogItemID: ptr(999), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			{ComboID: ptr(888), Quantity: 1, UnitPrice: decimal.NewFromInt(99)},
			{Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			{CatalogItemID: ptr(2), Quantity: 2, UnitPrice: decimal.RequireFromString("2.50")},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 2)
	first, ok := sale.Items[0].CatalogItem()
	require.True(t, ok)
	assert.Equal(t, int64(1), first.ID)
	second, ok := sale.Items[1].CatalogItem()
	require.True(t, ok)
	assert.Equal(t, int64(2), second.ID)
	assert.Len(t, sales.sales, 1)
}

func TestCreateSaleForcesPendingStatus(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer:    "Maria",
		TotalAmount: decimal.NewFromInt(50),
		Date:        "2026-08-30",
		Time:        "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, sale.Status)
	assert.Equal(t, "09:00:00", sale.Time)
	assert.Equal(t, []string{domain.EventSaleCreated}, sales.events)
}

func TestCreateSaleInvalidDateFailsWholeRequest(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	_, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer:    "Maria",
		TotalAmount: decimal.NewFromInt(50),
		Date:        "30/08/2026",
		Time:        "10:00:00",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Empty(t, sales.sales)
}

func TestCreateSaleInvalidTimeFailsWholeRequest(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	_, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer:    "Maria",
		TotalAmount: decimal.NewFromInt(50),
		Date:        "2026-08-30",
		Time:        "25:99",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Empty(t, sales.sales)
}

func TestCreateSaleResolvesComboLine(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer:    "Ana",
		TotalAmount: decimal.NewFromInt(120),
		Date:        "2026-08-30",
		Time:        "15:00:00",
		Items: []LineRequest{
			{ComboID: ptr(10), Quantity: 1, UnitPrice: decimal.NewFromInt(120)},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	combo, ok := sale.Items[0].Combo()
	require.True(t, ok)
	assert.Equal(t, "Festa", combo.Name)
	require.Len(t, combo.Items, 1)
	assert.Equal(t, "Bolo", combo.Items[0].Product.Name)
}

func TestUpdateSaleStatus(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer: "Maria", TotalAmount: decimal.NewFromInt(50), Date: "2026-08-30", Time: "10:00:00",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateSaleStatus(context.Background(), sale.ID, "ready")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, updated.Status)
	assert.Equal(t, domain.StatusReady, sales.sales[sale.ID].Status)

	// terminal states are not sticky
	updated, err = svc.UpdateSaleStatus(context.Background(), sale.ID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	updated, err = svc.UpdateSaleStatus(context.Background(), sale.ID, "Pending")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
}

func TestUpdateSaleStatusUnknownNameLeavesSaleUnchanged(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer: "Maria", TotalAmount: decimal.NewFromInt(50), Date: "2026-08-30", Time: "10:00:00",
	})
	require.NoError(t, err)

	_, err = svc.UpdateSaleStatus(context.Background(), sale.ID, "shipped")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Equal(t, domain.StatusPending, sales.sales[sale.ID].Status)
}

func TestUpdateSaleStatusNotFound(t *testing.T) {
	svc := newTestService(newFakeSaleRepo(), newFakeOrderRepo())

	_, err := svc.UpdateSaleStatus(context.Background(), 42, "ready")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestReplaceSalePreservesStatusAndReplacesItems(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer:    "Maria",
		TotalAmount: decimal.NewFromInt(100),
		Date:        "2026-08-30",
		Time:        "10:00:00",
		Items: []LineRequest{
			{CatalogItemID: ptr(1), Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpdateSaleStatus(context.Background(), sale.ID, "READY")
	require.NoError(t, err)

	replaced, err := svc.ReplaceSale(context.Background(), sale.ID, SaleRequest{
		Customer:    "Maria Silva",
		TotalAmount: decimal.NewFromInt(5),
		Date:        "2026-08-31",
		Time:        "11:00:00",
		Items: []LineRequest{
			{CatalogItemID: ptr(2), Quantity: 2, UnitPrice: decimal.RequireFromString("2.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReady, replaced.Status)
	assert.Equal(t, "Maria Silva", replaced.Customer)
	require.Len(t, replaced.Items, 1)
	product, ok := replaced.Items[0].CatalogItem()
	require.True(t, ok)
	assert.Equal(t, int64(2), product.ID)
}

func TestCreateOrderInvalidDeliveryDateNothingPersisted(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newTestService(newFakeSaleRepo(), orders)

	_, err := svc.CreateOrder(context.Background(), OrderRequest{
		Customer:     "Ana",
		Description:  "bolo de festa",
		DeliveryDate: "not-a-date",
		Amount:       decimal.NewFromInt(200),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Empty(t, orders.orders)
}

func TestCreateOrderDropsUnresolvableLines(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newTestService(newFakeSaleRepo(), orders)

	order, err := svc.CreateOrder(context.Background(), OrderRequest{
		Customer:     "Ana",
		DeliveryDate: "2026-09-10",
		Amount:       decimal.NewFromInt(100),
		Items: []LineRequest{
			{CatalogItemID: ptr(1), Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
			{CatalogItemID: ptr(777), Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, []string{domain.EventOrderCreated}, orders.events)
}

func TestEverySaleMutationRecordsAnEvent(t *testing.T) {
	sales := newFakeSaleRepo()
	svc := newTestService(sales, newFakeOrderRepo())

	sale, err := svc.CreateSale(context.Background(), SaleRequest{
		Customer: "Maria", TotalAmount: decimal.NewFromInt(50), Date: "2026-08-30", Time: "10:00:00",
	})
	require.NoError(t, err)

	_, err = svc.ReplaceSale(context.Background(), sale.ID, SaleRequest{
		Customer: "Maria Silva", TotalAmount: decimal.NewFromInt(60), Date: "2026-08-31", Time: "11:00:00",
	})
	require.NoError(t, err)

	_, err = svc.UpdateSaleStatus(context.Background(), sale.ID, "ready")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSale(context.Background(), sale.ID))

	assert.Equal(t, []string{
		domain.EventSaleCreated,
		domain.EventSaleReplaced,
		domain.EventSaleStatusChanged,
		domain.EventSaleDeleted,
	}, sales.events)
}

func TestEveryOrderMutationRecordsAnEvent(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newTestService(newFakeSaleRepo(), orders)

	order, err := svc.CreateOrder(context.Background(), OrderRequest{
		Customer: "Ana", DeliveryDate: "2026-09-10", Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.ReplaceOrder(context.Background(), order.ID, OrderRequest{
		Customer: "Ana", DeliveryDate: "2026-09-12", Amount: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, "in_preparation")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))

	assert.Equal(t, []string{
		domain.EventOrderCreated,
		domain.EventOrderReplaced,
		domain.EventOrderStatusChanged,
		domain.EventOrderDeleted,
	}, orders.events)
}

func TestResolutionIsDeterministic(t *testing.T) {
	svc := newTestService(newFakeSaleRepo(), newFakeOrderRepo())
	reqs := []LineRequest{
		{CatalogItemID: ptr(1), Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		{ComboID: ptr(10), Quantity: 2, UnitPrice: decimal.NewFromInt(120)},
		{CatalogItemID: ptr(404), Quantity: 1, UnitPrice: decimal.NewFromInt(9)},
	}

	first, err := svc.resolveLines(context.Background(), reqs)
	require.NoError(t, err)
	second, err := svc.resolveLines(context.Background(), reqs)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}
