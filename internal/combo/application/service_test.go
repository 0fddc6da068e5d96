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
	"github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type fakeProducts map[int64]catalog.Product

func (f fakeProducts) Product(_ context.Context, id int64) (catalog.Product, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return catalog.Product{}, errs.NotFoundf("catalog item %d", id)
}

type fakeComboRepo struct {
	combos map[int64]domain.Combo
	nextID int64
}

func newFakeComboRepo() *fakeComboRepo {
	return &fakeComboRepo{combos: map[int64]domain.Combo{}}
}

func (r *fakeComboRepo) Create(_ context.Context, c *domain.Combo) error {
	r.nextID++
	c.ID = r.nextID
	r.combos[c.ID] = *c
	return nil
}

func (r *fakeComboRepo) Combo(_ context.Context, id int64) (domain.Combo, error) {
	c, ok := r.combos[id]
	if !ok {
		return domain.Combo{}, errs.NotFoundf("combo %d", id)
	}
	return c, nil
}

func (r *fakeComboRepo) List(_ context.Context) ([]domain.Combo, error) { return nil, nil }

func (r *fakeComboRepo) Update(_ context.Context, c *domain.Combo) error {
	if _, ok := r.combos[c.ID]; !ok {
		return errs.NotFoundf("combo %d", c.ID)
	}
	r.combos[c.ID] = *c
	return nil
}

func (r *fakeComboRepo) SetActive(_ context.Context, id int64, active bool) error {
	c, ok := r.combos[id]
	if !ok {
		return errs.NotFoundf("combo %d", id)
	}
	c.Active = active
	r.combos[id] = c
	return nil
}

func (r *fakeComboRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.combos[id]; !ok {
		return errs.NotFoundf("combo %d", id)
	}
	delete(r.combos, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boolPtr(v bool) *bool { return &v }

func newTestService(repo *fakeComboRepo) *Service {
	products := fakeProducts{
		1: {ID: 1, Name: "Bolo", UnitPrice: decimal.NewFromInt(50)},
		2: {ID: 2, Name: "Brigadeiro", UnitPrice: decimal.RequireFromString("2.50")},
		3: {ID: 3, Name: "Beijinho", UnitPrice: decimal.RequireFromString("2.50")},
	}
	return NewService(testLogger(), repo, products)
}

func TestCreateResolvesEveryItem(t *testing.T) {
	repo := newFakeComboRepo()
	svc := newTestService(repo)

	combo, err := svc.Create(context.Background(), ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(120),
		Items: []ItemRequest{
			{CatalogItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			{CatalogItemID: 2, Quantity: 20, UnitPrice: decimal.RequireFromString("2.50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, combo.Active, "active defaults to true")
	require.Len(t, combo.Items, 2)
	assert.Equal(t, "Bolo", combo.Items[0].Product.Name)
	assert.Equal(t, "Brigadeiro", combo.Items[1].Product.Name)
	assert.Len(t, repo.combos, 1)
}

func TestCreateOneMissingItemFailsWholeCombo(t *testing.T) {
	repo := newFakeComboRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(120),
		Items: []ItemRequest{
			{CatalogItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			{CatalogItemID: 999, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Empty(t, repo.combos, "nothing persisted on a failed resolution")
}

func TestCreateHonorsExplicitActive(t *testing.T) {
	repo := newFakeComboRepo()
	svc := newTestService(repo)

	combo, err := svc.Create(context.Background(), ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(120),
		Active:     boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, combo.Active)
}

func TestUpdateReplacesItemSet(t *testing.T) {
	repo := newFakeComboRepo()
	svc := newTestService(repo)

	combo, err := svc.Create(context.Background(), ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(120),
		Items: []ItemRequest{
			{CatalogItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			{CatalogItemID: 2, Quantity: 10, UnitPrice: decimal.RequireFromString("2.50")},
			{CatalogItemID: 3, Quantity: 10, UnitPrice: decimal.RequireFromString("2.50")},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), combo.ID, ComboRequest{
		Name:       "Festa pequena",
		TotalPrice: decimal.NewFromInt(60),
		Items: []ItemRequest{
			{CatalogItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Festa pequena", updated.Name)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Bolo", updated.Items[0].Product.Name)
	assert.Len(t, repo.combos[combo.ID].Items, 1)
}

func TestUpdatePreservesActiveWhenOmitted(t *testing.T) {
	repo := newFakeComboRepo()
	svc := newTestService(repo)

	combo, err := svc.Create(context.Background(), ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(120),
		Active:     boolPtr(false),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), combo.ID, ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(130),
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	updated, err = svc.Update(context.Background(), combo.ID, ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(130),
		Active:     boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.Active)
}

func TestUpdateMissingComboNotFound(t *testing.T) {
	svc := newTestService(newFakeComboRepo())

	_, err := svc.Update(context.Background(), 42, ComboRequest{Name: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestUpdateMissingItemLeavesComboUnchanged(t *testing.T) {
	repo := newFakeComboRepo()
	svc := newTestService(repo)

	combo, err := svc.Create(context.Background(), ComboRequest{
		Name:       "Festa",
		TotalPrice: decimal.NewFromInt(120),
		Items: []ItemRequest{
			{CatalogItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), combo.ID, ComboRequest{
		Name:       "Festa grande",
		TotalPrice: decimal.NewFromInt(200),
		Items: []ItemRequest{
			{CatalogItemID: 999, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))

	stored := repo.combos[combo.ID]
	assert.Equal(t, "Festa", stored.Name)
	require.Len(t, stored.Items, 1)
}
