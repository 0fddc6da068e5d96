package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	catalogpg "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/infrastructure/postgres"
	"github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type Repository struct {
	log      *slog.Logger
	pool     *pgxpool.Pool
	products *catalogpg.ProductRepository
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool, products *catalogpg.ProductRepository) *Repository {
	return &Repository{log: log, pool: pool, products: products}
}

func (r *Repository) Create(ctx context.Context, c *domain.Combo) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO combos (name, description, total_price, active) VALUES ($1,$2,$3,$4) RETURNING id`,
		c.Name, c.Description, c.TotalPrice, c.Active).Scan(&c.ID)
	if err != nil {
		return err
	}
	if err := insertItems(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repository) Combo(ctx context.Context, id int64) (domain.Combo, error) {
	var c domain.Combo
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, total_price, active FROM combos WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.TotalPrice, &c.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Combo{}, errs.NotFoundf("combo %d", id)
	}
	if err != nil {
		return domain.Combo{}, err
	}
	if err := r.loadItems(ctx, &c); err != nil {
		return domain.Combo{}, err
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Combo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, total_price, active FROM combos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	combos := []domain.Combo{}
	for rows.Next() {
		var c domain.Combo
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TotalPrice, &c.Active); err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range combos {
		if err := r.loadItems(ctx, &combos[i]); err != nil {
			return nil, err
		}
	}
	return combos, nil
}

// Update rewrites the combo row and swaps the item set in one transaction:
// the old items are deleted and the new set inserted fresh.
func (r *Repository) Update(ctx context.Context, c *domain.Combo) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx,
		`UPDATE combos SET name=$2, description=$3, total_price=$4, active=$5 WHERE id=$1`,
		c.ID, c.Name, c.Description, c.TotalPrice, c.Active)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("combo %d", c.ID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM combo_items WHERE combo_id=$1`, c.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	ct, err := r.pool.Exec(ctx, `UPDATE combos SET active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("combo %d", id)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM combos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("combo %d", id)
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, c *domain.Combo) error {
	batch := &pgx.Batch{}
	for _, item := range c.Items {
		batch.Queue(`INSERT INTO combo_items (combo_id, product_id, quantity, unit_price)
			VALUES ($1,$2,$3,$4) RETURNING id`,
			c.ID, item.Product.ID, item.Quantity, item.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range c.Items {
		if err := br.QueryRow().Scan(&c.Items[i].ID); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

func (r *Repository) loadItems(ctx context.Context, c *domain.Combo) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, quantity, unit_price FROM combo_items WHERE combo_id=$1 ORDER BY id`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type itemRow struct {
		id        int64
		productID int64
		item      domain.ComboItem
	}
	var scanned []itemRow
	for rows.Next() {
		var ir itemRow
		if err := rows.Scan(&ir.id, &ir.productID, &ir.item.Quantity, &ir.item.UnitPrice); err != nil {
			return err
		}
		scanned = append(scanned, ir)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	c.Items = make([]domain.ComboItem, 0, len(scanned))
	for _, ir := range scanned {
		product, err := r.products.Product(ctx, ir.productID)
		if err != nil {
			return err
		}
		ir.item.ID = ir.id
		ir.item.Product = product
		c.Items = append(c.Items, ir.item)
	}
	return nil
}
