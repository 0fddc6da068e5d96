package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	catalog "github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	combos "github.com/leandrostclaradev/delicias-da-katie/internal/combo/domain"
	"github.com/leandrostclaradev/delicias-da-katie/internal/ordering/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type ProductSource interface {
	Product(ctx context.Context, id int64) (catalog.Product, error)
}

type ComboSource interface {
	Combo(ctx context.Context, id int64) (combos.Combo, error)
}

// lineStore persists and reloads variant line items. The tagged union maps to
// two nullable columns at this boundary only; loading rebuilds the union, and
// a row with neither reference comes back as an unresolved line.
type lineStore struct {
	products ProductSource
	combos   ComboSource
}

func (ls lineStore) insert(ctx context.Context, tx pgx.Tx, table, parentCol string, parentID int64, items []domain.LineItem) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		var productID, comboID *int64
		if product, ok := item.CatalogItem(); ok {
			productID = &product.ID
		} else if combo, ok := item.Combo(); ok {
			comboID = &combo.ID
		}
		batch.Queue(fmt.Sprintf(`INSERT INTO %s (%s, product_id, combo_id, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5) RETURNING id`, table, parentCol),
			parentID, productID, comboID, item.Quantity, item.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range items {
		if err := br.QueryRow().Scan(&items[i].ID); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

func (ls lineStore) load(ctx context.Context, pool *pgxpool.Pool, table, parentCol string, parentID int64) ([]domain.LineItem, error) {
	rows, err := pool.Query(ctx, fmt.Sprintf(
		`SELECT id, product_id, combo_id, quantity, unit_price FROM %s WHERE %s=$1 ORDER BY id`, table, parentCol),
		parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type lineRow struct {
		id        int64
		productID *int64
		comboID   *int64
		quantity  int
		unitPrice decimal.Decimal
	}
	var scanned []lineRow
	for rows.Next() {
		var lr lineRow
		if err := rows.Scan(&lr.id, &lr.productID, &lr.comboID, &lr.quantity, &lr.unitPrice); err != nil {
			return nil, err
		}
		scanned = append(scanned, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(scanned))
	for _, lr := range scanned {
		var (
			item domain.LineItem
			err  error
		)
		switch {
		case lr.productID != nil:
			product, perr := ls.products.Product(ctx, *lr.productID)
			if perr != nil {
				return nil, perr
			}
			item, err = domain.ProductLine(product, lr.quantity, lr.unitPrice)
		case lr.comboID != nil:
			combo, cerr := ls.combos.Combo(ctx, *lr.comboID)
			if cerr != nil {
				return nil, cerr
			}
			item, err = domain.ComboLine(combo, lr.quantity, lr.unitPrice)
		default:
			item = domain.UnresolvedLine(lr.quantity, lr.unitPrice)
		}
		if err != nil {
			return nil, err
		}
		item.ID = lr.id
		items = append(items, item)
	}
	return items, nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, aggregateType string, aggregateID int64, eventType string, payload []byte, traceparent string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		VALUES ($1,$2,$3,$4,$5,'pending')`,
		aggregateType, strconv.FormatInt(aggregateID, 10), eventType, payload, traceparent)
	return err
}

type SaleRepository struct {
	log   *slog.Logger
	pool  *pgxpool.Pool
	lines lineStore
}

func NewSaleRepository(log *slog.Logger, pool *pgxpool.Pool, products ProductSource, combos ComboSource) *SaleRepository {
	return &SaleRepository{log: log, pool: pool, lines: lineStore{products: products, combos: combos}}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO sales (customer, total_amount, sale_date, sale_time, status)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		s.Customer, s.TotalAmount, s.Date, s.Time, s.Status).Scan(&s.ID)
	if err != nil {
		return err
	}
	if err := r.lines.insert(ctx, tx, "sale_items", "sale_id", s.ID, s.Items); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, "sale", s.ID, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *SaleRepository) Sale(ctx context.Context, id int64) (domain.Sale, error) {
	var s domain.Sale
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer, total_amount, sale_date, sale_time, status FROM sales WHERE id=$1`, id).
		Scan(&s.ID, &s.Customer, &s.TotalAmount, &s.Date, &s.Time, &s.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Sale{}, errs.NotFoundf("sale %d", id)
	}
	if err != nil {
		return domain.Sale{}, err
	}
	s.Items, err = r.lines.load(ctx, r.pool, "sale_items", "sale_id", s.ID)
	if err != nil {
		return domain.Sale{}, err
	}
	return s, nil
}

func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	return r.query(ctx, `SELECT id, customer, total_amount, sale_date, sale_time, status FROM sales ORDER BY id`)
}

func (r *SaleRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Sale, error) {
	return r.query(ctx,
		`SELECT id, customer, total_amount, sale_date, sale_time, status FROM sales WHERE status=$1 ORDER BY id`,
		status)
}

func (r *SaleRepository) Search(ctx context.Context, term string) ([]domain.Sale, error) {
	return r.query(ctx,
		`SELECT id, customer, total_amount, sale_date, sale_time, status FROM sales
		WHERE customer ILIKE '%'||$1||'%' OR id::text LIKE '%'||$1||'%' ORDER BY id`,
		term)
}

func (r *SaleRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.Customer, &s.TotalAmount, &s.Date, &s.Time, &s.Status); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items, err = r.lines.load(ctx, r.pool, "sale_items", "sale_id", sales[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (r *SaleRepository) Replace(ctx context.Context, s *domain.Sale, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx,
		`UPDATE sales SET customer=$2, total_amount=$3, sale_date=$4, sale_time=$5, status=$6 WHERE id=$1`,
		s.ID, s.Customer, s.TotalAmount, s.Date, s.Time, s.Status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("sale %d", s.ID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id=$1`, s.ID); err != nil {
		return err
	}
	if err := r.lines.insert(ctx, tx, "sale_items", "sale_id", s.ID, s.Items); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, "sale", s.ID, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *SaleRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `UPDATE sales SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("sale %d", id)
	}
	if err := insertOutbox(ctx, tx, "sale", id, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *SaleRepository) Delete(ctx context.Context, id int64, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("sale %d", id)
	}
	if err := insertOutbox(ctx, tx, "sale", id, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type OrderRepository struct {
	log   *slog.Logger
	pool  *pgxpool.Pool
	lines lineStore
}

func NewOrderRepository(log *slog.Logger, pool *pgxpool.Pool, products ProductSource, combos ComboSource) *OrderRepository {
	return &OrderRepository{log: log, pool: pool, lines: lineStore{products: products, combos: combos}}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (customer, description, delivery_date, amount, status)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		o.Customer, o.Description, o.DeliveryDate, o.Amount, o.Status).Scan(&o.ID)
	if err != nil {
		return err
	}
	if err := r.lines.insert(ctx, tx, "order_items", "order_id", o.ID, o.Items); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, "order", o.ID, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) Order(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer, description, delivery_date, amount, status FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.Customer, &o.Description, &o.DeliveryDate, &o.Amount, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, errs.NotFoundf("order %d", id)
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.Items, err = r.lines.load(ctx, r.pool, "order_items", "order_id", o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, `SELECT id, customer, description, delivery_date, amount, status FROM orders ORDER BY id`)
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	return r.query(ctx,
		`SELECT id, customer, description, delivery_date, amount, status FROM orders WHERE status=$1 ORDER BY id`,
		status)
}

func (r *OrderRepository) Search(ctx context.Context, term string) ([]domain.Order, error) {
	return r.query(ctx,
		`SELECT id, customer, description, delivery_date, amount, status FROM orders
		WHERE customer ILIKE '%'||$1||'%' OR id::text LIKE '%'||$1||'%' ORDER BY id`,
		term)
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Customer, &o.Description, &o.DeliveryDate, &o.Amount, &o.Status); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items, err = r.lines.load(ctx, r.pool, "order_items", "order_id", orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) Replace(ctx context.Context, o *domain.Order, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx,
		`UPDATE orders SET customer=$2, description=$3, delivery_date=$4, amount=$5, status=$6 WHERE id=$1`,
		o.ID, o.Customer, o.Description, o.DeliveryDate, o.Amount, o.Status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("order %d", o.ID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return err
	}
	if err := r.lines.insert(ctx, tx, "order_items", "order_id", o.ID, o.Items); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, "order", o.ID, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("order %d", id)
	}
	if err := insertOutbox(ctx, tx, "order", id, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) Delete(ctx context.Context, id int64, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("order %d", id)
	}
	if err := insertOutbox(ctx, tx, "order", id, eventType, payload, traceparent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
