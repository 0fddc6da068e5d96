package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leandrostclaradev/delicias-da-katie/internal/cashflow/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Create(ctx context.Context, e *domain.Entry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO cash_flow (name, unit_price, quantity, total_amount, entry_date, entry_time, direction)
		VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		e.Name, e.UnitPrice, e.Quantity, e.TotalAmount, e.Date, e.Time, e.Direction).Scan(&e.ID)
}

func (r *Repository) Entry(ctx context.Context, id int64) (domain.Entry, error) {
	var e domain.Entry
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, unit_price, quantity, total_amount, entry_date, entry_time, direction
		FROM cash_flow WHERE id=$1`, id).
		Scan(&e.ID, &e.Name, &e.UnitPrice, &e.Quantity, &e.TotalAmount, &e.Date, &e.Time, &e.Direction)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Entry{}, errs.NotFoundf("cash flow entry %d", id)
	}
	if err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, unit_price, quantity, total_amount, entry_date, entry_time, direction
		FROM cash_flow ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.UnitPrice, &e.Quantity, &e.TotalAmount, &e.Date, &e.Time, &e.Direction); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) Update(ctx context.Context, e *domain.Entry) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE cash_flow SET name=$2, unit_price=$3, quantity=$4, total_amount=$5, entry_date=$6, entry_time=$7, direction=$8
		WHERE id=$1`,
		e.ID, e.Name, e.UnitPrice, e.Quantity, e.TotalAmount, e.Date, e.Time, e.Direction)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("cash flow entry %d", e.ID)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM cash_flow WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("cash flow entry %d", id)
	}
	return nil
}
