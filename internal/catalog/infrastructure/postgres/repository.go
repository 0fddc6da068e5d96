package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leandrostclaradev/delicias-da-katie/internal/catalog/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type ProductRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewProductRepository(log *slog.Logger, pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{log: log, pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO products (name, unit_price, expiration_date) VALUES ($1,$2,$3) RETURNING id`,
		p.Name, p.UnitPrice, nullable(p.ExpirationDate)).Scan(&p.ID)
}

func (r *ProductRepository) Product(ctx context.Context, id int64) (domain.Product, error) {
	var (
		p       domain.Product
		expires *string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, unit_price, expiration_date FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.UnitPrice, &expires)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, errs.NotFoundf("catalog item %d", id)
	}
	if err != nil {
		return domain.Product{}, err
	}
	if expires != nil {
		p.ExpirationDate = *expires
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, unit_price, expiration_date FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p       domain.Product
			expires *string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &expires); err != nil {
			return nil, err
		}
		if expires != nil {
			p.ExpirationDate = *expires
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE products SET name=$2, unit_price=$3, expiration_date=$4 WHERE id=$1`,
		p.ID, p.Name, p.UnitPrice, nullable(p.ExpirationDate))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("catalog item %d", p.ID)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("catalog item %d", id)
	}
	return nil
}

type PromotionRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewPromotionRepository(log *slog.Logger, pool *pgxpool.Pool) *PromotionRepository {
	return &PromotionRepository{log: log, pool: pool}
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO promotions (product_id, description, start_date, end_date) VALUES ($1,$2,$3,$4) RETURNING id`,
		p.ProductID, p.Description, nullable(p.StartDate), nullable(p.EndDate)).Scan(&p.ID)
}

func (r *PromotionRepository) Promotion(ctx context.Context, id int64) (domain.Promotion, error) {
	var (
		p          domain.Promotion
		start, end *string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, product_id, description, start_date, end_date FROM promotions WHERE id=$1`, id).
		Scan(&p.ID, &p.ProductID, &p.Description, &start, &end)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Promotion{}, errs.NotFoundf("promotion %d", id)
	}
	if err != nil {
		return domain.Promotion{}, err
	}
	p.StartDate = deref(start)
	p.EndDate = deref(end)
	return p, nil
}

func (r *PromotionRepository) List(ctx context.Context) ([]domain.Promotion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, description, start_date, end_date FROM promotions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := []domain.Promotion{}
	for rows.Next() {
		var (
			p          domain.Promotion
			start, end *string
		)
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Description, &start, &end); err != nil {
			return nil, err
		}
		p.StartDate = deref(start)
		p.EndDate = deref(end)
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

func (r *PromotionRepository) Update(ctx context.Context, p *domain.Promotion) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE promotions SET product_id=$2, description=$3, start_date=$4, end_date=$5 WHERE id=$1`,
		p.ID, p.ProductID, p.Description, nullable(p.StartDate), nullable(p.EndDate))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("promotion %d", p.ID)
	}
	return nil
}

func (r *PromotionRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("promotion %d", id)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
