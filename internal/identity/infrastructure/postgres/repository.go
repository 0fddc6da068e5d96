package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leandrostclaradev/delicias-da-katie/internal/identity/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Create(ctx context.Context, u *domain.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1,$2,$3,$4) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Role).Scan(&u.ID)
}

func (r *Repository) User(ctx context.Context, id int64) (domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role FROM users WHERE id=$1`, id),
		errs.NotFoundf("user %d", id))
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role FROM users WHERE email=$1`, email),
		errs.NotFoundf("user %s", email))
}

func (r *Repository) scanOne(row pgx.Row, notFound error) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, notFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, password_hash, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) Update(ctx context.Context, u *domain.User) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE users SET name=$2, email=$3, password_hash=$4, role=$5 WHERE id=$1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("user %d", u.ID)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("user %d", id)
	}
	return nil
}
