package application

import (
	"context"

	"github.com/leandrostclaradev/delicias-da-katie/internal/identity/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	User(ctx context.Context, id int64) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore issues opaque session tokens. No further protocol exists: the
// token is handed to the client and kept server-side with a TTL so it can
// expire.
type SessionStore interface {
	Issue(ctx context.Context, userID int64) (string, error)
}
