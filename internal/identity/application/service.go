package application

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/leandrostclaradev/delicias-da-katie/internal/identity/domain"
	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

// ErrBadCredentials covers both unknown email and wrong password; the login
// response never says which.
var ErrBadCredentials = errors.New("invalid credentials")

const (
	seedAdminEmail    = "admin@confeitaria.com"
	seedAdminPassword = "123456"
)

type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Service struct {
	log      *slog.Logger
	users    UserRepository
	sessions SessionStore
}

func NewService(log *slog.Logger, users UserRepository, sessions SessionStore) *Service {
	return &Service{log: log, users: users, sessions: sessions}
}

func (s *Service) CreateUser(ctx context.Context, req UserRequest) (domain.User, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.User{}, err
	}
	if req.Password == "" {
		return domain.User{}, errs.Invalidf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{Name: req.Name, Email: req.Email, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	s.log.Info("user created", "id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

// UpdateUser rewrites the user; an empty password keeps the stored hash.
func (s *Service) UpdateUser(ctx context.Context, id int64, req UserRequest) (domain.User, error) {
	existing, err := s.users.User(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{ID: id, Name: req.Name, Email: req.Email, Role: role, PasswordHash: existing.PasswordHash}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) User(ctx context.Context, id int64) (domain.User, error) {
	return s.users.User(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// Login compares the submitted secret against the stored bcrypt hash and, on
// a match, issues an opaque session token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return domain.User{}, "", ErrBadCredentials
		}
		return domain.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrBadCredentials
	}
	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	s.log.Info("login", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// SeedAdmin creates the default administrator once; subsequent startups are
// no-ops.
func (s *Service) SeedAdmin(ctx context.Context) error {
	_, err := s.users.UserByEmail(ctx, seedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	_, err = s.CreateUser(ctx, UserRequest{
		Name:     "Administrador",
		Email:    seedAdminEmail,
		Password: seedAdminPassword,
		Role:     string(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}
	s.log.Info("seeded default admin user", "email", seedAdminEmail)
	return nil
}
