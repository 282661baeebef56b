package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk/internal/server/auth"
	"github.com/staffdesk/staffdesk/internal/shared"
)

// Service implements account management and login on top of a Repository.
type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenValidity time.Duration) *Service {
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenValidity: tokenValidity,
	}
}

// Authenticate verifies the credential and returns the user and a signed
// session token. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, "", shared.ErrorInvalidLoginPassword
		}
		return nil, "", shared.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", shared.ErrorInvalidLoginPassword
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Roles, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", shared.ErrorInternal
	}

	return user, token, nil
}

// Register creates a self-service account with ROLE_USER. Duplicate checks
// keep the original system's messages verbatim.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, shared.ErrorUsernameTaken
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, shared.ErrorEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{"ROLE_USER"},
	})
}

// NormalizeRole prefixes bare role names so "ADMIN" and "ROLE_ADMIN" assign
// the same capability.
func NormalizeRole(role string) string {
	if strings.HasPrefix(role, "ROLE_") {
		return role
	}
	return "ROLE_" + role
}

// CreateByAdmin creates an account from the admin screen, with an explicit
// role. An empty role defaults to ROLE_USER.
func (s *Service) CreateByAdmin(ctx context.Context, username, email, password, role string) (*User, error) {
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, shared.ErrorUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	if role == "" {
		role = "ROLE_USER"
	}

	return s.repo.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{NormalizeRole(role)},
	})
}

// UpdateEmail sets the only field the admin screen may edit.
func (s *Service) UpdateEmail(ctx context.Context, id int64, email string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Email = email
	return s.repo.Update(ctx, user)
}

// SetRole replaces the user's role set with the single given role.
func (s *Service) SetRole(ctx context.Context, id int64, role string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Roles = []string{NormalizeRole(role)}
	return s.repo.Update(ctx, user)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.GetAll(ctx)
}
