package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk/internal/shared"
)

func newService(t *testing.T) (*Service, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	return NewService(repo, "test-secret", time.Hour), repo
}

func seedUser(t *testing.T, repo *InMemoryRepository, username, email, password string, roles ...string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
	})
	require.NoError(t, err)
	return u
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newService(t)
	seedUser(t, repo, "admin", "admin@example.com", "admin123", "ROLE_ADMIN", "ROLE_USER")

	user, token, err := svc.Authenticate(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotEmpty(t, token)
}

func TestAuthenticateRejects(t *testing.T) {
	svc, repo := newService(t)
	seedUser(t, repo, "admin", "admin@example.com", "admin123", "ROLE_ADMIN")

	// wrong password and unknown user yield the same error
	_, _, err := svc.Authenticate(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, shared.ErrorInvalidLoginPassword)

	_, _, err = svc.Authenticate(context.Background(), "ghost", "admin123")
	assert.ErrorIs(t, err, shared.ErrorInvalidLoginPassword)
}

func TestRegister(t *testing.T) {
	svc, _ := newService(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER"}, user.Roles)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "password is stored hashed")

	// the fresh account can log in
	_, _, err = svc.Authenticate(context.Background(), "alice", "s3cret")
	assert.NoError(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, repo := newService(t)
	seedUser(t, repo, "alice", "alice@example.com", "s3cret", "ROLE_USER")

	_, err := svc.Register(context.Background(), "alice", "other@example.com", "s3cret")
	assert.ErrorIs(t, err, shared.ErrorUsernameTaken)

	_, err = svc.Register(context.Background(), "bob", "ALICE@example.com", "s3cret")
	assert.ErrorIs(t, err, shared.ErrorEmailInUse, "email comparison ignores case")
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", NormalizeRole("ADMIN"))
	assert.Equal(t, "ROLE_ADMIN", NormalizeRole("ROLE_ADMIN"))
	assert.Equal(t, "ROLE_MODERATOR", NormalizeRole("MODERATOR"))
}

func TestCreateByAdmin(t *testing.T) {
	svc, _ := newService(t)

	user, err := svc.CreateByAdmin(context.Background(), "bob", "bob@example.com", "pw", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN"}, user.Roles)

	// empty role defaults to ROLE_USER
	user, err = svc.CreateByAdmin(context.Background(), "carol", "carol@example.com", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER"}, user.Roles)

	_, err = svc.CreateByAdmin(context.Background(), "bob", "bob2@example.com", "pw", "")
	assert.ErrorIs(t, err, shared.ErrorUserExists)
}

func TestUpdateEmail(t *testing.T) {
	svc, repo := newService(t)
	u := seedUser(t, repo, "alice", "alice@example.com", "pw", "ROLE_USER")

	updated, err := svc.UpdateEmail(context.Background(), u.ID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)

	_, err = svc.UpdateEmail(context.Background(), 999, "x@example.com")
	assert.ErrorIs(t, err, shared.ErrorNotFound)
}

func TestSetRole(t *testing.T) {
	svc, repo := newService(t)
	u := seedUser(t, repo, "alice", "alice@example.com", "pw", "ROLE_USER")

	updated, err := svc.SetRole(context.Background(), u.ID, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN"}, updated.Roles)
}

func TestPrimaryRole(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", (&User{Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}).PrimaryRole())
	assert.Equal(t, "ROLE_USER", (&User{Roles: []string{"ROLE_USER"}}).PrimaryRole())
	assert.Equal(t, "ROLE_USER", (&User{}).PrimaryRole())
}
