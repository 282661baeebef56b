package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk/internal/server/employees"
	"github.com/staffdesk/staffdesk/internal/server/users"
)

const testSecret = "test-secret"

// newTestServer wires the router against in-memory repositories with an
// admin/admin123 and a user/user123 account.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	userRepo := users.NewInMemoryRepository()
	for _, account := range []struct {
		username, password string
		roles              []string
	}{
		{"admin", "admin123", []string{"ROLE_ADMIN", "ROLE_USER"}},
		{"user", "user123", []string{"ROLE_USER"}},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.MinCost)
		require.NoError(t, err)
		_, err = userRepo.Create(context.Background(), &users.User{
			Username:     account.username,
			Email:        account.username + "@example.com",
			PasswordHash: string(hash),
			Roles:        account.roles,
		})
		require.NoError(t, err)
	}

	employeeRepo := employees.NewInMemoryRepository()
	_, err := employeeRepo.Create(context.Background(), &employees.Employee{
		FirstName: "John", LastName: "Doe", Email: "john.doe@example.com",
		Department: "Engineering", Position: "Software Engineer", Salary: 80000, HireDate: "2020-01-15",
	})
	require.NoError(t, err)

	svc := users.NewService(userRepo, testSecret, time.Hour)
	return NewServer(zerolog.Nop(), svc, employeeRepo, testSecret).Router()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token    string   `json:"token"`
		Type     string   `json:"type"`
		ID       int64    `json:"id"`
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.Type)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, "admin@example.com", resp.Email)
	assert.Contains(t, resp.Roles, "ROLE_ADMIN")
}

func TestLoginRejected(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully!")

	// the new account can log in and gets ROLE_USER only
	token := login(t, h, "alice", "s3cret")
	rec = do(t, h, http.MethodGet, "/api/users/", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterDuplicates(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "admin", "email": "fresh@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error: Username is already taken!")

	rec = do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "fresh", "email": "admin@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error: Email is already in use!")
}

func TestMe(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID       int64    `json:"id"`
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "admin", resp.Username)
	assert.Contains(t, resp.Roles, "ROLE_ADMIN")

	rec = do(t, h, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeesRequireAuth(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/employees/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/employees/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeeCRUD(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "user", "user123")

	rec := do(t, h, http.MethodGet, "/api/employees/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []employees.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = do(t, h, http.MethodPost, "/api/employees/", token, map[string]any{
		"firstName": "Jane", "lastName": "Smith", "email": "jane@example.com",
		"department": "Marketing", "salary": 95000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created employees.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(2), created.ID)

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/employees/%d", created.ID), token, map[string]any{
		"firstName": "Jane", "lastName": "Smith", "email": "jane@example.com",
		"department": "Sales", "salary": 99000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated employees.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Sales", updated.Department)

	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/api/employees/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/employees/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeValidation(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "user", "user123")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing first name", map[string]any{"lastName": "Doe", "email": "x@y.co"}},
		{"digits in name", map[string]any{"firstName": "J4ne", "lastName": "Doe", "email": "x@y.co"}},
		{"bad email", map[string]any{"firstName": "Jane", "lastName": "Doe", "email": "nope"}},
		{"negative salary", map[string]any{"firstName": "Jane", "lastName": "Doe", "email": "x@y.co", "salary": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/employees/", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUsersAdminOnly(t *testing.T) {
	h := newTestServer(t)

	userToken := login(t, h, "user", "user123")
	rec := do(t, h, http.MethodGet, "/api/users/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := login(t, h, "admin", "admin123")
	rec = do(t, h, http.MethodGet, "/api/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []userDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "ROLE_ADMIN", list[0].Role, "admin wins over secondary roles")
	assert.Equal(t, "ROLE_USER", list[1].Role)
}

func TestUserCreate(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPost, "/api/users/", token, map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "pw", "role": "ADMIN",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created userDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ROLE_ADMIN", created.Role)

	// plain-text errors on the admin endpoints
	rec = do(t, h, http.MethodPost, "/api/users/", token, map[string]string{"username": "carol"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username and password are required", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/users/", token, map[string]string{
		"username": "bob", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "username already exists", rec.Body.String())
}

func TestUserUpdateAndSetRole(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "admin", "admin123")

	// the CLI sends the whole cached record back; extra fields are ignored
	rec := do(t, h, http.MethodPut, "/api/users/2", token, map[string]any{
		"id": 2, "username": "user", "email": "renamed@example.com", "role": "ROLE_USER",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated userDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "renamed@example.com", updated.Email)

	rec = do(t, h, http.MethodPut, "/api/users/2/role", token, map[string]string{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROLE_ADMIN")

	rec = do(t, h, http.MethodPut, "/api/users/2/role", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "role is required", rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/users/999", token, map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", rec.Body.String())
}
