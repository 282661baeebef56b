package server

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk/internal/server/db"
	"github.com/staffdesk/staffdesk/internal/server/employees"
	"github.com/staffdesk/staffdesk/internal/server/users"
)

// seed loads the same demo accounts and sample employees the original
// system created on first start.
func seed(ctx context.Context, repos db.RepositoryManager) error {
	for _, account := range []struct {
		username, email, password string
		roles                     []string
	}{
		{"admin", "admin@example.com", "admin123", []string{"ROLE_ADMIN", "ROLE_USER"}},
		{"user", "user@example.com", "user123", []string{"ROLE_USER"}},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = repos.Users().Create(ctx, &users.User{
			Username:     account.username,
			Email:        account.email,
			PasswordHash: string(hash),
			Roles:        account.roles,
		})
		if err != nil {
			return err
		}
	}

	for _, e := range []*employees.Employee{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: "+1-555-0101", Department: "Engineering", Position: "Software Engineer", Salary: 80000, HireDate: "2020-01-15"},
		{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Phone: "+1-555-0102", Department: "Marketing", Position: "Marketing Manager", Salary: 95000, HireDate: "2019-06-01"},
		{FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@example.com", Phone: "+1-555-0103", Department: "Engineering", Position: "Senior Developer", Salary: 100000, HireDate: "2018-03-10"},
		{FirstName: "Alice", LastName: "Williams", Email: "alice.williams@example.com", Phone: "+1-555-0104", Department: "HR", Position: "HR Manager", Salary: 90000, HireDate: "2021-08-20"},
	} {
		if _, err := repos.Employees().Create(ctx, e); err != nil {
			return err
		}
	}

	return nil
}
