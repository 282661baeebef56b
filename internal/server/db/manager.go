// Package db wires repositories to a storage backend. The Postgres manager
// owns the connection and runs embedded migrations on startup; the in-memory
// manager backs local development and tests.
package db

import (
	"github.com/staffdesk/staffdesk/internal/server/employees"
	"github.com/staffdesk/staffdesk/internal/server/users"
)

// RepositoryManager hands out the per-collection repositories.
type RepositoryManager interface {
	Users() users.Repository
	Employees() employees.Repository
	Close() error
}

type InMemoryRepositoryManager struct {
	users     *users.InMemoryRepository
	employees *employees.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     users.NewInMemoryRepository(),
		employees: employees.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository         { return m.users }
func (m *InMemoryRepositoryManager) Employees() employees.Repository { return m.employees }
func (m *InMemoryRepositoryManager) Close() error                    { return nil }
