package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/staffdesk/staffdesk/internal/server/employees"
	"github.com/staffdesk/staffdesk/internal/server/migrations"
	"github.com/staffdesk/staffdesk/internal/server/users"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	employees employees.Repository
}

func (m *PostgresRepositoryManager) Users() users.Repository         { return m.users }
func (m *PostgresRepositoryManager) Employees() employees.Repository { return m.employees }
func (m *PostgresRepositoryManager) Close() error                    { return m.db.Close() }

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	employeeRepo, err := employees.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("employee repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     userRepo,
		employees: employeeRepo,
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
