package employees

import (
	"context"
	"database/sql"
	"errors"

	"github.com/staffdesk/staffdesk/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

const employeeColumns = "id, first_name, last_name, email, phone, department, position, salary, hire_date"

func scanEmployee(row *sql.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Department, &e.Position, &e.Salary, &e.HireDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*Employee, error) {
	rows, err := r.db.QueryContext(ctx, "select "+employeeColumns+" from employees order by id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Department, &e.Position, &e.Salary, &e.HireDate); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, "select "+employeeColumns+" from employees where id=$1", id)
	return scanEmployee(row)
}

func (r *PostgresRepository) Create(ctx context.Context, e *Employee) (*Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`insert into employees (first_name, last_name, email, phone, department, position, salary, hire_date)
		 values ($1, $2, $3, $4, $5, $6, $7, $8)
		 returning `+employeeColumns,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Position, e.Salary, e.HireDate)
	return scanEmployee(row)
}

func (r *PostgresRepository) Update(ctx context.Context, e *Employee) (*Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`update employees
		 set first_name=$2, last_name=$3, email=$4, phone=$5, department=$6, position=$7, salary=$8, hire_date=$9
		 where id=$1
		 returning `+employeeColumns,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Position, e.Salary, e.HireDate)
	return scanEmployee(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "delete from employees where id=$1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return shared.ErrorNotFound
	}
	return nil
}
