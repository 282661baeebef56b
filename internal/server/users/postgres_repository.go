package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/staffdesk/staffdesk/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// Roles are stored as a comma-joined text column; the set is tiny and only
// ever read back whole.
func joinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

const userColumns = "id, username, email, password_hash, roles, created_at"

func (r *PostgresRepository) scanUser(row *sql.Row) (*User, error) {
	var u User
	var roles string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &roles, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, err
	}
	u.Roles = splitRoles(roles)
	return &u, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, "select "+userColumns+" from users order by id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		var u User
		var roles string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &roles, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Roles = splitRoles(roles)
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, "select "+userColumns+" from users where id=$1", id)
	return r.scanUser(row)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "select "+userColumns+" from users where username=$1", username)
	return r.scanUser(row)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "select "+userColumns+" from users where lower(email)=lower($1)", email)
	return r.scanUser(row)
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`insert into users (username, email, password_hash, roles)
		 values ($1, $2, $3, $4)
		 returning `+userColumns,
		user.Username, user.Email, user.PasswordHash, joinRoles(user.Roles))
	return r.scanUser(row)
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`update users set email=$2, password_hash=$3, roles=$4 where id=$1
		 returning `+userColumns,
		user.ID, user.Email, user.PasswordHash, joinRoles(user.Roles))
	return r.scanUser(row)
}
