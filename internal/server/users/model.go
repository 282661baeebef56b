package users

import (
	"slices"
	"time"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// PrimaryRole is the single role exposed on the admin user list; the admin
// account also carries ROLE_USER, so the strongest role wins.
func (u *User) PrimaryRole() string {
	if slices.Contains(u.Roles, "ROLE_ADMIN") {
		return "ROLE_ADMIN"
	}
	if len(u.Roles) > 0 {
		return u.Roles[0]
	}
	return "ROLE_USER"
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}
