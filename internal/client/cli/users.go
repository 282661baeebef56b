package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/staffdesk/staffdesk/internal/client/models"
)

// Users refreshes and prints the user list. Admin only.
func (a *App) Users(ctx context.Context) error {
	if !a.guard(RoleAdmin) {
		return nil
	}
	if err := a.users.Refresh(ctx); err != nil {
		a.handleAPIError(err)
		return err
	}
	for _, u := range a.users.Items() {
		fmt.Printf("%4d  %-20s %-30s %s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return nil
}

// AddUser creates an account on behalf of an admin. Role defaults to
// ROLE_USER on the server when left empty.
func (a *App) AddUser(ctx context.Context) error {
	if !a.guard(RoleAdmin) || busy(a.users.Loading()) {
		return nil
	}

	var u models.User
	var err error
	if u.Username, err = getSimpleText(a.reader, "Username", os.Stdout); err != nil {
		return err
	}
	if u.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}
	if u.Password, err = getPassword(os.Stdout); err != nil {
		return err
	}
	if u.Role, err = getSimpleText(a.reader, "Role (empty for ROLE_USER)", os.Stdout); err != nil {
		return err
	}

	created, err := a.users.Create(ctx, u)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			fmt.Println("Not submitted:", vErr.Message)
			return nil
		}
		a.handleAPIError(err)
		return err
	}

	fmt.Println("Created user", created.Username)
	return nil
}

// EditUser updates a user's email, the only editable field the original
// admin screen exposed.
func (a *App) EditUser(ctx context.Context) error {
	if !a.guard(RoleAdmin) || busy(a.users.Loading()) {
		return nil
	}

	id, err := GetInt64(a.reader, "User id", os.Stdout)
	if err != nil {
		return err
	}
	current, ok := a.users.Get(id)
	if !ok {
		fmt.Println("No such user in the list, refresh first")
		return nil
	}

	if current.Email, err = getSimpleText(a.reader, "New email", os.Stdout); err != nil {
		return err
	}
	current.Password = ""

	if _, err := a.users.Update(ctx, id, current); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			fmt.Println("Not submitted:", vErr.Message)
			return nil
		}
		a.handleAPIError(err)
		return err
	}

	fmt.Println("Updated user", id)
	return nil
}

// AssignRole calls the dedicated role endpoint and then refreshes the list,
// so the cache is only ever mutated through the store.
func (a *App) AssignRole(ctx context.Context) error {
	if !a.guard(RoleAdmin) || busy(a.users.Loading()) {
		return nil
	}

	id, err := GetInt64(a.reader, "User id", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role", os.Stdout)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/users/%d/role", id)
	if _, err := a.api.Request(ctx, http.MethodPut, path, map[string]string{"role": role}); err != nil {
		a.handleAPIError(err)
		return err
	}

	if err := a.users.Refresh(ctx); err != nil {
		a.handleAPIError(err)
		return err
	}

	fmt.Println("Role updated")
	return nil
}
