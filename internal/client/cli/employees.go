package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/staffdesk/staffdesk/internal/client/access"
	"github.com/staffdesk/staffdesk/internal/client/models"
)

// guard checks the access gate before a protected command runs. On a
// redirect decision it tells the user where the original UI would have sent
// them and reports false.
func (a *App) guard(requiredRole string) bool {
	d := access.Decide(a.session.Snapshot(), requiredRole)
	if d.Allow {
		return true
	}
	fmt.Println("Access denied, go to", d.Redirect)
	return false
}

// busy refuses a command while a request for the store is still in flight.
// The REPL itself runs each command to completion before reading the next, so
// here the check only upholds the store's concurrency contract; a front end
// dispatching commands concurrently depends on it.
func busy(loading bool) bool {
	if loading {
		fmt.Println("Previous request still in progress, try again")
	}
	return loading
}

// Employees refreshes and prints the employee list in server order.
func (a *App) Employees(ctx context.Context) error {
	if !a.guard(RoleUser) {
		return nil
	}
	if err := a.employees.Refresh(ctx); err != nil {
		a.handleAPIError(err)
		return err
	}
	for _, e := range a.employees.Items() {
		fmt.Printf("%4d  %s %s  <%s>  %s / %s\n", e.ID, e.FirstName, e.LastName, e.Email, e.Department, e.Position)
	}
	return nil
}

func (a *App) inputEmployee(base models.Employee) (models.Employee, error) {
	e := base

	var err error
	if e.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return e, err
	}
	if e.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return e, err
	}
	if e.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return e, err
	}
	if e.Phone, err = getSimpleText(a.reader, "Phone", os.Stdout); err != nil {
		return e, err
	}
	if e.Department, err = getSimpleText(a.reader, "Department", os.Stdout); err != nil {
		return e, err
	}
	if e.Position, err = getSimpleText(a.reader, "Position", os.Stdout); err != nil {
		return e, err
	}
	if e.Salary, err = GetFloat(a.reader, "Salary", os.Stdout); err != nil {
		return e, err
	}
	if e.HireDate, err = getSimpleText(a.reader, "Hire date (YYYY-MM-DD)", os.Stdout); err != nil {
		return e, err
	}
	return e, nil
}

// AddEmployee collects a new employee record and submits it. A local
// validation failure is shown without any request having been made.
func (a *App) AddEmployee(ctx context.Context) error {
	if !a.guard(RoleUser) || busy(a.employees.Loading()) {
		return nil
	}

	payload, err := a.inputEmployee(models.Employee{})
	if err != nil {
		return err
	}

	created, err := a.employees.Create(ctx, payload)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			fmt.Println("Not submitted:", vErr.Message)
			return nil
		}
		a.handleAPIError(err)
		return err
	}

	fmt.Println("Created employee", created.ID)
	return nil
}

// EditEmployee re-collects all fields for an existing record and submits the
// update. The cached record stays untouched unless the server accepts.
func (a *App) EditEmployee(ctx context.Context) error {
	if !a.guard(RoleUser) || busy(a.employees.Loading()) {
		return nil
	}

	id, err := GetInt64(a.reader, "Employee id", os.Stdout)
	if err != nil {
		return err
	}
	current, ok := a.employees.Get(id)
	if !ok {
		fmt.Println("No such employee in the list, refresh first")
		return nil
	}

	payload, err := a.inputEmployee(current)
	if err != nil {
		return err
	}

	if _, err := a.employees.Update(ctx, id, payload); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			fmt.Println("Not submitted:", vErr.Message)
			return nil
		}
		a.handleAPIError(err)
		return err
	}

	fmt.Println("Updated employee", id)
	return nil
}

// DeleteEmployee removes a record after server confirmation.
func (a *App) DeleteEmployee(ctx context.Context) error {
	if !a.guard(RoleUser) || busy(a.employees.Loading()) {
		return nil
	}

	id, err := GetInt64(a.reader, "Employee id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.employees.Remove(ctx, id); err != nil {
		a.handleAPIError(err)
		return err
	}

	fmt.Println("Deleted employee", id)
	return nil
}
