package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Employees(ctx context.Context) error
	AddEmployee(ctx context.Context) error
	EditEmployee(ctx context.Context) error
	DeleteEmployee(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context) error
	AssignRole(ctx context.Context) error
}

// runREPL starts a read–eval–print loop dispatching commands to 'a'.
//
// The prompt shows the current status (from statusFn). Commands:
//
//	Not logged in:
//	  - help | register | login | exit | quit
//
//	Logged in:
//	  - employees, addemp, editemp, delemp: employee list and CRUD
//	  - users, adduser, edituser, setrole: user management (admin only)
//	  - whoami, logout, help, exit
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sd> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				cmds := "Available commands: employees, addemp, editemp, delemp, whoami, logout, exit"
				if a.isAdmin() {
					cmds += "\nAdmin commands: users, adduser, edituser, setrole"
				}
				printlnFn(cmds)
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "e", "employees":
			_ = a.Employees(ctx)

		case "addemp":
			_ = a.AddEmployee(ctx)

		case "editemp":
			_ = a.EditEmployee(ctx)

		case "delemp":
			_ = a.DeleteEmployee(ctx)

		case "u", "users":
			_ = a.Users(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "edituser":
			_ = a.EditUser(ctx)

		case "setrole":
			_ = a.AssignRole(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
