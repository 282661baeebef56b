package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeExec records which commands the REPL dispatched.
type fakeExec struct {
	loggedIn bool
	admin    bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Register(ctx context.Context) error       { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error          { return f.record("login") }
func (f *fakeExec) Logout(ctx context.Context) error         { return f.record("logout") }
func (f *fakeExec) Whoami(ctx context.Context) error         { return f.record("whoami") }
func (f *fakeExec) Employees(ctx context.Context) error      { return f.record("employees") }
func (f *fakeExec) AddEmployee(ctx context.Context) error    { return f.record("addemp") }
func (f *fakeExec) EditEmployee(ctx context.Context) error   { return f.record("editemp") }
func (f *fakeExec) DeleteEmployee(ctx context.Context) error { return f.record("delemp") }
func (f *fakeExec) Users(ctx context.Context) error          { return f.record("users") }
func (f *fakeExec) AddUser(ctx context.Context) error        { return f.record("adduser") }
func (f *fakeExec) EditUser(ctx context.Context) error       { return f.record("edituser") }
func (f *fakeExec) AssignRole(ctx context.Context) error     { return f.record("setrole") }

func runWithInput(t *testing.T, exec execIface, input string) []string {
	t.Helper()

	var lines []string
	saved := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	defer func() { printlnFn = saved }()

	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "anonymous" }, scanner)
	return lines
}

func TestREPLDispatch(t *testing.T) {
	exec := &fakeExec{loggedIn: true, admin: true}
	runWithInput(t, exec, "login\nemployees\ne\naddemp\nu\nsetrole\nwhoami\nlogout\nexit\n")

	assert.Equal(t, []string{"login", "employees", "employees", "addemp", "users", "setrole", "whoami", "logout"}, exec.calls)
}

func TestREPLUnknownCommand(t *testing.T) {
	exec := &fakeExec{}
	lines := runWithInput(t, exec, "frobnicate\nexit\n")

	joined := strings.Join(lines, "")
	assert.Contains(t, joined, "Unknown command: frobnicate")
	assert.Contains(t, joined, "Bye!")
	assert.Empty(t, exec.calls)
}

func TestREPLHelp(t *testing.T) {
	lines := runWithInput(t, &fakeExec{}, "help\nexit\n")
	assert.Contains(t, strings.Join(lines, ""), "register, login, exit")

	lines = runWithInput(t, &fakeExec{loggedIn: true}, "help\nexit\n")
	joined := strings.Join(lines, "")
	assert.Contains(t, joined, "employees")
	assert.NotContains(t, joined, "Admin commands")

	lines = runWithInput(t, &fakeExec{loggedIn: true, admin: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(lines, ""), "Admin commands: users, adduser, edituser, setrole")
}

func TestREPLStopsOnEOF(t *testing.T) {
	exec := &fakeExec{}
	runWithInput(t, exec, "whoami\n")
	assert.Equal(t, []string{"whoami"}, exec.calls)
}

func TestREPLSkipsBlankLines(t *testing.T) {
	exec := &fakeExec{}
	runWithInput(t, exec, "\n   \nlogin\nexit\n")
	assert.Equal(t, []string{"login"}, exec.calls)
}
