// Package cli is the terminal front end for the StaffDesk client. It plays
// the role the React pages play in the original application: it renders
// whatever the session manager and resource stores expose, and never mutates
// a cache directly.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/internal/client/api"
	"github.com/staffdesk/staffdesk/internal/client/config"
	"github.com/staffdesk/staffdesk/internal/client/models"
	"github.com/staffdesk/staffdesk/internal/client/session"
	"github.com/staffdesk/staffdesk/internal/client/store"
	"github.com/staffdesk/staffdesk/internal/client/tokenstore"
	"github.com/staffdesk/staffdesk/internal/logging"
)

// RoleAdmin gates the user management commands; RoleUser gates everything
// behind login. Role strings are opaque capability labels issued by the
// server.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

type App struct {
	config    *config.Config
	log       zerolog.Logger
	api       *api.Client
	session   *session.Manager
	employees *store.Store[models.Employee]
	users     *store.Store[models.User]
	reader    *bufio.Reader
}

func NewApp(c *config.Config) *App {
	log := logging.NewCLILogger(c.LogLevel)

	tokens := tokenstore.NewFileStore(c.TokenFile)
	apiClient := api.NewClient(c.ServerBaseURL, tokens, c.RequestTimeout)

	return &App{
		config:    c,
		log:       log,
		api:       apiClient,
		session:   session.NewManager(apiClient, tokens),
		employees: store.New(apiClient, "/employees", models.ValidateEmployee, models.ValidateEmployee),
		users:     store.New(apiClient, "/users", models.ValidateNewUser, models.ValidateUserUpdate),
		reader:    bufio.NewReader(os.Stdin),
	}
}

// Run resumes any persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn().Msgf("could not restore saved session: %s", err)
	} else if snap := a.session.Snapshot(); snap.State == session.StateAuthenticated {
		fmt.Println("Welcome back,", snap.Identity.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().State == session.StateAuthenticated
}

func (a *App) isAdmin() bool {
	return a.session.HasRole(RoleAdmin)
}

func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.State != session.StateAuthenticated {
		return "not logged in"
	}
	return snap.Identity.Username
}

// handleAPIError applies the shared failure policy: an unauthorized response
// means the session token is no longer valid, so the caller forces a logout;
// everything else is surfaced as a message and leaves local state unchanged.
func (a *App) handleAPIError(err error) {
	if api.IsUnauthorized(err) {
		a.session.Logout()
		a.log.Warn().Msg("session is no longer valid, logged out")
		return
	}
	a.log.Error().Msg(err.Error())
}
