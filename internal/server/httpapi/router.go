// Package httpapi exposes the StaffDesk REST surface: authentication plus
// employee and user CRUD, with JWT auth on everything below /auth and an
// admin-only gate on /users.
package httpapi

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/internal/server/employees"
	"github.com/staffdesk/staffdesk/internal/server/users"
)

type Server struct {
	log       zerolog.Logger
	users     *users.Service
	employees employees.Repository
	jwtSecret []byte
	validate  *validator.Validate
}

// personNameRe matches Unicode letters plus space, apostrophe and hyphen,
// the same rule the client applies before submitting.
var personNameRe = regexp.MustCompile(`^[\p{L}' -]+$`)

func NewServer(log zerolog.Logger, userService *users.Service, employeeRepo employees.Repository, jwtSecret string) *Server {
	v := validator.New()
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s != "" && personNameRe.MatchString(s)
	})

	return &Server{
		log:       log,
		users:     userService,
		employees: employeeRepo,
		jwtSecret: []byte(jwtSecret),
		validate:  v,
	}
}

// Router assembles the chi mux.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.handleMe)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", s.handleEmployeeList)
				r.Post("/", s.handleEmployeeCreate)
				r.Get("/{id}", s.handleEmployeeGet)
				r.Put("/{id}", s.handleEmployeeUpdate)
				r.Delete("/{id}", s.handleEmployeeDelete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(requireRole("ROLE_ADMIN"))
				r.Get("/", s.handleUserList)
				r.Post("/", s.handleUserCreate)
				r.Put("/{id}", s.handleUserUpdate)
				r.Put("/{id}/role", s.handleUserSetRole)
			})
		})
	})

	return r
}
