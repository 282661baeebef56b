package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/staffdesk/staffdesk/internal/server/users"
	"github.com/staffdesk/staffdesk/internal/shared"
)

// userDTO is the admin-screen view of an account. Password hashes never
// leave the server.
type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserDTO(u *users.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.PrimaryRole()}
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]userDTO, 0, len(list))
	for _, u := range list {
		out = append(out, toUserDTO(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeText(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.TrimSpace(body["username"])
	password := body["password"]
	if username == "" || password == "" {
		writeText(w, http.StatusBadRequest, "username and password are required")
		return
	}

	created, err := s.users.CreateByAdmin(r.Context(), username, body["email"], password, body["role"])
	if err != nil {
		if errors.Is(err, shared.ErrorUserExists) {
			writeText(w, http.StatusConflict, "username already exists")
			return
		}
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(created))
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid id")
		return
	}

	// clients may send the whole record back; only the email is editable
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeText(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.users.UpdateEmail(r.Context(), id, body.Email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			writeText(w, http.StatusNotFound, "user not found")
			return
		}
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(updated))
}

func (s *Server) handleUserSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid id")
		return
	}

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeText(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role := body["role"]
	if role == "" {
		writeText(w, http.StatusBadRequest, "role is required")
		return
	}

	updated, err := s.users.SetRole(r.Context(), id, role)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			writeText(w, http.StatusNotFound, "user not found")
			return
		}
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": updated.ID, "role": updated.PrimaryRole()})
}
