package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/staffdesk/internal/server/employees"
	"github.com/staffdesk/staffdesk/internal/shared"
)

// employeePayload is the create/update body. The name rules match the
// client's pre-submit validation so the server remains the authority when a
// different client skips them.
type employeePayload struct {
	FirstName  string  `json:"firstName" validate:"required,personname"`
	LastName   string  `json:"lastName" validate:"required,personname"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	HireDate   string  `json:"hireDate"`
}

func (p employeePayload) toModel(id int64) *employees.Employee {
	return &employees.Employee{
		ID:         id,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Phone:      p.Phone,
		Department: p.Department,
		Position:   p.Position,
		Salary:     p.Salary,
		HireDate:   p.HireDate,
	}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) decodeEmployee(w http.ResponseWriter, r *http.Request) (employeePayload, bool) {
	var p employeePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return p, false
	}
	if err := s.validate.Struct(p); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return p, false
	}
	return p, true
}

func (s *Server) handleEmployeeList(w http.ResponseWriter, r *http.Request) {
	list, err := s.employees.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []*employees.Employee{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleEmployeeGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := s.employees.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeEmployee(w, r)
	if !ok {
		return
	}

	created, err := s.employees.Create(r.Context(), p.toModel(0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleEmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, ok := s.decodeEmployee(w, r)
	if !ok {
		return
	}

	updated, err := s.employees.Update(r.Context(), p.toModel(id))
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.employees.Delete(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
