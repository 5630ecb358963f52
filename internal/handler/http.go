package handler

import (
	"encoding/json"
	"net/http"

	"employee-service/internal/core"
	"employee-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for employee operations
type Handler struct {
	svc *service.EmployeeService
	log *log.Helper
}

// NewHandler creates a new HTTP handler
func NewHandler(svc *service.EmployeeService, logger log.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.NewHelper(log.With(logger, "module", "handler/employee")),
	}
}

// Create handles POST /employees
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req core.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, codeInvalidRequest, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if fieldErrs := core.ValidateCreateRequest(req); len(fieldErrs) > 0 {
		respondJSON(w, fieldErrs, http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateEmployee(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respondJSON(w, created, http.StatusCreated)
}

// List handles GET /employees
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.GetAllEmployees(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respondJSON(w, employees, http.StatusOK)
}

// Get handles GET /employees/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	employee, err := h.svc.GetEmployeeByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respondJSON(w, employee, http.StatusOK)
}

// Update handles PUT /employees/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req core.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, codeInvalidRequest, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.UpdateEmployee(r.Context(), id, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respondJSON(w, updated, http.StatusOK)
}

// Delete handles DELETE /employees/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteEmployee(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, codeInvalidRequest, "invalid UUID format", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, code, message string, status int) {
	respondJSON(w, ErrorInfo{ErrorCode: code, ErrorMessage: message}, status)
}
