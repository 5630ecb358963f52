// Package mapper translates between request/response shapes and the
// persisted employee document. Functions never fail and have no side effects
// beyond id generation.
package mapper

import (
	"employee-service/internal/core"

	"github.com/google/uuid"
)

// NewEmployee builds a new entity from a create request with a fresh id.
func NewEmployee(req core.CreateEmployeeRequest) *core.Employee {
	return &core.Employee{
		ID:       uuid.New(),
		Email:    req.Email,
		FullName: req.FullName,
		Birthday: req.Birthday,
		Hobbies:  req.Hobbies,
	}
}

// ApplyUpdate overwrites every field of e with the request's value, zero
// values included, and returns e.
func ApplyUpdate(req core.UpdateEmployeeRequest, e *core.Employee) *core.Employee {
	e.Email = req.Email
	e.FullName = req.FullName
	e.Birthday = req.Birthday
	e.Hobbies = req.Hobbies
	return e
}

// ToResponse copies an entity into its response view.
func ToResponse(e *core.Employee) *core.EmployeeResponse {
	return &core.EmployeeResponse{
		ID:       e.ID,
		Email:    e.Email,
		FullName: e.FullName,
		Birthday: e.Birthday,
		Hobbies:  e.Hobbies,
	}
}
