package core

import "github.com/google/uuid"

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	FullName string   `json:"fullName" validate:"notblank"`
	Birthday *Date    `json:"birthday"`
	Hobbies  []string `json:"hobbies" validate:"required,min=1"`
}

// UpdateEmployeeRequest is the body of PUT /employees/{id}. Every field
// overwrites the stored value, absent ones included.
type UpdateEmployeeRequest struct {
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Birthday *Date    `json:"birthday"`
	Hobbies  []string `json:"hobbies"`
}

// EmployeeResponse is the view returned after a create.
type EmployeeResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Birthday *Date     `json:"birthday"`
	Hobbies  []string  `json:"hobbies"`
}
