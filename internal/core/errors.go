package core

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind classifies domain errors for the transport layer.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindAlreadyExists
)

// DomainError is a business rule failure returned by the service.
// Message is a fmt template rendered with Args.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Args    []any
}

func (e *DomainError) Error() string {
	if len(e.Args) == 0 {
		return e.Message
	}
	return fmt.Sprintf(e.Message, e.Args...)
}

// Is matches any DomainError of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its arguments.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound      = &DomainError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "employee not found"}
	ErrAlreadyExists = &DomainError{Kind: KindAlreadyExists, Code: "ALREADY_EXISTS", Message: "employee already exists"}
)

// NotFound reports a missing employee id.
func NotFound(id uuid.UUID) error {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    ErrNotFound.Code,
		Message: "employee %s not found",
		Args:    []any{id},
	}
}

// AlreadyExists reports an email that already belongs to an employee.
func AlreadyExists(email string) error {
	return &DomainError{
		Kind:    KindAlreadyExists,
		Code:    ErrAlreadyExists.Code,
		Message: "employee with email %s already exists",
		Args:    []any{email},
	}
}
