package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	id := uuid.New()

	assert.ErrorIs(t, NotFound(id), ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("lookup: %w", NotFound(id)), ErrNotFound)
	assert.NotErrorIs(t, NotFound(id), ErrAlreadyExists)

	assert.ErrorIs(t, AlreadyExists("a@x.com"), ErrAlreadyExists)
	assert.NotErrorIs(t, AlreadyExists("a@x.com"), ErrNotFound)
	assert.NotErrorIs(t, errors.New("employee not found"), ErrNotFound)
}

func TestDomainError_Message(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	var de *DomainError
	assert.True(t, errors.As(NotFound(id), &de))
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "employee 00000000-0000-0000-0000-000000000001 not found", de.Error())

	assert.True(t, errors.As(AlreadyExists("a@x.com"), &de))
	assert.Equal(t, "ALREADY_EXISTS", de.Code)
	assert.Equal(t, "employee with email a@x.com already exists", de.Error())

	assert.Equal(t, "employee not found", ErrNotFound.Error())
}
