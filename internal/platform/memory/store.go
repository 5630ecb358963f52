// Package memory is an in-process document store for local runs and tests.
package memory

import (
	"context"
	"sync"

	"employee-service/internal/core"

	"github.com/google/uuid"
)

// Store keeps employees in insertion order. Documents are copied on the way
// in and out so callers never share memory with the store.
type Store struct {
	mu    sync.RWMutex
	docs  map[uuid.UUID]*core.Employee
	order []uuid.UUID
}

func NewStore() *Store {
	return &Store{docs: make(map[uuid.UUID]*core.Employee)}
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return clone(doc), nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if doc := s.docs[id]; doc.Email == email {
			return clone(doc), nil
		}
	}
	return nil, nil
}

func (s *Store) FindAll(_ context.Context) ([]*core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.Employee, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.docs[id]))
	}
	return out, nil
}

// Save inserts or replaces the document with the employee's id.
func (s *Store) Save(_ context.Context, e *core.Employee) (*core.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.docs[e.ID] = clone(e)
	return clone(e), nil
}

func (s *Store) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return nil
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone(e *core.Employee) *core.Employee {
	c := *e
	if e.Birthday != nil {
		b := *e.Birthday
		c.Birthday = &b
	}
	if e.Hobbies != nil {
		c.Hobbies = append([]string{}, e.Hobbies...)
	}
	return &c
}
