package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"employee-service/internal/core"

	"github.com/google/uuid"
)

// Repository stores each employee as a JSONB document keyed by id. The email
// is duplicated into its own column for the by-email lookup.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*core.Employee, error) {
	query := `SELECT document FROM employees WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*core.Employee, error) {
	query := `SELECT document FROM employees WHERE email = $1 LIMIT 1`
	return r.findOne(ctx, query, email)
}

func (r *Repository) FindAll(ctx context.Context) ([]*core.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT document FROM employees`)
	if err != nil {
		return nil, fmt.Errorf("postgres: query employees: %w", err)
	}
	defer rows.Close()

	employees := []*core.Employee{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("postgres: scan employee: %w", err)
		}
		e, err := decode(doc)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate employees: %w", err)
	}
	return employees, nil
}

// Save upserts the document by id.
func (r *Repository) Save(ctx context.Context, e *core.Employee) (*core.Employee, error) {
	doc, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("postgres: encode employee %s: %w", e.ID, err)
	}

	query := `
		INSERT INTO employees (id, email, document)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, document = EXCLUDED.document`

	// jsonb takes the text form; lib/pq would send []byte as bytea.
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Email, string(doc)); err != nil {
		return nil, fmt.Errorf("postgres: save employee %s: %w", e.ID, err)
	}
	return e, nil
}

// DeleteByID removes the document; a missing id is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: delete employee %s: %w", id, err)
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*core.Employee, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: query employee: %w", err)
	}
	return decode(doc)
}

func decode(doc []byte) (*core.Employee, error) {
	var e core.Employee
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, fmt.Errorf("postgres: decode employee document: %w", err)
	}
	return &e, nil
}
