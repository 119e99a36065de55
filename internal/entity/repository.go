package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Record is a persisted entity row.
type Record struct {
	Kind     Kind
	ObjectID string
	Name     string
}

// Repository defines entity persistence operations.
type Repository interface {
	// List returns every stored entity in registration order.
	List(ctx context.Context) ([]Record, error)

	// Create stores a new entity. Returns ErrEntityExists on a duplicate
	// (kind, object_id).
	Create(ctx context.Context, rec Record) error

	// Delete removes an entity. Returns ErrEntityNotFound if absent.
	Delete(ctx context.Context, kind Kind, objectID string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db must have the entities table migrated.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// List returns every stored entity in registration (seq) order.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, object_id, name
		FROM entities
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var kind string
		if err := rows.Scan(&kind, &rec.ObjectID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		rec.Kind = Kind(kind)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	return records, nil
}

// Create stores a new entity.
func (r *SQLiteRepository) Create(ctx context.Context, rec Record) error {
	if rec.Kind == "" || rec.ObjectID == "" {
		return ErrInvalidEntity
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO entities (kind, object_id, name) VALUES (?, ?, ?)",
		string(rec.Kind), rec.ObjectID, rec.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s/%s", ErrEntityExists, rec.Kind, rec.ObjectID)
		}
		return fmt.Errorf("inserting entity: %w", err)
	}
	return nil
}

// Delete removes an entity.
func (r *SQLiteRepository) Delete(ctx context.Context, kind Kind, objectID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM entities WHERE kind = ? AND object_id = ?",
		string(kind), objectID,
	)
	if err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrEntityNotFound
	}
	return nil
}

// Seed creates each record that is not already stored and returns how many
// were created. Existing rows keep their name and position.
func Seed(ctx context.Context, repo Repository, records []Record) (int, error) {
	created := 0
	for _, rec := range records {
		err := repo.Create(ctx, rec)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrEntityExists):
		default:
			return created, err
		}
	}
	return created, nil
}

// isUniqueViolation matches SQLite's UNIQUE constraint error text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
