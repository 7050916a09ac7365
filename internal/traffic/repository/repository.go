// Package repository persists foot traffic counter entries.
package repository

import (
	"context"
	"errors"
	"time"

	"boothlead_backend/internal/catalog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("traffic entry not found")

// Entry is one tap of the booth counter: a visitor count at an instant,
// optionally attributed to a booth section.
type Entry struct {
	ID           uuid.UUID
	RecordedAt   time.Time
	Count        int
	BoothSection *catalog.BoothSection
	Note         *string
	CreatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new counter entry.
func (r *Repository) Insert(ctx context.Context, e Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO foot_traffic (id, recorded_at, visitor_count, booth_section, note)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.RecordedAt, e.Count, sectionStr(e.BoothSection), e.Note)
	return err
}

// List returns all entries oldest first.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, recorded_at, visitor_count, booth_section, note, created_at
		FROM foot_traffic
		ORDER BY recorded_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			e       Entry
			section *string
		)
		if err := rows.Scan(&e.ID, &e.RecordedAt, &e.Count, &section, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		if section != nil {
			s := catalog.BoothSection(*section)
			e.BoothSection = &s
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes one entry, used to undo a mis-tap.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM foot_traffic WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches one entry.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Entry, error) {
	var (
		e       Entry
		section *string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, recorded_at, visitor_count, booth_section, note, created_at
		FROM foot_traffic WHERE id = $1
	`, id).Scan(&e.ID, &e.RecordedAt, &e.Count, &section, &e.Note, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	if section != nil {
		s := catalog.BoothSection(*section)
		e.BoothSection = &s
	}
	return e, nil
}

func sectionStr(s *catalog.BoothSection) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
