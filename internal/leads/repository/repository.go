// Package repository persists lead rows in Postgres via pgx. Stored score
// columns are a cache of the scoring engine's output; the service recomputes
// them on every write of input fields.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is the stored row: the domain value plus cached score columns and
// CRM sync bookkeeping that never feed back into scoring.
type Lead struct {
	domain.Lead

	Score           int
	Grade           string
	EngagementLevel string
	ScoreVersion    string
	ScoredAt        time.Time

	SyncedToCRM  bool
	CRMID        *string
	CRMPlatform  *string
	CRMLastSync  *time.Time
	CRMLastError *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const leadColumns = `
	id, captured_at, booth_section, salesperson,
	first_name, last_name, email, phone, business_name, business_type,
	address, city, state, zip_code,
	brands, categories,
	contact_method, best_time, notes, dwell_seconds,
	placed_order, order_notes, visit_count, last_visit,
	score, grade, engagement_level, score_version, scored_at,
	synced_to_crm, crm_id, crm_platform, crm_last_sync, crm_last_error,
	created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var (
		l            Lead
		boothSection *string
		contact      *string
		brands       []string
		categories   []string
		businessType string
	)

	err := row.Scan(
		&l.ID, &l.CapturedAt, &boothSection, &l.Salesperson,
		&l.FirstName, &l.LastName, &l.Email, &l.Phone, &l.BusinessName, &businessType,
		&l.Address, &l.City, &l.State, &l.ZipCode,
		&brands, &categories,
		&contact, &l.BestTime, &l.Notes, &l.DwellSeconds,
		&l.PlacedOrder, &l.OrderNotes, &l.VisitCount, &l.LastVisit,
		&l.Score, &l.Grade, &l.EngagementLevel, &l.ScoreVersion, &l.ScoredAt,
		&l.SyncedToCRM, &l.CRMID, &l.CRMPlatform, &l.CRMLastSync, &l.CRMLastError,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	l.BusinessType = domain.ParseBusinessType(businessType)
	if boothSection != nil {
		section := catalog.BoothSection(*boothSection)
		l.BoothSection = &section
	}
	if contact != nil {
		method := catalog.ContactMethod(*contact)
		l.ContactMethod = &method
	}
	l.Brands = make([]catalog.Brand, 0, len(brands))
	for _, b := range brands {
		l.Brands = append(l.Brands, catalog.Brand(b))
	}
	l.Categories = make([]catalog.Category, 0, len(categories))
	for _, c := range categories {
		l.Categories = append(l.Categories, catalog.Category(c))
	}

	return l, nil
}

// Insert stores a new lead row with its cached score.
func (r *Repository) Insert(ctx context.Context, l Lead) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO leads (
			id, captured_at, booth_section, salesperson,
			first_name, last_name, email, phone, business_name, business_type,
			address, city, state, zip_code,
			brands, categories,
			contact_method, best_time, notes, dwell_seconds,
			placed_order, order_notes, visit_count, last_visit,
			score, grade, engagement_level, score_version, scored_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16,
			$17, $18, $19, $20,
			$21, $22, $23, $24,
			$25, $26, $27, $28, $29
		)
	`,
		l.ID, l.CapturedAt, sectionStr(l.BoothSection), l.Salesperson,
		l.FirstName, l.LastName, l.Email, l.Phone, l.BusinessName, string(l.BusinessType),
		l.Address, l.City, l.State, l.ZipCode,
		brandStrs(l.Brands), categoryStrs(l.Categories),
		contactStr(l.ContactMethod), l.BestTime, l.Notes, l.DwellSeconds,
		l.PlacedOrder, l.OrderNotes, l.VisitCount, l.LastVisit,
		l.Score, l.Grade, l.EngagementLevel, l.ScoreVersion, l.ScoredAt,
	)
	return err
}

// GetByID fetches one lead row.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return l, err
}

// ListFilter narrows List results. Zero values mean no filtering on that
// dimension.
type ListFilter struct {
	Tier         string
	Grade        string
	BusinessType string
	Brand        string
	Category     string
	Search       string
}

// List returns leads matching the filter in capture order.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Lead, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Tier != "" {
		conds = append(conds, "engagement_level = "+arg(f.Tier))
	}
	if f.Grade != "" {
		conds = append(conds, "grade = "+arg(f.Grade))
	}
	if f.BusinessType != "" {
		conds = append(conds, "business_type = "+arg(f.BusinessType))
	}
	if f.Brand != "" {
		conds = append(conds, arg(f.Brand)+" = ANY(brands)")
	}
	if f.Category != "" {
		conds = append(conds, arg(f.Category)+" = ANY(categories)")
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		p := arg(pattern)
		conds = append(conds, fmt.Sprintf(
			"(LOWER(first_name) LIKE %[1]s OR LOWER(COALESCE(last_name, '')) LIKE %[1]s OR LOWER(COALESCE(business_name, '')) LIKE %[1]s OR LOWER(COALESCE(email, '')) LIKE %[1]s)", p))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY captured_at ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// ListAll returns every lead in capture order. Used as the snapshot for
// segmentation and analytics passes.
func (r *Repository) ListAll(ctx context.Context) ([]Lead, error) {
	return r.List(ctx, ListFilter{})
}

// Update rewrites the lead's input fields and cached score in one statement.
func (r *Repository) Update(ctx context.Context, l Lead) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			booth_section = $2, salesperson = $3,
			first_name = $4, last_name = $5, email = $6, phone = $7,
			business_name = $8, business_type = $9,
			address = $10, city = $11, state = $12, zip_code = $13,
			brands = $14, categories = $15,
			contact_method = $16, best_time = $17, notes = $18, dwell_seconds = $19,
			placed_order = $20, order_notes = $21, visit_count = $22, last_visit = $23,
			score = $24, grade = $25, engagement_level = $26, score_version = $27, scored_at = $28,
			updated_at = now()
		WHERE id = $1
	`,
		l.ID, sectionStr(l.BoothSection), l.Salesperson,
		l.FirstName, l.LastName, l.Email, l.Phone,
		l.BusinessName, string(l.BusinessType),
		l.Address, l.City, l.State, l.ZipCode,
		brandStrs(l.Brands), categoryStrs(l.Categories),
		contactStr(l.ContactMethod), l.BestTime, l.Notes, l.DwellSeconds,
		l.PlacedOrder, l.OrderNotes, l.VisitCount, l.LastVisit,
		l.Score, l.Grade, l.EngagementLevel, l.ScoreVersion, l.ScoredAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateScore rewrites only the cached score columns. Used by bulk rescores.
func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, score int, grade, tier, version string, scoredAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			score = $2, grade = $3, engagement_level = $4,
			score_version = $5, scored_at = $6, updated_at = now()
		WHERE id = $1
	`, id, score, grade, tier, version, scoredAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCRMSync records the outcome of a CRM sync attempt. Failures touch
// only the bookkeeping columns, never the cached score.
func (r *Repository) UpdateCRMSync(ctx context.Context, id uuid.UUID, synced bool, crmID, platform *string, syncErr *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			synced_to_crm = $2, crm_id = $3, crm_platform = $4,
			crm_last_sync = now(), crm_last_error = $5, updated_at = now()
		WHERE id = $1
	`, id, synced, crmID, platform, syncErr)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a lead row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountCapturedSince counts leads captured at or after the given instant.
// Used for conversion-rate denominators alongside traffic counts.
func (r *Repository) CountCapturedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE captured_at >= $1`, since).Scan(&count)
	return count, err
}

func sectionStr(s *catalog.BoothSection) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func contactStr(m *catalog.ContactMethod) *string {
	if m == nil {
		return nil
	}
	v := string(*m)
	return &v
}

func brandStrs(brands []catalog.Brand) []string {
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		out = append(out, string(b))
	}
	return out
}

func categoryStrs(categories []catalog.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}
