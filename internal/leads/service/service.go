// Package service implements the lead intake use cases: capture, update,
// listing with display sorts, and the scored/segmented/aggregated views.
// Scoring happens once per write and is cached on the stored row; reads of
// aggregate views recompute from a fresh snapshot in one pass.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"boothlead_backend/internal/analytics"
	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/events"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/internal/leads/scoring"
	"boothlead_backend/internal/leads/segment"
	"boothlead_backend/internal/leads/transport"
	"boothlead_backend/platform/apperr"
	"boothlead_backend/platform/logger"
	"boothlead_backend/platform/phone"
	"boothlead_backend/platform/sanitize"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create captures a new lead: sanitize inputs, normalize the phone number,
// score once, persist with the cached score, publish LeadCaptured.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (repository.Lead, error) {
	now := time.Now()
	lead := domain.Lead{
		ID:           uuid.New(),
		CapturedAt:   now,
		FirstName:    sanitize.Text(req.FirstName),
		LastName:     sanitize.TextPtr(req.LastName),
		Email:        sanitize.TextPtr(req.Email),
		Phone:        normalizePhonePtr(req.Phone),
		BusinessName: sanitize.TextPtr(req.BusinessName),
		BusinessType: domain.ParseBusinessType(req.BusinessType),
		Address:      sanitize.TextPtr(req.Address),
		City:         sanitize.TextPtr(req.City),
		State:        sanitize.TextPtr(req.State),
		ZipCode:      sanitize.TextPtr(req.ZipCode),
		Brands:       toBrands(req.Brands),
		Categories:   toCategories(req.Categories),
		BestTime:     sanitize.TextPtr(req.BestTime),
		Notes:        sanitize.TextPtr(req.Notes),
		DwellSeconds: req.DwellSeconds,
		PlacedOrder:  req.PlacedOrder,
		OrderNotes:   sanitize.TextPtr(req.OrderNotes),
		VisitCount:   1,
		LastVisit:    &now,
		Salesperson:  sanitize.TextPtr(req.Salesperson),
	}
	if req.BoothSection != nil {
		section := catalog.BoothSection(*req.BoothSection)
		lead.BoothSection = &section
	}
	if req.ContactMethod != nil {
		method := catalog.ContactMethod(*req.ContactMethod)
		lead.ContactMethod = &method
	}

	stored := withScore(lead, time.Now())
	if err := s.repo.Insert(ctx, stored); err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to store lead", err).WithOp("leads.Create")
	}

	s.log.LeadCaptured(stored.ID.String(), stored.Score, stored.Grade, stored.EngagementLevel)
	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       stored.ID,
		Score:        stored.Score,
		Grade:        stored.Grade,
		Tier:         stored.EngagementLevel,
		BusinessName: strOrEmpty(stored.BusinessName),
		ContactEmail: strOrEmpty(stored.Email),
		CapturedAt:   stored.CapturedAt,
	})

	return stored, nil
}

// GetByID fetches one lead.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to load lead", err).WithOp("leads.GetByID")
	}
	return lead, nil
}

// List returns leads matching the query. Filtering happens in the store;
// sorting happens here on the returned copy so stored order stays capture
// order and ties break by it.
func (s *Service) List(ctx context.Context, q transport.ListLeadsQuery) ([]repository.Lead, error) {
	leads, err := s.repo.List(ctx, repository.ListFilter{
		Tier:         q.Tier,
		Grade:        q.Grade,
		BusinessType: q.BusinessType,
		Brand:        q.Brand,
		Category:     q.Category,
		Search:       q.Search,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err).WithOp("leads.List")
	}

	switch q.SortBy {
	case "score":
		sort.SliceStable(leads, func(i, j int) bool { return leads[i].Score > leads[j].Score })
	case "name":
		sort.SliceStable(leads, func(i, j int) bool {
			return strings.ToLower(leads[i].FullName()) < strings.ToLower(leads[j].FullName())
		})
	case "business":
		sort.SliceStable(leads, func(i, j int) bool {
			return strings.ToLower(strOrEmpty(leads[i].BusinessName)) < strings.ToLower(strOrEmpty(leads[j].BusinessName))
		})
	case "date":
		sort.SliceStable(leads, func(i, j int) bool { return leads[i].CapturedAt.After(leads[j].CapturedAt) })
	}

	return leads, nil
}

// Update applies the provided fields, records a booth revisit when dwell or
// section changed, rescores, and persists the new cached score.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (repository.Lead, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, err
	}

	lead := current.Lead.
		WithContact(sanitize.TextPtr(req.Email), normalizePhonePtr(req.Phone), sanitize.TextPtr(req.BusinessName)).
		WithAddress(sanitize.TextPtr(req.Address), sanitize.TextPtr(req.City), sanitize.TextPtr(req.State), sanitize.TextPtr(req.ZipCode)).
		WithInterests(toBrandsOrNil(req.Brands), toCategoriesOrNil(req.Categories)).
		WithEngagement(req.DwellSeconds, sanitize.TextPtr(req.Notes))

	if req.FirstName != nil {
		lead.FirstName = sanitize.Text(*req.FirstName)
	}
	if req.LastName != nil {
		lead.LastName = sanitize.TextPtr(req.LastName)
	}
	if req.BusinessType != nil {
		lead = lead.WithBusinessType(domain.ParseBusinessType(*req.BusinessType))
	}
	if req.BoothSection != nil {
		section := catalog.BoothSection(*req.BoothSection)
		lead.BoothSection = &section
	}
	if req.Salesperson != nil {
		lead.Salesperson = sanitize.TextPtr(req.Salesperson)
	}
	if req.ContactMethod != nil {
		method := catalog.ContactMethod(*req.ContactMethod)
		lead.ContactMethod = &method
	}
	if req.BestTime != nil {
		lead.BestTime = sanitize.TextPtr(req.BestTime)
	}
	if req.PlacedOrder != nil {
		lead.PlacedOrder = *req.PlacedOrder
	}
	if req.OrderNotes != nil {
		lead.OrderNotes = sanitize.TextPtr(req.OrderNotes)
	}

	updated := withScore(lead, time.Now())
	updated.SyncedToCRM = current.SyncedToCRM
	updated.CRMID = current.CRMID
	updated.CRMPlatform = current.CRMPlatform
	updated.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Lead{}, apperr.NotFound("lead not found")
		}
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err).WithOp("leads.Update")
	}

	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        updated.ID,
		Score:         updated.Score,
		Grade:         updated.Grade,
		Tier:          updated.EngagementLevel,
		PreviousScore: current.Score,
		PreviousTier:  current.EngagementLevel,
	})

	return updated, nil
}

// Delete removes a lead and announces the removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete lead", err).WithOp("leads.Delete")
	}
	s.bus.Publish(ctx, events.LeadDeleted{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return nil
}

// ScoreBreakdown recomputes the full breakdown for one lead on demand.
// The stored columns are a cache only; this is the source of truth.
func (s *Service) ScoreBreakdown(ctx context.Context, id uuid.UUID) (transport.ScoreResponse, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return transport.ScoreResponse{}, err
	}
	return transport.ScoreResponse{
		LeadID:          lead.ID,
		Breakdown:       scoring.Score(lead.Lead),
		PriorityActions: scoring.PriorityActions(lead.Lead),
		ScoreVersion:    scoring.ScoreVersion,
	}, nil
}

// Segments runs one segmentation pass over all leads and summarizes every
// bucket as counts plus member ids in capture order.
func (s *Service) Segments(ctx context.Context) (transport.SegmentsResponse, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return transport.SegmentsResponse{}, err
	}

	res := segment.Segment(snapshot)
	out := transport.SegmentsResponse{
		Hot:            summarize(res.Hot),
		Warm:           summarize(res.Warm),
		Cold:           summarize(res.Cold),
		ByGrade:        map[string]transport.BucketSummary{},
		ByBusinessType: map[string]transport.BucketSummary{},
		ByCategory:     map[string]transport.BucketSummary{},
		ByBrand:        map[string]transport.BucketSummary{},
	}
	for grade, bucket := range res.ByGrade {
		out.ByGrade[string(grade)] = summarize(bucket)
	}
	for bt, bucket := range res.ByBusinessType {
		out.ByBusinessType[string(bt)] = summarize(bucket)
	}
	for cat, bucket := range res.ByCategory {
		out.ByCategory[string(cat)] = summarize(bucket)
	}
	for brand, bucket := range res.ByBrand {
		out.ByBrand[string(brand)] = summarize(bucket)
	}
	return out, nil
}

// Metrics aggregates booth metrics from a fresh snapshot.
func (s *Service) Metrics(ctx context.Context) (analytics.BoothMetrics, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return analytics.BoothMetrics{}, err
	}
	return analytics.ComputeBoothMetrics(snapshot), nil
}

// Hourly returns the per-display-hour lead roll-up.
func (s *Service) Hourly(ctx context.Context) ([]analytics.HourlyData, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.HourlyBreakdown(snapshot), nil
}

// Demographics returns the intake distribution charts.
func (s *Service) Demographics(ctx context.Context) (analytics.Demographics, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return analytics.Demographics{}, err
	}
	return analytics.ComputeDemographics(snapshot), nil
}

// Heatmap returns per-section visitor pressure for the floor plan overlay.
func (s *Service) Heatmap(ctx context.Context) ([]analytics.HeatmapZone, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.HeatmapZones(snapshot), nil
}

// RescoreAll recomputes cached scores for every lead, returning how many
// rows actually changed. Used after scoring model revisions.
func (s *Service) RescoreAll(ctx context.Context) (int, error) {
	leads, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to load leads for rescore", err).WithOp("leads.RescoreAll")
	}

	changed := 0
	now := time.Now()
	for _, stored := range leads {
		breakdown := scoring.Score(stored.Lead)
		if breakdown.Total == stored.Score && stored.ScoreVersion == scoring.ScoreVersion {
			continue
		}
		err := s.repo.UpdateScore(ctx, stored.ID, breakdown.Total,
			string(breakdown.Grade), string(breakdown.Tier), scoring.ScoreVersion, now)
		if err != nil {
			return changed, apperr.Wrap(apperr.KindInternal, "failed to rescore lead", err).WithOp("leads.RescoreAll")
		}
		changed++
		s.bus.Publish(ctx, events.LeadRescored{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    stored.ID,
			OldScore:  stored.Score,
			NewScore:  breakdown.Total,
			OldTier:   stored.EngagementLevel,
			NewTier:   string(breakdown.Tier),
		})
	}
	return changed, nil
}

func (s *Service) snapshot(ctx context.Context) ([]domain.Lead, error) {
	stored, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to snapshot leads", err).WithOp("leads.snapshot")
	}
	snapshot := make([]domain.Lead, 0, len(stored))
	for _, l := range stored {
		snapshot = append(snapshot, l.Lead)
	}
	return snapshot, nil
}

// withScore stamps the cached score columns from one scoring pass.
func withScore(lead domain.Lead, at time.Time) repository.Lead {
	breakdown := scoring.Score(lead)
	return repository.Lead{
		Lead:            lead,
		Score:           breakdown.Total,
		Grade:           string(breakdown.Grade),
		EngagementLevel: string(breakdown.Tier),
		ScoreVersion:    scoring.ScoreVersion,
		ScoredAt:        at,
	}
}

func summarize(bucket []domain.Lead) transport.BucketSummary {
	ids := make([]uuid.UUID, 0, len(bucket))
	for _, lead := range bucket {
		ids = append(ids, lead.ID)
	}
	return transport.BucketSummary{Count: len(bucket), LeadIDs: ids}
}

func normalizePhonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*p)
	return &normalized
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toBrands(ids []string) []catalog.Brand {
	out := make([]catalog.Brand, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Brand(id))
	}
	return out
}

func toCategories(ids []string) []catalog.Category {
	out := make([]catalog.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Category(id))
	}
	return out
}

// nil-preserving variants: a nil slice in an update request means "leave
// the selection untouched", an empty slice means "clear it".
func toBrandsOrNil(ids []string) []catalog.Brand {
	if ids == nil {
		return nil
	}
	return toBrands(ids)
}

func toCategoriesOrNil(ids []string) []catalog.Category {
	if ids == nil {
		return nil
	}
	return toCategories(ids)
}
