// Package service implements the foot traffic use cases: recording counter
// taps, listing entries, and the metrics roll-up that blends traffic with
// same-day lead counts for the conversion rate.
package service

import (
	"context"
	"errors"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/events"
	"boothlead_backend/internal/traffic/repository"
	"boothlead_backend/internal/traffic/transport"
	"boothlead_backend/platform/apperr"
	"boothlead_backend/platform/logger"
	"boothlead_backend/platform/sanitize"

	"github.com/google/uuid"
)

// LeadCounter counts leads captured since an instant. Satisfied by the
// leads repository; kept as an interface so traffic stays decoupled from
// that module's internals.
type LeadCounter interface {
	CountCapturedSince(ctx context.Context, since time.Time) (int, error)
}

type Service struct {
	repo  *repository.Repository
	leads LeadCounter
	bus   events.Bus
	log   *logger.Logger
}

func New(repo *repository.Repository, leads LeadCounter, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, bus: bus, log: log}
}

// Record stores one counter tap and announces it.
func (s *Service) Record(ctx context.Context, req transport.RecordEntryRequest) (repository.Entry, error) {
	entry := repository.Entry{
		ID:         uuid.New(),
		RecordedAt: time.Now(),
		Count:      req.Count,
		Note:       sanitize.TextPtr(req.Note),
	}
	if req.BoothSection != nil {
		section := catalog.BoothSection(*req.BoothSection)
		if !section.Valid() {
			return repository.Entry{}, apperr.Validation("unknown booth section")
		}
		entry.BoothSection = &section
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return repository.Entry{}, apperr.Wrap(apperr.KindInternal, "failed to record traffic", err).WithOp("traffic.Record")
	}

	s.bus.Publish(ctx, events.TrafficRecorded{
		BaseEvent:    events.NewBaseEvent(),
		EntryID:      entry.ID,
		BoothSection: sectionName(entry.BoothSection),
		VisitorCount: entry.Count,
		RecordedAt:   entry.RecordedAt,
	})

	return entry, nil
}

// List returns all counter entries oldest first.
func (s *Service) List(ctx context.Context) ([]repository.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list traffic", err).WithOp("traffic.List")
	}
	return entries, nil
}

// Delete undoes a mis-tap.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("traffic entry not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete traffic entry", err).WithOp("traffic.Delete")
	}
	return nil
}

// MetricsResult is the full traffic roll-up served to the dashboard.
type MetricsResult struct {
	Metrics
	BySection []SectionCount `json:"bySection"`
}

// ComputeAll computes the traffic roll-up, including the leads-per-visitor
// conversion rate for today.
func (s *Service) ComputeAll(ctx context.Context) (MetricsResult, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return MetricsResult{}, apperr.Wrap(apperr.KindInternal, "failed to load traffic", err).WithOp("traffic.Metrics")
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayLeads, err := s.leads.CountCapturedSince(ctx, startOfDay)
	if err != nil {
		return MetricsResult{}, apperr.Wrap(apperr.KindInternal, "failed to count leads", err).WithOp("traffic.Metrics")
	}

	return MetricsResult{
		Metrics:   ComputeMetrics(entries, todayLeads, now),
		BySection: BySection(entries),
	}, nil
}

func sectionName(s *catalog.BoothSection) string {
	if s == nil {
		return ""
	}
	return string(*s)
}
