package crm

import (
	"context"
	"time"

	"boothlead_backend/internal/events"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/platform/apperr"
	"boothlead_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service owns CRM sync bookkeeping. Sync outcomes are stored on the lead
// row's CRM columns only; a failed sync never touches scores or input
// fields.
type Service struct {
	connector *Connector
	leads     *repository.Repository
	bus       events.Bus
	log       *logger.Logger
	apiKey    string

	connected bool
}

func NewService(connector *Connector, leads *repository.Repository, bus events.Bus, log *logger.Logger, apiKey string) *Service {
	return &Service{
		connector: connector,
		leads:     leads,
		bus:       bus,
		log:       log,
		apiKey:    apiKey,
	}
}

// Connect performs the simulated connection handshake and remembers the
// outcome for Status.
func (s *Service) Connect(ctx context.Context) error {
	if err := s.connector.Connect(ctx, s.apiKey); err != nil {
		s.connected = false
		return apperr.Wrap(apperr.KindUnavailable, "CRM connection failed", err).WithOp("crm.Connect")
	}
	s.connected = true
	return nil
}

// ConnectionStatus summarizes the simulated connection and sync progress.
type ConnectionStatus struct {
	Connected   bool       `json:"connected"`
	Platform    string     `json:"platform"`
	LastSync    *time.Time `json:"lastSync"`
	TotalSynced int        `json:"totalSynced"`
	PendingSync int        `json:"pendingSync"`
}

// Status reports the connection state and how many leads are synced.
func (s *Service) Status(ctx context.Context) (ConnectionStatus, error) {
	leads, err := s.leads.ListAll(ctx)
	if err != nil {
		return ConnectionStatus{}, apperr.Wrap(apperr.KindInternal, "failed to load leads", err).WithOp("crm.Status")
	}

	status := ConnectionStatus{
		Connected: s.connected,
		Platform:  string(s.connector.Platform()),
	}
	for _, l := range leads {
		if l.SyncedToCRM {
			status.TotalSynced++
			if l.CRMLastSync != nil && (status.LastSync == nil || l.CRMLastSync.After(*status.LastSync)) {
				status.LastSync = l.CRMLastSync
			}
		} else {
			status.PendingSync++
		}
	}
	return status, nil
}

// SyncLead pushes one lead through the simulated connector and records the
// outcome on the lead row.
func (s *Service) SyncLead(ctx context.Context, leadID uuid.UUID) error {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return apperr.NotFound("lead not found")
	}

	platform := string(s.connector.Platform())
	crmID, syncErr := s.connector.SyncLead(ctx, lead)

	var success bool
	var reason string
	if syncErr != nil {
		reason = syncErr.Error()
		errMsg := reason
		if err := s.leads.UpdateCRMSync(ctx, leadID, false, nil, &platform, &errMsg); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to record sync failure", err).WithOp("crm.SyncLead")
		}
	} else {
		success = true
		if err := s.leads.UpdateCRMSync(ctx, leadID, true, &crmID, &platform, nil); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to record sync", err).WithOp("crm.SyncLead")
		}
	}

	s.log.CRMSync(leadID.String(), platform, success, reason)
	s.bus.Publish(ctx, events.CRMSyncCompleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Platform:  platform,
		Success:   success,
		Reason:    reason,
	})

	if syncErr != nil {
		return apperr.Wrap(apperr.KindUnavailable, "CRM sync failed", syncErr).WithOp("crm.SyncLead")
	}
	return nil
}

// SyncResult summarizes one bulk sync pass.
type SyncResult struct {
	Success     bool        `json:"success"`
	SyncedCount int         `json:"syncedCount"`
	FailedCount int         `json:"failedCount"`
	Errors      []string    `json:"errors"`
	SyncedLeads []uuid.UUID `json:"syncedLeads"`
}

// SyncAll pushes every unsynced lead, at most five in flight at a time.
// Individual failures are collected, not fatal: the pass continues and
// reports them in capture order.
func (s *Service) SyncAll(ctx context.Context) (SyncResult, error) {
	leads, err := s.leads.ListAll(ctx)
	if err != nil {
		return SyncResult{}, apperr.Wrap(apperr.KindInternal, "failed to load leads", err).WithOp("crm.SyncAll")
	}

	pending := make([]uuid.UUID, 0, len(leads))
	for _, lead := range leads {
		if !lead.SyncedToCRM {
			pending = append(pending, lead.ID)
		}
	}

	syncErrs := make([]error, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)
	for i, id := range pending {
		i, id := i, id
		g.Go(func() error {
			syncErrs[i] = s.SyncLead(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	result := SyncResult{Errors: []string{}, SyncedLeads: []uuid.UUID{}}
	for i, id := range pending {
		if syncErrs[i] != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, syncErrs[i].Error())
			continue
		}
		result.SyncedCount++
		result.SyncedLeads = append(result.SyncedLeads, id)
	}
	result.Success = result.FailedCount == 0
	return result, nil
}

// EnrichLead runs the mock enrichment lookup for one lead.
func (s *Service) EnrichLead(ctx context.Context, leadID uuid.UUID) (EnrichedData, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return EnrichedData{}, apperr.NotFound("lead not found")
	}
	enriched, err := s.connector.Enrich(ctx, lead)
	if err != nil {
		return EnrichedData{}, apperr.Wrap(apperr.KindUnavailable, "enrichment failed", err).WithOp("crm.EnrichLead")
	}
	return enriched, nil
}

// Stats aggregates sync coverage per platform.
type Stats struct {
	TotalLeads      int `json:"totalLeads"`
	Synced          int `json:"synced"`
	Pending         int `json:"pending"`
	HubspotCount    int `json:"hubspotCount"`
	SalesforceCount int `json:"salesforceCount"`
	SalesgentCount  int `json:"salesgentCount"`
}

// ComputeStats counts sync coverage over all leads.
func (s *Service) ComputeStats(ctx context.Context) (Stats, error) {
	leads, err := s.leads.ListAll(ctx)
	if err != nil {
		return Stats{}, apperr.Wrap(apperr.KindInternal, "failed to load leads", err).WithOp("crm.ComputeStats")
	}

	stats := Stats{TotalLeads: len(leads)}
	for _, l := range leads {
		if l.SyncedToCRM {
			stats.Synced++
		} else {
			stats.Pending++
		}
		if l.CRMPlatform == nil {
			continue
		}
		switch Platform(*l.CRMPlatform) {
		case PlatformHubSpot:
			stats.HubspotCount++
		case PlatformSalesforce:
			stats.SalesforceCount++
		case PlatformSalesgent:
			stats.SalesgentCount++
		}
	}
	return stats, nil
}

// Mappings returns the field mapping table for the configured platform.
func (s *Service) Mappings() []FieldMapping {
	return FieldMappings(s.connector.Platform())
}
