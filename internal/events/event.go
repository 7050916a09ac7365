// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"boothlead_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCaptured is published when a new lead is captured at the booth.
type LeadCaptured struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	Score        int       `json:"score"`
	Grade        string    `json:"grade"`
	Tier         string    `json:"tier"`
	BusinessName string    `json:"businessName,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	CapturedAt   time.Time `json:"capturedAt"`
}

func (e LeadCaptured) EventName() string { return "leads.lead.captured" }

// LeadUpdated is published when a lead's capture data changes. Handlers use
// the score fields to react to tier transitions (e.g. a lead turning hot).
type LeadUpdated struct {
	BaseEvent
	LeadID        uuid.UUID `json:"leadId"`
	Score         int       `json:"score"`
	Grade         string    `json:"grade"`
	Tier          string    `json:"tier"`
	PreviousScore int       `json:"previousScore"`
	PreviousTier  string    `json:"previousTier"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// LeadDeleted is published when a lead is removed.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }

// LeadRescored is published when a background rescore changes a lead's
// cached score, for example after a scoring model revision.
type LeadRescored struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
	OldTier  string    `json:"oldTier"`
	NewTier  string    `json:"newTier"`
}

func (e LeadRescored) EventName() string { return "leads.lead.rescored" }

// =============================================================================
// Traffic Domain Events
// =============================================================================

// TrafficRecorded is published when a foot traffic entry is recorded.
type TrafficRecorded struct {
	BaseEvent
	EntryID      uuid.UUID `json:"entryId"`
	BoothSection string    `json:"boothSection"`
	VisitorCount int       `json:"visitorCount"`
	RecordedAt   time.Time `json:"recordedAt"`
}

func (e TrafficRecorded) EventName() string { return "traffic.entry.recorded" }

// =============================================================================
// CRM Domain Events
// =============================================================================

// CRMSyncCompleted is published after a sync attempt to the configured CRM
// platform finishes, whether it succeeded or failed.
type CRMSyncCompleted struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Platform string    `json:"platform"`
	Success  bool      `json:"success"`
	Reason   string    `json:"reason,omitempty"`
}

func (e CRMSyncCompleted) EventName() string { return "crm.sync.completed" }

// =============================================================================
// Exports Domain Events
// =============================================================================

// ExportGenerated is published when a lead export workbook has been produced.
type ExportGenerated struct {
	BaseEvent
	LeadCount   int    `json:"leadCount"`
	SizeBytes   int64  `json:"sizeBytes"`
	Destination string `json:"destination"` // "download" or "minio"
	ObjectKey   string `json:"objectKey,omitempty"`
}

func (e ExportGenerated) EventName() string { return "exports.export.generated" }
