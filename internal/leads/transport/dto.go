// Package transport defines the request and response shapes for the leads
// HTTP surface. Validation tags mirror what the intake form enforces; the
// scoring engine itself never rejects a lead.
package transport

import (
	"time"

	"boothlead_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// Request DTOs

type CreateLeadRequest struct {
	FirstName    string   `json:"firstName" validate:"required,min=1,max=100"`
	LastName     *string  `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string  `json:"phone,omitempty" validate:"omitempty,min=5,max=25"`
	BusinessName *string  `json:"businessName,omitempty" validate:"omitempty,max=200"`
	BusinessType string   `json:"businessType,omitempty" validate:"omitempty,oneof=wholesale retail"`
	Address      *string  `json:"address,omitempty" validate:"omitempty,max=200"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string  `json:"state,omitempty" validate:"omitempty,max=50"`
	ZipCode      *string  `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Brands       []string `json:"selectedBrands,omitempty" validate:"omitempty,max=25,dive,min=1,max=50"`
	Categories   []string `json:"selectedCategories,omitempty" validate:"omitempty,max=25,dive,min=1,max=50"`

	BoothSection  *string `json:"boothSection,omitempty" validate:"omitempty,max=50"`
	Salesperson   *string `json:"salesperson,omitempty" validate:"omitempty,max=50"`
	ContactMethod *string `json:"contactMethod,omitempty" validate:"omitempty,oneof=email phone text all"`
	BestTime      *string `json:"bestTimeToContact,omitempty" validate:"omitempty,max=100"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	DwellSeconds  *int    `json:"dwellTime,omitempty" validate:"omitempty"`
	PlacedOrder   bool    `json:"placedOrder,omitempty"`
	OrderNotes    *string `json:"orderNotes,omitempty" validate:"omitempty,max=5000"`
}

type UpdateLeadRequest struct {
	FirstName    *string  `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName     *string  `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string  `json:"phone,omitempty" validate:"omitempty,min=5,max=25"`
	BusinessName *string  `json:"businessName,omitempty" validate:"omitempty,max=200"`
	BusinessType *string  `json:"businessType,omitempty" validate:"omitempty,oneof=wholesale retail"`
	Address      *string  `json:"address,omitempty" validate:"omitempty,max=200"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string  `json:"state,omitempty" validate:"omitempty,max=50"`
	ZipCode      *string  `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Brands       []string `json:"selectedBrands,omitempty" validate:"omitempty,max=25,dive,min=1,max=50"`
	Categories   []string `json:"selectedCategories,omitempty" validate:"omitempty,max=25,dive,min=1,max=50"`

	BoothSection  *string `json:"boothSection,omitempty" validate:"omitempty,max=50"`
	Salesperson   *string `json:"salesperson,omitempty" validate:"omitempty,max=50"`
	ContactMethod *string `json:"contactMethod,omitempty" validate:"omitempty,oneof=email phone text all"`
	BestTime      *string `json:"bestTimeToContact,omitempty" validate:"omitempty,max=100"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	DwellSeconds  *int    `json:"dwellTime,omitempty" validate:"omitempty"`
	PlacedOrder   *bool   `json:"placedOrder,omitempty"`
	OrderNotes    *string `json:"orderNotes,omitempty" validate:"omitempty,max=5000"`
}

// ListLeadsQuery captures the supported list filters and sort orders.
// Sorting is applied to a copy of the stored rows; the base order stays
// insertion order.
type ListLeadsQuery struct {
	Tier         string `form:"tier" validate:"omitempty,oneof=hot warm cold"`
	Grade        string `form:"grade" validate:"omitempty,oneof=A B C D"`
	BusinessType string `form:"businessType" validate:"omitempty,oneof=wholesale retail"`
	Brand        string `form:"brand" validate:"omitempty,max=50"`
	Category     string `form:"category" validate:"omitempty,max=50"`
	Search       string `form:"search" validate:"omitempty,max=200"`
	SortBy       string `form:"sortBy" validate:"omitempty,oneof=score name date business"`
}

// Response DTOs

type LeadResponse struct {
	ID         uuid.UUID `json:"id"`
	CapturedAt time.Time `json:"capturedAt"`

	FirstName    string  `json:"firstName"`
	LastName     *string `json:"lastName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	BusinessName *string `json:"businessName,omitempty"`
	BusinessType string  `json:"businessType,omitempty"`

	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`

	Brands     []string `json:"selectedBrands"`
	Categories []string `json:"selectedCategories"`

	BoothSection  *string `json:"boothSection,omitempty"`
	Salesperson   *string `json:"salesperson,omitempty"`
	ContactMethod *string `json:"contactMethod,omitempty"`
	BestTime      *string `json:"bestTimeToContact,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	DwellSeconds  *int    `json:"dwellTime,omitempty"`
	PlacedOrder   bool    `json:"placedOrder"`
	OrderNotes    *string `json:"orderNotes,omitempty"`
	VisitCount    int     `json:"visitCount"`

	// Cached scoring output; recomputed on every write of input fields.
	Score           int    `json:"leadScore"`
	Grade           string `json:"leadGrade"`
	EngagementLevel string `json:"engagementLevel"`

	SyncedToCRM bool    `json:"syncedToCRM"`
	CRMID       *string `json:"crmId,omitempty"`
}

// ScoreResponse is the full breakdown plus follow-up recommendations.
type ScoreResponse struct {
	LeadID          uuid.UUID         `json:"leadId"`
	Breakdown       scoring.Breakdown `json:"breakdown"`
	PriorityActions []string          `json:"priorityActions"`
	ScoreVersion    string            `json:"scoreVersion"`
}

// BucketSummary lists a bucket's size and member ids in insertion order.
type BucketSummary struct {
	Count   int         `json:"count"`
	LeadIDs []uuid.UUID `json:"leadIds"`
}

// SegmentsResponse summarizes one segmentation pass over all leads.
type SegmentsResponse struct {
	Hot            BucketSummary            `json:"hot"`
	Warm           BucketSummary            `json:"warm"`
	Cold           BucketSummary            `json:"cold"`
	ByGrade        map[string]BucketSummary `json:"byGrade"`
	ByBusinessType map[string]BucketSummary `json:"byBusinessType"`
	ByCategory     map[string]BucketSummary `json:"byCategory"`
	ByBrand        map[string]BucketSummary `json:"byBrand"`
}
