// Package transport defines the foot traffic request and response shapes.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type RecordEntryRequest struct {
	Count        int     `json:"count" validate:"required,min=1,max=500"`
	BoothSection *string `json:"boothSection,omitempty" validate:"omitempty,max=50"`
	Note         *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type EntryResponse struct {
	ID           uuid.UUID `json:"id"`
	RecordedAt   time.Time `json:"timestamp"`
	Count        int       `json:"count"`
	BoothSection *string   `json:"boothSection,omitempty"`
	Note         *string   `json:"note,omitempty"`
}
