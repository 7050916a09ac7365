// Package domain defines the lead record as an immutable value type.
// Scoring and segmentation treat a Lead as a read-only snapshot; updates
// produce a new value via the With* methods instead of mutating in place.
package domain

import (
	"time"

	"boothlead_backend/internal/catalog"

	"github.com/google/uuid"
)

// BusinessType classifies the visitor's business. The zero value is
// BusinessTypeUnset, which contributes no points to scoring.
type BusinessType string

const (
	BusinessTypeUnset     BusinessType = ""
	BusinessTypeWholesale BusinessType = "wholesale"
	BusinessTypeRetail    BusinessType = "retail"
)

// ParseBusinessType maps raw input to a BusinessType. Unknown values
// collapse to unset rather than erroring; upstream validation decides
// whether that is acceptable.
func ParseBusinessType(s string) BusinessType {
	switch s {
	case string(BusinessTypeWholesale):
		return BusinessTypeWholesale
	case string(BusinessTypeRetail):
		return BusinessTypeRetail
	default:
		return BusinessTypeUnset
	}
}

// Lead is one captured visitor record. All optional fields are pointers;
// nil means the visitor never provided the value, which scoring treats as
// an absent signal rather than an error.
type Lead struct {
	ID         uuid.UUID
	CapturedAt time.Time

	BoothSection *catalog.BoothSection
	Salesperson  *string

	FirstName    string
	LastName     *string
	Email        *string
	Phone        *string
	BusinessName *string
	BusinessType BusinessType

	Address *string
	City    *string
	State   *string
	ZipCode *string

	Brands     []catalog.Brand
	Categories []catalog.Category

	ContactMethod *catalog.ContactMethod
	BestTime      *string
	Notes         *string

	DwellSeconds *int

	PlacedOrder bool
	OrderNotes  *string

	VisitCount int
	LastVisit  *time.Time
}

// HasEmail reports whether a non-empty email was captured.
func (l Lead) HasEmail() bool { return strPresent(l.Email) }

// HasPhone reports whether a non-empty phone was captured.
func (l Lead) HasPhone() bool { return strPresent(l.Phone) }

// HasBusinessName reports whether a non-empty business name was captured.
func (l Lead) HasBusinessName() bool { return strPresent(l.BusinessName) }

// HasFullAddress reports whether address, city, and state were all captured.
func (l Lead) HasFullAddress() bool {
	return strPresent(l.Address) && strPresent(l.City) && strPresent(l.State)
}

// FullName joins first and last name for display.
func (l Lead) FullName() string {
	if l.LastName == nil || *l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + *l.LastName
}

func strPresent(s *string) bool {
	return s != nil && *s != ""
}

// WithContact returns a copy with the contact fields replaced. A nil
// argument leaves the corresponding field untouched.
func (l Lead) WithContact(email, phone, businessName *string) Lead {
	if email != nil {
		l.Email = email
	}
	if phone != nil {
		l.Phone = phone
	}
	if businessName != nil {
		l.BusinessName = businessName
	}
	return l
}

// WithAddress returns a copy with the address fields replaced. A nil
// argument leaves the corresponding field untouched.
func (l Lead) WithAddress(address, city, state, zip *string) Lead {
	if address != nil {
		l.Address = address
	}
	if city != nil {
		l.City = city
	}
	if state != nil {
		l.State = state
	}
	if zip != nil {
		l.ZipCode = zip
	}
	return l
}

// WithBusinessType returns a copy with the business type replaced.
func (l Lead) WithBusinessType(bt BusinessType) Lead {
	l.BusinessType = bt
	return l
}

// WithInterests returns a copy with the brand and category selections
// replaced. The slices are copied so the original lead keeps its own
// backing arrays.
func (l Lead) WithInterests(brands []catalog.Brand, categories []catalog.Category) Lead {
	if brands != nil {
		l.Brands = append([]catalog.Brand(nil), brands...)
	}
	if categories != nil {
		l.Categories = append([]catalog.Category(nil), categories...)
	}
	return l
}

// WithEngagement returns a copy with the engagement signals replaced.
func (l Lead) WithEngagement(dwellSeconds *int, notes *string) Lead {
	if dwellSeconds != nil {
		l.DwellSeconds = dwellSeconds
	}
	if notes != nil {
		l.Notes = notes
	}
	return l
}

// WithVisit returns a copy recording one more booth visit at the given time.
func (l Lead) WithVisit(at time.Time) Lead {
	l.VisitCount++
	l.LastVisit = &at
	return l
}
