package domain

import (
	"testing"
	"time"

	"boothlead_backend/internal/catalog"
)

func strPtr(s string) *string { return &s }

func TestParseBusinessType(t *testing.T) {
	tests := []struct {
		input string
		want  BusinessType
	}{
		{"wholesale", BusinessTypeWholesale},
		{"retail", BusinessTypeRetail},
		{"", BusinessTypeUnset},
		{"Wholesale", BusinessTypeUnset},
		{"distributor", BusinessTypeUnset},
	}

	for _, tt := range tests {
		if got := ParseBusinessType(tt.input); got != tt.want {
			t.Errorf("ParseBusinessType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHasFullAddress(t *testing.T) {
	lead := Lead{Address: strPtr("123 Main St"), City: strPtr("Dallas"), State: strPtr("TX")}
	if !lead.HasFullAddress() {
		t.Error("expected full address to be present")
	}

	// Missing any one component means no full address.
	noCity := lead
	noCity.City = nil
	if noCity.HasFullAddress() {
		t.Error("expected missing city to fail full address check")
	}

	empty := lead
	empty.State = strPtr("")
	if empty.HasFullAddress() {
		t.Error("expected empty state to fail full address check")
	}
}

func TestFullName(t *testing.T) {
	if got := (Lead{FirstName: "Sam"}).FullName(); got != "Sam" {
		t.Errorf("FullName() = %q, want %q", got, "Sam")
	}
	if got := (Lead{FirstName: "Sam", LastName: strPtr("Lee")}).FullName(); got != "Sam Lee" {
		t.Errorf("FullName() = %q, want %q", got, "Sam Lee")
	}
}

func TestWithMethodsDoNotMutateOriginal(t *testing.T) {
	original := Lead{
		FirstName:    "Ana",
		Email:        strPtr("ana@shop.com"),
		BusinessType: BusinessTypeRetail,
		Brands:       []catalog.Brand{catalog.BrandRaz},
	}

	updated := original.
		WithContact(strPtr("new@shop.com"), nil, strPtr("Ana's Smoke Shop")).
		WithBusinessType(BusinessTypeWholesale).
		WithInterests([]catalog.Brand{catalog.BrandBeri, catalog.BrandRYL}, nil)

	if *original.Email != "ana@shop.com" {
		t.Errorf("original email mutated to %q", *original.Email)
	}
	if original.BusinessType != BusinessTypeRetail {
		t.Errorf("original business type mutated to %q", original.BusinessType)
	}
	if len(original.Brands) != 1 || original.Brands[0] != catalog.BrandRaz {
		t.Errorf("original brands mutated: %v", original.Brands)
	}

	if *updated.Email != "new@shop.com" {
		t.Errorf("updated email = %q", *updated.Email)
	}
	if updated.Phone != nil {
		t.Error("nil phone argument should leave phone unset")
	}
	if *updated.BusinessName != "Ana's Smoke Shop" {
		t.Errorf("updated business name = %q", *updated.BusinessName)
	}
	if len(updated.Brands) != 2 {
		t.Errorf("updated brands = %v", updated.Brands)
	}
}

func TestWithVisit(t *testing.T) {
	now := time.Now()
	lead := Lead{VisitCount: 1}
	updated := lead.WithVisit(now)

	if updated.VisitCount != 2 {
		t.Errorf("VisitCount = %d, want 2", updated.VisitCount)
	}
	if updated.LastVisit == nil || !updated.LastVisit.Equal(now) {
		t.Errorf("LastVisit = %v, want %v", updated.LastVisit, now)
	}
	if lead.VisitCount != 1 || lead.LastVisit != nil {
		t.Error("WithVisit mutated the original lead")
	}
}
