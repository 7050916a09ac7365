package insights

import (
	"strings"
	"testing"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
)

func TestBulkSummaryEmpty(t *testing.T) {
	if got := BulkSummary(nil); got != "No leads to analyze." {
		t.Fatalf("BulkSummary(nil) = %q", got)
	}
}

func TestBulkSummaryCountsAndRanking(t *testing.T) {
	leads := []domain.Lead{
		{BusinessType: domain.BusinessTypeWholesale, State: strPtr("TX"), Brands: []catalog.Brand{catalog.BrandRaz}},
		{BusinessType: domain.BusinessTypeWholesale, State: strPtr("TX"), Brands: []catalog.Brand{catalog.BrandRaz}},
		{BusinessType: domain.BusinessTypeWholesale, State: strPtr("OK"), Brands: []catalog.Brand{catalog.BrandRaz, catalog.BrandBeri}},
		{BusinessType: domain.BusinessTypeRetail, Categories: []catalog.Category{catalog.CategoryVapes}},
	}

	text := BulkSummary(leads)

	for _, want := range []string{
		"• Total Leads: 4",
		"• Wholesale: 3 (75%)",
		"• Retail: 1 (25%)",
		"1. Raz - 3 leads (75%)",
		"• TX: 2 leads",
		"• OK: 1 leads",
		"• Focus on B2B outreach and volume pricing discussions",
		"• Raz is a clear favorite",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}

	if strings.Contains(text, "Strong demand for") {
		t.Errorf("no category covers a majority, category callout should be absent:\n%s", text)
	}
}

func TestBulkSummaryRetailMajority(t *testing.T) {
	leads := []domain.Lead{
		{BusinessType: domain.BusinessTypeRetail},
		{BusinessType: domain.BusinessTypeRetail, Categories: []catalog.Category{catalog.CategoryVapes, catalog.CategoryDevices}},
		{BusinessType: domain.BusinessTypeWholesale, Categories: []catalog.Category{catalog.CategoryVapes}},
	}

	text := BulkSummary(leads)

	if !strings.Contains(text, "• Emphasize retail promotions and product variety") {
		t.Errorf("retail majority should get retail recommendations:\n%s", text)
	}
	if !strings.Contains(text, "Strong demand for Vapes") {
		t.Errorf("Vapes covers 2 of 3 leads, expected category callout:\n%s", text)
	}
}

func TestBulkSummaryNoLocationData(t *testing.T) {
	text := BulkSummary([]domain.Lead{{BusinessType: domain.BusinessTypeRetail}})

	if !strings.Contains(text, "No location data available") {
		t.Errorf("stateless leads should report no location data:\n%s", text)
	}
}
