package insights

import (
	"context"
	"strings"
	"testing"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/scoring"
	"boothlead_backend/platform/logger"
)

func strPtr(s string) *string { return &s }

func wholesaleLead() domain.Lead {
	return domain.Lead{
		FirstName:    "Jordan",
		BusinessName: strPtr("Jordan Distribution"),
		BusinessType: domain.BusinessTypeWholesale,
		City:         strPtr("Dallas"),
		State:        strPtr("TX"),
		Brands:       []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz},
		Categories:   []catalog.Category{catalog.CategoryVapes, catalog.CategoryHemp},
		Notes:        strPtr("Needs pricing for 50 stores across Texas"),
	}
}

func TestLocalInsightsWholesale(t *testing.T) {
	lead := wholesaleLead()
	text := LocalInsights(lead, scoring.Score(lead))

	for _, want := range []string{
		"a wholesale buyer likely looking for bulk pricing",
		"from Jordan Distribution",
		"in Dallas, TX",
		"Focused interest in Beri and Raz",
		"core vaping products",
		"hemp/CBD offerings",
		"volume pricing, payment terms, and delivery schedules",
		"Special Note:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("insight missing %q:\n%s", want, text)
		}
	}

	if again := LocalInsights(lead, scoring.Score(lead)); again != text {
		t.Error("local insights not deterministic")
	}
}

func TestLocalInsightsMinimalLead(t *testing.T) {
	var lead domain.Lead
	text := LocalInsights(lead, scoring.Score(lead))

	if !strings.Contains(text, "a retail customer focused on variety") {
		t.Errorf("empty lead should fall back to the retail profile:\n%s", text)
	}
	if !strings.Contains(text, "Send product recommendations with retail pricing") {
		t.Errorf("empty lead should get the retail follow-up:\n%s", text)
	}
	if strings.Contains(text, "Brand Preference") || strings.Contains(text, "Product Focus") {
		t.Errorf("empty lead should have no interest paragraphs:\n%s", text)
	}
	if strings.Contains(text, "Special Note") {
		t.Errorf("empty lead should have no notes paragraph:\n%s", text)
	}
}

func TestLocalInsightsBroadBrandInterest(t *testing.T) {
	lead := domain.Lead{
		Brands: []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz, catalog.BrandLostMary, catalog.BrandRYL},
	}
	text := LocalInsights(lead, scoring.Score(lead))

	if !strings.Contains(text, "strong interest across multiple brands") {
		t.Errorf("four brands should trigger the high-volume line:\n%s", text)
	}
}

func TestLocalInsightsComprehensiveCatalog(t *testing.T) {
	lead := domain.Lead{
		Categories: []catalog.Category{
			catalog.CategoryVapes, catalog.CategoryVapeJuice,
			catalog.CategorySmokeShop, catalog.CategoryConvenience,
		},
	}
	text := LocalInsights(lead, scoring.Score(lead))

	if !strings.Contains(text, "Consider presenting a comprehensive catalog.") {
		t.Errorf("four categories should suggest the full catalog:\n%s", text)
	}
}

func TestGenerateWithoutClientUsesLocal(t *testing.T) {
	g := &Generator{timeout: time.Second, log: logger.New("development")}

	lead := wholesaleLead()
	text, source := g.Generate(context.Background(), lead, scoring.Score(lead))

	if source != SourceLocal {
		t.Fatalf("source = %q, want %q", source, SourceLocal)
	}
	if text != LocalInsights(lead, scoring.Score(lead)) {
		t.Error("generator without a client should return the local template verbatim")
	}
}

func TestBuildPromptIncludesLeadContext(t *testing.T) {
	lead := wholesaleLead()
	prompt := buildPrompt(lead, scoring.Score(lead))

	for _, want := range []string{
		"Business Type: wholesale",
		"Business Name: Jordan Distribution",
		"Location: Dallas, TX",
		"Interested Brands: Beri, Raz",
		"Interested Categories: Vapes, Hemp Products",
		"Customer Notes: Needs pricing for 50 stores across Texas",
		"1. A brief customer profile summary",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptEmptyLead(t *testing.T) {
	var lead domain.Lead
	prompt := buildPrompt(lead, scoring.Score(lead))

	for _, want := range []string{
		"Business Type: Not provided",
		"Business Name: Not provided",
		"Location: Not provided",
		"Interested Brands: None",
		"Customer Notes: None",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
