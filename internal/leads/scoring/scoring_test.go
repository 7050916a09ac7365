package scoring

import (
	"strings"
	"testing"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// fullLead mirrors the worked example: wholesale, all four contact fields,
// 3 brands, 2 categories, 185s dwell, 45-char notes. Expected 66/B/warm.
func fullLead() domain.Lead {
	return domain.Lead{
		FirstName:    "Jordan",
		Email:        strPtr("jordan@distro.com"),
		Phone:        strPtr("+12145550123"),
		BusinessName: strPtr("Jordan Distribution"),
		BusinessType: domain.BusinessTypeWholesale,
		Address:      strPtr("500 Commerce St"),
		City:         strPtr("Dallas"),
		State:        strPtr("TX"),
		Brands:       []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz, catalog.BrandRYL},
		Categories:   []catalog.Category{catalog.CategoryVapes, catalog.CategoryDevices},
		DwellSeconds: intPtr(185),
		Notes:        strPtr(strings.Repeat("x", 45)),
	}
}

func TestScoreWorkedExample(t *testing.T) {
	got := Score(fullLead())

	// 15 + 20 + 12 + 8 + 9 + 2 = 66
	if got.Total != 66 {
		t.Errorf("Total = %d, want 66", got.Total)
	}
	if got.Grade != GradeB {
		t.Errorf("Grade = %q, want B", got.Grade)
	}
	if got.Tier != TierWarm {
		t.Errorf("Tier = %q, want warm", got.Tier)
	}

	wantPoints := map[string]int{
		"Business Type":        15,
		"Contact Completeness": 20,
		"Brand Interest":       12,
		"Category Interest":    8,
		"Booth Engagement":     9,
		"Expressed Intent":     2,
	}
	for _, f := range got.Factors {
		if want, ok := wantPoints[f.Name]; !ok {
			t.Errorf("unexpected factor %q", f.Name)
		} else if f.Points != want {
			t.Errorf("factor %q = %d points, want %d", f.Name, f.Points, want)
		}
	}
	if len(got.Factors) != len(wantPoints) {
		t.Errorf("got %d factors, want %d", len(got.Factors), len(wantPoints))
	}
}

func TestScoreEmptyLead(t *testing.T) {
	got := Score(domain.Lead{FirstName: "Anon"})

	// Only the untracked-dwell default contributes.
	if got.Total != 5 {
		t.Errorf("Total = %d, want 5", got.Total)
	}
	if got.Grade != GradeD {
		t.Errorf("Grade = %q, want D", got.Grade)
	}
	if got.Tier != TierCold {
		t.Errorf("Tier = %q, want cold", got.Tier)
	}
}

func TestScoreTotalEqualsFactorSum(t *testing.T) {
	leads := []domain.Lead{
		{},
		fullLead(),
		{BusinessType: domain.BusinessTypeRetail, Notes: strPtr(strings.Repeat("y", 300))},
		{Brands: []catalog.Brand{"a", "b", "c", "d", "e", "f", "g"}, DwellSeconds: intPtr(3600)},
		{DwellSeconds: intPtr(-90)},
	}

	for i, lead := range leads {
		got := Score(lead)
		sum := 0
		for _, f := range got.Factors {
			if f.Points < 0 || f.Points > f.MaxPoints {
				t.Errorf("lead %d: factor %q points %d outside [0, %d]", i, f.Name, f.Points, f.MaxPoints)
			}
			sum += f.Points
		}
		if got.Total != sum {
			t.Errorf("lead %d: Total = %d, factor sum = %d", i, got.Total, sum)
		}
		if got.Total < 0 || got.Total > 100 {
			t.Errorf("lead %d: Total = %d outside [0, 100]", i, got.Total)
		}
	}
}

func TestScoreFactorCaps(t *testing.T) {
	// 7 brands and 9 categories would earn 28/36 raw but cap at 20 each.
	lead := domain.Lead{
		Brands:     []catalog.Brand{"1", "2", "3", "4", "5", "6", "7"},
		Categories: []catalog.Category{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		// An hour at the booth caps at 15, not 180.
		DwellSeconds: intPtr(3600),
		// 1000 chars of notes cap at 10, not 50.
		Notes: strPtr(strings.Repeat("n", 1000)),
	}

	got := Score(lead)
	for _, f := range got.Factors {
		switch f.Name {
		case "Brand Interest", "Category Interest":
			if f.Points != 20 {
				t.Errorf("%s = %d, want capped 20", f.Name, f.Points)
			}
		case "Booth Engagement":
			if f.Points != 15 {
				t.Errorf("Booth Engagement = %d, want capped 15", f.Points)
			}
		case "Expressed Intent":
			if f.Points != 10 {
				t.Errorf("Expressed Intent = %d, want capped 10", f.Points)
			}
		}
	}
}

func TestScoreNegativeDwellClamps(t *testing.T) {
	got := Score(domain.Lead{DwellSeconds: intPtr(-120)})
	for _, f := range got.Factors {
		if f.Name == "Booth Engagement" && f.Points != 0 {
			t.Errorf("Booth Engagement with negative dwell = %d, want 0", f.Points)
		}
	}
}

func TestScoreTrackedZeroDwell(t *testing.T) {
	// Tracked dwell under one minute earns nothing; only untracked dwell
	// gets the default credit.
	got := Score(domain.Lead{DwellSeconds: intPtr(30)})
	for _, f := range got.Factors {
		if f.Name == "Booth Engagement" && f.Points != 0 {
			t.Errorf("Booth Engagement with 30s tracked dwell = %d, want 0", f.Points)
		}
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		total int
		want  Grade
	}{
		{100, GradeA}, {80, GradeA}, {79, GradeB}, {60, GradeB},
		{59, GradeC}, {40, GradeC}, {39, GradeD}, {0, GradeD},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.total); got != tt.want {
			t.Errorf("GradeFor(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		total int
		want  Tier
	}{
		{100, TierHot}, {70, TierHot}, {69, TierWarm}, {45, TierWarm},
		{44, TierCold}, {0, TierCold},
	}
	for _, tt := range tests {
		if got := TierFor(tt.total); got != tt.want {
			t.Errorf("TierFor(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestBandsAreTotal(t *testing.T) {
	// Every integer score maps to exactly one grade and one tier.
	for total := 0; total <= 100; total++ {
		switch GradeFor(total) {
		case GradeA, GradeB, GradeC, GradeD:
		default:
			t.Errorf("GradeFor(%d) = %q, not a known grade", total, GradeFor(total))
		}
		switch TierFor(total) {
		case TierHot, TierWarm, TierCold:
		default:
			t.Errorf("TierFor(%d) = %q, not a known tier", total, TierFor(total))
		}
	}
}

func TestPriorityActions(t *testing.T) {
	hot := fullLead()
	hot.DwellSeconds = intPtr(600)
	hot.Notes = strPtr(strings.Repeat("z", 200))
	// 15+20+12+8+15+10 = 80 → grade A
	actions := PriorityActions(hot)

	if len(actions) == 0 {
		t.Fatal("expected actions for grade A lead")
	}
	if actions[0] != "High-priority follow-up within 24 hours" {
		t.Errorf("first action = %q", actions[0])
	}
	found := false
	for _, a := range actions {
		if a == "Prepare volume pricing proposal" {
			found = true
		}
	}
	if !found {
		t.Error("expected wholesale proposal action for wholesale grade A lead")
	}

	last := actions[len(actions)-1]
	if !strings.HasPrefix(last, "Highlight ") || !strings.Contains(last, "Beri") {
		t.Errorf("expected brand highlight action, got %q", last)
	}
}

func TestPriorityActionsColdLead(t *testing.T) {
	actions := PriorityActions(domain.Lead{FirstName: "Anon"})
	if len(actions) != 1 || actions[0] != "Add to general mailing list" {
		t.Errorf("actions = %v, want single mailing-list action", actions)
	}
}
