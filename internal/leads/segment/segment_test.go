package segment

import (
	"strings"
	"testing"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// leadScoring fixtures at known score levels.

func hotLead() domain.Lead {
	// 15+20+20+20+15+10 = 100
	return domain.Lead{
		ID:           uuid.New(),
		FirstName:    "Hot",
		Email:        strPtr("hot@example.com"),
		Phone:        strPtr("+12145550100"),
		BusinessName: strPtr("Hot Wholesale"),
		BusinessType: domain.BusinessTypeWholesale,
		Address:      strPtr("1 Main"),
		City:         strPtr("Austin"),
		State:        strPtr("TX"),
		Brands:       []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz, catalog.BrandRYL, catalog.BrandOneTank, catalog.BrandLostMary},
		Categories:   []catalog.Category{catalog.CategoryVapes, catalog.CategoryDevices, catalog.CategoryHemp, catalog.CategoryVapeJuice, catalog.CategorySmokeShop},
		DwellSeconds: intPtr(600),
		Notes:        strPtr(strings.Repeat("n", 400)),
	}
}

func warmLead() domain.Lead {
	// 10+10+8+8+5+10 = 51
	return domain.Lead{
		ID:           uuid.New(),
		FirstName:    "Warm",
		Email:        strPtr("warm@example.com"),
		Phone:        strPtr("+12145550101"),
		BusinessType: domain.BusinessTypeRetail,
		Brands:       []catalog.Brand{catalog.BrandRaz, catalog.BrandRYL},
		Categories:   []catalog.Category{catalog.CategoryVapes, catalog.CategoryDevices},
		Notes:        strPtr(strings.Repeat("n", 400)),
	}
}

func coldLead() domain.Lead {
	// untracked dwell default only = 5
	return domain.Lead{ID: uuid.New(), FirstName: "Cold"}
}

func TestSegmentPartitionsByTierAndGrade(t *testing.T) {
	leads := []domain.Lead{hotLead(), warmLead(), coldLead(), warmLead()}
	res := Segment(leads)

	if got := len(res.Hot) + len(res.Warm) + len(res.Cold); got != len(leads) {
		t.Errorf("tier buckets hold %d leads, want %d", got, len(leads))
	}
	if len(res.Hot) != 1 || len(res.Warm) != 2 || len(res.Cold) != 1 {
		t.Errorf("tier counts = %d/%d/%d, want 1/2/1", len(res.Hot), len(res.Warm), len(res.Cold))
	}

	gradeTotal := 0
	for _, g := range []scoring.Grade{scoring.GradeA, scoring.GradeB, scoring.GradeC, scoring.GradeD} {
		gradeTotal += len(res.ByGrade[g])
	}
	if gradeTotal != len(leads) {
		t.Errorf("grade buckets hold %d leads, want %d", gradeTotal, len(leads))
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	res := Segment(nil)

	if len(res.Hot) != 0 || len(res.Warm) != 0 || len(res.Cold) != 0 {
		t.Error("expected empty tier buckets")
	}
	// Catalog buckets stay present (and empty) even with no input.
	for _, id := range catalog.BrandIDs() {
		bucket, ok := res.ByBrand[id]
		if !ok {
			t.Errorf("ByBrand[%q] missing", id)
		}
		if len(bucket) != 0 {
			t.Errorf("ByBrand[%q] has %d leads, want 0", id, len(bucket))
		}
	}
	for _, id := range catalog.CategoryIDs() {
		if _, ok := res.ByCategory[id]; !ok {
			t.Errorf("ByCategory[%q] missing", id)
		}
	}
	for _, g := range []scoring.Grade{scoring.GradeA, scoring.GradeB, scoring.GradeC, scoring.GradeD} {
		if _, ok := res.ByGrade[g]; !ok {
			t.Errorf("ByGrade[%q] missing", g)
		}
	}
}

func TestSegmentInterestBuckets(t *testing.T) {
	lead := coldLead()
	lead.Brands = []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz}
	// no categories selected

	res := Segment([]domain.Lead{lead})

	if len(res.ByBrand[catalog.BrandBeri]) != 1 || len(res.ByBrand[catalog.BrandRaz]) != 1 {
		t.Error("lead should appear in both selected brand buckets")
	}
	if len(res.ByBrand[catalog.BrandRYL]) != 0 {
		t.Error("lead should not appear in unselected brand buckets")
	}
	for id, bucket := range res.ByCategory {
		if len(bucket) != 0 {
			t.Errorf("ByCategory[%q] has %d leads, want 0", id, len(bucket))
		}
	}
}

func TestSegmentUnknownInterestIDsDropped(t *testing.T) {
	lead := coldLead()
	lead.Brands = []catalog.Brand{"discontinued-brand"}
	lead.Categories = []catalog.Category{"mystery"}

	res := Segment([]domain.Lead{lead})

	if _, ok := res.ByBrand["discontinued-brand"]; ok {
		t.Error("unknown brand id should not create a bucket")
	}
	if _, ok := res.ByCategory["mystery"]; ok {
		t.Error("unknown category id should not create a bucket")
	}
	// The lead still lands in tier and grade buckets.
	if len(res.Cold)+len(res.Warm)+len(res.Hot) != 1 {
		t.Error("lead with unknown interests must still be tier-bucketed")
	}
}

func TestSegmentUnsetBusinessType(t *testing.T) {
	res := Segment([]domain.Lead{coldLead()})

	if len(res.ByBusinessType[domain.BusinessTypeWholesale]) != 0 ||
		len(res.ByBusinessType[domain.BusinessTypeRetail]) != 0 {
		t.Error("unset business type should land in no business-type bucket")
	}
}

func TestSegmentPreservesInputOrder(t *testing.T) {
	first := warmLead()
	second := warmLead()
	third := warmLead()
	res := Segment([]domain.Lead{first, second, third})

	if len(res.Warm) != 3 {
		t.Fatalf("warm bucket has %d leads, want 3", len(res.Warm))
	}
	want := []domain.Lead{first, second, third}
	for i, lead := range res.Warm {
		if lead.ID != want[i].ID {
			t.Errorf("warm[%d] = %s, want %s (insertion order)", i, lead.ID, want[i].ID)
		}
	}

	brandBucket := res.ByBrand[catalog.BrandRaz]
	for i, lead := range brandBucket {
		if lead.ID != want[i].ID {
			t.Errorf("ByBrand[raz][%d] out of insertion order", i)
		}
	}
}
