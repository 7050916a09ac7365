package exports

import (
	"testing"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestBuildWorkbookLeadRows(t *testing.T) {
	contact := catalog.ContactEmail
	lead := domain.Lead{
		CapturedAt:    time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		FirstName:     "Jordan",
		LastName:      strPtr("Reyes"),
		BusinessName:  strPtr("Reyes Wholesale"),
		BusinessType:  domain.BusinessTypeWholesale,
		Email:         strPtr("jordan@reyes.example"),
		Phone:         strPtr("+15551234567"),
		Address:       strPtr("900 Main St"),
		City:          strPtr("Dallas"),
		State:         strPtr("TX"),
		Brands:        []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz, catalog.BrandLostMary},
		Categories:    []catalog.Category{catalog.CategoryVapes, catalog.CategoryDevices},
		ContactMethod: &contact,
		DwellSeconds:  intPtr(185),
		Notes:         strPtr("Wants a standing weekly order for two stores."),
	}

	file, err := BuildWorkbook([]domain.Lead{lead})
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	sheet, ok := file.Sheet["Leads"]
	if !ok {
		t.Fatal("missing Leads sheet")
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want header plus one lead", len(sheet.Rows))
	}

	header := sheet.Rows[0]
	if got := header.Cells[0].Value; got != "Captured At" {
		t.Errorf("header[0] = %q", got)
	}
	if got := header.Cells[len(leadHeaders)-1].Value; got != "Engagement Level" {
		t.Errorf("last header = %q", got)
	}

	row := sheet.Rows[1]
	cell := func(header string) string {
		for i, h := range leadHeaders {
			if h == header {
				return row.Cells[i].Value
			}
		}
		t.Fatalf("unknown header %q", header)
		return ""
	}

	if got := cell("Brands"); got != "Beri, Raz, Lost Mary" {
		t.Errorf("Brands = %q", got)
	}
	if got := cell("Preferred Contact"); got != "Email" {
		t.Errorf("Preferred Contact = %q", got)
	}
	if got := cell("Lead Score"); got != "66" {
		t.Errorf("Lead Score = %q, want 66", got)
	}
	if got := cell("Lead Grade"); got != "B" {
		t.Errorf("Lead Grade = %q", got)
	}
	if got := cell("Engagement Level"); got != "warm" {
		t.Errorf("Engagement Level = %q", got)
	}
	if got := cell("Placed Order"); got != "No" {
		t.Errorf("Placed Order = %q", got)
	}
}

func TestBuildWorkbookSummarySheet(t *testing.T) {
	leads := []domain.Lead{
		{BusinessType: domain.BusinessTypeWholesale, Brands: []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz, catalog.BrandLostMary}},
		{},
	}

	file, err := BuildWorkbook(leads)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	sheet, ok := file.Sheet["Summary"]
	if !ok {
		t.Fatal("missing Summary sheet")
	}

	counts := make(map[string]string)
	for _, row := range sheet.Rows {
		if len(row.Cells) >= 2 {
			counts[row.Cells[0].Value] = row.Cells[1].Value
		}
	}

	if got := counts["Total Leads"]; got != "2" {
		t.Errorf("Total Leads = %q", got)
	}
	if got := counts["Cold"]; got != "2" {
		t.Errorf("Cold = %q, want both leads cold", got)
	}
	if got := counts["Wholesale"]; got != "1" {
		t.Errorf("Wholesale = %q", got)
	}
	if got := counts["Grade D"]; got != "2" {
		t.Errorf("Grade D = %q", got)
	}
}

func TestBuildWorkbookEmpty(t *testing.T) {
	file, err := BuildWorkbook(nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	if got := len(file.Sheet["Leads"].Rows); got != 1 {
		t.Errorf("empty export should have only the header row, got %d rows", got)
	}
}
