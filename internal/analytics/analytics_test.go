package analytics

import (
	"math"
	"strings"
	"testing"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func sectionPtr(s catalog.BoothSection) *catalog.BoothSection  { return &s }
func methodPtr(m catalog.ContactMethod) *catalog.ContactMethod { return &m }

func leadAt(hour int) domain.Lead {
	return domain.Lead{
		FirstName:  "Visitor",
		CapturedAt: time.Date(2026, 8, 27, hour, 15, 0, 0, time.Local),
	}
}

func hotLead(hour int) domain.Lead {
	l := leadAt(hour)
	l.Email = strPtr("a@b.com")
	l.Phone = strPtr("+12145550100")
	l.BusinessName = strPtr("Shop")
	l.BusinessType = domain.BusinessTypeWholesale
	l.Address = strPtr("1 Main")
	l.City = strPtr("Austin")
	l.State = strPtr("TX")
	l.Brands = []catalog.Brand{catalog.BrandBeri, catalog.BrandRaz, catalog.BrandRYL, catalog.BrandOneTank, catalog.BrandLostMary}
	l.Categories = []catalog.Category{catalog.CategoryVapes, catalog.CategoryDevices, catalog.CategoryHemp, catalog.CategoryVapeJuice, catalog.CategorySmokeShop}
	l.DwellSeconds = intPtr(600)
	l.Notes = strPtr(strings.Repeat("n", 400))
	return l
}

func TestComputeBoothMetricsEmpty(t *testing.T) {
	m := ComputeBoothMetrics(nil)

	if m.TotalVisitors != 0 || m.HotLeads != 0 {
		t.Errorf("expected zero counts, got %+v", m)
	}
	if m.BounceRate != 0 || m.ConversionRate != 0 {
		t.Errorf("empty collection must yield 0 rates, got bounce=%v conversion=%v", m.BounceRate, m.ConversionRate)
	}
	if m.PeakHour != "N/A" {
		t.Errorf("PeakHour = %q, want N/A", m.PeakHour)
	}
}

func TestComputeBoothMetricsCounts(t *testing.T) {
	leads := []domain.Lead{hotLead(10), leadAt(10), leadAt(11)}
	m := ComputeBoothMetrics(leads)

	if m.HotLeads != 1 || m.ColdLeads != 2 {
		t.Errorf("tier counts hot=%d cold=%d, want 1/2", m.HotLeads, m.ColdLeads)
	}
	if m.QualifiedLeads != 1 {
		t.Errorf("QualifiedLeads = %d, want 1", m.QualifiedLeads)
	}
	// Only the hot lead tracked dwell (600s).
	if m.AverageDwellTime != 600 {
		t.Errorf("AverageDwellTime = %v, want 600", m.AverageDwellTime)
	}
	// bounce = max(5, 25 - (1/3)*40) = max(5, 11.67) = 11.67
	if math.Abs(m.BounceRate-(25-40.0/3)) > 1e-9 {
		t.Errorf("BounceRate = %v", m.BounceRate)
	}
	// conversion = 1/3 * 100
	if math.Abs(m.ConversionRate-100.0/3) > 1e-9 {
		t.Errorf("ConversionRate = %v", m.ConversionRate)
	}
}

func TestPeakHourFirstMaximumWins(t *testing.T) {
	// 10 AM and 2 PM both have two leads; the earlier hour must win.
	leads := []domain.Lead{leadAt(14), leadAt(10), leadAt(14), leadAt(10), leadAt(16)}
	if got := PeakHour(leads); got != "10:00 AM" {
		t.Errorf("PeakHour = %q, want 10:00 AM", got)
	}
}

func TestPeakHourFormatting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12:00 AM"},
		{9, "9:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{23, "11:00 PM"},
	}
	for _, tt := range tests {
		if got := PeakHour([]domain.Lead{leadAt(tt.hour)}); got != tt.want {
			t.Errorf("PeakHour(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestHourlyBreakdownWindow(t *testing.T) {
	leads := []domain.Lead{leadAt(9), leadAt(9), leadAt(13), leadAt(7), leadAt(20)}
	rows := HourlyBreakdown(leads)

	if len(rows) != 9 {
		t.Fatalf("got %d hourly rows, want 9 (9 AM - 5 PM)", len(rows))
	}
	if rows[0].Hour != "9 AM" || rows[0].Leads != 2 {
		t.Errorf("rows[0] = %+v, want 2 leads at 9 AM", rows[0])
	}
	if rows[4].Hour != "1 PM" || rows[4].Leads != 1 {
		t.Errorf("rows[4] = %+v, want 1 lead at 1 PM", rows[4])
	}
	// 7 AM and 8 PM leads fall outside the display window entirely.
	total := 0
	for _, r := range rows {
		total += r.Leads
	}
	if total != 3 {
		t.Errorf("window total = %d, want 3", total)
	}
}

func TestHourlyBreakdownAvgDwell(t *testing.T) {
	a := leadAt(10)
	a.DwellSeconds = intPtr(120)
	b := leadAt(10)
	b.DwellSeconds = intPtr(180)
	c := leadAt(10) // untracked, excluded from the average

	rows := HourlyBreakdown([]domain.Lead{a, b, c})
	if rows[1].AvgDwell != 150 {
		t.Errorf("10 AM AvgDwell = %d, want 150", rows[1].AvgDwell)
	}
}

func TestComputeDemographics(t *testing.T) {
	wholesale := leadAt(10)
	wholesale.BusinessType = domain.BusinessTypeWholesale
	wholesale.Brands = []catalog.Brand{catalog.BrandRaz}
	wholesale.ContactMethod = methodPtr(catalog.ContactEmail)

	retail := leadAt(11)
	retail.BusinessType = domain.BusinessTypeRetail
	retail.Brands = []catalog.Brand{catalog.BrandRaz, catalog.BrandBeri}

	unset := leadAt(12)

	d := ComputeDemographics([]domain.Lead{wholesale, retail, unset})

	if d.BusinessType[0].Category != "Wholesale" || d.BusinessType[0].Value != 1 {
		t.Errorf("business type row = %+v", d.BusinessType[0])
	}
	if math.Abs(d.BusinessType[0].Percentage-100.0/3) > 1e-9 {
		t.Errorf("wholesale percentage = %v", d.BusinessType[0].Percentage)
	}

	// Raz selected by two leads sorts first.
	if d.Brands[0].Category != "Raz" || d.Brands[0].Value != 2 {
		t.Errorf("top brand = %+v, want Raz/2", d.Brands[0])
	}
	if d.Brands[1].Category != "Beri" || d.Brands[1].Value != 1 {
		t.Errorf("second brand = %+v, want Beri/1", d.Brands[1])
	}

	if len(d.ContactPreference) != 4 {
		t.Fatalf("contact rows = %d, want 4", len(d.ContactPreference))
	}
	if d.ContactPreference[0].Category != "Email" || d.ContactPreference[0].Value != 1 {
		t.Errorf("email row = %+v", d.ContactPreference[0])
	}
}

func TestComputeDemographicsEmpty(t *testing.T) {
	d := ComputeDemographics(nil)
	for _, e := range d.BusinessType {
		if e.Percentage != 0 {
			t.Errorf("empty input: %s percentage = %v, want 0", e.Category, e.Percentage)
		}
	}
	if len(d.Categories) != 6 || len(d.Brands) != 6 {
		t.Errorf("catalog rows missing: %d categories, %d brands", len(d.Categories), len(d.Brands))
	}
}

func TestHeatmapIntensityNormalization(t *testing.T) {
	// Counts [0, 5, 10] must normalize to intensities [0, 50, 100].
	var leads []domain.Lead
	for i := 0; i < 5; i++ {
		l := leadAt(10)
		l.BoothSection = sectionPtr(catalog.SectionRazDisplay)
		leads = append(leads, l)
	}
	for i := 0; i < 10; i++ {
		l := leadAt(11)
		l.BoothSection = sectionPtr(catalog.SectionBeriDisplay)
		leads = append(leads, l)
	}

	zones := HeatmapZones(leads)
	byID := make(map[string]HeatmapZone)
	for _, z := range zones {
		byID[z.ID] = z
	}

	if z := byID["beri-display"]; z.Intensity != 100 || z.Visitors != 10 {
		t.Errorf("beri zone = %+v, want intensity 100", z)
	}
	if z := byID["raz-display"]; z.Intensity != 50 || z.Visitors != 5 {
		t.Errorf("raz zone = %+v, want intensity 50", z)
	}
	if z := byID["ryl-display"]; z.Intensity != 0 || z.Visitors != 0 {
		t.Errorf("ryl zone = %+v, want intensity 0", z)
	}
}

func TestHeatmapAllZeroAvoidsDivideByZero(t *testing.T) {
	zones := HeatmapZones(nil)
	if len(zones) != 6 {
		t.Fatalf("got %d zones, want 6", len(zones))
	}
	for _, z := range zones {
		if z.Intensity != 0 {
			t.Errorf("zone %s intensity = %d, want 0", z.ID, z.Intensity)
		}
	}
}

func TestHeatmapZoneGeometry(t *testing.T) {
	zones := HeatmapZones(nil)
	for _, z := range zones {
		if z.Width == 0 || z.Height == 0 {
			t.Errorf("zone %s has empty geometry", z.ID)
		}
	}
}

func TestComputeTrendsNoPrevious(t *testing.T) {
	tr := ComputeTrends(BoothMetrics{TotalVisitors: 40, ConversionRate: 55}, nil)
	if tr.Visitors.Trend != TrendNeutral || tr.Visitors.Value != 40 {
		t.Errorf("visitors trend = %+v", tr.Visitors)
	}
	if tr.Conversion.Trend != TrendNeutral {
		t.Errorf("conversion trend = %+v", tr.Conversion)
	}
}

func TestComputeTrendsDeadbandAndDirection(t *testing.T) {
	prev := BoothMetrics{TotalVisitors: 100, AverageDwellTime: 100, BounceRate: 10, ConversionRate: 50}
	curr := BoothMetrics{TotalVisitors: 110, AverageDwellTime: 101, BounceRate: 8, ConversionRate: 40}

	tr := ComputeTrends(curr, &prev)

	if tr.Visitors.Trend != TrendUp {
		t.Errorf("visitors +10%% should trend up, got %q", tr.Visitors.Trend)
	}
	// +1% sits inside the deadband.
	if tr.DwellTime.Trend != TrendNeutral {
		t.Errorf("dwell +1%% should be neutral, got %q", tr.DwellTime.Trend)
	}
	// Bounce rate dropped 10 -> 8: lower is better, so the trend is up.
	if tr.BounceRate.Trend != TrendUp {
		t.Errorf("bounce improvement should trend up, got %q", tr.BounceRate.Trend)
	}
	if tr.Conversion.Trend != TrendDown {
		t.Errorf("conversion -20%% should trend down, got %q", tr.Conversion.Trend)
	}
}
