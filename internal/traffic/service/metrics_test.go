package service

import (
	"testing"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/traffic/repository"

	"github.com/google/uuid"
)

var day = time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)

func entryAt(hour, count int) repository.Entry {
	return repository.Entry{
		ID:         uuid.New(),
		RecordedAt: day.Add(time.Duration(hour)*time.Hour + 10*time.Minute),
		Count:      count,
	}
}

func sectionEntry(hour, count int, section catalog.BoothSection) repository.Entry {
	e := entryAt(hour, count)
	e.BoothSection = &section
	return e
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil, 0, day)

	if m.TotalCount != 0 || m.TodayCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", m.TotalCount, m.TodayCount)
	}
	if m.PeakHour != "N/A" {
		t.Errorf("PeakHour = %q, want N/A", m.PeakHour)
	}
	if m.AveragePerHour != 0 {
		t.Errorf("AveragePerHour = %d, want 0", m.AveragePerHour)
	}
	if m.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0 when no traffic", m.ConversionRate)
	}
	if len(m.HourlyData) != 11 {
		t.Errorf("hourly rows = %d, want 11 (8 AM - 6 PM)", len(m.HourlyData))
	}
}

func TestComputeMetricsTotalsAndToday(t *testing.T) {
	yesterday := entryAt(10, 7)
	yesterday.RecordedAt = yesterday.RecordedAt.AddDate(0, 0, -1)

	entries := []repository.Entry{yesterday, entryAt(9, 3), entryAt(14, 5)}
	m := ComputeMetrics(entries, 0, day)

	if m.TotalCount != 15 {
		t.Errorf("TotalCount = %d, want 15", m.TotalCount)
	}
	if m.TodayCount != 8 {
		t.Errorf("TodayCount = %d, want 8 (yesterday excluded)", m.TodayCount)
	}
}

func TestComputeMetricsPeakHourFirstMaximum(t *testing.T) {
	// 9 AM and 3 PM both sum to 6; the earlier hour must be the peak.
	entries := []repository.Entry{
		entryAt(15, 6),
		entryAt(9, 4),
		entryAt(9, 2),
		entryAt(11, 1),
	}
	m := ComputeMetrics(entries, 0, day)
	if m.PeakHour != "9 AM" {
		t.Errorf("PeakHour = %q, want 9 AM", m.PeakHour)
	}
}

func TestComputeMetricsAverageSkipsZeroHours(t *testing.T) {
	// Three active hours (6, 2, 4); the eight idle window hours must not
	// drag the average down. round(12/3) = 4.
	entries := []repository.Entry{entryAt(8, 6), entryAt(12, 2), entryAt(17, 4)}
	m := ComputeMetrics(entries, 0, day)
	if m.AveragePerHour != 4 {
		t.Errorf("AveragePerHour = %d, want 4", m.AveragePerHour)
	}
}

func TestComputeMetricsConversionRate(t *testing.T) {
	entries := []repository.Entry{entryAt(10, 20)}
	m := ComputeMetrics(entries, 5, day)
	if m.ConversionRate != 25 {
		t.Errorf("ConversionRate = %v, want 25", m.ConversionRate)
	}

	// Leads but no counted traffic: defined as 0, not a division error.
	m = ComputeMetrics(nil, 5, day)
	if m.ConversionRate != 0 {
		t.Errorf("ConversionRate with zero traffic = %v, want 0", m.ConversionRate)
	}
}

func TestHourlyRollupWindow(t *testing.T) {
	entries := []repository.Entry{
		entryAt(8, 2),
		entryAt(18, 3),
		entryAt(7, 9),  // before the window
		entryAt(20, 9), // after the window
	}
	rows := HourlyRollup(entries)

	if rows[0].Hour != "8 AM" || rows[0].Count != 2 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[len(rows)-1].Hour != "6 PM" || rows[len(rows)-1].Count != 3 {
		t.Errorf("last row = %+v", rows[len(rows)-1])
	}

	total := 0
	for _, r := range rows {
		total += r.Count
	}
	if total != 5 {
		t.Errorf("window total = %d, want 5 (out-of-window entries dropped)", total)
	}
}

func TestBySection(t *testing.T) {
	entries := []repository.Entry{
		sectionEntry(10, 6, catalog.SectionRazDisplay),
		sectionEntry(11, 2, catalog.SectionBeriDisplay),
		entryAt(12, 100), // unattributed, excluded from the distribution
	}

	rows := BySection(entries)
	if len(rows) != 2 {
		t.Fatalf("got %d section rows, want 2 (zero-count sections omitted)", len(rows))
	}

	byName := make(map[string]SectionCount)
	for _, r := range rows {
		byName[r.Section] = r
	}
	if r := byName["Raz Display"]; r.Count != 6 || r.Percentage != 75 {
		t.Errorf("Raz row = %+v, want 6/75%%", r)
	}
	if r := byName["Beri Display"]; r.Count != 2 || r.Percentage != 25 {
		t.Errorf("Beri row = %+v, want 2/25%%", r)
	}
}

func TestBySectionEmpty(t *testing.T) {
	if rows := BySection(nil); len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
