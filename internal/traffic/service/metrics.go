// Pure metric computation over counter entries. Kept free of I/O so the
// exact roll-up semantics are testable without a database.
package service

import (
	"math"
	"time"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/traffic/repository"
)

// HourlyCount is one hour of the 8 AM - 6 PM counting window.
type HourlyCount struct {
	Hour    string `json:"hour"`
	HourNum int    `json:"hourNum"`
	Count   int    `json:"count"`
}

// Metrics is the foot traffic dashboard roll-up.
type Metrics struct {
	TotalCount     int           `json:"totalCount"`
	TodayCount     int           `json:"todayCount"`
	PeakHour       string        `json:"peakHour"`
	AveragePerHour int           `json:"averagePerHour"`
	ConversionRate float64       `json:"conversionRate"`
	HourlyData     []HourlyCount `json:"hourlyData"`
}

// SectionCount is one booth section's share of attributed traffic.
type SectionCount struct {
	Section    string `json:"section"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// countingHours is the fixed 8 AM - 6 PM show-floor window.
var countingHours = []struct {
	label string
	num   int
}{
	{"8 AM", 8}, {"9 AM", 9}, {"10 AM", 10}, {"11 AM", 11}, {"12 PM", 12},
	{"1 PM", 13}, {"2 PM", 14}, {"3 PM", 15}, {"4 PM", 16}, {"5 PM", 17}, {"6 PM", 18},
}

// ComputeMetrics rolls up the counter entries. Today is evaluated against
// now's calendar date, matching how the counter is used on the show floor.
// The average covers active hours only (hours with a zero count do not
// dilute it), and the conversion rate is 0 when no traffic was counted.
func ComputeMetrics(entries []repository.Entry, todayLeads int, now time.Time) Metrics {
	total := 0
	var todayEntries []repository.Entry
	for _, e := range entries {
		total += e.Count
		if sameDay(e.RecordedAt, now) {
			todayEntries = append(todayEntries, e)
		}
	}

	todayCount := 0
	for _, e := range todayEntries {
		todayCount += e.Count
	}

	hourly := HourlyRollup(todayEntries)

	// First maximum wins: a later hour must be strictly busier to take over.
	peakHour := "N/A"
	peakCount := 0
	for _, h := range hourly {
		if h.Count > peakCount {
			peakCount = h.Count
			peakHour = h.Hour
		}
	}

	activeSum, activeHours := 0, 0
	for _, h := range hourly {
		if h.Count > 0 {
			activeSum += h.Count
			activeHours++
		}
	}
	averagePerHour := 0
	if activeHours > 0 {
		averagePerHour = int(math.Round(float64(activeSum) / float64(activeHours)))
	}

	conversionRate := 0.0
	if todayCount > 0 {
		conversionRate = float64(todayLeads) / float64(todayCount) * 100
	}

	return Metrics{
		TotalCount:     total,
		TodayCount:     todayCount,
		PeakHour:       peakHour,
		AveragePerHour: averagePerHour,
		ConversionRate: conversionRate,
		HourlyData:     hourly,
	}
}

// HourlyRollup sums entry counts per counting-window hour. Entries outside
// the window are not reported.
func HourlyRollup(entries []repository.Entry) []HourlyCount {
	sums := make(map[int]int)
	for _, e := range entries {
		sums[e.RecordedAt.Hour()] += e.Count
	}

	out := make([]HourlyCount, 0, len(countingHours))
	for _, h := range countingHours {
		out = append(out, HourlyCount{Hour: h.label, HourNum: h.num, Count: sums[h.num]})
	}
	return out
}

// BySection distributes attributed traffic across booth sections.
// Percentages are over entries that named a section; sections that counted
// nothing are omitted.
func BySection(entries []repository.Entry) []SectionCount {
	counts := make(map[catalog.BoothSection]int)
	totalWithSection := 0
	for _, e := range entries {
		if e.BoothSection == nil {
			continue
		}
		counts[*e.BoothSection] += e.Count
		totalWithSection += e.Count
	}

	out := make([]SectionCount, 0, len(counts))
	for _, section := range catalog.Sections() {
		count := counts[section.ID]
		if count == 0 {
			continue
		}
		out = append(out, SectionCount{
			Section:    section.Name,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(totalWithSection) * 100)),
		})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
