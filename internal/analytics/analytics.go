// Package analytics derives dashboard metrics from lead snapshots. Every
// function here is a pure consumer of the scoring and segmentation engines
// plus simple counting; callers pass read-only snapshots and get plain data
// back.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/scoring"
)

// BoothMetrics summarizes one pass over the full lead collection.
type BoothMetrics struct {
	TotalVisitors    int     `json:"totalVisitors"`
	UniqueVisitors   int     `json:"uniqueVisitors"`
	AverageDwellTime float64 `json:"averageDwellTime"`
	BounceRate       float64 `json:"bounceRate"`
	PeakHour         string  `json:"peakHour"`
	ConversionRate   float64 `json:"conversionRate"`
	QualifiedLeads   int     `json:"qualifiedLeads"`
	HotLeads         int     `json:"hotLeads"`
	WarmLeads        int     `json:"warmLeads"`
	ColdLeads        int     `json:"coldLeads"`
}

// ComputeBoothMetrics scores each lead once and aggregates tier counts,
// dwell, bounce, and conversion. An empty collection yields all zeros and
// peak hour "N/A", never an error.
func ComputeBoothMetrics(leads []domain.Lead) BoothMetrics {
	m := BoothMetrics{
		TotalVisitors:  len(leads),
		UniqueVisitors: len(leads),
		PeakHour:       PeakHour(leads),
	}

	totalDwell := 0
	leadsWithDwell := 0
	for _, lead := range leads {
		switch scoring.Score(lead).Tier {
		case scoring.TierHot:
			m.HotLeads++
		case scoring.TierWarm:
			m.WarmLeads++
		default:
			m.ColdLeads++
		}
		if lead.DwellSeconds != nil && *lead.DwellSeconds > 0 {
			totalDwell += *lead.DwellSeconds
			leadsWithDwell++
		}
	}

	m.QualifiedLeads = m.HotLeads + m.WarmLeads
	if leadsWithDwell > 0 {
		m.AverageDwellTime = float64(totalDwell) / float64(leadsWithDwell)
	}
	if len(leads) > 0 {
		hotShare := float64(m.HotLeads) / float64(len(leads))
		m.BounceRate = math.Max(5, 25-hotShare*40)
		m.ConversionRate = float64(m.QualifiedLeads) / math.Max(float64(m.TotalVisitors), 1) * 100
	}

	return m
}

// PeakHour buckets capture timestamps by local hour of day and reports the
// busiest one. Ties resolve to the earliest hour (first maximum wins).
// Returns "N/A" for an empty collection.
func PeakHour(leads []domain.Lead) string {
	if len(leads) == 0 {
		return "N/A"
	}

	var hourCounts [24]int
	for _, lead := range leads {
		hourCounts[lead.CapturedAt.Hour()]++
	}

	maxHour := 12
	maxCount := 0
	for hour := 0; hour < 24; hour++ {
		if hourCounts[hour] > maxCount {
			maxCount = hourCounts[hour]
			maxHour = hour
		}
	}

	return formatHour(maxHour)
}

func formatHour(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour > 12:
		display = hour - 12
	case hour == 0:
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}

// HourlyData is one display-window hour of lead activity.
type HourlyData struct {
	Hour     string `json:"hour"`
	Visitors int    `json:"visitors"`
	Leads    int    `json:"leads"`
	AvgDwell int    `json:"avgDwell"`
}

// displayHours is the dashboard's fixed 9 AM - 5 PM lead activity window.
var displayHours = []struct {
	label string
	num   int
}{
	{"9 AM", 9}, {"10 AM", 10}, {"11 AM", 11}, {"12 PM", 12},
	{"1 PM", 13}, {"2 PM", 14}, {"3 PM", 15}, {"4 PM", 16}, {"5 PM", 17},
}

// HourlyBreakdown rolls leads up per display hour with the average tracked
// dwell for that hour. Hours outside the window are not reported.
func HourlyBreakdown(leads []domain.Lead) []HourlyData {
	byHour := make(map[int][]domain.Lead)
	for _, lead := range leads {
		h := lead.CapturedAt.Hour()
		byHour[h] = append(byHour[h], lead)
	}

	out := make([]HourlyData, 0, len(displayHours))
	for _, h := range displayHours {
		bucket := byHour[h.num]
		dwellSum := 0
		dwellCount := 0
		for _, lead := range bucket {
			if lead.DwellSeconds != nil && *lead.DwellSeconds > 0 {
				dwellSum += *lead.DwellSeconds
				dwellCount++
			}
		}
		avgDwell := 0
		if dwellCount > 0 {
			avgDwell = int(math.Round(float64(dwellSum) / float64(dwellCount)))
		}
		out = append(out, HourlyData{
			Hour:     h.label,
			Visitors: len(bucket),
			Leads:    len(bucket),
			AvgDwell: avgDwell,
		})
	}
	return out
}

// DemographicEntry is one labelled slice of a distribution.
type DemographicEntry struct {
	Category   string  `json:"category"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Demographics holds the four intake distributions the dashboard charts.
type Demographics struct {
	BusinessType      []DemographicEntry `json:"businessType"`
	Categories        []DemographicEntry `json:"categories"`
	Brands            []DemographicEntry `json:"brands"`
	ContactPreference []DemographicEntry `json:"contactPreference"`
}

// ComputeDemographics builds the distribution charts. Percentages use
// max(len(leads), 1) as denominator so an empty collection yields zeros.
// Category and brand lists sort by count descending, catalog order on ties.
func ComputeDemographics(leads []domain.Lead) Demographics {
	total := float64(len(leads))
	if total == 0 {
		total = 1
	}
	pct := func(count int) float64 { return float64(count) / total * 100 }

	wholesale, retail := 0, 0
	for _, lead := range leads {
		switch lead.BusinessType {
		case domain.BusinessTypeWholesale:
			wholesale++
		case domain.BusinessTypeRetail:
			retail++
		}
	}

	d := Demographics{
		BusinessType: []DemographicEntry{
			{Category: "Wholesale", Value: wholesale, Percentage: pct(wholesale)},
			{Category: "Retail", Value: retail, Percentage: pct(retail)},
		},
	}

	for _, cat := range catalog.Categories() {
		count := 0
		for _, lead := range leads {
			for _, c := range lead.Categories {
				if c == cat.ID {
					count++
					break
				}
			}
		}
		d.Categories = append(d.Categories, DemographicEntry{Category: cat.Name, Value: count, Percentage: pct(count)})
	}
	sort.SliceStable(d.Categories, func(i, j int) bool { return d.Categories[i].Value > d.Categories[j].Value })

	for _, brand := range catalog.Brands() {
		count := 0
		for _, lead := range leads {
			for _, b := range lead.Brands {
				if b == brand.ID {
					count++
					break
				}
			}
		}
		d.Brands = append(d.Brands, DemographicEntry{Category: brand.Name, Value: count, Percentage: pct(count)})
	}
	sort.SliceStable(d.Brands, func(i, j int) bool { return d.Brands[i].Value > d.Brands[j].Value })

	contactNames := []struct {
		method catalog.ContactMethod
		label  string
	}{
		{catalog.ContactEmail, "Email"},
		{catalog.ContactPhone, "Phone"},
		{catalog.ContactText, "Text"},
		{catalog.ContactAny, "Any"},
	}
	for _, cn := range contactNames {
		count := 0
		for _, lead := range leads {
			if lead.ContactMethod != nil && *lead.ContactMethod == cn.method {
				count++
			}
		}
		d.ContactPreference = append(d.ContactPreference, DemographicEntry{Category: cn.label, Value: count, Percentage: pct(count)})
	}

	return d
}

// HeatmapZone is one booth section's visitor pressure on the floor plan.
type HeatmapZone struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Intensity int    `json:"intensity"`
	Visitors  int    `json:"visitors"`
	AvgDwell  int    `json:"avgDwell"`
}

// HeatmapZones counts leads per booth section and normalizes intensity
// against the busiest zone (treated as at least 1, so an all-zero floor
// yields zero intensity everywhere instead of dividing by zero).
func HeatmapZones(leads []domain.Lead) []HeatmapZone {
	counts := make(map[catalog.BoothSection]int)
	dwellSums := make(map[catalog.BoothSection]int)
	dwellCounts := make(map[catalog.BoothSection]int)
	for _, lead := range leads {
		if lead.BoothSection == nil {
			continue
		}
		section := *lead.BoothSection
		counts[section]++
		if lead.DwellSeconds != nil && *lead.DwellSeconds > 0 {
			dwellSums[section] += *lead.DwellSeconds
			dwellCounts[section]++
		}
	}

	maxCount := 1
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	zones := make([]HeatmapZone, 0, len(catalog.Sections()))
	for _, section := range catalog.Sections() {
		count := counts[section.ID]
		avgDwell := 0
		if dwellCounts[section.ID] > 0 {
			avgDwell = int(math.Round(float64(dwellSums[section.ID]) / float64(dwellCounts[section.ID])))
		}
		zones = append(zones, HeatmapZone{
			ID:        string(section.ID),
			Name:      section.Name,
			X:         section.X,
			Y:         section.Y,
			Width:     section.Width,
			Height:    section.Height,
			Intensity: int(math.Round(float64(count) / float64(maxCount) * 100)),
			Visitors:  count,
			AvgDwell:  avgDwell,
		})
	}
	return zones
}

// TrendDirection labels a metric's movement between two periods.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// TrendPoint is one metric's current value with its movement.
type TrendPoint struct {
	Value      float64        `json:"value"`
	Trend      TrendDirection `json:"trend"`
	Percentage float64        `json:"percentage"`
}

// Trends compares two metric snapshots per dashboard card. Movement within
// a 2% deadband reads as neutral. Bounce rate compares inverted since lower
// is better. With no previous snapshot everything is neutral.
type Trends struct {
	Visitors   TrendPoint `json:"visitors"`
	DwellTime  TrendPoint `json:"dwellTime"`
	BounceRate TrendPoint `json:"bounceRate"`
	Conversion TrendPoint `json:"conversion"`
}

// ComputeTrends derives the movement of each headline metric.
func ComputeTrends(current BoothMetrics, previous *BoothMetrics) Trends {
	if previous == nil {
		return Trends{
			Visitors:   TrendPoint{Value: float64(current.TotalVisitors), Trend: TrendNeutral},
			DwellTime:  TrendPoint{Value: current.AverageDwellTime, Trend: TrendNeutral},
			BounceRate: TrendPoint{Value: current.BounceRate, Trend: TrendNeutral},
			Conversion: TrendPoint{Value: current.ConversionRate, Trend: TrendNeutral},
		}
	}

	return Trends{
		Visitors:   trendPoint(float64(current.TotalVisitors), float64(current.TotalVisitors), float64(previous.TotalVisitors)),
		DwellTime:  trendPoint(current.AverageDwellTime, current.AverageDwellTime, previous.AverageDwellTime),
		BounceRate: trendPoint(current.BounceRate, previous.BounceRate, current.BounceRate),
		Conversion: trendPoint(current.ConversionRate, current.ConversionRate, previous.ConversionRate),
	}
}

func trendPoint(value, current, previous float64) TrendPoint {
	if previous == 0 {
		if current == 0 {
			return TrendPoint{Value: value, Trend: TrendNeutral}
		}
		return TrendPoint{Value: value, Trend: TrendUp, Percentage: 100}
	}

	diff := (current - previous) / previous * 100
	direction := TrendNeutral
	switch {
	case diff > 2:
		direction = TrendUp
	case diff < -2:
		direction = TrendDown
	}
	return TrendPoint{Value: value, Trend: direction, Percentage: math.Abs(diff)}
}
