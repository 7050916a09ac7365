// Package scoring evaluates a single lead into a weighted 0-100 score with
// per-factor decomposition. Score is pure: no I/O, no randomness, no shared
// state, so it is safe to call on every read or write of a lead.
package scoring

import (
	"fmt"
	"strings"

	"boothlead_backend/internal/leads/domain"
)

const (
	// ScoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing factor weights or thresholds.
	ScoreVersion = "2026-v1"

	// Factor point budgets. The maxes sum to 100, so the total is in
	// [0, 100] by construction and never needs clamping.
	maxBusinessType  = 15
	maxContact       = 20
	maxBrandInterest = 20
	maxCategory      = 20
	maxEngagement    = 15
	maxIntent        = 10

	// A visitor whose dwell time was never tracked still showed up, so
	// booth engagement defaults to a small fixed credit.
	untrackedEngagementPoints = 5

	pointsPerBrand      = 4
	pointsPerCategory   = 4
	pointsPerDwellMin   = 3
	notesBytesPerPoint  = 20
	contactFieldPoints  = 5
	contactFieldsTotal  = 4
)

// Grade is the letter bucket derived from the total score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Tier is the engagement temperature derived from the total score.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// Factor is one scored dimension of a lead.
type Factor struct {
	Name        string `json:"name"`
	Points      int    `json:"points"`
	MaxPoints   int    `json:"maxPoints"`
	Description string `json:"description"`
}

// Breakdown is the full scoring result for one lead. Total always equals
// the sum of the factor points.
type Breakdown struct {
	Total   int      `json:"total"`
	Grade   Grade    `json:"grade"`
	Tier    Tier     `json:"engagementLevel"`
	Factors []Factor `json:"factors"`
}

// Score computes the weighted score for one lead. It is total over any
// lead value: absent optional fields contribute their minimum, they never
// cause an error.
func Score(lead domain.Lead) Breakdown {
	factors := make([]Factor, 0, 6)
	total := 0

	// Business Type (max 15)
	var btPoints int
	var btDesc string
	switch lead.BusinessType {
	case domain.BusinessTypeWholesale:
		btPoints = maxBusinessType
		btDesc = "High-value wholesale buyer"
	case domain.BusinessTypeRetail:
		btPoints = 10
		btDesc = "Retail customer"
	default:
		btPoints = 0
		btDesc = "Retail customer"
	}
	factors = append(factors, Factor{Name: "Business Type", Points: btPoints, MaxPoints: maxBusinessType, Description: btDesc})
	total += btPoints

	// Contact Completeness (max 20): +5 per completed field group.
	completed := 0
	if lead.HasEmail() {
		completed++
	}
	if lead.HasPhone() {
		completed++
	}
	if lead.HasBusinessName() {
		completed++
	}
	if lead.HasFullAddress() {
		completed++
	}
	contactPoints := completed * contactFieldPoints
	factors = append(factors, Factor{
		Name:        "Contact Completeness",
		Points:      contactPoints,
		MaxPoints:   maxContact,
		Description: fmt.Sprintf("%d of %d contact fields completed", completed, contactFieldsTotal),
	})
	total += contactPoints

	// Brand Interest (max 20): cardinality-based, unknown ids still count.
	brandPoints := capPoints(len(lead.Brands)*pointsPerBrand, maxBrandInterest)
	factors = append(factors, Factor{
		Name:        "Brand Interest",
		Points:      brandPoints,
		MaxPoints:   maxBrandInterest,
		Description: fmt.Sprintf("Interested in %d brands", len(lead.Brands)),
	})
	total += brandPoints

	// Category Interest (max 20)
	categoryPoints := capPoints(len(lead.Categories)*pointsPerCategory, maxCategory)
	factors = append(factors, Factor{
		Name:        "Category Interest",
		Points:      categoryPoints,
		MaxPoints:   maxCategory,
		Description: fmt.Sprintf("Interested in %d categories", len(lead.Categories)),
	})
	total += categoryPoints

	// Booth Engagement (max 15): tracked dwell earns per full minute,
	// untracked dwell gets the fixed default credit.
	var dwellPoints int
	var dwellDesc string
	if lead.DwellSeconds != nil {
		minutes := *lead.DwellSeconds / 60
		if minutes < 0 {
			minutes = 0
		}
		dwellPoints = capPoints(minutes*pointsPerDwellMin, maxEngagement)
		dwellDesc = fmt.Sprintf("%d minutes at booth", minutes)
	} else {
		dwellPoints = untrackedEngagementPoints
		dwellDesc = "Standard engagement"
	}
	factors = append(factors, Factor{Name: "Booth Engagement", Points: dwellPoints, MaxPoints: maxEngagement, Description: dwellDesc})
	total += dwellPoints

	// Expressed Intent (max 10): longer notes signal stronger intent.
	var intentPoints int
	intentDesc := "No specific requirements noted"
	if lead.Notes != nil && *lead.Notes != "" {
		intentPoints = capPoints(len(*lead.Notes)/notesBytesPerPoint, maxIntent)
		intentDesc = "Provided detailed requirements"
	}
	factors = append(factors, Factor{Name: "Expressed Intent", Points: intentPoints, MaxPoints: maxIntent, Description: intentDesc})
	total += intentPoints

	return Breakdown{
		Total:   total,
		Grade:   GradeFor(total),
		Tier:    TierFor(total),
		Factors: factors,
	}
}

// GradeFor maps a total score to its letter grade. Bands are contiguous
// with closed lower bounds: a score of exactly 80 is an A.
func GradeFor(total int) Grade {
	switch {
	case total >= 80:
		return GradeA
	case total >= 60:
		return GradeB
	case total >= 40:
		return GradeC
	default:
		return GradeD
	}
}

// TierFor maps a total score to its engagement tier. Bands are contiguous
// with closed lower bounds: a score of exactly 70 is hot, 45 is warm.
func TierFor(total int) Tier {
	switch {
	case total >= 70:
		return TierHot
	case total >= 45:
		return TierWarm
	default:
		return TierCold
	}
}

// PriorityActions returns grade-driven follow-up recommendations for a
// lead, plus a brand highlight line when brands were selected.
func PriorityActions(lead domain.Lead) []string {
	breakdown := Score(lead)
	var actions []string

	switch breakdown.Grade {
	case GradeA:
		actions = append(actions, "High-priority follow-up within 24 hours", "Schedule discovery call")
		if lead.BusinessType == domain.BusinessTypeWholesale {
			actions = append(actions, "Prepare volume pricing proposal")
		}
	case GradeB:
		actions = append(actions, "Send personalized email within 48 hours", "Share product catalog")
	case GradeC:
		actions = append(actions, "Add to nurture campaign", "Connect on social media")
	default:
		actions = append(actions, "Add to general mailing list")
	}

	if len(lead.Brands) > 0 {
		names := make([]string, 0, len(lead.Brands))
		for _, b := range lead.Brands {
			if b.Valid() {
				names = append(names, b.Name())
			}
		}
		if len(names) > 0 {
			actions = append(actions, fmt.Sprintf("Highlight %s products", strings.Join(names, ", ")))
		}
	}

	return actions
}

func capPoints(points, max int) int {
	if points > max {
		return max
	}
	if points < 0 {
		return 0
	}
	return points
}
