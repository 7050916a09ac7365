// Package segment partitions a lead collection into overlapping bucket sets
// in a single pass. Each lead is scored exactly once; buckets preserve the
// input collection's order so downstream sorts tie-break deterministically.
package segment

import (
	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/scoring"
)

// Result holds every bucket set produced by one segmentation pass. A lead
// lands in exactly one tier slice and exactly one grade bucket, at most one
// business-type bucket, and one category/brand bucket per selected interest.
type Result struct {
	Hot  []domain.Lead
	Warm []domain.Lead
	Cold []domain.Lead

	ByGrade        map[scoring.Grade][]domain.Lead
	ByBusinessType map[domain.BusinessType][]domain.Lead
	ByCategory     map[catalog.Category][]domain.Lead
	ByBrand        map[catalog.Brand][]domain.Lead
}

// Segment buckets the leads in one O(n) pass, calling scoring.Score once
// per lead. ByCategory and ByBrand are pre-seeded with an empty slice for
// every catalog identifier, so lookups by any catalog id never miss. Ids
// outside the catalogs are dropped from buckets (scoring still counted
// them; display consumers ignore them).
func Segment(leads []domain.Lead) Result {
	res := Result{
		Hot:  []domain.Lead{},
		Warm: []domain.Lead{},
		Cold: []domain.Lead{},
		ByGrade: map[scoring.Grade][]domain.Lead{
			scoring.GradeA: {},
			scoring.GradeB: {},
			scoring.GradeC: {},
			scoring.GradeD: {},
		},
		ByBusinessType: map[domain.BusinessType][]domain.Lead{
			domain.BusinessTypeWholesale: {},
			domain.BusinessTypeRetail:    {},
		},
		ByCategory: map[catalog.Category][]domain.Lead{},
		ByBrand:    map[catalog.Brand][]domain.Lead{},
	}

	for _, id := range catalog.CategoryIDs() {
		res.ByCategory[id] = []domain.Lead{}
	}
	for _, id := range catalog.BrandIDs() {
		res.ByBrand[id] = []domain.Lead{}
	}

	for _, lead := range leads {
		breakdown := scoring.Score(lead)

		switch breakdown.Tier {
		case scoring.TierHot:
			res.Hot = append(res.Hot, lead)
		case scoring.TierWarm:
			res.Warm = append(res.Warm, lead)
		default:
			res.Cold = append(res.Cold, lead)
		}

		res.ByGrade[breakdown.Grade] = append(res.ByGrade[breakdown.Grade], lead)

		if lead.BusinessType != domain.BusinessTypeUnset {
			res.ByBusinessType[lead.BusinessType] = append(res.ByBusinessType[lead.BusinessType], lead)
		}

		for _, cat := range lead.Categories {
			if bucket, ok := res.ByCategory[cat]; ok {
				res.ByCategory[cat] = append(bucket, lead)
			}
		}
		for _, brand := range lead.Brands {
			if bucket, ok := res.ByBrand[brand]; ok {
				res.ByBrand[brand] = append(bucket, lead)
			}
		}
	}

	return res
}

// TierOf returns the tier slice a lead of the given score lands in. Helper
// for consumers that already hold a Breakdown and only need the slice.
func (r Result) TierOf(tier scoring.Tier) []domain.Lead {
	switch tier {
	case scoring.TierHot:
		return r.Hot
	case scoring.TierWarm:
		return r.Warm
	default:
		return r.Cold
	}
}
