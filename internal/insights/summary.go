package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/segment"
)

type rankedCount struct {
	Name  string
	Count int
}

// BulkSummary renders a deterministic plain-text analysis of the whole
// lead set: business-type split, top brands and categories, geographic
// spread, and coarse recommendations. It never calls out to Gemini.
func BulkSummary(leads []domain.Lead) string {
	if len(leads) == 0 {
		return "No leads to analyze."
	}

	seg := segment.Segment(leads)
	total := len(leads)
	wholesale := len(seg.ByBusinessType[domain.BusinessTypeWholesale])
	retail := len(seg.ByBusinessType[domain.BusinessTypeRetail])

	brands := rankBuckets(catalog.BrandIDs(), func(b catalog.Brand) (string, int) {
		return b.Name(), len(seg.ByBrand[b])
	})
	categories := rankBuckets(catalog.CategoryIDs(), func(c catalog.Category) (string, int) {
		return c.Name(), len(seg.ByCategory[c])
	})
	states := stateDistribution(leads)

	var b strings.Builder
	b.WriteString("Lead Analysis Summary\n\n")

	b.WriteString("Overview\n")
	fmt.Fprintf(&b, "• Total Leads: %d\n", total)
	fmt.Fprintf(&b, "• Wholesale: %d (%d%%)\n", wholesale, pct(wholesale, total))
	fmt.Fprintf(&b, "• Retail: %d (%d%%)\n\n", retail, pct(retail, total))

	b.WriteString("Top Brands\n")
	writeRanked(&b, brands, total)
	b.WriteString("\nTop Categories\n")
	writeRanked(&b, categories, total)

	b.WriteString("\nGeographic Distribution\n")
	if len(states) == 0 {
		b.WriteString("No location data available\n")
	} else {
		for _, s := range states {
			fmt.Fprintf(&b, "• %s: %d leads\n", s.Name, s.Count)
		}
	}

	b.WriteString("\nRecommendations\n")
	if wholesale > retail {
		b.WriteString("• Focus on B2B outreach and volume pricing discussions\n")
		b.WriteString("• Prepare wholesale catalogs and MOQ sheets\n")
	} else {
		b.WriteString("• Emphasize retail promotions and product variety\n")
		b.WriteString("• Consider loyalty programs for repeat customers\n")
	}
	if len(brands) > 0 && brands[0].Count*2 > total {
		fmt.Fprintf(&b, "• %s is a clear favorite - ensure adequate inventory and highlight new releases\n", brands[0].Name)
	}
	if len(categories) > 0 && categories[0].Count*2 > total {
		fmt.Fprintf(&b, "• Strong demand for %s - consider featured promotions in this category\n", categories[0].Name)
	}

	return strings.TrimRight(b.String(), "\n")
}

// rankBuckets counts every catalog entry, then keeps the top three by
// count. Catalog order breaks ties so output is stable across runs.
func rankBuckets[T comparable](ids []T, lookup func(T) (string, int)) []rankedCount {
	ranked := make([]rankedCount, 0, len(ids))
	for _, id := range ids {
		name, count := lookup(id)
		ranked = append(ranked, rankedCount{Name: name, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

func stateDistribution(leads []domain.Lead) []rankedCount {
	counts := make(map[string]int)
	for _, l := range leads {
		if state := strOrEmpty(l.State); state != "" {
			counts[state]++
		}
	}

	ranked := make([]rankedCount, 0, len(counts))
	for state, count := range counts {
		ranked = append(ranked, rankedCount{Name: state, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

func writeRanked(b *strings.Builder, ranked []rankedCount, total int) {
	for i, r := range ranked {
		fmt.Fprintf(b, "%d. %s - %d leads (%d%%)\n", i+1, r.Name, r.Count, pct(r.Count, total))
	}
}

func pct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
