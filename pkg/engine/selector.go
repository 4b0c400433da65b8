package engine

import (
	"math"
	"sort"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// costCap is the monthly cost beyond which a plan earns zero credit on the
// cost half of the final score.
const costCap = 1000.0

// finalScore blends inverted, capped cost evenly with suitability.
func finalScore(monthlyCost, suitability float64) float64 {
	return round3(0.5*(1-math.Min(monthlyCost/costCap, 1)) + 0.5*suitability)
}

// Recommend scores every plan in the catalog for the customer and returns a
// diversified top-n selection.
//
// Selection is a greedy heuristic, not an optimal assignment: the single
// best-scoring plan is always included, then the best plan from each not yet
// used category, then the best remaining plans regardless of category until n
// plans are selected or the catalog is exhausted. Plain top-N tends to
// cluster on near-identical variants within one pricing family;
// diversification surfaces materially different options.
//
// Ties resolve by catalog order (stable sort, first seen wins), which makes
// the selection deterministic for identical inputs. The returned slice is in
// rank order: selection order, not a re-sort of the final set.
func (e *Engine) Recommend(usage models.UsageProfile, catalog models.Catalog, n int) []models.RecommendationCandidate {
	if n <= 0 || len(catalog) == 0 {
		return nil
	}

	candidates := make([]models.RecommendationCandidate, 0, len(catalog))
	for i := range catalog {
		plan := catalog[i]
		if plan.Name == "" || !planComputable(plan) {
			// A malformed plan removes only itself from consideration.
			e.logger.Warn("skipping unscorable plan", "plan", plan.Name)
			continue
		}
		cost := e.EstimateBill(usage, plan)
		suitability := e.ScoreSuitability(usage, plan)
		candidates = append(candidates, models.RecommendationCandidate{
			PlanName:    plan.Name,
			Category:    plan.Category(),
			PriceTier:   plan.Tier(),
			MonthlyCost: cost,
			Suitability: suitability,
			FinalScore:  finalScore(cost, suitability),
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalScore > candidates[j].FinalScore
	})

	selected := make([]models.RecommendationCandidate, 0, n)
	usedCategories := make(map[string]struct{})
	chosenPlans := make(map[string]struct{})

	// Best overall first, then the best plan of each unused category. The
	// first pass of this loop picks the global best since no category is
	// used yet.
	for len(selected) < n {
		picked := false
		for i := range candidates {
			c := candidates[i]
			if _, done := chosenPlans[c.PlanName]; done {
				continue
			}
			if _, used := usedCategories[c.Category]; used {
				continue
			}
			selected = append(selected, c)
			chosenPlans[c.PlanName] = struct{}{}
			usedCategories[c.Category] = struct{}{}
			picked = true
			break
		}
		if !picked {
			break
		}
	}

	// Fill remaining slots by score regardless of category.
	for i := range candidates {
		if len(selected) >= n {
			break
		}
		c := candidates[i]
		if _, done := chosenPlans[c.PlanName]; done {
			continue
		}
		selected = append(selected, c)
		chosenPlans[c.PlanName] = struct{}{}
	}

	return selected
}
