package engine

import (
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// RecommendationEngine defines the scoring contract evaluated once per
// (customer, plan) pair. Implementations must be pure with respect to their
// inputs: the catalog is shared, read-only reference data and is never
// mutated during scoring, so callers may invoke these methods from any number
// of goroutines concurrently.
type RecommendationEngine interface {
	// EstimateBill projects the monthly charge the plan would produce for the
	// customer's usage. The result is never below the plan's monthly rental.
	EstimateBill(usage models.UsageProfile, plan models.Plan) float64

	// ScoreSuitability rates how well the plan's allowance structure matches
	// the customer's usage pattern, in [0, 1].
	ScoreSuitability(usage models.UsageProfile, plan models.Plan) float64

	// Recommend scores every plan in the catalog and returns a diversified
	// top-n selection in rank order. An empty catalog yields an empty result.
	Recommend(usage models.UsageProfile, catalog models.Catalog, n int) []models.RecommendationCandidate
}
