package engine

import (
	"math"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// Sub-score weights. The three components are each in [0, 1], so the weighted
// sum is too by construction.
const (
	weightTimeMatch    = 0.4
	weightVolumeMatch  = 0.3
	weightSpecialMatch = 0.3

	// neutralScore is used when a sub-score is undefined (zero allowance or
	// zero usage): neither reward nor penalize.
	neutralScore = 0.5

	// intlShareThreshold marks a customer as an international caller.
	intlShareThreshold = 0.05

	// heavyUserMinutes marks a customer (and a plan allowance) as high volume.
	heavyUserMinutes = 800
)

// ScoreSuitability rates the fit between the customer's time-of-day usage
// distribution and the plan's free-minute allocation. Any malformed input
// yields 0.0 rather than an error.
func (e *Engine) ScoreSuitability(usage models.UsageProfile, plan models.Plan) float64 {
	if !planComputable(plan) {
		e.logger.Warn("suitability fallback: malformed plan fields", "plan", plan.Name)
		return 0.0
	}

	total := usage.TotalMinutes
	if math.IsNaN(total) || total < 0 {
		total = 0
	}
	shares := normalizeShares(usage)
	totalFree := float64(plan.TotalFreeLocalMinutes())

	// Time-distribution match: customer shares against the plan's own
	// free-minute distribution over the three local segments.
	timeMatch := neutralScore
	if totalFree > 0 {
		diff := math.Abs(shares.day-float64(plan.FreeDay)/totalFree) +
			math.Abs(shares.evening-float64(plan.FreeEvening)/totalFree) +
			math.Abs(shares.night-float64(plan.FreeNight)/totalFree)
		timeMatch = 1 - diff/3
	}

	// Volume match: how much of the customer's volume the allowance covers,
	// capped at 1.0 so over-provisioning earns no extra credit.
	volumeMatch := neutralScore
	if total > 0 {
		volumeMatch = math.Min(1.0, totalFree/math.Max(total, 1))
	}

	// Special features: international coverage and heavy-user allowance.
	special := 0.0
	if shares.intl > intlShareThreshold && plan.FreeIntl > 0 {
		special += 0.5
	}
	if total > heavyUserMinutes && totalFree > heavyUserMinutes {
		special += 0.5
	}

	score := weightTimeMatch*math.Max(0, timeMatch) +
		weightVolumeMatch*volumeMatch +
		weightSpecialMatch*special

	if math.IsNaN(score) {
		e.logger.Warn("suitability fallback: non-finite score", "plan", plan.Name)
		return 0.0
	}
	return round3(clamp01(score))
}
