package engine

import (
	"log/slog"
	"math"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// Engine implements RecommendationEngine. Scoring errors never propagate:
// malformed inputs resolve to the documented safe defaults so one bad record
// cannot halt a batch.
type Engine struct {
	logger *slog.Logger
}

// New creates a scoring engine. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// segmentShares holds normalized usage shares in day, evening, night,
// international order.
type segmentShares struct {
	day, evening, night, intl float64
}

// normalizeShares clamps each share to >= 0 and rescales the four to sum to
// 1.0. When no usage signal is available (all shares zero or invalid) it
// falls back to an equal 0.25 split, keeping the computation defined and
// bias-free for every input.
func normalizeShares(usage models.UsageProfile) segmentShares {
	vals := [4]float64{usage.DayShare, usage.EveningShare, usage.NightShare, usage.IntlShare}
	sum := 0.0
	for i, v := range vals {
		if math.IsNaN(v) || v < 0 {
			v = 0
		}
		vals[i] = v
		sum += v
	}
	if sum <= 0 || math.IsInf(sum, 1) {
		return segmentShares{0.25, 0.25, 0.25, 0.25}
	}
	return segmentShares{vals[0] / sum, vals[1] / sum, vals[2] / sum, vals[3] / sum}
}

// EstimateBill projects the monthly charge for the customer's usage under the
// plan: distribute total minutes across segments by normalized share, charge
// only the minutes exceeding each segment's free allowance, add the rental.
func (e *Engine) EstimateBill(usage models.UsageProfile, plan models.Plan) float64 {
	if !planComputable(plan) {
		e.logger.Warn("billing fallback: malformed plan fields", "plan", plan.Name)
		return round2(math.Max(plan.MonthlyRental, 0))
	}

	total := usage.TotalMinutes
	if math.IsNaN(total) || total < 0 {
		total = 0
	}
	shares := normalizeShares(usage)

	dayBill := math.Max(shares.day*total-float64(plan.FreeDay), 0)
	eveBill := math.Max(shares.evening*total-float64(plan.FreeEvening), 0)
	nightBill := math.Max(shares.night*total-float64(plan.FreeNight), 0)
	intlBill := math.Max(shares.intl*total-float64(plan.FreeIntl), 0)

	variable := dayBill*plan.RateDay +
		eveBill*plan.RateEvening +
		nightBill*plan.RateNight +
		intlBill*plan.RateIntl

	if math.IsNaN(variable) || math.IsInf(variable, 0) {
		e.logger.Warn("billing fallback: non-finite variable charge", "plan", plan.Name)
		return round2(plan.MonthlyRental)
	}
	return round2(plan.MonthlyRental + variable)
}

// planComputable reports whether the plan's numeric fields are usable for
// billing. Rows failing loader validation never reach here, but the engine
// guards anyway so it stays total for arbitrary callers.
func planComputable(plan models.Plan) bool {
	for _, v := range []float64{
		plan.MonthlyRental,
		plan.RateDay, plan.RateEvening, plan.RateNight, plan.RateIntl,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return plan.FreeDay >= 0 && plan.FreeEvening >= 0 && plan.FreeNight >= 0 && plan.FreeIntl >= 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
