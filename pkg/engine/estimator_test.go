package engine

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

func newTestEngine() *Engine {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEstimateBillEndToEnd(t *testing.T) {
	e := newTestEngine()

	usage := models.UsageProfile{
		TotalMinutes: 1000,
		DayShare:     0.5,
		EveningShare: 0.3,
		NightShare:   0.2,
		IntlShare:    0.0,
	}
	plan := models.Plan{
		Name:          "Smart Saver",
		MonthlyRental: 299,
		RateDay:       1.0,
		RateEvening:   1.0,
		RateNight:     1.0,
		RateIntl:      5.0,
		FreeDay:       300,
		FreeEvening:   200,
		FreeNight:     100,
		FreeIntl:      0,
	}

	// billable day=200, eve=100, night=100 -> variable=400 -> 299+400
	got := e.EstimateBill(usage, plan)
	if got != 699.00 {
		t.Fatalf("EstimateBill = %v, want 699.00", got)
	}
}

func TestEstimateBillNeverBelowRental(t *testing.T) {
	e := newTestEngine()

	plans := []models.Plan{
		{Name: "Basic Lite", MonthlyRental: 99, RateDay: 0.5, RateEvening: 0.5, RateNight: 0.5, RateIntl: 4, FreeDay: 100, FreeEvening: 100, FreeNight: 100},
		{Name: "Premium Max", MonthlyRental: 499, RateDay: 1.5, RateEvening: 1.2, RateNight: 0.8, RateIntl: 6, FreeDay: 600, FreeEvening: 400, FreeNight: 300, FreeIntl: 50},
		{Name: "Unlimited Talk", MonthlyRental: 799, FreeDay: 5000, FreeEvening: 5000, FreeNight: 5000, FreeIntl: 500},
	}
	usages := []models.UsageProfile{
		{TotalMinutes: 0},
		{TotalMinutes: 50, DayShare: 1},
		{TotalMinutes: 2500, DayShare: 0.4, EveningShare: 0.3, NightShare: 0.2, IntlShare: 0.1},
		{TotalMinutes: 10000, IntlShare: 1},
	}

	for _, plan := range plans {
		for _, usage := range usages {
			if bill := e.EstimateBill(usage, plan); bill < plan.MonthlyRental {
				t.Errorf("EstimateBill(%v mins, %q) = %v, below rental %v",
					usage.TotalMinutes, plan.Name, bill, plan.MonthlyRental)
			}
		}
	}
}

func TestEstimateBillEqualSplitFallback(t *testing.T) {
	e := newTestEngine()

	// Non-uniform allowances so the equal split is observable: with 400 total
	// minutes split 100/100/100/100, only the evening and intl segments bill.
	plan := models.Plan{
		Name:          "Night Owl",
		MonthlyRental: 200,
		RateDay:       1.0,
		RateEvening:   2.0,
		RateNight:     1.0,
		RateIntl:      4.0,
		FreeDay:       150,
		FreeEvening:   50,
		FreeNight:     100,
		FreeIntl:      0,
	}
	usage := models.UsageProfile{TotalMinutes: 400}

	// eve: (100-50)*2 = 100, intl: 100*4 = 400
	want := 200 + 100.0 + 400.0
	if got := e.EstimateBill(usage, plan); got != want {
		t.Fatalf("EstimateBill with zero shares = %v, want equal-split result %v", got, want)
	}

	// Zero total minutes always lands on the bare rental, fallback or not.
	if got := e.EstimateBill(models.UsageProfile{}, plan); got != 200 {
		t.Fatalf("EstimateBill with zero usage = %v, want 200", got)
	}
}

func TestEstimateBillMalformedInputFallsBack(t *testing.T) {
	e := newTestEngine()

	plan := models.Plan{
		Name:          "Broken Intl",
		MonthlyRental: 349,
		RateDay:       1.0,
		RateEvening:   1.0,
		RateNight:     1.0,
		RateIntl:      math.NaN(),
		FreeDay:       100,
	}
	usage := models.UsageProfile{TotalMinutes: 500, DayShare: 1}

	if got := e.EstimateBill(usage, plan); got != 349 {
		t.Fatalf("EstimateBill with NaN rate = %v, want bare rental 349", got)
	}
}

func TestNormalizeShares(t *testing.T) {
	tests := []struct {
		name  string
		usage models.UsageProfile
		want  segmentShares
	}{
		{
			name:  "already normalized",
			usage: models.UsageProfile{DayShare: 0.5, EveningShare: 0.3, NightShare: 0.2},
			want:  segmentShares{0.5, 0.3, 0.2, 0},
		},
		{
			name:  "rescales to unit sum",
			usage: models.UsageProfile{DayShare: 1, EveningShare: 1, NightShare: 1, IntlShare: 1},
			want:  segmentShares{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:  "all zero falls back to equal split",
			usage: models.UsageProfile{},
			want:  segmentShares{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:  "negative values clamped before normalizing",
			usage: models.UsageProfile{DayShare: -2, EveningShare: 0.5, NightShare: 0.5},
			want:  segmentShares{0, 0.5, 0.5, 0},
		},
		{
			name:  "NaN treated as zero",
			usage: models.UsageProfile{DayShare: math.NaN(), EveningShare: 1},
			want:  segmentShares{0, 1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeShares(tt.usage)
			const eps = 1e-9
			if math.Abs(got.day-tt.want.day) > eps ||
				math.Abs(got.evening-tt.want.evening) > eps ||
				math.Abs(got.night-tt.want.night) > eps ||
				math.Abs(got.intl-tt.want.intl) > eps {
				t.Fatalf("normalizeShares = %+v, want %+v", got, tt.want)
			}
		})
	}
}
