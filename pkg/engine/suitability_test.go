package engine

import (
	"math"
	"testing"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

func TestScoreSuitabilityRange(t *testing.T) {
	e := newTestEngine()

	plans := []models.Plan{
		{Name: "Zero Allowance", MonthlyRental: 100, RateDay: 1, RateEvening: 1, RateNight: 1, RateIntl: 5},
		{Name: "Huge Allowance", MonthlyRental: 900, FreeDay: 100000, FreeEvening: 100000, FreeNight: 100000, FreeIntl: 10000},
		{Name: "Day Heavy", MonthlyRental: 300, RateDay: 1, FreeDay: 1000},
		{Name: "Intl Only", MonthlyRental: 250, RateIntl: 3, FreeIntl: 200},
	}
	usages := []models.UsageProfile{
		{},
		{TotalMinutes: 10, DayShare: 1},
		{TotalMinutes: 900, DayShare: 0.3, EveningShare: 0.3, NightShare: 0.3, IntlShare: 0.1},
		{TotalMinutes: 1e9, IntlShare: 1},
		{TotalMinutes: math.NaN(), DayShare: math.NaN()},
	}

	for _, plan := range plans {
		for _, usage := range usages {
			got := e.ScoreSuitability(usage, plan)
			if got < 0 || got > 1 {
				t.Errorf("ScoreSuitability(%q) = %v, out of [0,1]", plan.Name, got)
			}
		}
	}
}

func TestScoreSuitabilityWeightedComponents(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		usage models.UsageProfile
		plan  models.Plan
		want  float64
	}{
		{
			// time: plan dist 300/200/100 over 600 vs shares 0.5/0.3/0.2
			// diff = 0 + |0.3-1/3| + |0.2-1/6| = 0.0667 -> 0.9778
			// volume: min(1, 600/1000) = 0.6, special: 0
			// 0.4*0.9778 + 0.3*0.6 = 0.571
			name:  "time and volume, no specials",
			usage: models.UsageProfile{TotalMinutes: 1000, DayShare: 0.5, EveningShare: 0.3, NightShare: 0.2},
			plan:  models.Plan{Name: "Smart Saver", MonthlyRental: 299, FreeDay: 300, FreeEvening: 200, FreeNight: 100},
			want:  0.571,
		},
		{
			// zero local allowance: time neutral 0.5, volume 0, special 0
			name:  "zero allowance neutral time match",
			usage: models.UsageProfile{TotalMinutes: 500, DayShare: 1},
			plan:  models.Plan{Name: "Pay As You Go", MonthlyRental: 49, RateDay: 2, RateEvening: 2, RateNight: 2, RateIntl: 6},
			want:  0.2,
		},
		{
			// zero usage: volume neutral 0.5; equal-split shares vs uniform
			// plan dist 200/200/200 -> perfect time match of 1 - (0.0833*2+0.1667)/3
			// shares are 0.25 each, dist 1/3 each: diff = 3*|0.25-1/3| = 0.25
			// time = 1 - 0.25/3 = 0.9167 -> 0.4*0.9167 + 0.3*0.5 = 0.517
			name:  "zero usage neutral volume",
			usage: models.UsageProfile{},
			plan:  models.Plan{Name: "Balanced 600", MonthlyRental: 350, FreeDay: 200, FreeEvening: 200, FreeNight: 200},
			want:  0.517,
		},
		{
			// international bonus only: shares.intl = 0.1 > 0.05 and FreeIntl > 0
			// time neutral? no: totalFree = 0 -> neutral 0.5; volume 0; special 0.5
			// 0.4*0.5 + 0 + 0.3*0.5 = 0.35
			name:  "international bonus",
			usage: models.UsageProfile{TotalMinutes: 400, DayShare: 0.9, IntlShare: 0.1},
			plan:  models.Plan{Name: "Global Call", MonthlyRental: 450, RateIntl: 2, FreeIntl: 100},
			want:  0.35,
		},
		{
			// heavy-user bonus: total 900 > 800 and local allowance 900 > 800
			// dist 300/300/300 vs equal usage shares 1/3 each: perfect time match
			// volume min(1, 900/900) = 1
			// 0.4*1 + 0.3*1 + 0.3*0.5 = 0.85
			name:  "heavy user bonus",
			usage: models.UsageProfile{TotalMinutes: 900, DayShare: 1, EveningShare: 1, NightShare: 1},
			plan:  models.Plan{Name: "Talk More 900", MonthlyRental: 550, FreeDay: 300, FreeEvening: 300, FreeNight: 300},
			want:  0.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ScoreSuitability(tt.usage, tt.plan); got != tt.want {
				t.Fatalf("ScoreSuitability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreSuitabilityMalformedPlan(t *testing.T) {
	e := newTestEngine()

	plan := models.Plan{Name: "Broken", MonthlyRental: math.Inf(1), RateDay: 1}
	if got := e.ScoreSuitability(models.UsageProfile{TotalMinutes: 100}, plan); got != 0.0 {
		t.Fatalf("ScoreSuitability with malformed plan = %v, want 0.0", got)
	}
}
