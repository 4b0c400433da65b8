package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

func validPlan() models.Plan {
	return models.Plan{
		Name:          "Saver Lite",
		MonthlyRental: 149,
		RateDay:       1.5,
		RateEvening:   1.2,
		RateNight:     0.8,
		RateIntl:      6,
		FreeDay:       100,
		FreeEvening:   80,
		FreeNight:     60,
	}
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.Plan)
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "valid plan",
			mutate:    func(p *models.Plan) {},
			wantValid: true,
		},
		{
			name:       "missing name",
			mutate:     func(p *models.Plan) { p.Name = "" },
			wantValid:  false,
			wantErrors: []string{"plan_name: name is required"},
		},
		{
			name:       "NaN rate",
			mutate:     func(p *models.Plan) { p.RateIntl = math.NaN() },
			wantValid:  false,
			wantErrors: []string{"rate_intl: must be a finite number"},
		},
		{
			name:       "negative rental",
			mutate:     func(p *models.Plan) { p.MonthlyRental = -10 },
			wantValid:  false,
			wantErrors: []string{"monthly_rental: must not be negative"},
		},
		{
			name:       "negative allowance",
			mutate:     func(p *models.Plan) { p.FreeNight = -5 },
			wantValid:  false,
			wantErrors: []string{"free_night: must not be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(&plan)
			result := ValidatePlan(&plan)
			if result.Valid != tt.wantValid {
				t.Fatalf("ValidatePlan valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			for _, want := range tt.wantErrors {
				found := false
				for _, err := range result.Errors {
					if err.Error() == want {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("missing expected error %q, got %v", want, result.Errors)
				}
			}
		})
	}
}

func TestValidateUsage(t *testing.T) {
	tests := []struct {
		name      string
		usage     models.UsageProfile
		wantValid bool
		wantField string
	}{
		{
			name:      "valid usage",
			usage:     models.UsageProfile{CustomerID: "415-0001", TotalMinutes: 600, DayShare: 0.5, EveningShare: 0.3, NightShare: 0.2},
			wantValid: true,
		},
		{
			name:      "zero usage is valid",
			usage:     models.UsageProfile{CustomerID: "415-0002"},
			wantValid: true,
		},
		{
			name:      "missing identifier",
			usage:     models.UsageProfile{TotalMinutes: 100},
			wantValid: false,
			wantField: "customer_id",
		},
		{
			name:      "negative minutes",
			usage:     models.UsageProfile{CustomerID: "415-0003", TotalMinutes: -1},
			wantValid: false,
			wantField: "total_mins",
		},
		{
			name:      "share above one",
			usage:     models.UsageProfile{CustomerID: "415-0004", TotalMinutes: 100, DayShare: 1.5},
			wantValid: false,
			wantField: "day_mins_share",
		},
		{
			name:      "NaN share",
			usage:     models.UsageProfile{CustomerID: "415-0005", TotalMinutes: 100, NightShare: math.NaN()},
			wantValid: false,
			wantField: "night_mins_share",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateUsage(&tt.usage)
			if result.Valid != tt.wantValid {
				t.Fatalf("ValidateUsage valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantField != "" {
				found := false
				for _, err := range result.Errors {
					if strings.HasPrefix(err.Error(), tt.wantField+":") {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error on field %q, got %v", tt.wantField, result.Errors)
				}
			}
		})
	}
}

func TestValidateCatalogDuplicates(t *testing.T) {
	catalog := models.Catalog{validPlan(), validPlan()}
	invalid := ValidateCatalog(catalog)
	if len(invalid) != 1 {
		t.Fatalf("ValidateCatalog flagged %d entries, want 1 duplicate", len(invalid))
	}
	if _, ok := invalid[1]; !ok {
		t.Fatalf("expected the second occurrence to be flagged, got %v", invalid)
	}
}
