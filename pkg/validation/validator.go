package validation

import (
	"fmt"
	"math"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// ValidationError represents a single field-level validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidatePlan validates one catalog entry. All rate and allowance fields are
// required to be present, finite and non-negative; a row failing here is
// rejected individually, never the whole catalog.
func ValidatePlan(plan *models.Plan) ValidationResult {
	var errors []ValidationError

	if plan.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "plan_name",
			Message: "name is required",
		})
	}

	numericFields := []struct {
		field string
		value float64
	}{
		{"monthly_rental", plan.MonthlyRental},
		{"rate_local_day", plan.RateDay},
		{"rate_local_eve", plan.RateEvening},
		{"rate_local_night", plan.RateNight},
		{"rate_intl", plan.RateIntl},
	}
	for _, f := range numericFields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Message: "must be a finite number",
			})
		} else if f.value < 0 {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Message: "must not be negative",
			})
		}
	}

	allowanceFields := []struct {
		field string
		value int
	}{
		{"free_day", plan.FreeDay},
		{"free_eve", plan.FreeEvening},
		{"free_night", plan.FreeNight},
		{"free_intl", plan.FreeIntl},
	}
	for _, f := range allowanceFields {
		if f.value < 0 {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Message: "must not be negative",
			})
		}
	}

	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

// ValidateUsage validates one customer usage record. Shares outside [0, 1]
// are rejected here at the boundary; the engine's own normalization is a
// second line of defense, not a substitute for this check.
func ValidateUsage(usage *models.UsageProfile) ValidationResult {
	var errors []ValidationError

	if usage.CustomerID == "" {
		errors = append(errors, ValidationError{
			Field:   "customer_id",
			Message: "identifier is required",
		})
	}

	if math.IsNaN(usage.TotalMinutes) || math.IsInf(usage.TotalMinutes, 0) {
		errors = append(errors, ValidationError{
			Field:   "total_mins",
			Message: "must be a finite number",
		})
	} else if usage.TotalMinutes < 0 {
		errors = append(errors, ValidationError{
			Field:   "total_mins",
			Message: "must not be negative",
		})
	}

	shares := []struct {
		field string
		value float64
	}{
		{"day_mins_share", usage.DayShare},
		{"eve_mins_share", usage.EveningShare},
		{"night_mins_share", usage.NightShare},
		{"intl_mins_share", usage.IntlShare},
	}
	for _, s := range shares {
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) {
			errors = append(errors, ValidationError{
				Field:   s.field,
				Message: "must be a finite number",
			})
		} else if s.value < 0 || s.value > 1 {
			errors = append(errors, ValidationError{
				Field:   s.field,
				Message: "must be within [0, 1]",
			})
		}
	}

	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

// ValidateCatalog validates every plan in a catalog and additionally rejects
// duplicate plan names, which would make tie-breaking ambiguous. The returned
// map is keyed by catalog index and contains only invalid entries.
func ValidateCatalog(catalog models.Catalog) map[int]ValidationResult {
	invalid := make(map[int]ValidationResult)
	seen := make(map[string]struct{}, len(catalog))

	for i := range catalog {
		result := ValidatePlan(&catalog[i])
		if _, dup := seen[catalog[i].Name]; dup && catalog[i].Name != "" {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "plan_name",
				Message: "duplicate plan name in catalog",
			})
		}
		seen[catalog[i].Name] = struct{}{}
		if !result.Valid {
			invalid[i] = result
		}
	}
	return invalid
}
