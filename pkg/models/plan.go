package models

import (
	"strings"
)

// Plan represents one entry of the pricing catalog. Catalog entries are
// static reference data: loaded once per run and never mutated during scoring.
type Plan struct {
	Name          string  `yaml:"plan_name" json:"plan_name"`
	MonthlyRental float64 `yaml:"monthly_rental" json:"monthly_rental"`

	// Per-minute overage rates, charged only beyond the free allowance.
	RateDay     float64 `yaml:"rate_local_day" json:"rate_local_day"`
	RateEvening float64 `yaml:"rate_local_eve" json:"rate_local_eve"`
	RateNight   float64 `yaml:"rate_local_night" json:"rate_local_night"`
	RateIntl    float64 `yaml:"rate_intl" json:"rate_intl"`

	// Included free minutes per usage segment.
	FreeDay     int `yaml:"free_day" json:"free_day"`
	FreeEvening int `yaml:"free_eve" json:"free_eve"`
	FreeNight   int `yaml:"free_night" json:"free_night"`
	FreeIntl    int `yaml:"free_intl" json:"free_intl"`
}

// PriceTier buckets plans by monthly rental.
type PriceTier string

const (
	TierBudget   PriceTier = "Budget"
	TierStandard PriceTier = "Standard"
	TierPremium  PriceTier = "Premium"
)

// Category returns the plan family, derived as the first whitespace-delimited
// token of the plan name. Used by the diversified selector.
func (p *Plan) Category() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Tier returns the price tier bucket for the plan's monthly rental.
func (p *Plan) Tier() PriceTier {
	switch {
	case p.MonthlyRental < 250:
		return TierBudget
	case p.MonthlyRental > 400:
		return TierPremium
	default:
		return TierStandard
	}
}

// TotalFreeLocalMinutes returns the plan's free minutes across the three local
// segments (day, evening, night), excluding international.
func (p *Plan) TotalFreeLocalMinutes() int {
	return p.FreeDay + p.FreeEvening + p.FreeNight
}

// TotalFreeMinutes returns all free minutes the plan includes.
func (p *Plan) TotalFreeMinutes() int {
	return p.TotalFreeLocalMinutes() + p.FreeIntl
}

// Catalog is an ordered collection of plans. Order is significant: tie-breaks
// during selection resolve in catalog order (first seen wins).
type Catalog []Plan

// Names returns the plan names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for i := range c {
		names = append(names, c[i].Name)
	}
	return names
}

// UsageProfile holds a customer's aggregated call-usage figures. It is
// read-only input, built upstream from call-detail aggregates.
type UsageProfile struct {
	CustomerID   string  `json:"customer_id"`
	TotalMinutes float64 `json:"total_mins"`

	// Segment shares of total minutes. Non-negative and summing to 1.0 when
	// there is any usage; the engine normalizes defensively regardless.
	DayShare     float64 `json:"day_mins_share"`
	EveningShare float64 `json:"eve_mins_share"`
	NightShare   float64 `json:"night_mins_share"`
	IntlShare    float64 `json:"intl_mins_share"`

	// ClusterLabel is supplied externally (segmentation output) and carried
	// through into output records unchanged.
	ClusterLabel string `json:"cluster"`
}
