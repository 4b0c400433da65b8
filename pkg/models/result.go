package models

import (
	"time"
)

// RecommendationCandidate is one (customer, plan) evaluation result. It lives
// only for the duration of a single customer's selection pass.
type RecommendationCandidate struct {
	PlanName    string    `json:"plan_name" yaml:"plan_name"`
	Category    string    `json:"category" yaml:"category"`
	PriceTier   PriceTier `json:"price_tier" yaml:"price_tier"`
	MonthlyCost float64   `json:"monthly_cost" yaml:"monthly_cost"`
	Suitability float64   `json:"suitability" yaml:"suitability"`
	FinalScore  float64   `json:"final_score" yaml:"final_score"`
}

// RecommendationRecord is the persisted output shape consumed downstream.
// Rank is 1-based and contiguous per customer, in selection order.
type RecommendationRecord struct {
	CustomerID    string    `json:"customer_id" yaml:"customer_id"`
	Cluster       string    `json:"cluster" yaml:"cluster"`
	PlanName      string    `json:"plan_name" yaml:"plan_name"`
	Category      string    `json:"category" yaml:"category"`
	PriceTier     PriceTier `json:"price_tier" yaml:"price_tier"`
	EstimatedCost float64   `json:"estimated_cost" yaml:"estimated_cost"`
	Suitability   float64   `json:"suitability" yaml:"suitability"`
	FinalScore    float64   `json:"final_score" yaml:"final_score"`
	Rank          int       `json:"rank" yaml:"rank"`
}

// CustomerResult groups one customer's ordered recommendation records.
type CustomerResult struct {
	CustomerID      string                 `json:"customer_id" yaml:"customer_id"`
	Cluster         string                 `json:"cluster" yaml:"cluster"`
	Recommendations []RecommendationRecord `json:"recommendations" yaml:"recommendations"`
}

// RowError records one rejected input row so batch failures stay diagnosable
// even though they are absorbed locally.
type RowError struct {
	Source string `json:"source" yaml:"source"`
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

// BatchResult aggregates a full batch run over a customer population.
type BatchResult struct {
	RunID            string           `json:"run_id" yaml:"run_id"`
	TotalCustomers   int              `json:"total_customers" yaml:"total_customers"`
	Processed        int              `json:"processed" yaml:"processed"`
	Failed           int              `json:"failed" yaml:"failed"`
	Resumed          int              `json:"resumed,omitempty" yaml:"resumed,omitempty"`
	TotalPlans       int              `json:"total_plans" yaml:"total_plans"`
	Results          []CustomerResult `json:"results" yaml:"results"`
	SkippedRows      []RowError       `json:"skipped_rows,omitempty" yaml:"skipped_rows,omitempty"`
	PlanDistribution map[string]int   `json:"plan_distribution" yaml:"plan_distribution"`
	Timestamp        time.Time        `json:"timestamp" yaml:"timestamp"`
	Duration         time.Duration    `json:"duration" yaml:"duration"`
}

// RecordCount returns the total number of recommendation records in the run.
func (b *BatchResult) RecordCount() int {
	n := 0
	for i := range b.Results {
		n += len(b.Results[i].Recommendations)
	}
	return n
}
