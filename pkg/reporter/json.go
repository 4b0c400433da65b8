package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/version"
)

// JSONReporter implements the Reporter interface for JSON output
type JSONReporter struct{}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter() Reporter {
	return &JSONReporter{}
}

// JSONReport represents the structure of the JSON output
type JSONReport struct {
	Metadata JSONMetadata            `json:"metadata"`
	Summary  JSONSummary             `json:"summary"`
	Results  []models.CustomerResult `json:"results"`
	Skipped  []models.RowError       `json:"skipped_rows,omitempty"`
}

// JSONMetadata contains metadata about the run
type JSONMetadata struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Duration  string    `json:"duration"`
}

// JSONSummary contains summary statistics
type JSONSummary struct {
	TotalCustomers   int            `json:"total_customers"`
	Processed        int            `json:"processed"`
	Failed           int            `json:"failed"`
	Resumed          int            `json:"resumed,omitempty"`
	TotalPlans       int            `json:"total_plans"`
	RecordCount      int            `json:"record_count"`
	PlanDistribution map[string]int `json:"plan_distribution"`
}

// GenerateReport generates a JSON report from batch results
func (r *JSONReporter) GenerateReport(ctx context.Context, results *models.BatchResult) ([]byte, error) {
	report := r.buildJSONReport(results)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}

	return data, nil
}

// WriteReport writes the JSON report to the configured writer
func (r *JSONReporter) WriteReport(ctx context.Context, results *models.BatchResult, writer io.Writer) error {
	data, err := r.GenerateReport(ctx, results)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	return nil
}

// GetFormat returns the format name
func (r *JSONReporter) GetFormat() string {
	return "json"
}

// GetFileExtension returns the file extension
func (r *JSONReporter) GetFileExtension() string {
	return ".json"
}

func (r *JSONReporter) buildJSONReport(results *models.BatchResult) JSONReport {
	return JSONReport{
		Metadata: JSONMetadata{
			RunID:     results.RunID,
			Timestamp: results.Timestamp,
			Version:   version.GetVersion(),
			Duration:  results.Duration.String(),
		},
		Summary: JSONSummary{
			TotalCustomers:   results.TotalCustomers,
			Processed:        results.Processed,
			Failed:           results.Failed,
			Resumed:          results.Resumed,
			TotalPlans:       results.TotalPlans,
			RecordCount:      results.RecordCount(),
			PlanDistribution: results.PlanDistribution,
		},
		Results: results.Results,
		Skipped: results.SkippedRows,
	}
}
