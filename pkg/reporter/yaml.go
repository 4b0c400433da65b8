package reporter

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/version"
)

// YAMLReporter implements the Reporter interface for YAML output
type YAMLReporter struct{}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter() Reporter {
	return &YAMLReporter{}
}

// yamlReport mirrors the JSON report layout with YAML field names
type yamlReport struct {
	Metadata yamlMetadata            `yaml:"metadata"`
	Summary  yamlSummary             `yaml:"summary"`
	Results  []models.CustomerResult `yaml:"results"`
	Skipped  []models.RowError       `yaml:"skipped_rows,omitempty"`
}

type yamlMetadata struct {
	RunID     string `yaml:"run_id"`
	Timestamp string `yaml:"timestamp"`
	Version   string `yaml:"version"`
	Duration  string `yaml:"duration"`
}

type yamlSummary struct {
	TotalCustomers   int            `yaml:"total_customers"`
	Processed        int            `yaml:"processed"`
	Failed           int            `yaml:"failed"`
	Resumed          int            `yaml:"resumed,omitempty"`
	TotalPlans       int            `yaml:"total_plans"`
	RecordCount      int            `yaml:"record_count"`
	PlanDistribution map[string]int `yaml:"plan_distribution"`
}

// GenerateReport generates a YAML report from batch results
func (r *YAMLReporter) GenerateReport(ctx context.Context, results *models.BatchResult) ([]byte, error) {
	report := yamlReport{
		Metadata: yamlMetadata{
			RunID:     results.RunID,
			Timestamp: results.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Version:   version.GetVersion(),
			Duration:  results.Duration.String(),
		},
		Summary: yamlSummary{
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

	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}

	return data, nil
}

// WriteReport writes the YAML report to the configured writer
func (r *YAMLReporter) WriteReport(ctx context.Context, results *models.BatchResult, writer io.Writer) error {
	data, err := r.GenerateReport(ctx, results)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write YAML report: %w", err)
	}

	return nil
}

// GetFormat returns the format name
func (r *YAMLReporter) GetFormat() string {
	return "yaml"
}

// GetFileExtension returns the file extension
func (r *YAMLReporter) GetFileExtension() string {
	return ".yaml"
}
