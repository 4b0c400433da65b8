package reporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// csvHeader is the flat interchange layout consumed by downstream analysis
// tooling, one row per (customer, plan, rank).
var csvHeader = []string{
	"customer_id", "cluster", "plan_name", "category", "price_tier",
	"estimated_cost", "suitability", "final_score", "rank",
}

// CSVReporter implements the Reporter interface for CSV output
type CSVReporter struct{}

// NewCSVReporter creates a new CSV reporter
func NewCSVReporter() Reporter {
	return &CSVReporter{}
}

// GenerateReport generates a CSV report from batch results
func (r *CSVReporter) GenerateReport(ctx context.Context, results *models.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteReport(ctx, results, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport streams the CSV report to the writer
func (r *CSVReporter) WriteReport(ctx context.Context, results *models.BatchResult, writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range results.Results {
		for _, rec := range results.Results[i].Recommendations {
			row := []string{
				rec.CustomerID,
				rec.Cluster,
				rec.PlanName,
				rec.Category,
				string(rec.PriceTier),
				strconv.FormatFloat(rec.EstimatedCost, 'f', 2, 64),
				strconv.FormatFloat(rec.Suitability, 'f', 3, 64),
				strconv.FormatFloat(rec.FinalScore, 'f', 3, 64),
				strconv.Itoa(rec.Rank),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return nil
}

// GetFormat returns the format name
func (r *CSVReporter) GetFormat() string {
	return "csv"
}

// GetFileExtension returns the file extension
func (r *CSVReporter) GetFileExtension() string {
	return ".csv"
}
