package reporter

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// TableReporter generates reports in table format for console output
type TableReporter struct {
	noColor bool
	verbose bool
}

// NewTableReporter creates a new table reporter
func NewTableReporter(noColor, verbose bool) Reporter {
	return &TableReporter{
		noColor: noColor,
		verbose: verbose,
	}
}

// GenerateReport generates a table format report
func (r *TableReporter) GenerateReport(ctx context.Context, results *models.BatchResult) ([]byte, error) {
	var output strings.Builder

	output.WriteString(r.formatHeader("Tariff-AI Plan Recommendation Report"))
	output.WriteString("\n")

	output.WriteString(r.formatSummary(results))
	output.WriteString("\n")

	if len(results.PlanDistribution) > 0 {
		output.WriteString(r.formatPlanDistribution(results))
		output.WriteString("\n")
	}

	if len(results.Results) > 0 {
		output.WriteString(r.formatRecommendations(results.Results))
	} else {
		output.WriteString(r.colorize("No recommendations produced.\n", "yellow"))
	}

	if len(results.SkippedRows) > 0 {
		output.WriteString("\n")
		output.WriteString(r.formatSkippedRows(results.SkippedRows))
	}

	return []byte(output.String()), nil
}

// WriteReport writes the report to the specified writer
func (r *TableReporter) WriteReport(ctx context.Context, results *models.BatchResult, writer io.Writer) error {
	report, err := r.GenerateReport(ctx, results)
	if err != nil {
		return err
	}

	_, err = writer.Write(report)
	return err
}

// GetFormat returns the format name
func (r *TableReporter) GetFormat() string {
	return "table"
}

// GetFileExtension returns the file extension
func (r *TableReporter) GetFileExtension() string {
	return ".txt"
}

// Helper methods

func (r *TableReporter) formatHeader(title string) string {
	line := strings.Repeat("=", len(title)+4)
	return fmt.Sprintf("%s\n  %s  \n%s\n", line, title, line)
}

func (r *TableReporter) formatSummary(results *models.BatchResult) string {
	var output strings.Builder

	output.WriteString(r.colorize("Run Summary\n", "bold"))
	output.WriteString(strings.Repeat("-", 60) + "\n")
	output.WriteString(fmt.Sprintf("Run ID:          %s\n", results.RunID))
	output.WriteString(fmt.Sprintf("Customers:       %d total, %d processed, %d failed\n",
		results.TotalCustomers, results.Processed, results.Failed))
	if results.Resumed > 0 {
		output.WriteString(fmt.Sprintf("Resumed:         %d from checkpoint\n", results.Resumed))
	}
	output.WriteString(fmt.Sprintf("Catalog:         %d plans\n", results.TotalPlans))
	output.WriteString(fmt.Sprintf("Recommendations: %d records\n", results.RecordCount()))
	output.WriteString(fmt.Sprintf("Duration:        %s\n", results.Duration))

	return output.String()
}

func (r *TableReporter) formatPlanDistribution(results *models.BatchResult) string {
	var output strings.Builder

	output.WriteString(r.colorize("Top Pick Distribution\n", "bold"))
	output.WriteString(strings.Repeat("-", 60) + "\n")

	type planCount struct {
		name  string
		count int
	}
	counts := make([]planCount, 0, len(results.PlanDistribution))
	for name, n := range results.PlanDistribution {
		counts = append(counts, planCount{name, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})

	for _, pc := range counts {
		share := 0.0
		if results.Processed > 0 {
			share = float64(pc.count) / float64(results.Processed) * 100
		}
		output.WriteString(fmt.Sprintf("%-32s %5d  (%.1f%%)\n", pc.name, pc.count, share))
	}

	return output.String()
}

func (r *TableReporter) formatRecommendations(results []models.CustomerResult) string {
	var output strings.Builder

	output.WriteString(r.colorize("Recommendations\n", "bold"))
	output.WriteString(strings.Repeat("-", 60) + "\n")

	for i := range results {
		cr := &results[i]
		label := cr.CustomerID
		if cr.Cluster != "" {
			label = fmt.Sprintf("%s (cluster %s)", cr.CustomerID, cr.Cluster)
		}
		output.WriteString(r.colorize(label, "cyan") + "\n")

		records := cr.Recommendations
		if !r.verbose && len(records) > 1 {
			records = records[:1]
		}
		for _, rec := range records {
			output.WriteString(fmt.Sprintf("  %d. %-28s %-9s ₹%8.2f/mo  fit %.3f  score %.3f\n",
				rec.Rank, rec.PlanName, rec.PriceTier, rec.EstimatedCost,
				rec.Suitability, rec.FinalScore))
		}
	}
	if !r.verbose {
		output.WriteString(r.colorize("\nUse --verbose to see all ranked plans per customer\n", "cyan"))
	}

	return output.String()
}

func (r *TableReporter) formatSkippedRows(skipped []models.RowError) string {
	var output strings.Builder

	output.WriteString(r.colorize(fmt.Sprintf("Skipped Input Rows (%d)\n", len(skipped)), "yellow"))
	output.WriteString(strings.Repeat("-", 60) + "\n")

	show := skipped
	const maxShown = 10
	if !r.verbose && len(show) > maxShown {
		show = show[:maxShown]
	}
	for _, row := range show {
		output.WriteString(fmt.Sprintf("  %s line %d: %s\n", row.Source, row.Line, row.Reason))
	}
	if len(show) < len(skipped) {
		output.WriteString(fmt.Sprintf("  ... and %d more\n", len(skipped)-len(show)))
	}

	return output.String()
}

func (r *TableReporter) colorize(text, color string) string {
	if r.noColor {
		return text
	}

	colorCodes := map[string]string{
		"red":    "\033[31m",
		"green":  "\033[32m",
		"yellow": "\033[33m",
		"cyan":   "\033[36m",
		"bold":   "\033[1m",
		"reset":  "\033[0m",
	}

	if code, exists := colorCodes[color]; exists {
		return fmt.Sprintf("%s%s%s", code, text, colorCodes["reset"])
	}

	return text
}
