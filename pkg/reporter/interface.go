package reporter

import (
	"context"
	"io"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// Reporter defines the interface for rendering batch recommendation results
type Reporter interface {
	// GenerateReport renders a report from batch results
	GenerateReport(ctx context.Context, results *models.BatchResult) ([]byte, error)

	// WriteReport writes a report to the specified writer
	WriteReport(ctx context.Context, results *models.BatchResult, writer io.Writer) error

	// GetFormat returns the format name of this reporter
	GetFormat() string

	// GetFileExtension returns the recommended file extension
	GetFileExtension() string
}

// ReportOptions defines options for report generation
type ReportOptions struct {
	// Format specifies the output format (table, json, yaml, csv)
	Format string

	// OutputFile specifies the output file path
	OutputFile string

	// NoColor disables colored output for table format
	NoColor bool

	// Verbose includes every recommendation record instead of top picks only
	Verbose bool
}
