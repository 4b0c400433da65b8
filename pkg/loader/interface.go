package loader

import (
	"context"
	"io"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// CatalogLoader defines the interface for loading plan catalogs from the
// supported sources. Malformed rows fail individually and are reported in
// LoadResult, never as a load error.
type CatalogLoader interface {
	// LoadCatalog loads a catalog from a file path, dispatching on extension
	// (.csv, .yaml, .yml).
	LoadCatalog(ctx context.Context, path string) (*CatalogResult, error)

	// LoadCatalogFromReader loads a catalog in the named format from a reader.
	LoadCatalogFromReader(ctx context.Context, reader io.Reader, format string) (*CatalogResult, error)

	// LoadCatalogFromURL fetches and loads a catalog over HTTP(S).
	LoadCatalogFromURL(ctx context.Context, url string) (*CatalogResult, error)
}

// UsageLoader defines the interface for loading customer usage profiles.
type UsageLoader interface {
	// LoadUsage loads usage profiles from a CSV file.
	LoadUsage(ctx context.Context, path string) (*UsageResult, error)

	// LoadUsageFromReader loads usage profiles from a CSV reader.
	LoadUsageFromReader(ctx context.Context, reader io.Reader) (*UsageResult, error)
}

// CatalogResult is a loaded catalog plus the rows that were rejected.
type CatalogResult struct {
	Plans       models.Catalog    `json:"plans"`
	SkippedRows []models.RowError `json:"skipped_rows,omitempty"`
}

// UsageResult is a loaded customer population plus the rows that were rejected.
type UsageResult struct {
	Profiles    []models.UsageProfile `json:"profiles"`
	SkippedRows []models.RowError     `json:"skipped_rows,omitempty"`
}
