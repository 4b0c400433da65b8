package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/validation"
)

var logger = slog.Default()

// catalogColumns is the required CSV header set for plan catalogs, matching
// the upstream data export.
var catalogColumns = []string{
	"plan_name", "monthly_rental",
	"rate_local_day", "rate_local_eve", "rate_local_night", "rate_intl",
	"free_day", "free_eve", "free_night", "free_intl",
}

// Loader implements CatalogLoader and UsageLoader for CSV and YAML sources.
type Loader struct {
	validate bool
	client   *http.Client
}

// New creates a loader. When validate is true, rows failing field validation
// are rejected individually and reported as skipped.
func New(validate bool) *Loader {
	return &Loader{
		validate: validate,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// LoadCatalog loads a plan catalog from a file path, dispatching on the file
// extension.
func (l *Loader) LoadCatalog(ctx context.Context, path string) (*CatalogResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close catalog file", "path", path, "error", err)
		}
	}()

	return l.LoadCatalogFromReader(ctx, file, formatForPath(path))
}

// LoadCatalogFromFS loads a plan catalog from a filesystem, typically the
// embedded builtin catalog.
func (l *Loader) LoadCatalogFromFS(ctx context.Context, fsys fs.FS, path string) (*CatalogResult, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded catalog %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close embedded catalog", "path", path, "error", err)
		}
	}()

	return l.LoadCatalogFromReader(ctx, file, formatForPath(path))
}

// LoadCatalogFromReader loads a catalog in the named format ("csv" or "yaml")
// from a reader.
func (l *Loader) LoadCatalogFromReader(ctx context.Context, reader io.Reader, format string) (*CatalogResult, error) {
	switch strings.ToLower(format) {
	case "csv":
		return l.parseCatalogCSV(reader)
	case "yaml", "yml":
		return l.parseCatalogYAML(reader)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", format)
	}
}

// LoadCatalogFromURL fetches a catalog over HTTP(S) and parses it by the URL's
// extension, defaulting to YAML.
func (l *Loader) LoadCatalogFromURL(ctx context.Context, url string) (*CatalogResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("Failed to close catalog response", "url", url, "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog from %s: status %d", url, resp.StatusCode)
	}

	return l.LoadCatalogFromReader(ctx, resp.Body, formatForPath(url))
}

// parseCatalogCSV reads a catalog in the upstream CSV column layout. A
// malformed row is skipped and reported; a missing required column is a
// schema error that fails the whole file.
func (l *Loader) parseCatalogCSV(reader io.Reader) (*CatalogResult, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	cols, err := indexColumns(header, catalogColumns)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog schema: %w", err)
	}

	result := &CatalogResult{}
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.SkippedRows = append(result.SkippedRows, models.RowError{
				Source: "catalog", Line: line, Reason: err.Error(),
			})
			continue
		}

		plan, err := planFromRecord(record, cols)
		if err != nil {
			result.SkippedRows = append(result.SkippedRows, models.RowError{
				Source: "catalog", Line: line, Reason: err.Error(),
			})
			continue
		}
		if l.validate {
			if v := validation.ValidatePlan(&plan); !v.Valid {
				result.SkippedRows = append(result.SkippedRows, models.RowError{
					Source: "catalog", Line: line, Reason: v.Errors[0].Error(),
				})
				continue
			}
		}
		result.Plans = append(result.Plans, plan)
	}

	return result, nil
}

// catalogDocument is the native YAML catalog file format.
type catalogDocument struct {
	Plans []models.Plan `yaml:"plans"`
}

func (l *Loader) parseCatalogYAML(reader io.Reader) (*CatalogResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog data: %w", err)
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog YAML: %w", err)
	}

	result := &CatalogResult{}
	for i, plan := range doc.Plans {
		if l.validate {
			if v := validation.ValidatePlan(&plan); !v.Valid {
				result.SkippedRows = append(result.SkippedRows, models.RowError{
					Source: "catalog", Line: i + 1, Reason: v.Errors[0].Error(),
				})
				continue
			}
		}
		result.Plans = append(result.Plans, plan)
	}

	return result, nil
}

func planFromRecord(record []string, cols map[string]int) (models.Plan, error) {
	field := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(record) {
			return "", fmt.Errorf("missing field %s", name)
		}
		v := strings.TrimSpace(record[idx])
		if v == "" {
			return "", fmt.Errorf("missing field %s", name)
		}
		return v, nil
	}

	var plan models.Plan
	name, err := field("plan_name")
	if err != nil {
		return plan, err
	}
	plan.Name = name

	floats := []struct {
		col string
		dst *float64
	}{
		{"monthly_rental", &plan.MonthlyRental},
		{"rate_local_day", &plan.RateDay},
		{"rate_local_eve", &plan.RateEvening},
		{"rate_local_night", &plan.RateNight},
		{"rate_intl", &plan.RateIntl},
	}
	for _, f := range floats {
		raw, err := field(f.col)
		if err != nil {
			return plan, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return plan, fmt.Errorf("non-numeric %s: %q", f.col, raw)
		}
		*f.dst = v
	}

	ints := []struct {
		col string
		dst *int
	}{
		{"free_day", &plan.FreeDay},
		{"free_eve", &plan.FreeEvening},
		{"free_night", &plan.FreeNight},
		{"free_intl", &plan.FreeIntl},
	}
	for _, f := range ints {
		raw, err := field(f.col)
		if err != nil {
			return plan, err
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return plan, fmt.Errorf("non-numeric %s: %q", f.col, raw)
		}
		*f.dst = v
	}

	return plan, nil
}

// indexColumns maps required column names to their positions in the header,
// trimming whitespace the way upstream exports need.
func indexColumns(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return idx, nil
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".yml":
		return "yaml"
	default:
		return "yaml"
	}
}
