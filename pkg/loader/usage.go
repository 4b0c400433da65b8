package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/validation"
)

// usageColumns is the required CSV header set for usage exports. The customer
// identifier and cluster columns are discovered separately: identifier by a
// "phone" substring match, cluster by the upstream "Cluster" column.
var usageColumns = []string{
	"total_mins",
	"day_mins_share", "eve_mins_share", "night_mins_share", "intl_mins_share",
}

// LoadUsage loads customer usage profiles from a CSV file.
func (l *Loader) LoadUsage(ctx context.Context, path string) (*UsageResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage file %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close usage file", "path", path, "error", err)
		}
	}()

	return l.LoadUsageFromReader(ctx, file)
}

// LoadUsageFromReader loads customer usage profiles from a CSV reader.
// Malformed rows are skipped and reported, never fatal.
func (l *Loader) LoadUsageFromReader(ctx context.Context, reader io.Reader) (*UsageResult, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read usage header: %w", err)
	}
	cols, err := indexColumns(header, usageColumns)
	if err != nil {
		return nil, fmt.Errorf("invalid usage schema: %w", err)
	}

	// The identifier column name varies across upstream exports; any column
	// containing "phone" serves, with the row index as last resort.
	idCol := -1
	for i, h := range header {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), "phone") {
			idCol = i
			break
		}
	}
	clusterCol := -1
	if i, ok := cols["Cluster"]; ok {
		clusterCol = i
	}

	result := &UsageResult{}
	row := 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.SkippedRows = append(result.SkippedRows, models.RowError{
				Source: "usage", Line: line, Reason: err.Error(),
			})
			continue
		}
		row++

		profile, err := usageFromRecord(record, cols, idCol, clusterCol, row)
		if err != nil {
			result.SkippedRows = append(result.SkippedRows, models.RowError{
				Source: "usage", Line: line, Reason: err.Error(),
			})
			continue
		}
		if l.validate {
			if v := validation.ValidateUsage(&profile); !v.Valid {
				result.SkippedRows = append(result.SkippedRows, models.RowError{
					Source: "usage", Line: line, Reason: v.Errors[0].Error(),
				})
				continue
			}
		}
		result.Profiles = append(result.Profiles, profile)
	}

	return result, nil
}

func usageFromRecord(record []string, cols map[string]int, idCol, clusterCol, row int) (models.UsageProfile, error) {
	var profile models.UsageProfile

	if idCol >= 0 && idCol < len(record) && strings.TrimSpace(record[idCol]) != "" {
		profile.CustomerID = strings.TrimSpace(record[idCol])
	} else {
		profile.CustomerID = fmt.Sprintf("customer_%d", row)
	}
	if clusterCol >= 0 && clusterCol < len(record) {
		profile.ClusterLabel = strings.TrimSpace(record[clusterCol])
	}

	fields := []struct {
		col string
		dst *float64
	}{
		{"total_mins", &profile.TotalMinutes},
		{"day_mins_share", &profile.DayShare},
		{"eve_mins_share", &profile.EveningShare},
		{"night_mins_share", &profile.NightShare},
		{"intl_mins_share", &profile.IntlShare},
	}
	for _, f := range fields {
		idx := cols[f.col]
		if idx >= len(record) || strings.TrimSpace(record[idx]) == "" {
			return profile, fmt.Errorf("missing field %s", f.col)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		if err != nil {
			return profile, fmt.Errorf("non-numeric %s: %q", f.col, record[idx])
		}
		*f.dst = v
	}

	return profile, nil
}
