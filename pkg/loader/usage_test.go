package loader

import (
	"context"
	"strings"
	"testing"
)

func TestLoadUsageCSV(t *testing.T) {
	l := New(true)

	csv := `phone_number,total_mins,day_mins_share,eve_mins_share,night_mins_share,intl_mins_share,Cluster
415-0001,600,0.5,0.3,0.2,0.0,2
415-0002,0,0,0,0,0,1
`
	result, err := l.LoadUsageFromReader(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadUsageFromReader failed: %v", err)
	}
	if len(result.Profiles) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(result.Profiles))
	}

	p := result.Profiles[0]
	if p.CustomerID != "415-0001" || p.TotalMinutes != 600 || p.DayShare != 0.5 || p.ClusterLabel != "2" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestLoadUsageCSVIdentifierFallback(t *testing.T) {
	l := New(true)

	// No phone column: identifiers fall back to the row index.
	csv := `total_mins,day_mins_share,eve_mins_share,night_mins_share,intl_mins_share
600,0.5,0.3,0.2,0.0
300,0.4,0.4,0.2,0.0
`
	result, err := l.LoadUsageFromReader(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadUsageFromReader failed: %v", err)
	}
	if len(result.Profiles) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(result.Profiles))
	}
	if result.Profiles[0].CustomerID != "customer_1" || result.Profiles[1].CustomerID != "customer_2" {
		t.Fatalf("unexpected fallback identifiers: %q, %q",
			result.Profiles[0].CustomerID, result.Profiles[1].CustomerID)
	}
}

func TestLoadUsageCSVSkipsMalformedRow(t *testing.T) {
	l := New(true)

	csv := `phone_number,total_mins,day_mins_share,eve_mins_share,night_mins_share,intl_mins_share
415-0001,600,0.5,0.3,0.2,0.0
415-0002,not-a-number,0.5,0.3,0.2,0.0
415-0003,300,0.4,0.4,0.2,0.0
`
	result, err := l.LoadUsageFromReader(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadUsageFromReader failed: %v", err)
	}
	if len(result.Profiles) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(result.Profiles))
	}
	if len(result.SkippedRows) != 1 {
		t.Fatalf("got %d skipped rows, want 1", len(result.SkippedRows))
	}
	if !strings.Contains(result.SkippedRows[0].Reason, "total_mins") {
		t.Fatalf("unexpected skip reason: %q", result.SkippedRows[0].Reason)
	}
}

func TestLoadUsageCSVMissingColumn(t *testing.T) {
	l := New(true)

	csv := `phone_number,total_mins
415-0001,600
`
	if _, err := l.LoadUsageFromReader(context.Background(), strings.NewReader(csv)); err == nil {
		t.Fatal("expected schema error for missing share columns, got nil")
	}
}
