package loader

import (
	"context"
	"strings"
	"testing"
)

const catalogCSV = `plan_name,monthly_rental,rate_local_day,rate_local_eve,rate_local_night,rate_intl,free_day,free_eve,free_night,free_intl
Saver Lite,149,1.5,1.2,0.8,6,100,80,60,0
Saver Plus,229,1.2,1.0,0.6,6,200,150,100,0
Premium Talk,449,0.8,0.8,0.5,4,500,350,250,50
`

func TestLoadCatalogCSV(t *testing.T) {
	l := New(true)

	result, err := l.LoadCatalogFromReader(context.Background(), strings.NewReader(catalogCSV), "csv")
	if err != nil {
		t.Fatalf("LoadCatalogFromReader failed: %v", err)
	}
	if len(result.Plans) != 3 {
		t.Fatalf("loaded %d plans, want 3", len(result.Plans))
	}
	if len(result.SkippedRows) != 0 {
		t.Fatalf("unexpected skipped rows: %v", result.SkippedRows)
	}

	plan := result.Plans[2]
	if plan.Name != "Premium Talk" || plan.MonthlyRental != 449 || plan.FreeIntl != 50 {
		t.Fatalf("unexpected plan fields: %+v", plan)
	}
	if plan.Category() != "Premium" {
		t.Fatalf("Category = %q, want Premium", plan.Category())
	}
}

func TestLoadCatalogCSVSkipsMalformedRow(t *testing.T) {
	l := New(true)

	// Second row has an empty rate_intl: that row fails, the rest load.
	csv := `plan_name,monthly_rental,rate_local_day,rate_local_eve,rate_local_night,rate_intl,free_day,free_eve,free_night,free_intl
Saver Lite,149,1.5,1.2,0.8,6,100,80,60,0
Saver Broken,229,1.2,1.0,0.6,,200,150,100,0
Premium Talk,449,0.8,0.8,0.5,4,500,350,250,50
`
	result, err := l.LoadCatalogFromReader(context.Background(), strings.NewReader(csv), "csv")
	if err != nil {
		t.Fatalf("LoadCatalogFromReader failed: %v", err)
	}
	if len(result.Plans) != 2 {
		t.Fatalf("loaded %d plans, want 2", len(result.Plans))
	}
	if len(result.SkippedRows) != 1 {
		t.Fatalf("got %d skipped rows, want 1", len(result.SkippedRows))
	}
	skipped := result.SkippedRows[0]
	if skipped.Line != 3 || !strings.Contains(skipped.Reason, "rate_intl") {
		t.Fatalf("unexpected skip record: %+v", skipped)
	}
}

func TestLoadCatalogCSVMissingColumn(t *testing.T) {
	l := New(true)

	csv := `plan_name,monthly_rental,rate_local_day
Saver Lite,149,1.5
`
	if _, err := l.LoadCatalogFromReader(context.Background(), strings.NewReader(csv), "csv"); err == nil {
		t.Fatal("expected schema error for missing columns, got nil")
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	l := New(true)

	doc := `plans:
  - plan_name: Saver Lite
    monthly_rental: 149
    rate_local_day: 1.5
    rate_local_eve: 1.2
    rate_local_night: 0.8
    rate_intl: 6
    free_day: 100
    free_eve: 80
    free_night: 60
    free_intl: 0
  - plan_name: ""
    monthly_rental: 229
`
	result, err := l.LoadCatalogFromReader(context.Background(), strings.NewReader(doc), "yaml")
	if err != nil {
		t.Fatalf("LoadCatalogFromReader failed: %v", err)
	}
	if len(result.Plans) != 1 {
		t.Fatalf("loaded %d plans, want 1", len(result.Plans))
	}
	if len(result.SkippedRows) != 1 {
		t.Fatalf("got %d skipped rows, want 1 (nameless plan)", len(result.SkippedRows))
	}
}

func TestLoadCatalogUnsupportedFormat(t *testing.T) {
	l := New(true)
	if _, err := l.LoadCatalogFromReader(context.Background(), strings.NewReader(""), "xml"); err == nil {
		t.Fatal("expected error for unsupported format, got nil")
	}
}
