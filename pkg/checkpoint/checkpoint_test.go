package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

func TestSaveAndLoad(t *testing.T) {
	store := NewStore(t.TempDir())

	state := NewState("run-123")
	state.MarkDone(models.CustomerResult{
		CustomerID: "415-0001",
		Recommendations: []models.RecommendationRecord{
			{Rank: 1, PlanName: "Saver Lite", EstimatedCost: 199.00},
		},
	})

	if err := store.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("run-123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.IsDone("415-0001") {
		t.Fatal("completed customer lost across save/load")
	}
	if loaded.IsDone("415-0002") {
		t.Fatal("unknown customer reported as done")
	}
	recs := loaded.Completed["415-0001"].Recommendations
	if len(recs) != 1 || recs[0].PlanName != "Saver Lite" {
		t.Fatalf("unexpected recommendations after reload: %+v", recs)
	}
}

func TestLoadMissingRunYieldsFreshState(t *testing.T) {
	store := NewStore(t.TempDir())

	state, err := store.Load("never-saved")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if state.RunID != "never-saved" || len(state.Completed) != 0 {
		t.Fatalf("expected fresh empty state, got %+v", state)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	state := NewState("run-del")
	if err := store.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete("run-del"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "run-del.json")); !os.IsNotExist(err) {
		t.Fatalf("checkpoint file still present: %v", err)
	}
	loaded, err := store.Load("run-del")
	if err != nil {
		t.Fatalf("Load after delete failed: %v", err)
	}
	if len(loaded.Completed) != 0 {
		t.Fatal("checkpoint survived delete")
	}

	// Deleting a missing checkpoint is not an error.
	if err := store.Delete("run-del"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}
