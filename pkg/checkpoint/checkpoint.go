package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// Store persists batch progress on disk so an interrupted run can resume
// without recomputing completed customers. One JSON file per run ID.
type Store struct {
	dir string
}

// NewStore creates a checkpoint store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// State is the persisted progress of one batch run.
type State struct {
	RunID     string                           `json:"run_id"`
	StartedAt time.Time                        `json:"started_at"`
	UpdatedAt time.Time                        `json:"updated_at"`
	Completed map[string]models.CustomerResult `json:"completed"`
}

// NewState creates an empty state for a run.
func NewState(runID string) *State {
	return &State{
		RunID:     runID,
		StartedAt: time.Now(),
		Completed: make(map[string]models.CustomerResult),
	}
}

// MarkDone records one customer's finished result.
func (s *State) MarkDone(result models.CustomerResult) {
	if s.Completed == nil {
		s.Completed = make(map[string]models.CustomerResult)
	}
	s.Completed[result.CustomerID] = result
}

// IsDone reports whether a customer has already been processed.
func (s *State) IsDone(customerID string) bool {
	_, ok := s.Completed[customerID]
	return ok
}

// Load reads the state for a run ID. A run with no checkpoint yields a fresh
// empty state, not an error.
func (st *Store) Load(runID string) (*State, error) {
	data, err := os.ReadFile(st.path(runID))
	if os.IsNotExist(err) {
		return NewState(runID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint for run %s: %w", runID, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint for run %s: %w", runID, err)
	}
	if state.Completed == nil {
		state.Completed = make(map[string]models.CustomerResult)
	}
	return &state, nil
}

// Save writes the state to disk. The write goes through a temporary file and
// rename so an interrupt mid-save cannot corrupt the previous checkpoint.
func (st *Store) Save(state *State) error {
	if err := os.MkdirAll(st.dir, 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	tmp := st.path(state.RunID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, st.path(state.RunID)); err != nil {
		return fmt.Errorf("failed to commit checkpoint: %w", err)
	}
	return nil
}

// Delete removes the checkpoint for a run, typically after a successful
// finish.
func (st *Store) Delete(runID string) error {
	err := os.Remove(st.path(runID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete checkpoint for run %s: %w", runID, err)
	}
	return nil
}

func (st *Store) path(runID string) string {
	return filepath.Join(st.dir, runID+".json")
}
