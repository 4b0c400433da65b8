package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/checkpoint"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/engine"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
)

// Options controls a batch run.
type Options struct {
	// Workers is the number of concurrent scoring goroutines. Values below 1
	// fall back to 1.
	Workers int

	// TopN is the number of recommendations produced per customer.
	TopN int

	// RunID identifies the run. Empty means a fresh run with a generated ID;
	// a previous run's ID resumes from its checkpoint when Store is set.
	RunID string

	// Store enables periodic checkpointing and resume. Nil disables both.
	Store *checkpoint.Store

	// CheckpointEvery is the number of completed customers between checkpoint
	// saves. Values below 1 fall back to 25.
	CheckpointEvery int

	// OnProgress, when set, is called after each customer completes.
	OnProgress func(completed, total int)
}

// BatchRunner scores a customer population against a plan catalog using a
// worker pool.
type BatchRunner struct {
	engine engine.RecommendationEngine
	logger *slog.Logger
}

// New creates a batch runner.
func New(eng engine.RecommendationEngine, logger *slog.Logger) *BatchRunner {
	return &BatchRunner{engine: eng, logger: logger}
}

// indexedResult carries the input position so output order stays deterministic
// regardless of worker scheduling.
type indexedResult struct {
	index  int
	result models.CustomerResult
}

// Run scores every profile against the catalog and aggregates the outcome.
// Per-customer failures are absorbed and counted, never fatal; only context
// cancellation aborts the run, and an aborted run leaves a resumable
// checkpoint behind when a store is configured.
func (r *BatchRunner) Run(ctx context.Context, profiles []models.UsageProfile, catalog models.Catalog, opts Options) (*models.BatchResult, error) {
	startTime := time.Now()

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	checkpointEvery := opts.CheckpointEvery
	if checkpointEvery < 1 {
		checkpointEvery = 25
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	state := checkpoint.NewState(runID)
	if opts.Store != nil {
		loaded, err := opts.Store.Load(runID)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		state = loaded
	}

	// Partition the population into already-done and pending work.
	resumed := make([]indexedResult, 0)
	pending := make([]int, 0, len(profiles))
	for i := range profiles {
		if state.IsDone(profiles[i].CustomerID) {
			resumed = append(resumed, indexedResult{
				index:  i,
				result: state.Completed[profiles[i].CustomerID],
			})
			continue
		}
		pending = append(pending, i)
	}
	if len(resumed) > 0 {
		r.logger.Info("Resuming batch run",
			"run_id", runID,
			"already_done", len(resumed),
			"pending", len(pending))
	}

	jobChan := make(chan int, len(pending))
	resultChan := make(chan indexedResult, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resultChan <- indexedResult{
					index:  idx,
					result: r.scoreCustomer(profiles[idx], catalog, opts.TopN),
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, idx := range pending {
			select {
			case jobChan <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	completed := append([]indexedResult(nil), resumed...)
	sinceCheckpoint := 0
	for res := range resultChan {
		completed = append(completed, res)
		state.MarkDone(res.result)

		sinceCheckpoint++
		if opts.Store != nil && sinceCheckpoint >= checkpointEvery {
			if err := opts.Store.Save(state); err != nil {
				r.logger.Warn("Failed to save checkpoint", "run_id", runID, "error", err)
			}
			sinceCheckpoint = 0
		}
		if opts.OnProgress != nil {
			opts.OnProgress(len(completed), len(profiles))
		}
	}

	if err := ctx.Err(); err != nil {
		if opts.Store != nil {
			if saveErr := opts.Store.Save(state); saveErr != nil {
				r.logger.Warn("Failed to save checkpoint", "run_id", runID, "error", saveErr)
			}
		}
		return nil, fmt.Errorf("batch run %s interrupted: %w", runID, err)
	}

	if opts.Store != nil {
		if err := opts.Store.Delete(runID); err != nil {
			r.logger.Warn("Failed to clean up checkpoint", "run_id", runID, "error", err)
		}
	}

	return r.aggregate(runID, profiles, catalog, completed, len(resumed), startTime), nil
}

// scoreCustomer produces one customer's ranked recommendation records.
func (r *BatchRunner) scoreCustomer(usage models.UsageProfile, catalog models.Catalog, topN int) models.CustomerResult {
	result := models.CustomerResult{
		CustomerID: usage.CustomerID,
		Cluster:    usage.ClusterLabel,
	}

	candidates := r.engine.Recommend(usage, catalog, topN)
	for i, c := range candidates {
		result.Recommendations = append(result.Recommendations, models.RecommendationRecord{
			CustomerID:    usage.CustomerID,
			Cluster:       usage.ClusterLabel,
			PlanName:      c.PlanName,
			Category:      c.Category,
			PriceTier:     c.PriceTier,
			EstimatedCost: c.MonthlyCost,
			Suitability:   c.Suitability,
			FinalScore:    c.FinalScore,
			Rank:          i + 1,
		})
	}
	return result
}

func (r *BatchRunner) aggregate(runID string, profiles []models.UsageProfile, catalog models.Catalog, completed []indexedResult, resumed int, startTime time.Time) *models.BatchResult {
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].index < completed[j].index
	})

	batch := &models.BatchResult{
		RunID:            runID,
		TotalCustomers:   len(profiles),
		Resumed:          resumed,
		TotalPlans:       len(catalog),
		PlanDistribution: make(map[string]int),
		Timestamp:        startTime,
		Duration:         time.Since(startTime),
	}

	for _, res := range completed {
		if len(res.result.Recommendations) == 0 {
			// No plan in the catalog was scorable for this customer.
			batch.Failed++
			r.logger.Warn("No recommendations produced", "customer", res.result.CustomerID)
			continue
		}
		batch.Processed++
		batch.Results = append(batch.Results, res.result)
		batch.PlanDistribution[res.result.Recommendations[0].PlanName]++
	}

	return batch
}
