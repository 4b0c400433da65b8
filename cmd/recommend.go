package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/checkpoint"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/config"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/engine"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/loader"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/progress"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/reporter"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/runner"
)

// BuiltinCatalogFS is the embedded builtin catalog filesystem, set by the main
// package before Execute runs.
var BuiltinCatalogFS fs.FS

// BuiltinCatalogPath is the catalog file path inside BuiltinCatalogFS.
var BuiltinCatalogPath string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate plan recommendations",
	Long:  `Generate ranked plan recommendations for customers against a plan catalog.`,
}

var recommendBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a customer population from a usage CSV",
	Long: `Score every customer in a usage CSV export against the plan catalog and
emit ranked recommendations per customer.

Malformed input rows are skipped and reported, never fatal. Long runs
checkpoint their progress; re-running with --run-id resumes an interrupted
run without recomputing completed customers.`,
	RunE: runRecommendBatch,
}

var recommendCustomerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Recommend plans for a single ad-hoc customer",
	RunE:  runRecommendCustomer,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.AddCommand(recommendBatchCmd)
	recommendCmd.AddCommand(recommendCustomerCmd)

	recommendBatchCmd.Flags().String("usage", "", "customer usage CSV file (required)")
	recommendBatchCmd.Flags().Int("top", 3, "number of recommendations per customer")
	recommendBatchCmd.Flags().Int("workers", 4, "number of parallel scoring workers")
	recommendBatchCmd.Flags().Int("checkpoint-every", 25, "customers between checkpoint saves")
	recommendBatchCmd.Flags().String("run-id", "", "resume a previous run by its ID")
	recommendBatchCmd.Flags().Bool("no-checkpoint", false, "disable run checkpointing")
	recommendBatchCmd.Flags().Bool("no-progress", false, "disable the progress bar")
	if err := recommendBatchCmd.MarkFlagRequired("usage"); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to mark usage flag required:", err)
	}

	recommendCustomerCmd.Flags().String("id", "customer_1", "customer identifier")
	recommendCustomerCmd.Flags().Float64("total", 0, "total monthly minutes (required)")
	recommendCustomerCmd.Flags().Float64("day", 0, "share of minutes in the day band")
	recommendCustomerCmd.Flags().Float64("eve", 0, "share of minutes in the evening band")
	recommendCustomerCmd.Flags().Float64("night", 0, "share of minutes in the night band")
	recommendCustomerCmd.Flags().Float64("intl", 0, "share of international minutes")
	recommendCustomerCmd.Flags().Int("top", 3, "number of recommendations")
	if err := recommendCustomerCmd.MarkFlagRequired("total"); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to mark total flag required:", err)
	}
}

func runRecommendBatch(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	ctx := cmd.Context()

	usagePath, _ := cmd.Flags().GetString("usage")
	topN, _ := cmd.Flags().GetInt("top")
	workers, _ := cmd.Flags().GetInt("workers")
	checkpointEvery, _ := cmd.Flags().GetInt("checkpoint-every")
	runID, _ := cmd.Flags().GetString("run-id")
	noCheckpoint, _ := cmd.Flags().GetBool("no-checkpoint")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	catalog, catalogSkipped, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	logger.Info("Loaded plan catalog", "plans", len(catalog), "skipped", len(catalogSkipped))

	l := loader.New(true)
	usageResult, err := l.LoadUsage(ctx, usagePath)
	if err != nil {
		return err
	}
	logger.Info("Loaded usage profiles",
		"customers", len(usageResult.Profiles),
		"skipped", len(usageResult.SkippedRows))

	opts := runner.Options{
		Workers:         workers,
		TopN:            topN,
		RunID:           runID,
		CheckpointEvery: checkpointEvery,
	}
	if !noCheckpoint {
		checkpointDir, err := config.GetCheckpointDir()
		if err != nil {
			return fmt.Errorf("failed to resolve checkpoint directory: %w", err)
		}
		opts.Store = checkpoint.NewStore(checkpointDir)
	}

	var bar *progress.ProgressBar
	if !noProgress {
		bar = progress.NewProgressBar(len(usageResult.Profiles), "Scoring customers")
		opts.OnProgress = func(completed, total int) {
			bar.Set(completed)
		}
	}

	r := runner.New(engine.New(logger), logger)
	result, err := r.Run(ctx, usageResult.Profiles, catalog, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	result.SkippedRows = append(result.SkippedRows, catalogSkipped...)
	result.SkippedRows = append(result.SkippedRows, usageResult.SkippedRows...)

	logger.Info("Batch run complete",
		"run_id", result.RunID,
		"processed", result.Processed,
		"failed", result.Failed,
		"duration", result.Duration)

	return writeReport(ctx, result)
}

func runRecommendCustomer(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	ctx := cmd.Context()

	id, _ := cmd.Flags().GetString("id")
	total, _ := cmd.Flags().GetFloat64("total")
	day, _ := cmd.Flags().GetFloat64("day")
	eve, _ := cmd.Flags().GetFloat64("eve")
	night, _ := cmd.Flags().GetFloat64("night")
	intl, _ := cmd.Flags().GetFloat64("intl")
	topN, _ := cmd.Flags().GetInt("top")

	catalog, catalogSkipped, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	profile := models.UsageProfile{
		CustomerID:   id,
		TotalMinutes: total,
		DayShare:     day,
		EveningShare: eve,
		NightShare:   night,
		IntlShare:    intl,
	}

	start := time.Now()
	r := runner.New(engine.New(logger), logger)
	result, err := r.Run(ctx, []models.UsageProfile{profile}, catalog, runner.Options{
		Workers: 1,
		TopN:    topN,
	})
	if err != nil {
		return err
	}
	result.Duration = time.Since(start)
	result.SkippedRows = append(result.SkippedRows, catalogSkipped...)

	return writeReport(ctx, result)
}

// loadCatalog resolves the --catalog flag: a URL, a local file, or the
// embedded builtin catalog when unset.
func loadCatalog(ctx context.Context) (models.Catalog, []models.RowError, error) {
	source := viper.GetString("catalog")
	l := loader.New(true)

	var (
		result *loader.CatalogResult
		err    error
	)
	switch {
	case source == "":
		if BuiltinCatalogFS == nil {
			return nil, nil, fmt.Errorf("no catalog specified and no builtin catalog available")
		}
		result, err = l.LoadCatalogFromFS(ctx, BuiltinCatalogFS, BuiltinCatalogPath)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		result, err = l.LoadCatalogFromURL(ctx, source)
	default:
		result, err = l.LoadCatalog(ctx, source)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(result.Plans) == 0 {
		return nil, nil, fmt.Errorf("catalog %q contains no usable plans", source)
	}

	return result.Plans, result.SkippedRows, nil
}

// writeReport renders the batch result in the configured format to stdout or
// the configured output file.
func writeReport(ctx context.Context, result *models.BatchResult) error {
	format := viper.GetString("output")
	noColor := viper.GetBool("no-color")
	outputFile := viper.GetString("output-file")

	factory := reporter.NewFactory()
	rep, err := factory.CreateReporterWithOptions(format, noColor, verbose)
	if err != nil {
		return err
	}

	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				GetLogger().Error("Failed to close output file", "path", outputFile, "error", err)
			}
		}()
		return rep.WriteReport(ctx, result, file)
	}

	return rep.WriteReport(ctx, result, os.Stdout)
}
