package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jo-hoe/imgsuite/internal/cache"
	"github.com/jo-hoe/imgsuite/internal/scenario"
	"github.com/jo-hoe/imgsuite/internal/storage"
)

// CoreService wires the scenario runner to the run store and the optional
// result cache, and owns their lifecycles.
type CoreService struct {
	config     *ServiceConfig
	store      storage.RunStore
	redisCache *cache.RedisCache
	runner     *scenario.Runner
}

func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	store, err := storage.NewRunStore(config.Database.Type, config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run store: %w", err)
	}
	slog.Info("run store initialized", "type", config.Database.Type)

	executor, err := scenario.NewExecutor(config.Tool.Type, config.Tool.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize executor: %w", err)
	}

	var redisCache *cache.RedisCache
	var resultCache scenario.ResultCache
	if config.Cache.Enabled {
		redisCache = cache.NewRedisCache(config.Cache.Address, time.Duration(config.Cache.TTLMinutes)*time.Minute)
		resultCache = redisCache
		slog.Info("result cache enabled", "address", config.Cache.Address)
	}

	return &CoreService{
		config:     config,
		store:      store,
		redisCache: redisCache,
		runner:     scenario.NewRunner(toolName(config.Tool), executor, resultCache),
	}, nil
}

// toolName is the token commands render with; the builtin tool keeps the
// external tool's name so rendered commands stay comparable across modes.
func toolName(tool Tool) string {
	if tool.Path != "" {
		return tool.Path
	}
	return "oiiotool"
}

// RunSuite builds the configured scenario and executes it, persisting the run
// and its per-step results.
func (service *CoreService) RunSuite(ctx context.Context) (*storage.Run, *scenario.RunSummary, error) {
	return service.RunSuiteWith(ctx, service.config.ImageDir, service.config.Samples)
}

// RunSuiteWith runs the scenario with an overridden sample corpus. Empty
// arguments fall back to the configured values.
func (service *CoreService) RunSuiteWith(ctx context.Context, imageDir string, samples []string) (*storage.Run, *scenario.RunSummary, error) {
	if imageDir == "" {
		imageDir = service.config.ImageDir
	}
	if len(samples) == 0 {
		samples = service.config.Samples
	}

	builder := scenario.NewBuilder(imageDir, samples, scenario.Conversion{
		Source: service.config.Conversion.Source,
		Target: service.config.Conversion.Target,
	})
	sequence, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build scenario: %w", err)
	}

	startedAt := time.Now().UTC()
	summary, err := service.runner.Run(ctx, sequence)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario run failed: %w", err)
	}

	run, err := service.persistRun(startedAt, summary)
	if err != nil {
		return nil, nil, err
	}
	return run, summary, nil
}

func (service *CoreService) persistRun(startedAt time.Time, summary *scenario.RunSummary) (*storage.Run, error) {
	id, err := storage.NewRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	run := &storage.Run{
		ID:         id,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Total:      summary.Total,
		Failed:     summary.Failed,
		CacheHits:  summary.CacheHits,
	}
	if err := service.store.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	for _, result := range summary.Results {
		record := &storage.StepRecord{
			RunID:      id,
			Position:   result.Position,
			Command:    result.Command,
			ExitCode:   result.ExitCode,
			Stdout:     result.Stdout,
			Stderr:     result.Stderr,
			DurationMS: result.DurationMS,
			Cached:     result.Cached,
		}
		if err := service.store.AddStepResult(record); err != nil {
			return nil, fmt.Errorf("failed to persist step result %d: %w", result.Position, err)
		}
	}

	return run, nil
}

// Runs returns the recorded suite runs, newest first.
func (service *CoreService) Runs() ([]*storage.Run, error) {
	return service.store.GetRuns()
}

// Run returns one recorded run, or nil when no run with that id exists.
func (service *CoreService) Run(id string) (*storage.Run, error) {
	return service.store.GetRun(id)
}

// StepResults returns the per-step results of one run in position order.
func (service *CoreService) StepResults(runID string) ([]*storage.StepRecord, error) {
	return service.store.GetStepResults(runID)
}

// DeleteRun removes a run and its step results.
func (service *CoreService) DeleteRun(id string) error {
	return service.store.DeleteRun(id)
}

// Close releases the run store and the cache connection.
func (service *CoreService) Close() error {
	var firstErr error
	if err := service.store.Close(); err != nil {
		firstErr = err
	}
	if service.redisCache != nil {
		if err := service.redisCache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
