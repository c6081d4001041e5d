package scenario

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// StepResult records the outcome of one executed (or cache-served) invocation.
type StepResult struct {
	Position   int    `json:"position"`
	Command    string `json:"command"`
	ExitCode   int    `json:"exitCode"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMS int64  `json:"durationMs"`
	Cached     bool   `json:"cached"`
}

// RunSummary aggregates one full sequence run.
type RunSummary struct {
	Total     int          `json:"total"`
	Failed    int          `json:"failed"`
	CacheHits int          `json:"cacheHits"`
	Results   []StepResult `json:"results"`
}

// ResultCache serves previously recorded step results. Implementations must
// tolerate concurrent use; misses and errors both fall back to execution.
type ResultCache interface {
	Get(key string) (*StepResult, bool, error)
	Set(key string, result *StepResult) error
}

// CacheKey derives a cache key from the rendered command and, when the input
// file exists, its size and modification time, so edited samples miss.
func CacheKey(rendered, inputPath string) string {
	h := sha256.New()
	h.Write([]byte(rendered))
	if inputPath != "" {
		if stat, err := os.Stat(inputPath); err == nil {
			fmt.Fprintf(h, "|%d|%d", stat.Size(), stat.ModTime().UnixNano())
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Runner executes a sequence one invocation at a time, in order, recording
// each step's outcome. A failing step does not stop the run.
type Runner struct {
	tool     string
	executor Executor
	cache    ResultCache
}

// NewRunner creates a runner for the given tool. The cache may be nil.
func NewRunner(tool string, executor Executor, cache ResultCache) *Runner {
	return &Runner{
		tool:     tool,
		executor: executor,
		cache:    cache,
	}
}

// Run executes all invocations of the sequence sequentially and returns the
// collected results. It only errors when the context is cancelled or an
// invocation could not be started.
func (r *Runner) Run(ctx context.Context, sequence Sequence) (*RunSummary, error) {
	start := time.Now()

	slog.Info("starting scenario run",
		"step_count", len(sequence),
		"tool", r.tool)

	summary := &RunSummary{
		Total:   len(sequence),
		Results: make([]StepResult, 0, len(sequence)),
	}

	for idx, inv := range sequence {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rendered := inv.Render(r.tool)

		// Conversions write their output file; serving one from cache would
		// skip that side effect, so only read-only invocations are cached.
		cacheable := inv.OutputPath() == ""
		key := CacheKey(rendered, inv.InputPath())

		if cacheable {
			if cached, ok := r.cacheLookup(key); ok {
				cached.Position = idx
				cached.Cached = true
				summary.Results = append(summary.Results, *cached)
				summary.CacheHits++
				slog.Info("step served from cache",
					"index", idx,
					"command", rendered)
				continue
			}
		}

		stepStart := time.Now()
		slog.Info("executing step",
			"index", idx,
			"command", rendered)

		execResult, err := r.executor.Execute(ctx, inv)
		if err != nil {
			return summary, fmt.Errorf("step %d (%s) could not be started: %w", idx, rendered, err)
		}

		result := StepResult{
			Position:   idx,
			Command:    rendered,
			ExitCode:   execResult.ExitCode,
			Stdout:     execResult.Stdout,
			Stderr:     execResult.Stderr,
			DurationMS: time.Since(stepStart).Milliseconds(),
		}
		summary.Results = append(summary.Results, result)

		if result.ExitCode != 0 {
			summary.Failed++
			slog.Error("step failed",
				"index", idx,
				"command", rendered,
				"exit_code", result.ExitCode,
				"stderr", result.Stderr)
			continue
		}

		slog.Info("step completed",
			"index", idx,
			"command", rendered,
			"duration_ms", result.DurationMS)

		// Only successful read-only steps are cached
		if cacheable {
			r.cacheStore(key, &result)
		}
	}

	slog.Info("scenario run completed",
		"total_duration_ms", time.Since(start).Milliseconds(),
		"step_count", summary.Total,
		"failed", summary.Failed,
		"cache_hits", summary.CacheHits)

	return summary, nil
}

func (r *Runner) cacheLookup(key string) (*StepResult, bool) {
	if r.cache == nil {
		return nil, false
	}
	result, ok, err := r.cache.Get(key)
	if err != nil {
		slog.Warn("result cache lookup failed; executing step", "error", err)
		return nil, false
	}
	return result, ok
}

func (r *Runner) cacheStore(key string, result *StepResult) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(key, result); err != nil {
		slog.Warn("failed to store step result in cache", "error", err)
	}
}
