package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fortimon/pkg/firmware"
	"fortimon/pkg/models"
	"fortimon/pkg/section"
)

// Options control a batch run.
type Options struct {
	Discovery   bool                    // Run discovery instead of checks
	Concurrency int                     // Max tasks evaluated at once; <= 0 means unlimited
	Defaults    models.EvaluationConfig // Used when neither the section nor the task params say otherwise
}

// Run executes every task and returns results in input order.
// Checks share no state, so tasks are evaluated concurrently.
func Run(ctx context.Context, reg *Registry, tasks []Task, opts Options) ([]Result, error) {
	results := make([]Result, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Execute(reg, task, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run tasks: %w", err)
	}
	return results, nil
}

// Execute runs a single task. Failures are reported in the result, never returned.
func Execute(reg *Registry, task Task, opts Options) Result {
	out := Result{
		MonitorID: task.MonitorID,
		Target:    task.Target,
		Plugin:    task.Section,
	}

	registration, err := reg.Lookup(task.Section)
	if err != nil {
		slog.Warn("Task rejected", "component", "Runner", "target", task.Target, "error", err)
		out.Error = err.Error()
		return out
	}
	out.Service = registration.ServiceName

	sec := task.Parsed()

	if opts.Discovery {
		out.Success = true
		out.Discovered = registration.Discover(sec)
		slog.Debug("Discovery finished", "component", "Runner", "plugin", registration.Name, "target", task.Target, "discovered", out.Discovered)
		return out
	}

	cfg, err := resolveConfig(task, sec, opts.Defaults)
	if err != nil {
		slog.Warn("Invalid check parameters", "component", "Runner", "target", task.Target, "error", err)
		out.Error = err.Error()
		return out
	}

	res := registration.Check(sec, cfg)
	out.Success = true
	out.State = &res.State
	out.Summary = res.Summary
	out.Details = res.Details
	out.Metrics = res.Metrics

	slog.Debug("Check finished", "component", "Runner", "plugin", registration.Name, "target", task.Target, "state", res.State.String(), "metric_count", len(res.Metrics))
	return out
}

// resolveConfig layers defaults, the section's embedded config and the task's rule.
func resolveConfig(task Task, sec section.Section, defaults models.EvaluationConfig) (models.EvaluationConfig, error) {
	cfg := firmware.ConfigFromSection(sec, defaults)
	if len(task.Params) == 0 {
		return cfg, nil
	}

	var params models.CheckParams
	if err := json.Unmarshal(task.Params, &params); err != nil {
		return cfg, fmt.Errorf("%w: %v", models.ErrInvalidParams, err)
	}
	return params.Apply(cfg), nil
}
