// Package engine orchestrates scheduled catalog maintenance: the periodic
// revaluation pass that keeps derived size data in step with the parser.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pantrylab/shelfmatch/internal/catalog"
	"github.com/pantrylab/shelfmatch/internal/metrics"
	"github.com/pantrylab/shelfmatch/internal/notify"
	"github.com/pantrylab/shelfmatch/internal/store"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// JobRevalue is the job name recorded for revaluation runs.
const JobRevalue = "revalue"

// Engine runs catalog maintenance jobs with job-run bookkeeping.
type Engine struct {
	store    store.Store
	catalog  *catalog.Service
	notifier notify.Notifier
	log      *slog.Logger
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(s store.Store, c *catalog.Service, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:   s,
		catalog: c,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNotifier sets the notifier used for failed-run alerts.
func WithNotifier(n notify.Notifier) EngineOption {
	return func(e *Engine) {
		e.notifier = n
	}
}

// RunRevalue executes one revaluation pass over the whole catalog,
// recording the run in job_runs. The pass itself is idempotent, so a
// failed run can simply be retried on the next tick.
func (eng *Engine) RunRevalue(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.RevalueDuration.Observe(time.Since(start).Seconds())
	}()

	runID, err := eng.store.InsertJobRun(ctx, JobRevalue)
	if err != nil {
		return fmt.Errorf("recording job start: %w", err)
	}

	rows, revalueErr := eng.catalog.Revalue(ctx)
	metrics.RevalueRowsTotal.Add(float64(rows))

	status := domain.JobStatusSucceeded
	errText := ""
	if revalueErr != nil {
		status = domain.JobStatusFailed
		errText = revalueErr.Error()
	}

	if err := eng.store.CompleteJobRun(ctx, runID, status, errText, rows); err != nil {
		eng.log.Error("completing job run failed", "job", JobRevalue, "error", err)
	}

	if revalueErr != nil {
		eng.alertFailure(ctx, errText, rows, time.Since(start))
		return fmt.Errorf("revaluing catalog: %w", revalueErr)
	}

	eng.log.Info("revaluation complete",
		"rows", rows,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// alertFailure delivers a failed-run alert on a best-effort basis.
func (eng *Engine) alertFailure(ctx context.Context, errText string, rows int, d time.Duration) {
	if eng.notifier == nil {
		return
	}

	alert := &notify.JobAlert{
		JobName:  JobRevalue,
		Status:   domain.JobStatusFailed,
		Error:    errText,
		Rows:     rows,
		Duration: d.Round(time.Millisecond),
	}
	if err := eng.notifier.SendJobAlert(ctx, alert); err != nil {
		eng.log.Error("sending job alert failed", "job", JobRevalue, "error", err)
	}
}
