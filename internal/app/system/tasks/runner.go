// Package tasks runs the service's recurring maintenance jobs in the
// background: revision log trimming, stale chat transcript cleanup, and
// request ledger purging. Jobs are registered at startup and each runs on
// its own goroutine until shutdown.
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one recurring maintenance task. Run fires once when the runner
// starts, so retention catches up immediately after a restart, and then
// every Interval. The context it receives is cancelled on Stop; jobs that
// scan collections are expected to honor it.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner executes registered jobs on their intervals.
type Runner struct {
	logger *zap.Logger
	jobs   []Job

	mu     sync.Mutex
	active map[string]struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty runner. Register jobs before calling Start.
func New(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
		active: make(map[string]struct{}),
	}
}

// Register adds a job to the runner. Not safe to call after Start.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches one goroutine per registered job.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, job)
	}

	r.logger.Info("maintenance jobs started", zap.Int("jobs", len(r.jobs)))
}

// Stop cancels every job's context and waits for in-flight runs to finish.
// If ctx expires first, the names of the jobs still running are logged and
// ctx.Err() is returned; the binary is exiting anyway, so a stuck job only
// costs visibility, not correctness.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("maintenance jobs stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("shutdown gave up waiting for maintenance jobs",
			zap.Strings("still_running", r.stillRunning()))
		return ctx.Err()
	}
}

// RunOnce triggers a job by name outside its schedule, used by tests and
// manual maintenance. An unknown name is a no-op.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	for _, job := range r.jobs {
		if job.Name == name {
			return job.Run(ctx)
		}
	}
	return nil
}

func (r *Runner) loop(ctx context.Context, job Job) {
	defer r.wg.Done()

	r.run(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.run(ctx, job)
		}
	}
}

func (r *Runner) run(ctx context.Context, job Job) {
	r.mu.Lock()
	r.active[job.Name] = struct{}{}
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.active, job.Name)
		r.mu.Unlock()
	}()

	start := time.Now()
	err := job.Run(ctx)
	switch {
	case err == nil:
		r.logger.Debug("maintenance job finished",
			zap.String("job", job.Name),
			zap.Duration("took", time.Since(start)))
	case ctx.Err() != nil:
		// Interrupted by shutdown, not a failure.
		r.logger.Debug("maintenance job interrupted",
			zap.String("job", job.Name))
	default:
		r.logger.Error("maintenance job failed",
			zap.String("job", job.Name),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
	}
}

func (r *Runner) stillRunning() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.active))
	for name := range r.active {
		names = append(names, name)
	}
	return names
}
