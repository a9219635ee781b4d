package jobs

import (
	"context"
	"log"
	"time"

	"github.com/tradeflow/ordering-system/shared/telemetry"
)

// Recurring runs a named job on a fixed interval. A run that errors or
// panics is logged and counted; the next tick still fires. The job boundary
// never propagates failures upward.
type Recurring struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// NewRecurring creates a recurring job
func NewRecurring(name string, interval time.Duration, run func(ctx context.Context) error) *Recurring {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Recurring{
		name:     name,
		interval: interval,
		run:      run,
	}
}

// Start runs the job until the context is cancelled
func (j *Recurring) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *Recurring) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("job %s panicked: %v", j.name, r)
			telemetry.RecordCounter(ctx, "job_runs_failed_total", "Job runs that errored or panicked", 1)
		}
	}()

	ctx, span := telemetry.StartSpan(ctx, "job."+j.name)
	defer span.End()

	if err := j.run(ctx); err != nil {
		log.Printf("job %s failed: %v", j.name, err)
		telemetry.RecordCounter(ctx, "job_runs_failed_total", "Job runs that errored or panicked", 1)
	}
}
