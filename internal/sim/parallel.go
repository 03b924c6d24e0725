package sim

import (
	"context"
	"sync"

	"github.com/san-kum/rigidsim/internal/world"
)

// Job is one independent run in a batch. Setup populates a fresh World.
type Job struct {
	Name    string
	Config  Config
	Setup   func(w *world.World) error
	Metrics func() []Metric
}

// RunBatch runs each job on its own World concurrently. Results are in job
// order; the first setup or run error is returned.
func RunBatch(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			job := jobs[idx]
			w := world.New()
			if job.Setup != nil {
				if err := job.Setup(w); err != nil {
					errs[idx] = err
					return
				}
			}

			sim := New(w)
			if job.Metrics != nil {
				for _, m := range job.Metrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, job.Config)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
