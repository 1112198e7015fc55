package sim

import (
	"context"
	"sync"

	"github.com/san-kum/heroviz/internal/scene"
)

// Ensemble runs independently seeded scenes concurrently. Each run gets
// its own scene and its own metric instances; only the stepper, which is
// stateless, is shared.
type Ensemble struct {
	stepper   *Stepper
	numRuns   int
	seedStart int64
}

func NewEnsemble(stepper *Stepper, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{stepper: stepper, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, populate func(seed int64) *scene.Scene, metrics func() []Metric, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(e.stepper)
			if metrics != nil {
				for _, m := range metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, populate(e.seedStart+int64(idx)), cfg)
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
