package harness

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/pokebattle-sim/lib/catalog"
)

// BatchResult is one scenario replica's outcome, tagged with its index for
// deterministic reassembly regardless of goroutine completion order.
type BatchResult struct {
	Index  int
	Seed   int64
	Result Result
	Err    error
}

// RunBatch runs n independent replicas of base, each seeded base.Seed+i and
// each with its own event bus, RNG, and log — no shared mutable state
// between them (spec §5: "Concurrent batches"). With stopOnError, the launch
// loop stops starting new replicas once a replica has recorded an error.
// Replicas are launched without waiting for earlier ones, so only those not
// yet started at that moment are skipped; started replicas still finish (no
// mid-action cancellation, spec §5), and skipped slots stay zero-valued
// BatchResults in the returned slice.
func RunBatch(base Scenario, n int, store *catalog.Store, startTime time.Time, stopOnError bool) []BatchResult {
	results := make([]BatchResult, n)
	var wg sync.WaitGroup
	var mu sync.Mutex
	aborted := false

	for i := 0; i < n; i++ {
		mu.Lock()
		if stopOnError && aborted {
			mu.Unlock()
			break
		}
		mu.Unlock()

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scenario := base
			scenario.Name = fmt.Sprintf("%s[%d]", base.Name, i)
			scenario.Seed = base.Seed + int64(i)

			res, err := RunScenario(scenario, store, startTime)
			results[i] = BatchResult{Index: i, Seed: scenario.Seed, Result: res, Err: err}
			if err != nil {
				logrus.WithFields(logrus.Fields{"caller": "harness.RunBatch", "index": i, "seed": scenario.Seed, "error": err.Error()}).Error("battle replica failed")
				if stopOnError {
					mu.Lock()
					aborted = true
					mu.Unlock()
				}
			}
		}(i)
	}
	wg.Wait()
	return results
}
