package solver

import (
	"context"
	"sync"

	decoderhttp "github.com/dherreraa1/puzzle-decoder-race/internal/http"
	"github.com/dherreraa1/puzzle-decoder-race/pkg/puzzle"
)

// fetchBatch dispatches one fetch per identifier, all concurrently, and
// waits for every probe to settle before returning. Callers bound len(ids)
// to the configured concurrency, so one goroutine per identifier is the
// in-flight limit.
//
// Failed probes are dropped without distinction: "never existed" and
// "transient failure" look identical to the search strategy, which copes by
// re-probing elsewhere. A slow or timed-out fetch does not cancel siblings.
func fetchBatch(ctx context.Context, client *decoderhttp.Client, ids []int) []puzzle.Fragment {
	results := make(chan puzzle.Fragment, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if frag, err := client.FetchFragment(ctx, id); err == nil {
				results <- *frag
			}
		}(id)
	}

	wg.Wait()
	close(results)

	frags := make([]puzzle.Fragment, 0, len(ids))
	for f := range results {
		frags = append(frags, f)
	}
	return frags
}
