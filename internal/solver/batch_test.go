package solver

import (
	"context"
	"testing"
	"time"

	decoderhttp "github.com/dherreraa1/puzzle-decoder-race/internal/http"
	"github.com/dherreraa1/puzzle-decoder-race/internal/testutils"
	"github.com/dherreraa1/puzzle-decoder-race/pkg/puzzle"
)

func TestFetchBatchCollectsSuccesses(t *testing.T) {
	server := testutils.StartFragmentServer(t, map[int]puzzle.Fragment{
		2: {ID: 2, Index: 0, Text: "a"},
		4: {ID: 4, Index: 1, Text: "b"},
	})

	client := decoderhttp.NewClient(server.URL, decoderhttp.DefaultOptions())
	frags := fetchBatch(context.Background(), client, []int{1, 2, 3, 4, 5})

	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	byIndex := make(map[int]string)
	for _, f := range frags {
		byIndex[f.Index] = f.Text
	}
	if byIndex[0] != "a" || byIndex[1] != "b" {
		t.Errorf("unexpected fragments: %v", byIndex)
	}
}

func TestFetchBatchAllAbsent(t *testing.T) {
	server := testutils.StartFragmentServer(t, nil)

	client := decoderhttp.NewClient(server.URL, decoderhttp.DefaultOptions())
	frags := fetchBatch(context.Background(), client, []int{1, 2, 3})

	if len(frags) != 0 {
		t.Errorf("expected no fragments, got %d", len(frags))
	}
	if server.TotalRequests() != 3 {
		t.Errorf("expected 3 probes, got %d", server.TotalRequests())
	}
}

func TestFetchBatchRunsConcurrently(t *testing.T) {
	fragments := make(map[int]puzzle.Fragment)
	ids := make([]int, 10)
	for i := range ids {
		ids[i] = i + 1
		fragments[i+1] = puzzle.Fragment{ID: i + 1, Index: i, Text: "x"}
	}

	server := testutils.StartFragmentServer(t, fragments)
	server.Latency = 100 * time.Millisecond

	client := decoderhttp.NewClient(server.URL, decoderhttp.DefaultOptions())

	start := time.Now()
	frags := fetchBatch(context.Background(), client, ids)
	elapsed := time.Since(start)

	if len(frags) != 10 {
		t.Fatalf("expected 10 fragments, got %d", len(frags))
	}
	// Sequential fetches would take ~1s.
	if elapsed > 600*time.Millisecond {
		t.Errorf("batch not concurrent: 10 probes took %v", elapsed)
	}
	if server.MaxInFlight() < 2 {
		t.Errorf("expected overlapping probes, max in-flight was %d", server.MaxInFlight())
	}
}

func TestFetchBatchTimeoutDoesNotBlockSiblings(t *testing.T) {
	server := testutils.StartFragmentServer(t, map[int]puzzle.Fragment{
		1: {ID: 1, Index: 0, Text: "fast"},
	})
	server.Latency = 200 * time.Millisecond

	opts := decoderhttp.DefaultOptions()
	opts.Timeout = 50 * time.Millisecond

	client := decoderhttp.NewClient(server.URL, opts)
	frags := fetchBatch(context.Background(), client, []int{1, 2, 3})

	// Everything times out, nothing hangs.
	if len(frags) != 0 {
		t.Errorf("expected all probes to time out, got %d fragments", len(frags))
	}
}
