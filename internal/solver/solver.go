package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	decoderhttp "github.com/dherreraa1/puzzle-decoder-race/internal/http"
	"github.com/dherreraa1/puzzle-decoder-race/internal/progress"
	"github.com/dherreraa1/puzzle-decoder-race/pkg/puzzle"
)

// Phase names reported through the progress reporter.
const (
	phaseDiscovering    = "discovering"
	phaseGapFilling     = "gap-filling"
	phaseExtendedSearch = "extended-search"
)

// Options configures a solve attempt.
type Options struct {
	// BaseURL is the fragment service location (required).
	BaseURL string

	// MaxConcurrent bounds in-flight fetches and doubles as the batch size.
	// Default: 30
	MaxConcurrent int

	// Timeout applies to each individual fetch.
	// Default: 5s
	Timeout time.Duration

	// SampleSize is how many distinct identifiers the discovering phase
	// samples from [1, SampleRange).
	// Default: 50
	SampleSize int

	// SampleRange bounds the discovering phase's random sample.
	// Default: 1000
	SampleRange int

	// GapRange bounds the gap-filling phase's identifier sweep.
	// Default: 10000
	GapRange int

	// GiveUpThreshold is how many consecutive empty windows the extended
	// search tolerates before abandoning the attempt.
	// Default: 100
	GiveUpThreshold int

	// Progress is an optional progress reporter.
	Progress *progress.Reporter

	// HTTPOptions configures the HTTP client. Zero values are derived from
	// Timeout and MaxConcurrent.
	HTTPOptions decoderhttp.Options
}

// Stats summarizes a solve attempt.
type Stats struct {
	Probes    int64
	Fragments int
	Duration  time.Duration
}

// Solver runs the fragment search against one remote service.
type Solver struct {
	opts   Options
	client *decoderhttp.Client
	store  *puzzle.Store

	probes int64
	start  time.Time
}

// New creates a solver, rejecting invalid configuration before any network
// activity. Zero-valued options take their defaults.
func New(opts Options) (*Solver, error) {
	if opts.MaxConcurrent == 0 {
		opts.MaxConcurrent = 30
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.SampleSize == 0 {
		opts.SampleSize = 50
	}
	if opts.SampleRange == 0 {
		opts.SampleRange = 1000
	}
	if opts.GapRange == 0 {
		opts.GapRange = 10000
	}
	if opts.GiveUpThreshold == 0 {
		opts.GiveUpThreshold = 100
	}

	if opts.BaseURL == "" {
		return nil, errors.New("solver: base URL is required")
	}
	if opts.MaxConcurrent < 0 {
		return nil, fmt.Errorf("solver: max concurrent must be positive, got %d", opts.MaxConcurrent)
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("solver: timeout must be positive, got %s", opts.Timeout)
	}
	if opts.SampleSize < 0 || opts.SampleRange < 2 {
		return nil, fmt.Errorf("solver: invalid sample configuration (size %d, range %d)",
			opts.SampleSize, opts.SampleRange)
	}
	if opts.GapRange < 0 {
		return nil, fmt.Errorf("solver: gap range must be positive, got %d", opts.GapRange)
	}
	if opts.GiveUpThreshold < 0 {
		return nil, fmt.Errorf("solver: give-up threshold must be positive, got %d", opts.GiveUpThreshold)
	}

	if opts.HTTPOptions.Timeout == 0 {
		opts.HTTPOptions.Timeout = opts.Timeout
	}
	if opts.HTTPOptions.MaxIdleConnsPerHost == 0 {
		// Keep-alive reuse must cover a full batch.
		opts.HTTPOptions.MaxIdleConnsPerHost = opts.MaxConcurrent * 2
	}

	return &Solver{
		opts:   opts,
		client: decoderhttp.NewClient(opts.BaseURL, opts.HTTPOptions),
		store:  puzzle.NewStore(),
	}, nil
}

// Solve runs the search to completion or give-up. The returned bool reports
// whether the puzzle was completed; the error is non-nil only when ctx is
// cancelled. An exhausted search yields ("", false, nil).
func (s *Solver) Solve(ctx context.Context) (string, bool, error) {
	s.start = time.Now()

	phases := []func(context.Context) error{
		s.discover,
		s.fillGaps,
		s.extendedSearch,
	}

	for _, phase := range phases {
		if err := phase(ctx); err != nil {
			return "", false, err
		}
		if s.store.Complete() {
			break
		}
	}

	if !s.store.Complete() {
		return "", false, nil
	}
	return s.store.Assemble(), true, nil
}

// Stats reports probe volume, fragments held, and elapsed time so far.
func (s *Solver) Stats() Stats {
	return Stats{
		Probes:    s.probes,
		Fragments: s.store.Len(),
		Duration:  time.Since(s.start),
	}
}

// discover probes a random sample of the low identifier range in batches.
func (s *Solver) discover(ctx context.Context) error {
	s.reportPhase(phaseDiscovering)

	sample := s.samplePlan()
	for start := 0; start < len(sample); start += s.opts.MaxConcurrent {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+s.opts.MaxConcurrent, len(sample))
		if _, err := s.probeBatch(ctx, sample[start:end]); err != nil {
			return err
		}
		if s.store.Complete() {
			return nil
		}
	}
	return nil
}

// samplePlan draws SampleSize distinct identifiers from [1, SampleRange)
// without replacement.
func (s *Solver) samplePlan() []int {
	n := s.opts.SampleRange - 1
	size := min(s.opts.SampleSize, n)

	perm := rand.Perm(n)
	ids := make([]int, size)
	for i := 0; i < size; i++ {
		ids[i] = perm[i] + 1
	}
	return ids
}

// fillGaps sweeps every unseen identifier in [1, GapRange). Only entered
// when discovery found fragments but left gaps in [0, maxIndex]; it is the
// wasteful bridge phase and stops the moment the store completes.
func (s *Solver) fillGaps(ctx context.Context) error {
	if s.store.Len() == 0 || s.store.Complete() {
		return nil
	}
	s.reportPhase(phaseGapFilling)

	batch := make([]int, 0, s.opts.MaxConcurrent)
	flush := func() (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := s.probeBatch(ctx, batch); err != nil {
			return false, err
		}
		batch = batch[:0]
		return s.store.Complete(), nil
	}

	for id := 1; id < s.opts.GapRange; id++ {
		if s.store.Seen(id) {
			continue
		}
		batch = append(batch, id)
		if len(batch) == s.opts.MaxConcurrent {
			done, err := flush()
			if err != nil || done {
				return err
			}
		}
	}
	if len(batch) > 0 {
		if _, err := flush(); err != nil {
			return err
		}
	}
	return nil
}

// extendedSearch sweeps forward from identifier 1 in fixed windows, skipping
// seen identifiers. Each probed window that yields nothing increments the
// failure counter; any fragment resets it. Windows emptied entirely by the
// seen filter advance the cursor without counting, so the budget measures
// real probes against the service.
func (s *Solver) extendedSearch(ctx context.Context) error {
	if s.store.Complete() {
		return nil
	}
	s.reportPhase(phaseExtendedSearch)

	searchID := 1
	failures := 0

	for failures < s.opts.GiveUpThreshold {
		if err := ctx.Err(); err != nil {
			return err
		}

		window := make([]int, 0, s.opts.MaxConcurrent)
		for id := searchID; id < searchID+s.opts.MaxConcurrent; id++ {
			if !s.store.Seen(id) {
				window = append(window, id)
			}
		}
		searchID += s.opts.MaxConcurrent

		if len(window) == 0 {
			continue
		}

		found, err := s.probeBatch(ctx, window)
		if err != nil {
			return err
		}
		if s.store.Complete() {
			return nil
		}

		if found > 0 {
			failures = 0
		} else {
			failures++
		}
	}
	return nil
}

// probeBatch fans the identifiers out through the batch executor, ingests
// the results into the store, and returns how many fragments landed. Store
// mutation happens here, after every fetch has settled.
func (s *Solver) probeBatch(ctx context.Context, ids []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	frags := fetchBatch(ctx, s.client, ids)

	s.probes += int64(len(ids))
	if r := s.opts.Progress; r != nil {
		r.ProbesCompleted(len(ids))
	}

	for _, f := range frags {
		s.store.Add(f)
		if r := s.opts.Progress; r != nil {
			r.FragmentFound(f)
		}
	}
	return len(frags), nil
}

func (s *Solver) reportPhase(phase string) {
	if r := s.opts.Progress; r != nil {
		r.PhaseChanged(phase)
	}
}
