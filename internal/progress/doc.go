// Package progress provides progress reporting for solve attempts.
//
// Two channels are maintained:
//
//   - Human-readable status lines on Output, updated on a ticker: current
//     phase, probes issued, fragments held, elapsed time.
//   - An optional stream of structured JSON events on Events (phase
//     transitions, fragment discoveries, final outcome), intended for
//     diagnostics and machine consumption.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    SourceURL:     baseURL,
//	    MaxConcurrent: 30,
//	    Events:        os.Stderr,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
// # Output Format
//
//	[decoder] Solving: http://localhost:8888
//	[decoder] Max concurrent: 30 | Timeout: 5s
//	[decoder] Found fragment 3: "quick"
//	[decoder] Phase: extended-search | Probes: 1240 | Fragments: 7 | Elapsed: 2s
package progress
