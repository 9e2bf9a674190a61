// Package solver implements the three-phase fragment search.
//
// A solve attempt owns a [puzzle.Store] and drives it through up to three
// phases, re-checking completeness after every batch of probes:
//
//  1. Discovering: random sampling of a low identifier range, to learn the
//     shape of the puzzle cheaply.
//  2. Gap filling: a wider sweep over every identifier not yet seen, entered
//     only when discovery found fragments but left gaps.
//  3. Extended search: a forward window scan with a consecutive-empty-window
//     budget, bounding runtime against a dead or adversarial service.
//
// # Concurrency
//
// Concurrency exists only inside a batch: up to MaxConcurrent fetches are in
// flight at once, and the solver waits for all of them to settle before
// touching the store. Phase progression and store mutation happen on the
// solver's own control flow, so the store needs no locking.
//
// # Failure Semantics
//
// Individual probe failures (not found, timeout, malformed response) are
// absorbed silently; the strategy just tries elsewhere. The only terminal
// failure is exhausting the extended-search budget, reported as an
// unsuccessful solve rather than an error.
package solver
