// Package http provides the HTTP client used to fetch puzzle fragments.
//
// This package handles:
//   - Connection pooling sized for high request parallelism
//   - Per-request timeouts
//   - Decoding fragment responses with required-field validation
//
// # Usage
//
//	client := http.NewClient("http://localhost:8888", http.Options{
//	    Timeout: 5 * time.Second,
//	})
//
//	frag, err := client.FetchFragment(ctx, 42)
//
// Every failure mode (not found, malformed body, transport error, timeout)
// comes back as a non-nil error; callers that only care about presence treat
// them all the same. The sentinel errors exist for tests and diagnostics.
//
// The client never retries: re-probing is a search-strategy decision, made
// with full knowledge of the identifier space, not a transport concern.
package http
