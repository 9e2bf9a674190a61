// Package testutils provides a shared in-process fragment service for tests.
package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dherreraa1/puzzle-decoder-race/pkg/puzzle"
)

// FragmentServer wraps an httptest.Server that speaks the fragment protocol.
// It records every probe so tests can assert on dedupe and request volume.
type FragmentServer struct {
	*httptest.Server

	// Latency is added to every response when non-zero.
	Latency time.Duration

	mu       sync.Mutex
	requests map[int]int
	inFlight int
	maxSeen  int
}

// StartFragmentServer starts a server holding the given fragments, keyed by
// identifier. Unknown identifiers get a 404. The server is closed via
// t.Cleanup.
func StartFragmentServer(t *testing.T, fragments map[int]puzzle.Fragment) *FragmentServer {
	t.Helper()

	fs := &FragmentServer{
		requests: make(map[int]int),
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}

		fs.mu.Lock()
		fs.requests[id]++
		fs.inFlight++
		if fs.inFlight > fs.maxSeen {
			fs.maxSeen = fs.inFlight
		}
		fs.mu.Unlock()

		if fs.Latency > 0 {
			time.Sleep(fs.Latency)
		}

		fs.mu.Lock()
		fs.inFlight--
		fs.mu.Unlock()

		frag, ok := fragments[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(frag)
	}))
	t.Cleanup(fs.Server.Close)

	return fs
}

// Requests returns how many times the given identifier has been probed.
func (fs *FragmentServer) Requests(id int) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.requests[id]
}

// TotalRequests returns the total number of probes served.
func (fs *FragmentServer) TotalRequests() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	total := 0
	for _, n := range fs.requests {
		total += n
	}
	return total
}

// MaxInFlight returns the peak number of concurrently served probes.
func (fs *FragmentServer) MaxInFlight() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.maxSeen
}
