package puzzle

import (
	"sort"
	"strings"
)

// Fragment is one piece of the target message.
type Fragment struct {
	// ID is the raw identifier the remote service knows the fragment by.
	ID int `json:"id"`

	// Index is the fragment's position in the assembled message.
	// Independent of ID.
	Index int `json:"index"`

	// Text is the payload.
	Text string `json:"text"`
}

// Store holds fetched fragments keyed by sequence index and remembers which
// identifiers have already produced a fragment.
type Store struct {
	fragments map[int]Fragment
	seen      map[int]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		fragments: make(map[int]Fragment),
		seen:      make(map[int]struct{}),
	}
}

// Add ingests a fragment, overwriting any fragment previously held at the
// same index, and marks its identifier as seen.
func (s *Store) Add(f Fragment) {
	s.fragments[f.Index] = f
	s.seen[f.ID] = struct{}{}
}

// Seen reports whether a fetch for id has already succeeded. Identifiers
// that only ever failed are not seen, so they stay eligible for re-probing.
func (s *Store) Seen(id int) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of distinct indices held.
func (s *Store) Len() int {
	return len(s.fragments)
}

// MaxIndex returns the highest index held, or -1 for an empty store.
func (s *Store) MaxIndex() int {
	max := -1
	for idx := range s.fragments {
		if idx > max {
			max = idx
		}
	}
	return max
}

// Complete reports whether the store holds a gapless run of fragments for
// every index in [0, MaxIndex]. An empty store is not complete; a store
// holding only index 0 is.
func (s *Store) Complete() bool {
	if len(s.fragments) == 0 {
		return false
	}
	for i := 0; i <= s.MaxIndex(); i++ {
		if _, ok := s.fragments[i]; !ok {
			return false
		}
	}
	return true
}

// MissingIndices returns the indices absent from [0, MaxIndex], ascending.
// Empty for a complete or empty store.
func (s *Store) MissingIndices() []int {
	var missing []int
	for i := 0; i <= s.MaxIndex(); i++ {
		if _, ok := s.fragments[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

// Assemble joins the fragment texts in ascending index order, separated by
// single spaces. Returns the empty string while the store is incomplete.
func (s *Store) Assemble() string {
	if !s.Complete() {
		return ""
	}

	indices := make([]int, 0, len(s.fragments))
	for idx := range s.fragments {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = s.fragments[idx].Text
	}
	return strings.Join(texts, " ")
}
