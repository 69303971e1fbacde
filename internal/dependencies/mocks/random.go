package mocks

import (
	"github.com/mcoot/dragonword-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Shuffle is the identity permutation unless swaps are queued, which keeps
// role assignment and turn order deterministic in tests.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// ShuffleSwaps is a queue of swap lists; each call to Shuffle consumes
	// one list and applies its (i, j) pairs in order
	ShuffleSwaps [][][2]int
	shuffleIndex int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// Shuffle applies the next queued swap list, or leaves the order unchanged
// if none remain
func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	if r.shuffleIndex >= len(r.ShuffleSwaps) {
		return
	}
	swaps := r.ShuffleSwaps[r.shuffleIndex]
	r.shuffleIndex++
	for _, s := range swaps {
		if s[0] < n && s[1] < n {
			swap(s[0], s[1])
		}
	}
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// QueueShuffle adds a swap list to the Shuffle queue
func (r *MockRandom) QueueShuffle(swaps ...[2]int) {
	r.ShuffleSwaps = append(r.ShuffleSwaps, swaps)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.StringResults = nil
	r.stringIndex = 0
	r.ShuffleSwaps = nil
	r.shuffleIndex = 0
}
