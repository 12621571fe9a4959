// Package wordid assigns each distinct query term a single-bit identifier
// so a proximity-merge segment range can cheaply track which terms it
// covers, grounded on the source system's word_id module.
package wordid

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// MaxTerms is the number of distinct query terms a single merge can track.
// A query with more distinct, non-stop terms than this must be truncated
// or rejected by the caller before any ID is minted.
const MaxTerms = 32

// ID is a single-bit term identifier, 1<<k for some 0 <= k < MaxTerms.
type ID uint32

// FromIndex builds the identifier for the k-th distinct query term.
// It panics if k is outside [0, MaxTerms) — that is a caller bug, not a
// user error, since the query planner is responsible for enforcing the
// ceiling before calling this.
func FromIndex(k int) ID {
	if k < 0 || k >= MaxTerms {
		panic(fmt.Sprintf("wordid: index %d out of range [0, %d)", k, MaxTerms))
	}
	return ID(1 << uint(k))
}

// index returns the bit position of the single set bit in id.
func (id ID) index() uint {
	for i := uint(0); i < MaxTerms; i++ {
		if id == 1<<i {
			return i
		}
	}
	panic(fmt.Sprintf("wordid: %d is not a single-bit id", id))
}

// Set is the OR of the IDs contributing to one segment range.
type Set struct {
	bits *bitset.BitSet
}

// NewSet creates a set containing exactly one identifier.
func NewSet(id ID) Set {
	s := Set{bits: bitset.New(MaxTerms)}
	s.bits.Set(id.index())
	return s
}

// Add merges another identifier into the set.
func (s *Set) Add(id ID) {
	s.bits.Set(id.index())
}

// PopCount returns the number of distinct terms represented in the set.
func (s Set) PopCount() int {
	return int(s.bits.Count())
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	return Set{bits: s.bits.Clone()}
}
