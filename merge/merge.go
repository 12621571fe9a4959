// Package merge implements the proximity-merge algorithm at the heart of
// the search engine: given K sorted per-term position streams within one
// transcript and an allowed positional window, it produces a disjoint-ish
// set of segment ranges clustering positions that fit within that window.
//
// This is a direct, semantics-preserving port of the source system's
// merge_special / WordSegmentRange / can_add, including its asymmetric
// strict-inside window — that asymmetry is an intentional contract, not a
// bug, and must never be "fixed" to <=.
package merge

import (
	"container/heap"

	"github.com/mooss/heurisko/wordid"
)

// WordSegmentRange is a cluster of positions, all within one transcript,
// that fit inside a single window of width allowedRange.
type WordSegmentRange struct {
	Min      int
	Max      int
	Elements []int // insertion order, not necessarily sorted
	Set      wordid.Set
}

// NewWordSegmentRange seeds a fresh range with a single element.
func NewWordSegmentRange(first int, id wordid.ID) *WordSegmentRange {
	return &WordSegmentRange{
		Min:      first,
		Max:      first,
		Elements: []int{first},
		Set:      wordid.NewSet(id),
	}
}

// TotalRange is the width currently spanned by the range.
func (r *WordSegmentRange) TotalRange() int {
	return r.Max - r.Min
}

// CanAdd reports whether element may join the range without exceeding
// allowedRange. The window is strictly-inside and asymmetric: a range
// seeded at p accepts a later position q only while p < q < p+allowedRange
// (and symmetrically from below once the range has grown upward) — q
// equal to p, or q == p+allowedRange, is rejected.
func (r *WordSegmentRange) CanAdd(element, allowedRange int) bool {
	if element < r.Min {
		lowestMin := r.Max - allowedRange
		return element > lowestMin
	}
	highestMax := r.Min + allowedRange
	return element > r.Min && element < highestMax
}

// Add appends element to the range if CanAdd permits it, widening Min/Max
// as needed. It reports whether the element was added.
func (r *WordSegmentRange) Add(element, allowedRange int) bool {
	if !r.CanAdd(element, allowedRange) {
		return false
	}
	r.Elements = append(r.Elements, element)
	if element < r.Min {
		r.Min = element
	} else if element > r.Max {
		r.Max = element
	}
	return true
}

// cursor walks one term's position stream; idx is the next unread
// position.
type cursor struct {
	positions []int
	idx       int
	id        wordid.ID
}

func (c *cursor) pos() int { return c.positions[c.idx] }

// cursorHeap is a min-heap of cursors ordered by their current position.
type cursorHeap []*cursor

func (h cursorHeap) Len() int            { return len(h) }
func (h cursorHeap) Less(i, j int) bool  { return h[i].pos() < h[j].pos() }
func (h cursorHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x interface{}) { *h = append(*h, x.(*cursor)) }
func (h *cursorHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// MergeSpecial runs the K-way positional merge described in the package
// doc. streams[i] is the strictly-increasing position list for the i-th
// distinct query term (i also doubles as that term's wordid index).
// allowedRange is the maximum admissible Max-Min inside one output range.
func MergeSpecial(streams [][]int, allowedRange int) []*WordSegmentRange {
	var sorted []*WordSegmentRange

	h := make(cursorHeap, 0, len(streams))
	for i, s := range streams {
		if len(s) == 0 {
			continue
		}
		h = append(h, &cursor{positions: s, idx: 0, id: wordid.FromIndex(i)})
	}
	heap.Init(&h)

	for h.Len() > 0 {
		this := h[0]
		thisPos, thisID := this.pos(), this.id

		atLeastOneAdded := false
		for i := len(sorted) - 1; i >= 0; i-- {
			r := sorted[i]
			if r.Add(thisPos, allowedRange) {
				r.Set.Add(thisID)
				atLeastOneAdded = true
			} else {
				break
			}
		}

		if len(sorted) == 0 {
			sorted = append(sorted, NewWordSegmentRange(thisPos, thisID))
		} else {
			last := sorted[len(sorted)-1]
			if h.Len() > 1 {
				nextPos := nextCursorPos(h, this)
				nextAndLastCantReach := !last.CanAdd(nextPos, allowedRange)
				thisAndNextCanReach := abs(nextPos-thisPos) <= allowedRange
				if (nextAndLastCantReach && thisAndNextCanReach) || !atLeastOneAdded {
					sorted = append(sorted, NewWordSegmentRange(thisPos, thisID))
				}
			} else if !atLeastOneAdded {
				sorted = append(sorted, NewWordSegmentRange(thisPos, thisID))
			}
		}

		this.idx++
		if this.idx < len(this.positions) {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}

	return sorted
}

// nextCursorPos peeks the position the heap would yield next, i.e. the
// smallest position among every cursor other than the one currently
// popped (this). Ties with this are broken arbitrarily, matching the
// heap's own tie-breaking, since only the position value is used by the
// caller.
func nextCursorPos(h cursorHeap, this *cursor) int {
	best := -1
	for _, c := range h {
		if c == this {
			continue
		}
		if best == -1 || c.pos() < best {
			best = c.pos()
		}
	}
	return best
}
