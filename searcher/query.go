package searcher

import (
	"sort"
	"strings"

	"github.com/mooss/heurisko"
	"github.com/mooss/heurisko/merge"
	"github.com/mooss/heurisko/wordid"
)

// ResultWord is one transcript word inside a QueryResult's snippet,
// flagged whether it actually participates in the matched range.
type ResultWord struct {
	Word    string   `json:"word"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Matched bool     `json:"matched"`
}

// QueryResult is one hit returned by Search or SearchExact: a snippet of
// a transcript's words, centered on a matched range, with per-word match
// flags and the ranking values that placed it.
type QueryResult struct {
	Transcript   string       `json:"transcript"`
	Words        []ResultWord `json:"words"`
	UniqueCount  int          `json:"uniqueCount"`
	ElementCount int          `json:"elementCount"`
}

// scoredRange pairs a merged range with the transcript it came from, for
// ranking purposes.
type scoredRange struct {
	transcript TranscriptID
	r          *merge.WordSegmentRange
}

// Search tokenizes the query, optionally drops stop words, runs the
// proximity merge per transcript, ranks the resulting segment ranges,
// and pages them.
func (idx *Index) Search(query string, context, page int, removeStopWords bool, wordDistance, wordDistanceWithStopWordsRemoved, pageSize int) []QueryResult {
	tokens := tokenize(query)
	if removeStopWords {
		tokens = idx.dropStopWords(tokens)
	}
	if len(tokens) == 0 {
		return nil
	}

	// Every distinct term gets exactly one wordid bit; a repeated term
	// must not mint a second bit for itself (that would inflate
	// UniqueCount and corrupt ranking). Terms beyond the bitset's
	// capacity are dropped rather than left to panic deeper in the
	// merge step — callers that want a hard rejection (e.g. the HTTP
	// surface) check DistinctTermCount before calling Search at all.
	terms := dedupeStable(tokens)
	if len(terms) > wordid.MaxTerms {
		terms = terms[:wordid.MaxTerms]
	}

	grouped := idx.wordIndicesGroupByTranscript(terms)

	wordDist := wordDistance
	if removeStopWords {
		wordDist = wordDistanceWithStopWordsRemoved
	}
	// The window widens with the raw (pre-dedup) token count: a query
	// that repeats a term is "longer" for proximity purposes even
	// though it contributes only one wordid bit.
	allowedRange := len(tokens) * wordDist

	ids := make([]TranscriptID, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var scored []scoredRange
	for _, id := range ids {
		for _, r := range merge.MergeSpecial(grouped[id], allowedRange) {
			scored = append(scored, scoredRange{transcript: id, r: r})
		}
	}

	// Rank: uniqueCount desc, then elementCount desc, stable otherwise
	// (insertion order above already visits transcripts in ascending id
	// order, which is the deterministic tie-break this ranking needs).
	sort.SliceStable(scored, func(i, j int) bool {
		ui, uj := scored[i].r.Set.PopCount(), scored[j].r.Set.PopCount()
		if ui != uj {
			return ui > uj
		}
		return len(scored[i].r.Elements) > len(scored[j].r.Elements)
	})

	scored = pageSlice(scored, page, pageSize)

	results := make([]QueryResult, 0, len(scored))
	for _, sc := range scored {
		results = append(results, idx.buildResult(sc.transcript, sc.r, context))
	}
	return results
}

// pageSlice applies the historical pagination rule verbatim: skip_count
// = page*pageSize and take_count = skip_count+pageSize, then takes
// take_count items after skipping skip_count, landing on the absolute
// range [skip_count, skip_count+take_count). Substituting take_count's
// definition, the window is [page*pageSize, 2*page*pageSize+pageSize):
// a window that starts where the arithmetic says but grows wider every
// page instead of staying a fixed pageSize wide, and from page 2 onward
// overlaps the previous page. This is deliberately preserved, not fixed.
func pageSlice[T any](items []T, page, pageSize int) []T {
	skip := page * pageSize
	take := skip + pageSize
	end := skip + take
	if end > len(items) {
		end = len(items)
	}
	if skip > end {
		skip = end
	}
	return items[skip:end]
}

func (idx *Index) buildResult(id TranscriptID, r *merge.WordSegmentRange, context int) QueryResult {
	words := idx.transcriptWords[id]

	start := r.Min - context
	if start < 0 {
		start = 0
	}
	end := r.Max + context
	if end > len(words)-1 {
		end = len(words) - 1
	}

	sortedElements := append([]int(nil), r.Elements...)
	sort.Ints(sortedElements)

	out := make([]ResultWord, 0, end-start+1)
	for i := start; i <= end && i < len(words); i++ {
		w := words[i]
		n := sort.SearchInts(sortedElements, i)
		matched := n < len(sortedElements) && sortedElements[n] == i
		out = append(out, ResultWord{Word: w.Word, Start: w.Start, End: w.End, Matched: matched})
	}

	return QueryResult{
		Transcript:   idx.transcriptPaths[id],
		Words:        out,
		UniqueCount:  r.Set.PopCount(),
		ElementCount: len(r.Elements),
	}
}

func (idx *Index) dropStopWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, stop := idx.stopWords[t]; !stop {
			out = append(out, t)
		}
	}
	return out
}

// DistinctTermCount reports how many distinct terms a query would
// resolve to after tokenizing and, if requested, stop-word removal —
// the same deduplicated set Search builds its per-term streams from,
// so a caller can reject a query before it ever reaches the merge step.
func (idx *Index) DistinctTermCount(query string, removeStopWords bool) int {
	tokens := tokenize(query)
	if removeStopWords {
		tokens = idx.dropStopWords(tokens)
	}
	return len(dedupeStable(tokens))
}

// dedupeStable returns tokens with duplicates removed, keeping each
// term's first-occurrence order — the order a term's wordid bit index
// is assigned from.
func dedupeStable(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func tokenize(query string) []string {
	fields := strings.Fields(query)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		n := heurisko.Normalize(f)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SearchExact implements consecutive-position phrase search: every word
// of query must appear, in order, at adjacent positions within a single
// transcript.
func (idx *Index) SearchExact(query string, page, pageSize int) []QueryResult {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	type hit struct {
		transcript TranscriptID
		start      int
	}

	var hits []hit
	for _, tp := range idx.invertedIndex[tokens[0]] {
		for _, p := range tp.positions {
			hits = append(hits, hit{transcript: tp.id, start: p})
		}
	}

	for i := 1; i < len(tokens); i++ {
		positionsByTranscript := map[TranscriptID][]int{}
		for _, tp := range idx.invertedIndex[tokens[i]] {
			positionsByTranscript[tp.id] = tp.positions
		}
		var next []hit
		for _, h := range hits {
			positions, ok := positionsByTranscript[h.transcript]
			if !ok {
				continue
			}
			want := h.start + i
			n := sort.SearchInts(positions, want)
			if n < len(positions) && positions[n] == want {
				next = append(next, h)
			}
		}
		hits = next
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].transcript != hits[j].transcript {
			return hits[i].transcript < hits[j].transcript
		}
		return hits[i].start < hits[j].start
	})

	hits = pageSlice(hits, page, pageSize)

	k := len(tokens)
	results := make([]QueryResult, 0, len(hits))
	for _, h := range hits {
		words := idx.transcriptWords[h.transcript]
		end := h.start + k - 1
		if end > len(words)-1 {
			end = len(words) - 1
		}
		out := make([]ResultWord, 0, end-h.start+1)
		for i := h.start; i <= end; i++ {
			w := words[i]
			out = append(out, ResultWord{Word: w.Word, Start: w.Start, End: w.End, Matched: true})
		}
		results = append(results, QueryResult{
			Transcript:   idx.transcriptPaths[h.transcript],
			Words:        out,
			UniqueCount:  k,
			ElementCount: k,
		})
	}
	return results
}

// QueryDiagnostics reports how a query's tokens were treated: which were
// dropped as stop words, which survived but matched nothing, and which
// near-miss keys share a prefix with an unmatched term.
type QueryDiagnostics struct {
	Ignored   []string            `json:"ignored"`
	Kept      []string            `json:"kept"`
	Unmatched []string            `json:"unmatched"`
	Similar   map[string][]string `json:"similar"`
}

// Diagnose explains why a query might have returned few or no hits.
func (idx *Index) Diagnose(query string) QueryDiagnostics {
	all := tokenize(query)

	var ignored, kept []string
	for _, t := range all {
		if _, stop := idx.stopWords[t]; stop {
			ignored = append(ignored, t)
		} else {
			kept = append(kept, t)
		}
	}

	var unmatched []string
	for _, t := range kept {
		n := sort.SearchStrings(idx.sortedKeys, t)
		if n >= len(idx.sortedKeys) || idx.sortedKeys[n] != t {
			unmatched = append(unmatched, t)
		}
	}

	similar := make(map[string][]string, len(unmatched))
	for _, t := range unmatched {
		similar[t] = FindAllExtendedWords(idx.sortedKeys, t)
	}

	return QueryDiagnostics{
		Ignored:   ignored,
		Kept:      kept,
		Unmatched: unmatched,
		Similar:   similar,
	}
}
