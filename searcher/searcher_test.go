package searcher

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mooss/heurisko/hskfile"
)

// newTestIndex builds an Index directly from transcript word lists,
// bypassing Load's filesystem walk, mirroring how the source system's
// tests construct a Searcher in memory.
func newTestIndex(transcripts map[string][]hskfile.Word, stopWords ...string) *Index {
	idx := &Index{
		invertedIndex: make(map[string][]transcriptPositions),
		stopWords:     make(map[string]struct{}),
	}
	for _, sw := range stopWords {
		idx.stopWords[sw] = struct{}{}
	}

	names := make([]string, 0, len(transcripts))
	for name := range transcripts {
		names = append(names, name)
	}
	// deterministic id assignment for reproducible tests
	sort.Strings(names)

	for _, name := range names {
		words := transcripts[name]
		id := TranscriptID(len(idx.transcriptPaths))
		idx.transcriptPaths = append(idx.transcriptPaths, name)
		idx.transcriptWords = append(idx.transcriptWords, words)
		file := hskfile.FromWords(words)
		for word, positions := range file.WordIndexMap {
			idx.invertedIndex[word] = append(idx.invertedIndex[word], transcriptPositions{
				id:        id,
				positions: positions,
			})
		}
	}

	idx.sortedKeys = make([]string, 0, len(idx.invertedIndex))
	for k := range idx.invertedIndex {
		idx.sortedKeys = append(idx.sortedKeys, k)
	}
	sort.Strings(idx.sortedKeys)

	return idx
}

func wordsFromText(text string) []hskfile.Word {
	var words []hskfile.Word
	for i, tok := range strings.Fields(text) {
		start := float64(i)
		end := float64(i) + 1
		words = append(words, hskfile.Word{Word: tok, Start: &start, End: &end})
	}
	return words
}

func TestSearchRanksByUniqueThenElementCount(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"a": wordsFromText("the quick brown fox jumps over the lazy dog"),
		"b": wordsFromText("quick quick quick"),
	})

	results := idx.Search("quick fox", 0, 0, false, 2, 5, 50)
	require.NotEmpty(t, results)
	// transcript "a" matches both distinct terms (quick, fox); "b" only
	// repeats "quick" three times but never matches "fox" at all, so it
	// must rank below "a" on distinct-term count regardless of hit count.
	require.Equal(t, "a", results[0].Transcript)
}

func TestSearchEmptyQueryAfterStopWordRemoval(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"a": wordsFromText("the quick brown fox"),
	}, "the")

	results := idx.Search("the", 0, 0, true, 2, 5, 50)
	require.Nil(t, results)
}

func TestSearchRepeatedTermCountsOnce(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"a": wordsFromText("cat dog"),
	})

	results := idx.Search("cat cat", 0, 0, false, 2, 5, 50)
	require.Len(t, results, 1)
	// "cat" repeated twice must mint a single wordid bit, not two.
	require.Equal(t, 1, results[0].UniqueCount)
}

func TestSearchManyRepeatedTermsDoesNotPanic(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"a": wordsFromText("cat dog"),
	})

	query := strings.Repeat("cat ", 40)
	require.NotPanics(t, func() {
		idx.Search(query, 0, 0, false, 2, 5, 50)
	})
}

func TestPagingGrowingWindow(t *testing.T) {
	transcripts := map[string][]hskfile.Word{}
	for i := 0; i < 8; i++ {
		transcripts[string(rune('a'+i))] = wordsFromText("needle haystack")
	}
	idx := newTestIndex(transcripts)

	// pageSize=2: page 0 covers the absolute range [0,2), page 1 covers
	// [2,6) — twice as wide as page 0, not the fixed 2-wide window a
	// correct implementation would use. This is the preserved historical
	// bug, not a property to "fix".
	page0 := idx.Search("needle", 0, 0, false, 2, 5, 2)
	page1 := idx.Search("needle", 0, 1, false, 2, 5, 2)

	require.Len(t, page0, 2)
	require.Len(t, page1, 4)
}

func TestSearchExactConsecutivePositions(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"a": wordsFromText("the quick brown fox jumps"),
		"b": wordsFromText("quick the fox brown"),
	})

	results := idx.SearchExact("quick brown fox", 0, 50)
	require.Len(t, results, 1, "quick brown fox is consecutive only in transcript a")
	require.Equal(t, "a", results[0].Transcript)

	results = idx.SearchExact("quick brown", 0, 50)
	require.Len(t, results, 1)
	require.Equal(t, "a", results[0].Transcript)
	require.Equal(t, 2, results[0].UniqueCount)
	require.Equal(t, 2, results[0].ElementCount)
	require.True(t, results[0].Words[0].Matched)
}

func TestDiagnoseReportsIgnoredKeptUnmatchedSimilar(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"a": wordsFromText("running runner runs jump"),
	}, "the")

	diag := idx.Diagnose("the jog running")
	require.Equal(t, []string{"the"}, diag.Ignored)
	require.Equal(t, []string{"jog", "running"}, diag.Kept)
	require.Equal(t, []string{"jog"}, diag.Unmatched)
	require.Contains(t, diag.Similar, "jog")
	require.Empty(t, diag.Similar["jog"])
}

func TestFindAllExtendedWordsPrefixScan(t *testing.T) {
	keys := []string{"ant", "run", "runner", "running", "runs", "walk"}
	got := FindAllExtendedWords(keys, "run")
	require.ElementsMatch(t, []string{"run", "runner", "running", "runs"}, got)

	require.Nil(t, FindAllExtendedWords(keys, "zzz"))
}

func TestWordsLookup(t *testing.T) {
	idx := newTestIndex(map[string][]hskfile.Word{
		"path/to/episode": wordsFromText("hello world"),
	})

	words, ok := idx.Words("path/to/episode")
	require.True(t, ok)
	require.Len(t, words, 2)

	_, ok = idx.Words("missing")
	require.False(t, ok)
}
