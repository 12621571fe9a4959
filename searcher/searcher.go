// Package searcher builds the in-memory inverted index at startup and
// answers search, exact-phrase search and diagnostic queries against it.
// It is grounded on the source system's searcher module: Searcher::load,
// word_indices_group_by_transcript, and the search/search2 pair (the
// latter's pagination quirk is preserved deliberately).
package searcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mooss/heurisko"
	"github.com/mooss/heurisko/hskfile"
	"github.com/mooss/heurisko/internal/timing"
)

// TranscriptID is a dense, 0-based identifier assigned at load time.
type TranscriptID int

// transcriptPositions pairs a transcript with one term's position list
// within it.
type transcriptPositions struct {
	id        TranscriptID
	positions []int
}

// Index is the complete, immutable in-memory search structure built once
// at process start. Every field is unexported and never mutated after
// Load returns, so concurrent read-only access from request handlers
// needs no locking.
type Index struct {
	transcriptPaths []string          // TranscriptID -> external path
	transcriptWords [][]hskfile.Word  // TranscriptID -> word list
	invertedIndex   map[string][]transcriptPositions
	sortedKeys      []string // invertedIndex keys, sorted ascending once
	stopWords       map[string]struct{}
}

// Config is the subset of application configuration Load needs. It is
// deliberately narrow so this package does not depend on package config.
type Config struct {
	DataDir       string
	FileExt       string // e.g. "hsk", without the leading dot
	StopWordsFile string // empty means "no stop words file configured"
}

// Load walks cfg.DataDir recursively, decodes every matching .hsk file,
// and builds the global inverted index. A file that fails to decode is
// logged and skipped; it never aborts the whole load.
func Load(cfg Config, log zerolog.Logger) (*Index, error) {
	timer := timing.New(log)

	idx := &Index{
		invertedIndex: make(map[string][]transcriptPositions),
		stopWords:     loadStopWords(cfg.StopWordsFile),
	}

	ext := "." + strings.TrimPrefix(cfg.FileExt, ".")
	err := filepath.WalkDir(cfg.DataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable directory entries are skipped, not fatal
		}
		if d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		file, readErr := hskfile.Read(path)
		if readErr != nil {
			log.Warn().Err(readErr).Str("path", path).Msg("skipping unreadable transcript")
			return nil
		}

		id := TranscriptID(len(idx.transcriptPaths))
		rel, relErr := filepath.Rel(cfg.DataDir, path)
		if relErr != nil {
			rel = path
		}
		rel = strings.TrimSuffix(rel, ext)
		idx.transcriptPaths = append(idx.transcriptPaths, filepath.ToSlash(rel))
		idx.transcriptWords = append(idx.transcriptWords, file.Words)

		for word, positions := range file.WordIndexMap {
			idx.invertedIndex[word] = append(idx.invertedIndex[word], transcriptPositions{
				id:        id,
				positions: positions,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	idx.sortedKeys = make([]string, 0, len(idx.invertedIndex))
	for k := range idx.invertedIndex {
		idx.sortedKeys = append(idx.sortedKeys, k)
	}
	sort.Strings(idx.sortedKeys)

	timer.Print("searcher loaded transcripts")
	log.Info().
		Int("transcripts", len(idx.transcriptPaths)).
		Int("stop_words", len(idx.stopWords)).
		Msg("index ready")

	return idx, nil
}

// TranscriptIDs returns a path keyed by its dense transcript id, for the
// /ids HTTP endpoint.
func (idx *Index) TranscriptIDs() map[int]string {
	out := make(map[int]string, len(idx.transcriptPaths))
	for i, p := range idx.transcriptPaths {
		out[i] = p
	}
	return out
}

// Words returns a defensive copy of the word list stored under an exact
// external transcript path, and whether it was found.
func (idx *Index) Words(path string) ([]hskfile.Word, bool) {
	for i, p := range idx.transcriptPaths {
		if p == path {
			words := make([]hskfile.Word, len(idx.transcriptWords[i]))
			copy(words, idx.transcriptWords[i])
			return words, true
		}
	}
	return nil, false
}

// TranscriptCount reports how many transcripts are loaded.
func (idx *Index) TranscriptCount() int { return len(idx.transcriptPaths) }

func loadStopWords(path string) map[string]struct{} {
	set := map[string]struct{}{}
	if path == "" {
		return set
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return set
	}
	for _, tok := range strings.Fields(string(data)) {
		word := heurisko.Normalize(tok)
		if word != "" {
			set[word] = struct{}{}
		}
	}
	return set
}

// wordIndicesGroupByTranscript groups each term's (transcript, positions)
// entries by transcript id, mirroring the source system's
// word_indices_group_by_transcript.
//
// terms must already be deduplicated: each distinct term occupies a
// fixed slot j in every transcript's returned stream slice, so a merge's
// wordid.FromIndex(j) always names the same query term regardless of
// which transcripts happen to contain it. A transcript missing terms[j]
// simply gets a nil (zero-value, empty) stream at slot j, which the
// merge step skips without minting a bit for it.
func (idx *Index) wordIndicesGroupByTranscript(terms []string) map[TranscriptID][][]int {
	out := map[TranscriptID][][]int{}
	for j, term := range terms {
		if term == "" {
			continue
		}
		for _, tp := range idx.invertedIndex[term] {
			streams, ok := out[tp.id]
			if !ok {
				streams = make([][]int, len(terms))
				out[tp.id] = streams
			}
			streams[j] = tp.positions
		}
	}
	return out
}
