package ingest

import (
	"encoding/json"
	"os"

	"github.com/mooss/heurisko/hskfile"
)

// whisperXWord mirrors one entry of WhisperX's word_segments array.
type whisperXWord struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Score *float64 `json:"score"`
}

// whisperXFile is the aligned WhisperX output: { segments, word_segments }.
// Only word_segments carries the data this adapter needs; segments is
// decoded but not used. A file without word_segments (such as a
// WhisperX-unaligned file) is rejected by ReadWhisperXAligned's check for
// an empty word_segments array.
type whisperXFile struct {
	WordSegments []whisperXWord    `json:"word_segments"`
	Segments     []json.RawMessage `json:"segments"`
}

// ReadWhisperXAligned parses an aligned WhisperX transcript: JSON with a
// word_segments array, each entry optionally carrying start/end times.
func ReadWhisperXAligned(path string) ([]hskfile.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file whisperXFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.WordSegments) == 0 {
		return nil, errNoWordSegments
	}
	words := make([]hskfile.Word, 0, len(file.WordSegments))
	for _, w := range file.WordSegments {
		words = append(words, hskfile.Word{Word: w.Word, Start: w.Start, End: w.End})
	}
	return words, nil
}
