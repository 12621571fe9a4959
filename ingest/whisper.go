package ingest

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/mooss/heurisko/hskfile"
)

// whisperSegment is one entry of plain (unaligned) Whisper's segments
// array: a time range and the full text spoken during it.
type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperFile struct {
	Segments []whisperSegment `json:"segments"`
}

// ReadWhisperXUnaligned parses plain Whisper output: JSON with a segments
// array of {start, end, text}. Each segment's text is split on whitespace
// and every resulting token takes the segment's start and end time.
func ReadWhisperXUnaligned(path string) ([]hskfile.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file whisperFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Segments) == 0 {
		return nil, errNoSegments
	}

	var words []hskfile.Word
	for _, seg := range file.Segments {
		start, end := seg.Start, seg.End
		for _, tok := range strings.Fields(seg.Text) {
			words = append(words, hskfile.Word{Word: tok, Start: &start, End: &end})
		}
	}
	return words, nil
}
