package ingest

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/mooss/heurisko/hskfile"
)

// youtubeSegment mirrors one entry of youtube-transcript-api's output:
// https://pypi.org/project/youtube-transcript-api/
type youtubeSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// ReadYouTubeTranscript parses a YouTube transcript: a JSON array of
// {text, start, duration}. Within a segment every whitespace-split token
// shares that segment's start; its end is the next segment's start, and
// the final segment's tokens get no end time.
func ReadYouTubeTranscript(path string) ([]hskfile.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var segments []youtubeSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, errEmptySegments
	}

	var words []hskfile.Word
	for i, seg := range segments {
		start := seg.Start
		var end *float64
		if i+1 < len(segments) {
			next := segments[i+1].Start
			end = &next
		}
		for _, tok := range strings.Fields(seg.Text) {
			words = append(words, hskfile.Word{Word: tok, Start: &start, End: end})
		}
	}
	return words, nil
}
