package ingest

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mooss/heurisko/hskfile"
)

// sbvPattern extracts one SBV caption block: start/end timecodes of the
// form HH:MM:SS.mmm followed by the caption text and a trailing newline.
// No third-party library in the pack parses this legacy YouTube caption
// format (not even go-astisub, which otherwise covers SRT), so this is a
// direct port of the source system's regex.
var sbvPattern = regexp.MustCompile(`(\d+):(\d+):(\d+)\.(\d+),(\d+):(\d+):(\d+)\.(\d+)\n(.*)\n`)

// ReadSBV parses a .sbv subtitle file. A file with no caption block is a
// failure.
func ReadSBV(path string) ([]hskfile.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	contents := string(data)

	matches := sbvPattern.FindAllStringSubmatch(contents, -1)
	if len(matches) == 0 {
		return nil, errEmptySegments
	}

	var words []hskfile.Word
	for _, m := range matches {
		start, err := timecodeSeconds(m[1], m[2], m[3], m[4])
		if err != nil {
			return nil, err
		}
		end, err := timecodeSeconds(m[5], m[6], m[7], m[8])
		if err != nil {
			return nil, err
		}
		text := m[9]
		for _, tok := range strings.Fields(text) {
			s, e := start, end
			words = append(words, hskfile.Word{Word: tok, Start: &s, End: &e})
		}
	}
	return words, nil
}

// timecodeSeconds converts hours/minutes/seconds/milliseconds strings to
// a single float64 count of seconds, matching
// hours*3600 + minutes*60 + seconds + millis/1000.
func timecodeSeconds(hours, minutes, seconds, millis string) (float64, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}
	return float64(h*3600+m*60+s) + float64(ms)/1000, nil
}
