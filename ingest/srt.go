package ingest

import (
	"errors"
	"strings"

	"github.com/asticode/go-astisub"

	"github.com/mooss/heurisko/hskfile"
)

// ReadSRT parses a .srt subtitle file using go-astisub and tokenizes each subtitle item's text, assigning every token the item's
// start/end time. A file with zero items is a failure.
func ReadSRT(path string) ([]hskfile.Word, error) {
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return nil, err
	}
	if len(subs.Items) == 0 {
		return nil, errors.New(".srt file must contain at least 1 segment")
	}

	var words []hskfile.Word
	for _, item := range subs.Items {
		start := item.StartAt.Seconds()
		end := item.EndAt.Seconds()
		text := itemText(item)
		for _, tok := range strings.Fields(text) {
			words = append(words, hskfile.Word{Word: tok, Start: &start, End: &end})
		}
	}
	return words, nil
}

// itemText concatenates the lines and line-items of a subtitle entry
// into a single space-joined string.
func itemText(item *astisub.Item) string {
	var sb strings.Builder
	for i, line := range item.Lines {
		if i > 0 {
			sb.WriteRune(' ')
		}
		for j, litem := range line.Items {
			if j > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteString(litem.Text)
		}
	}
	return sb.String()
}
