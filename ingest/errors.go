package ingest

import "errors"

// errNoWordSegments signals that a JSON document parsed successfully but
// lacked the word_segments array the aligned WhisperX adapter requires,
// so the driver falls through to the next adapter.
var errNoWordSegments = errors.New("ingest: no word_segments present")

// errNoSegments is the unaligned-Whisper/plain-Whisper analogue: the
// document has no segments array to tokenize.
var errNoSegments = errors.New("ingest: no segments present")

// errEmptySegments signals a structurally valid but empty transcript
// (e.g. a YouTube transcript array with zero entries).
var errEmptySegments = errors.New("ingest: transcript has no segments")
