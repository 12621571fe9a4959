package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadWhisperXAligned(t *testing.T) {
	path := writeTempFile(t, "aligned.json", `{
		"segments": [{"start": 0, "end": 1, "text": "hi there"}],
		"word_segments": [
			{"word": "hi", "start": 0.0, "end": 0.4},
			{"word": "there", "start": 0.4, "end": 1.0}
		]
	}`)

	words, err := ReadWhisperXAligned(path)
	require.NoError(t, err)
	require.Len(t, words, 2)
	require.Equal(t, "hi", words[0].Word)
	require.NotNil(t, words[0].Start)
	require.Equal(t, 0.0, *words[0].Start)
}

func TestReadWhisperXAlignedRejectsMissingWordSegments(t *testing.T) {
	path := writeTempFile(t, "unaligned.json", `{"segments": [{"start": 0, "end": 1, "text": "hi there"}]}`)

	_, err := ReadWhisperXAligned(path)
	require.ErrorIs(t, err, errNoWordSegments)
}

func TestReadWhisperXUnaligned(t *testing.T) {
	path := writeTempFile(t, "plain.json", `{"segments": [{"start": 0, "end": 2, "text": "hi there friend"}]}`)

	words, err := ReadWhisperXUnaligned(path)
	require.NoError(t, err)
	require.Len(t, words, 3)
	for _, w := range words {
		require.Equal(t, 0.0, *w.Start)
		require.Equal(t, 2.0, *w.End)
	}
}

func TestReadYouTubeTranscript(t *testing.T) {
	path := writeTempFile(t, "yt.json", `[
		{"text": "hello world", "start": 0, "duration": 2},
		{"text": "goodbye", "start": 2, "duration": 1}
	]`)

	words, err := ReadYouTubeTranscript(path)
	require.NoError(t, err)
	require.Len(t, words, 3)
	require.Equal(t, 0.0, *words[0].Start)
	require.NotNil(t, words[0].End)
	require.Equal(t, 2.0, *words[0].End)
	// last segment's tokens carry no end time
	require.Nil(t, words[2].End)
}

func TestReadYouTubeTranscriptRejectsEmpty(t *testing.T) {
	path := writeTempFile(t, "empty.json", `[]`)

	_, err := ReadYouTubeTranscript(path)
	require.ErrorIs(t, err, errEmptySegments)
}

func TestReadSBV(t *testing.T) {
	path := writeTempFile(t, "captions.sbv", "0:00:00.000,0:00:02.500\nhello there\n\n0:00:02.500,0:00:04.000\nfriend\n")

	words, err := ReadSBV(path)
	require.NoError(t, err)
	require.Len(t, words, 3)
	require.Equal(t, "hello", words[0].Word)
	require.InDelta(t, 0.0, *words[0].Start, 1e-9)
	require.InDelta(t, 2.5, *words[0].End, 1e-9)
}

func TestReadSRT(t *testing.T) {
	path := writeTempFile(t, "captions.srt", "1\n00:00:00,000 --> 00:00:02,000\nhello there\n\n2\n00:00:02,000 --> 00:00:04,000\nfriend\n\n")

	words, err := ReadSRT(path)
	require.NoError(t, err)
	require.Len(t, words, 3)
	require.Equal(t, "hello", words[0].Word)
}

func TestReadSRTRejectsEmpty(t *testing.T) {
	path := writeTempFile(t, "empty.srt", "")

	_, err := ReadSRT(path)
	require.Error(t, err)
}

func TestInferTriesAdaptersInOrder(t *testing.T) {
	path := writeTempFile(t, "captions.sbv", "0:00:00.000,0:00:01.000\nonly sbv matches here\n")

	hsk, err := Infer(path)
	require.NoError(t, err)
	require.NotEmpty(t, hsk.Words)
}

func TestInferFailsForUnrecognizedFormat(t *testing.T) {
	path := writeTempFile(t, "garbage.txt", "not a known transcript format at all")

	_, err := Infer(path)
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	source := writeTempFile(t, "aligned.json", `{
		"segments": [],
		"word_segments": [{"word": "ok", "start": 0.0, "end": 0.1}]
	}`)
	dest := filepath.Join(t.TempDir(), "out.hsk")

	require.NoError(t, Convert(source, dest))
	require.FileExists(t, dest)
}
