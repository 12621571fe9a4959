package hskfile

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestIndexRoundTrip(t *testing.T) {
	words := []Word{
		{Word: "The", Start: f64(0), End: f64(1)},
		{Word: "quick", Start: f64(1), End: f64(2)},
		{Word: "the", Start: f64(2), End: f64(3)},
		{Word: "fox", Start: f64(3), End: f64(4)},
	}
	hsk := FromWords(words)

	want := map[string][]int{
		"the":   {0, 2},
		"quick": {1},
		"fox":   {3},
	}
	for key, positions := range want {
		got, ok := hsk.WordIndexMap[key]
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		if !sort.IntsAreSorted(got) {
			t.Errorf("positions for %q not sorted: %v", key, got)
		}
		if len(got) != len(positions) {
			t.Fatalf("key %q: got %v want %v", key, got, positions)
		}
		for i := range got {
			if got[i] != positions[i] {
				t.Errorf("key %q: got %v want %v", key, got, positions)
			}
		}
	}
}

func TestSaveReadRoundTrip(t *testing.T) {
	words := []Word{
		{Word: "Hello", Start: f64(0.5), End: f64(1.2)},
		{Word: "world", Start: nil, End: nil},
	}
	hsk := FromWords(words)

	path := filepath.Join(t.TempDir(), "nested", "transcript.hsk")
	if err := hsk.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Words) != len(words) {
		t.Fatalf("got %d words, want %d", len(got.Words), len(words))
	}
	if got.Words[0].Word != "Hello" || got.Words[1].Word != "world" {
		t.Errorf("words mismatch: %+v", got.Words)
	}
	if got.Words[1].Start != nil || got.Words[1].End != nil {
		t.Errorf("expected nil start/end for second word, got %+v", got.Words[1])
	}
	if _, ok := got.WordIndexMap["hello"]; !ok {
		t.Errorf("expected word_index_map to survive the round trip")
	}
}

func TestReadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hsk")
	if err := os.WriteFile(path, []byte("not a zstd stream"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Read(path)
	if err == nil {
		t.Fatal("expected Read of a garbage file to fail")
	}
	var corrupt *ErrCorruptTranscript
	if !errors.As(err, &corrupt) {
		t.Errorf("expected *ErrCorruptTranscript, got %T: %v", err, err)
	}
}
