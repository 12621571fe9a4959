// Package hskfile implements the on-disk .hsk transcript container: a
// Zstandard-compressed, self-indexed JSON envelope. It is grounded on the
// source system's hsk_file module and is byte-compatible with .hsk files
// produced there, since klauspost/compress/zstd emits standard-conformant
// Zstandard framing.
package hskfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/mooss/heurisko"
)

// Word is a single token occurrence in a transcript: its surface text and
// optional start/end times in seconds.
type Word struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

// WordIndexMap maps a normalized word to its ordered, strictly-increasing
// positions within the transcript's word list.
type WordIndexMap map[string][]int

// HskFile is the decoded contents of a .hsk file.
type HskFile struct {
	Words        []Word       `json:"words"`
	WordIndexMap WordIndexMap `json:"word_index_map"`
}

// FromWords builds an HskFile from a raw word list, computing the
// word-index map by a single forward pass.
func FromWords(words []Word) *HskFile {
	return &HskFile{
		Words:        words,
		WordIndexMap: indexWords(words),
	}
}

func indexWords(words []Word) WordIndexMap {
	m := make(WordIndexMap)
	for idx, w := range words {
		key := heurisko.Normalize(w.Word)
		if key == "" {
			continue
		}
		m[key] = append(m[key], idx)
	}
	return m
}

// ErrCorruptTranscript wraps a decode failure so the loader can
// distinguish "skip this file" from other classes of error.
type ErrCorruptTranscript struct {
	Path string
	Err  error
}

func (e *ErrCorruptTranscript) Error() string {
	return fmt.Sprintf("corrupt transcript %s: %v", e.Path, e.Err)
}

func (e *ErrCorruptTranscript) Unwrap() error { return e.Err }

// Save compresses and writes the file to path, creating any intermediate
// directories.
func (h *HskFile) Save(path string) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("hskfile: marshal: %w", err)
	}
	return compressAndWrite(data, path)
}

// Read decodes a .hsk file from path.
func Read(path string) (*HskFile, error) {
	data, err := readAndDecompress(path)
	if err != nil {
		return nil, &ErrCorruptTranscript{Path: path, Err: err}
	}
	var out HskFile
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &ErrCorruptTranscript{Path: path, Err: err}
	}
	return &out, nil
}

func compressAndWrite(data []byte, path string) error {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("hskfile: mkdir %s: %w", parent, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hskfile: create %s: %w", path, err)
	}
	defer f.Close()

	// zstd level 3 maps to the klauspost/compress library's SpeedDefault
	// preset, matching the source system's fixed COMPRESSION_LEVEL.
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("hskfile: new encoder: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("hskfile: write: %w", err)
	}
	return enc.Close()
}

func readAndDecompress(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(dec)
}
