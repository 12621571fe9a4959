// Package ingest parses transcripts produced by external speech-to-text
// and captioning tools into the common hskfile.Word stream, grounded on
// the source system's input_files modules.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mooss/heurisko/hskfile"
)

// adapters is the fixed-order registry of format parsers. Infer tries
// each in turn and returns the first success, matching the source
// system's WhisperX-aligned, WhisperX-unaligned, YouTube, SRT, SBV order.
var adapters = []func(path string) ([]hskfile.Word, error){
	ReadWhisperXAligned,
	ReadWhisperXUnaligned,
	ReadYouTubeTranscript,
	ReadSRT,
	ReadSBV,
}

// Infer tries every registered adapter in order and builds a self-indexed
// HskFile from the first one that succeeds.
func Infer(path string) (*hskfile.HskFile, error) {
	for _, adapter := range adapters {
		words, err := adapter(path)
		if err == nil {
			return hskfile.FromWords(words), nil
		}
	}
	return nil, fmt.Errorf("could not parse %s into any type", path)
}

// Convert infers the format of source and writes the resulting .hsk file
// to dest, creating intermediate directories as needed.
func Convert(source, dest string) error {
	hsk, err := Infer(source)
	if err != nil {
		return err
	}
	return hsk.Save(dest)
}

// destExt is the extension ConvertPath gives every file it writes.
const destExt = "hsk"

// ConvertPath converts source into destRoot: a single file converts
// directly to destRoot/<basename>.hsk, a directory walks recursively and
// converts every file it finds, optionally flattening the destination
// layout to destRoot/<basename>.hsk instead of mirroring source's
// subdirectories. The CLI and HTTP conversion surfaces both call this so
// they apply identical recursive/flatten semantics to the same request
// shape. onConvert, if non-nil, is called with each (source, dest) pair
// right before it is converted; callers that don't care about progress
// reporting can pass nil. When converting a directory, a file that fails
// to convert does not stop the walk: the remaining files are still
// converted and every failure is returned together in one joined error.
func ConvertPath(source, destRoot string, flatten bool, onConvert func(source, dest string)) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		dest := replaceExt(filepath.Join(destRoot, filepath.Base(source)), destExt)
		if onConvert != nil {
			onConvert(source, dest)
		}
		return Convert(source, dest)
	}

	var errs []error
	walkErr := filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		var dest string
		if flatten {
			dest = filepath.Join(destRoot, filepath.Base(path))
		} else {
			rel, relErr := filepath.Rel(source, path)
			if relErr != nil {
				return relErr
			}
			dest = filepath.Join(destRoot, rel)
		}
		dest = replaceExt(dest, destExt)
		if onConvert != nil {
			onConvert(path, dest)
		}
		if err := Convert(path, dest); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	return errors.Join(append(errs, walkErr)...)
}

func replaceExt(path, ext string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))
	return trimmed + "." + ext
}
