// Package embedded bundles the default stop-word and word-ending lists
// seeded into a fresh config directory on first run.
package embedded

import _ "embed"

//go:embed stop_words.txt
var DefaultStopWords []byte

//go:embed word_endings.txt
var DefaultWordEndings []byte
