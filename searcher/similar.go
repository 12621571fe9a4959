package searcher

import "sort"

// FindAllExtendedWords finds every entry of sortedKeys sharing word as a
// prefix, ported from the source system's utils::find_all_extended_words:
// a binary search locates the first entry not less than word (which, if
// any entry has word as a prefix, is one of them), then a linear scan
// walks outward in both directions while the prefix still holds. sortedKeys must be sorted ascending; callers
// own that invariant (Load sorts idx.sortedKeys once at startup).
func FindAllExtendedWords(sortedKeys []string, word string) []string {
	n := sort.Search(len(sortedKeys), func(i int) bool {
		return sortedKeys[i] >= word
	})
	if n >= len(sortedKeys) || !startsWith(sortedKeys[n], word) {
		return nil
	}

	results := []string{sortedKeys[n]}

	for i := n - 1; i >= 0; i-- {
		if !startsWith(sortedKeys[i], word) {
			break
		}
		results = append(results, sortedKeys[i])
	}
	for i := n + 1; i < len(sortedKeys); i++ {
		if !startsWith(sortedKeys[i], word) {
			break
		}
		results = append(results, sortedKeys[i])
	}

	return results
}

func startsWith(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
