package service

import "unicode/utf8"

// DefaultChunkSize is the fragment length used when no size is configured.
const DefaultChunkSize = 1000

// ChunkText splits text into consecutive, non-overlapping fragments of at
// most size bytes; the last fragment holds the remainder. Splitting is purely
// positional, so a boundary may fall inside a word, but never inside a
// multi-byte rune: a boundary that would split one backs up to the rune
// start so every fragment stays valid UTF-8. Empty text yields no fragments.
func ChunkText(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(text) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(text)+size-1)/size)
	for start := 0; start < len(text); {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == start {
			// size is smaller than the rune at start; emit it whole.
			_, n := utf8.DecodeRuneInString(text[start:])
			end = start + n
		}
		chunks = append(chunks, text[start:end])
		start = end
	}
	return chunks
}
