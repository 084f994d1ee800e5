package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_SplitsWithRemainder(t *testing.T) {
	chunks := ChunkText("ABCDE", 2)
	assert.Equal(t, []string{"AB", "CD", "E"}, chunks)
}

func TestChunkText_ExactMultiple(t *testing.T) {
	chunks := ChunkText("ABCD", 2)
	assert.Equal(t, []string{"AB", "CD"}, chunks)
}

func TestChunkText_EmptyInput(t *testing.T) {
	assert.Empty(t, ChunkText("", 1000))
}

func TestChunkText_TextShorterThanSize(t *testing.T) {
	chunks := ChunkText("hi", 1000)
	assert.Equal(t, []string{"hi"}, chunks)
}

func TestChunkText_ConcatenationReproducesInput(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 137)
	for _, size := range []int{1, 7, 100, 1000, len(text), len(text) + 5} {
		chunks := ChunkText(text, size)
		assert.Equal(t, text, strings.Join(chunks, ""), "size=%d", size)
	}
}

func TestChunkText_ChunkCountAndLengths(t *testing.T) {
	text := strings.Repeat("x", 2500)
	chunks := ChunkText(text, 1000)
	require.Len(t, chunks, 3) // ceil(2500/1000)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
	assert.Len(t, chunks[2], 500)
}

func TestChunkText_BoundaryMayFallInsideWord(t *testing.T) {
	chunks := ChunkText("hello world", 4)
	assert.Equal(t, []string{"hell", "o wo", "rld"}, chunks)
}

func TestChunkText_BoundariesNeverSplitRunes(t *testing.T) {
	text := "café y más café con acentos"
	for _, size := range []int{1, 3, 5, 8} {
		chunks := ChunkText(text, size)
		for i, chunk := range chunks {
			assert.True(t, utf8.ValidString(chunk), "size=%d chunk=%d %q", size, i, chunk)
			assert.LessOrEqual(t, len(chunk), size+utf8.UTFMax, "size=%d chunk=%d", size, i)
		}
		assert.Equal(t, text, strings.Join(chunks, ""), "size=%d", size)
	}
}

func TestChunkText_SizeSmallerThanRuneEmitsWholeRune(t *testing.T) {
	chunks := ChunkText("ñño", 1)
	assert.Equal(t, []string{"ñ", "ñ", "o"}, chunks)
}

func TestChunkText_NonPositiveSizeUsesDefault(t *testing.T) {
	text := strings.Repeat("y", DefaultChunkSize+1)
	chunks := ChunkText(text, 0)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], DefaultChunkSize)
}
