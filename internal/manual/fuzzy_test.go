package manual

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	require.Equal(t, 100, similarity("ping", "ping"))
	require.Equal(t, 75, similarity("pign", "ping"))
	require.Equal(t, 0, similarity("xyz", "ping"))
	require.Equal(t, 100, similarity("", ""))
	require.Equal(t, 0, similarity("", "ping"))
}

// Transposed letters break the subsequence property, so the match must
// come from whole-set scoring rather than the fragment matcher.
func TestBestMatchTransposition(t *testing.T) {
	got, ok := bestMatch("pign", []string{"ping", "echo", "roll"}, DefaultSimilarityFloor)
	require.True(t, ok)
	require.Equal(t, "ping", got)
}

func TestBestMatchFragment(t *testing.T) {
	got, ok := bestMatch("prg", []string{"purge", "prefix", "ping"}, 50)
	require.True(t, ok)
	require.Equal(t, "purge", got)
}

func TestBestMatchBelowFloor(t *testing.T) {
	_, ok := bestMatch("xyz", []string{"ping", "echo", "roll"}, DefaultSimilarityFloor)
	require.False(t, ok)
}

// Ties go to the lexicographically smaller candidate so suggestions
// are deterministic.
func TestBestMatchTieBreak(t *testing.T) {
	got, ok := bestMatch("ba", []string{"b1", "a1"}, 40)
	require.True(t, ok)
	require.Equal(t, "a1", got)
}
