package stopwords

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
)

func TestParse(t *testing.T) {
	s := Parse("the  a\tAn\nThemR")
	require.Equal(t, 4, s.Len())
	for _, w := range []string{"the", "THE", "a", "an", "themr"} {
		require.True(t, s.Contains(w), w)
	}
	require.False(t, s.Contains("pizza"))
}

func TestEmptySetIsNoop(t *testing.T) {
	tokens := tokenizer.Tokenize("the cat")

	require.Equal(t, 0, Parse("").Len())
	require.Equal(t, tokens, Parse("").Filter(tokens))

	var zero Set
	require.False(t, zero.Contains("the"))
	require.Equal(t, tokens, zero.Filter(tokens))
}

func TestFilterPreservesOrderAndPositions(t *testing.T) {
	tokens := tokenizer.Tokenize("The pizza and the pasta")
	kept := Parse("the and").Filter(tokens)
	require.Equal(t, []tokenizer.Token{
		{Term: "pizza", Position: 1},
		{Term: "pasta", Position: 4},
	}, kept)
}

func TestDefault(t *testing.T) {
	s := Default()
	require.Greater(t, s.Len(), 300)
	for _, w := range []string{"the", "a", "an", "i", "don't", "i'm", "january", "-", ":"} {
		require.True(t, s.Contains(w), w)
	}
	for _, w := range []string{"pizza", "love", "#", "default"} {
		require.False(t, s.Contains(w), w)
	}
}

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader("# header\nfoo bar # trailing\n\n  baz\n"))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	require.False(t, s.Contains("trailing"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nBeta\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.True(t, s.Contains("beta"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestWordsRoundTripsThroughParse(t *testing.T) {
	s := Parse("the A an the")
	require.Equal(t, []string{"a", "an", "the"}, s.Words())

	def := Default()
	require.Equal(t, def.Len(), Parse(strings.Join(def.Words(), " ")).Len())
}
