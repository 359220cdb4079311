package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		exp   []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \t\n ", []string{}},
		{"lower-cases", "I Love PIZZA", []string{"i", "love", "pizza"}},
		{"sentence punctuation", "love me, tender... ;D", []string{"love", "me", "tender", "d"}},
		{"brackets and quotes", `"pizza" (and) [pasta] {x}`, []string{"pizza", "and", "pasta", "x"}},
		{"ellipsis rune", "well…maybe", []string{"well", "maybe"}},
		{"contractions", "I'm sure we don't", []string{"i'm", "sure", "we", "don't"}},
		{"typographic apostrophe", "It’s fine", []string{"it's", "fine"}},
		{"boundary apostrophes", "'quoted' ''", []string{"quoted"}},
		{"hyphen is kept", "coca-cola - yes", []string{"coca-cola", "-", "yes"}},
		{"unicode letters", "Café Über", []string{"café", "über"}},
		{"trailing space", "I also love eating pizza ", []string{"i", "also", "love", "eating", "pizza"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.exp, Terms(Tokenize(tt.input)))
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens := Tokenize("one, two three")
	require.Equal(t, []Token{
		{Term: "one", Position: 0},
		{Term: "two", Position: 1},
		{Term: "three", Position: 2},
	}, tokens)
}

func TestTokenizeSentenceContinuesPositions(t *testing.T) {
	tokens := TokenizeSentence([]string{"I love you", "", "so much"}, Options{})
	require.Len(t, tokens, 5)
	for i, tok := range tokens {
		require.Equal(t, i, tok.Position)
	}
	require.Equal(t, []string{"i", "love", "you", "so", "much"}, Terms(tokens))
}

func TestTokenizeSentenceStripMarkup(t *testing.T) {
	sentence := []string{`<p>I <em>love</em> pizza</p><p>so&nbsp;much</p><script>var x</script>`}

	stripped := TokenizeSentence(sentence, Options{StripMarkup: true})
	require.Equal(t, []string{"i", "love", "pizza", "so", "much"}, Terms(stripped))

	plain := TokenizeSentence([]string{"a < b"}, Options{StripMarkup: true})
	require.Equal(t, []string{"a", "<", "b"}, Terms(plain))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, []string{"love"}, Normalize("  LOVE! "))
	require.Empty(t, Normalize("..."))
}
