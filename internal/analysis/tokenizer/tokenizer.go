// Package tokenizer turns raw survey text into ordered, normalised word
// tokens. It lower-cases input, splits on whitespace and sentence punctuation,
// and keeps internal apostrophes so contractions such as "don't" survive as a
// single token.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Token represents a single normalised term and its position in the
// sentence it came from.
type Token struct {
	Term     string
	Position int
}

// Options tunes normalisation. The zero value is the plain-text pipeline.
type Options struct {
	// StripMarkup extracts the text content of strings that contain HTML
	// before tokenising them.
	StripMarkup bool
}

const apostrophe = '\''

// separators are the punctuation runes that end a token in addition to
// Unicode whitespace.
const separators = ".,;:!?\"()[]{}…“”«»"

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
}

// Tokenize breaks one raw string into tokens numbered from zero.
func Tokenize(text string) []Token {
	return appendTokens(nil, text, 0)
}

// TokenizeSentence tokenises every raw string of a sentence in order.
// Positions continue across the strings so they index the whole sentence.
func TokenizeSentence(sentence []string, opts Options) []Token {
	var tokens []Token
	for _, raw := range sentence {
		if opts.StripMarkup {
			raw = stripMarkup(raw)
		}
		tokens = appendTokens(tokens, raw, len(tokens))
	}
	return tokens
}

// Terms projects tokens onto their text.
func Terms(tokens []Token) []string {
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}

// Normalize runs one string through the pipeline and returns the terms, the
// form in which search keywords are compared to tokens.
func Normalize(text string) []string {
	return Terms(Tokenize(text))
}

func appendTokens(tokens []Token, text string, pos int) []Token {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "’", "'")
	for _, word := range strings.FieldsFunc(text, isSeparator) {
		word = strings.Trim(word, string(apostrophe))
		if word == "" {
			continue
		}
		tokens = append(tokens, Token{
			Term:     word,
			Position: pos,
		})
		pos++
	}
	return tokens
}

// stripMarkup returns the text content of an HTML fragment. Strings without a
// tag opener are returned unchanged, as is anything goquery cannot parse.
func stripMarkup(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	var b strings.Builder
	collectText(doc.Find("body"), &b)
	return b.String()
}

// collectText appends every text node under s, separating nodes with a space
// so adjacent block elements do not fuse into one word.
func collectText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			b.WriteString(c.Text())
			b.WriteByte(' ')
		case "script", "style", "#comment":
		default:
			collectText(c, b)
		}
	})
}
