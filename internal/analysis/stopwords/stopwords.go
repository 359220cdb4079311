// Package stopwords holds the case-insensitive word sets that are excluded from
// word-cloud counting. The zero Set is valid and filters nothing.
package stopwords

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
)

//go:embed default.txt
var defaultList string

// Set is an immutable set of lower-cased stop words.
type Set struct {
	words map[string]struct{}
}

// Parse builds a Set from a whitespace-delimited list, the form callers pass
// across the boundary. An empty string yields an empty Set.
func Parse(text string) Set {
	s := Set{words: make(map[string]struct{})}
	s.add(text)
	return s
}

// Default returns the survey stop-word list shipped with the engine.
func Default() Set {
	s, _ := Read(strings.NewReader(defaultList))
	return s
}

// Load reads a stop-word file. Words are separated by any whitespace and text
// after a '#' on a line is ignored.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("opening stop-word file %s: %w", path, err)
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return Set{}, fmt.Errorf("reading stop-word file %s: %w", path, err)
	}
	return s, nil
}

// Read parses the Load file format from r.
func Read(r io.Reader) (Set, error) {
	s := Set{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		s.add(line)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, err
	}
	return s, nil
}

func (s Set) add(text string) {
	for _, word := range strings.Fields(text) {
		s.words[strings.ToLower(word)] = struct{}{}
	}
}

// Contains reports whether word is a stop word, ignoring case.
func (s Set) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct stop words.
func (s Set) Len() int {
	return len(s.words)
}

// Words returns the stop words in sorted order.
func (s Set) Words() []string {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Filter returns the tokens that are not stop words, preserving order.
func (s Set) Filter(tokens []tokenizer.Token) []tokenizer.Token {
	if len(s.words) == 0 {
		return tokens
	}
	kept := make([]tokenizer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !s.Contains(tok.Term) {
			kept = append(kept, tok)
		}
	}
	return kept
}
