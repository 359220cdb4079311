// Package postfix extracts the word sequences that follow a target keyword
// in tokenised sentences and groups them by response.
package postfix

import (
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
)

// Set is the tail of one sentence after one occurrence of the target.
type Set struct {
	ResponseID string   `json:"ResponseID"`
	Sequence   []string `json:"Sequence"`
}

// Extractor collects postfix sets for a single target. Sentences must be
// added in corpus order; the emitted sets follow that order.
type Extractor struct {
	target []string
	sets   []Set
}

// NewExtractor normalises target with the tokenizer. A target that
// normalises to several terms is matched as a consecutive phrase; one that
// normalises to nothing never matches.
func NewExtractor(target string) *Extractor {
	return &Extractor{
		target: tokenizer.Normalize(target),
		sets:   make([]Set, 0),
	}
}

// Target returns the normalised target terms.
func (e *Extractor) Target() []string {
	return e.target
}

// Add scans one unfiltered sentence and records a Set for every match,
// returning the number of matches.
func (e *Extractor) Add(responseID string, sentence []tokenizer.Token) int {
	n := len(e.target)
	if n == 0 {
		return 0
	}
	matches := 0
	for i := 0; i+n <= len(sentence); i++ {
		if !e.matchesAt(sentence, i) {
			continue
		}
		tail := tokenizer.Terms(sentence[i+n:])
		e.sets = append(e.sets, Set{ResponseID: responseID, Sequence: tail})
		matches++
	}
	return matches
}

func (e *Extractor) matchesAt(sentence []tokenizer.Token, i int) bool {
	for j, term := range e.target {
		if sentence[i+j].Term != term {
			return false
		}
	}
	return true
}

// Result returns every extracted set with the derived response ids.
func (e *Extractor) Result() *Result {
	return &Result{
		Sets:        e.sets,
		ResponseIDs: ResponseIDs(e.sets),
	}
}

// Result is the outcome of one postfix extraction.
type Result struct {
	Sets        []Set
	ResponseIDs []string
}
