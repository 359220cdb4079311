// Package cloud builds word clouds: ranked term frequencies over a whole
// corpus, with the set of responses each term came from.
package cloud

import (
	"encoding/json"
	"sort"

	"github.com/RoaringBitmap/roaring"
	snowballeng "github.com/kljensen/snowball/english"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
)

// Entry is one ranked word of a cloud.
type Entry struct {
	Text  string `json:"Text"`
	Count int    `json:"Count"`
	// Responses holds the first-occurrence indices of the distinct response
	// ids that contributed this word.
	Responses *roaring.Bitmap `json:"-"`
}

// Options tunes aggregation. The zero value counts exact terms and keeps
// every entry.
type Options struct {
	// Limit caps the number of entries after ranking; 0 means no cap.
	Limit int
	// Stem groups inflections under their English stem. The entry text is
	// the first surface form seen for the stem.
	Stem bool
}

// Aggregator counts filtered tokens in corpus order. It is single-use and not
// safe for concurrent Add calls; ordering depends on the order of Add.
type Aggregator struct {
	opts    Options
	entries map[string]*Entry
	order   []*Entry
	ids     []string
	idIndex map[string]uint32
}

// NewAggregator creates an empty Aggregator.
func NewAggregator(opts Options) *Aggregator {
	return &Aggregator{
		opts:    opts,
		entries: make(map[string]*Entry),
		idIndex: make(map[string]uint32),
	}
}

// Add counts tokens attributed to responseID. Tokens must already be
// stop-word filtered.
func (a *Aggregator) Add(responseID string, tokens []tokenizer.Token) {
	if len(tokens) == 0 {
		return
	}
	idx := a.responseIndex(responseID)
	for _, tok := range tokens {
		key := tok.Term
		if a.opts.Stem {
			key = snowballeng.Stem(tok.Term, false)
		}
		e, ok := a.entries[key]
		if !ok {
			e = &Entry{Text: tok.Term, Responses: roaring.New()}
			a.entries[key] = e
			a.order = append(a.order, e)
		}
		e.Count++
		e.Responses.Add(idx)
	}
}

func (a *Aggregator) responseIndex(id string) uint32 {
	if idx, ok := a.idIndex[id]; ok {
		return idx
	}
	idx := uint32(len(a.ids))
	a.ids = append(a.ids, id)
	a.idIndex[id] = idx
	return idx
}

// Cloud ranks the counted terms by count descending. Ties keep first
// occurrence order.
func (a *Aggregator) Cloud() *Cloud {
	ranked := make([]Entry, len(a.order))
	for i, e := range a.order {
		ranked[i] = *e
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if a.opts.Limit > 0 && len(ranked) > a.opts.Limit {
		ranked = ranked[:a.opts.Limit]
	}
	return &Cloud{Entries: ranked, responseIDs: a.ids}
}

// Cloud is the ranked result of one aggregation.
type Cloud struct {
	Entries     []Entry
	responseIDs []string
}

// HeaviestWord returns the top-ranked word, or false for an empty cloud.
func (c *Cloud) HeaviestWord() (string, bool) {
	if len(c.Entries) == 0 {
		return "", false
	}
	return c.Entries[0].Text, true
}

// Len returns the number of entries.
func (c *Cloud) Len() int {
	return len(c.Entries)
}

// Provenance returns the response ids that contributed text, in the order
// the ids first appeared in the corpus. Unknown words yield nil.
func (c *Cloud) Provenance(text string) []string {
	for _, e := range c.Entries {
		if e.Text != text {
			continue
		}
		ids := make([]string, 0, e.Responses.GetCardinality())
		it := e.Responses.Iterator()
		for it.HasNext() {
			ids = append(ids, c.responseIDs[it.Next()])
		}
		return ids
	}
	return nil
}

// MarshalJSON encodes the cloud as an array of {"Text","Count"} objects. An
// empty cloud encodes as [].
func (c *Cloud) MarshalJSON() ([]byte, error) {
	entries := c.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}
