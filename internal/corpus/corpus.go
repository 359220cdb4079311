// Package corpus models survey responses as they cross the engine boundary
// and implements the wire codec: a stream of back-to-back JSON objects, each
// one response, optionally mixed with JSON arrays of such objects.
package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/errors"
)

// ResponseGroup is every sentence attributed to one response. A sentence is
// an ordered list of raw strings, usually a single comment.
type ResponseGroup struct {
	ID        string     `json:"ResponseID"`
	Sentences [][]string `json:"Sentences"`
}

// Corpus is an ordered list of response groups. Ids may repeat; results for
// a repeated id are merged under that id.
type Corpus []ResponseGroup

// SentenceCount returns the number of sentences across all groups.
func (c Corpus) SentenceCount() int {
	n := 0
	for _, g := range c {
		n += len(g.Sentences)
	}
	return n
}

// Record is one free-text answer or comment belonging to a response.
type Record struct {
	ResponseID string `json:"ResponseID"`
	Text       string `json:"Text"`
}

// FromRecords groups records by response id in first-occurrence order. Each
// record becomes a one-string sentence of its group.
func FromRecords(records []Record) Corpus {
	index := make(map[string]int, len(records))
	c := make(Corpus, 0)
	for _, r := range records {
		i, ok := index[r.ResponseID]
		if !ok {
			i = len(c)
			index[r.ResponseID] = i
			c = append(c, ResponseGroup{ID: r.ResponseID})
		}
		c[i].Sentences = append(c[i].Sentences, []string{r.Text})
	}
	return c
}

// Decode reads a corpus stream from r until EOF. Each top-level value must
// be a response object or an array of response objects; empty input is an
// empty corpus. Failures wrap apperrors.ErrDecode.
func Decode(r io.Reader) (Corpus, error) {
	dec := json.NewDecoder(r)
	c := make(Corpus, 0)
	for n := 0; ; n++ {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		if err != nil {
			return nil, apperrors.Decodef("value %d: %v", n, err)
		}
		c, err = appendValue(c, raw)
		if err != nil {
			return nil, apperrors.Decodef("value %d: %v", n, err)
		}
	}
}

// DecodeString is Decode over a string.
func DecodeString(s string) (Corpus, error) {
	return Decode(strings.NewReader(s))
}

func appendValue(c Corpus, raw json.RawMessage) (Corpus, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return c, nil
	}
	switch trimmed[0] {
	case '{':
		var g ResponseGroup
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, err
		}
		return append(c, g), nil
	case '[':
		var groups []ResponseGroup
		if err := json.Unmarshal(raw, &groups); err != nil {
			return nil, err
		}
		return append(c, groups...), nil
	default:
		return nil, errors.New("expected a response object or an array of response objects")
	}
}

// DecodeRecords reads a stream of Record objects, one per JSON value.
func DecodeRecords(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	records := make([]Record, 0)
	for n := 0; ; n++ {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, apperrors.Decodef("record %d: %v", n, err)
		}
		records = append(records, rec)
	}
}

// Encode writes c in the back-to-back object form with no separators.
func Encode(w io.Writer, c Corpus) error {
	for _, g := range c {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}
