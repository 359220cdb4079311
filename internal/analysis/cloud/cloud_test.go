package cloud

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
)

func add(a *Aggregator, id, text string) {
	a.Add(id, tokenizer.Tokenize(text))
}

func TestCloudRanking(t *testing.T) {
	a := NewAggregator(Options{})
	add(a, "1", "pizza pasta salad")
	add(a, "2", "salad pasta")
	add(a, "3", "salad soup")

	c := a.Cloud()
	require.Equal(t, []string{"salad", "pasta", "pizza", "soup"}, texts(c))
	require.Equal(t, []int{3, 2, 1, 1}, counts(c))

	word, ok := c.HeaviestWord()
	require.True(t, ok)
	require.Equal(t, "salad", word)
}

func TestCloudTiesKeepFirstOccurrence(t *testing.T) {
	a := NewAggregator(Options{})
	add(a, "1", "zebra apple mango")
	add(a, "2", "mango apple zebra")

	require.Equal(t, []string{"zebra", "apple", "mango"}, texts(a.Cloud()))
}

func TestCloudEmpty(t *testing.T) {
	a := NewAggregator(Options{})
	a.Add("1", nil)

	c := a.Cloud()
	require.Equal(t, 0, c.Len())
	_, ok := c.HeaviestWord()
	require.False(t, ok)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))
}

func TestCloudLimit(t *testing.T) {
	a := NewAggregator(Options{Limit: 2})
	add(a, "1", "a a a b b c d")

	require.Equal(t, []string{"a", "b"}, texts(a.Cloud()))
}

func TestCloudStem(t *testing.T) {
	a := NewAggregator(Options{Stem: true})
	add(a, "1", "loved pizza")
	add(a, "2", "loving love")

	c := a.Cloud()
	require.Equal(t, "loved", c.Entries[0].Text)
	require.Equal(t, 3, c.Entries[0].Count)

	exact := NewAggregator(Options{})
	add(exact, "1", "loved pizza")
	add(exact, "2", "loving love")
	require.Equal(t, 4, exact.Cloud().Len())
}

func TestCloudProvenance(t *testing.T) {
	a := NewAggregator(Options{})
	add(a, "r2", "pizza")
	add(a, "r1", "pizza pasta")
	add(a, "r2", "pasta pizza")

	c := a.Cloud()
	require.Equal(t, []string{"r2", "r1"}, c.Provenance("pizza"))
	require.Equal(t, []string{"r2", "r1"}, c.Provenance("pasta"), "ids follow corpus first appearance")
	require.Nil(t, c.Provenance("soup"))
}

func TestCloudJSON(t *testing.T) {
	a := NewAggregator(Options{})
	add(a, "1", "pizza pizza pasta")

	data, err := json.Marshal(a.Cloud())
	require.NoError(t, err)
	require.Equal(t, `[{"Text":"pizza","Count":2},{"Text":"pasta","Count":1}]`, string(data))
}

func texts(c *Cloud) []string {
	out := make([]string, 0, c.Len())
	for _, e := range c.Entries {
		out = append(out, e.Text)
	}
	return out
}

func counts(c *Cloud) []int {
	out := make([]int, 0, c.Len())
	for _, e := range c.Entries {
		out = append(out, e.Count)
	}
	return out
}
