package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/postfix"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/stopwords"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/metrics"
)

// DecodePolicy decides what the boundary returns for a corpus it cannot
// decode.
type DecodePolicy int

const (
	// DecodeFail returns the decode error to the caller.
	DecodeFail DecodePolicy = iota
	// DecodeAsEmpty logs the error and returns an empty JSON array, the
	// "no cloud" degradation historical callers relied on.
	DecodeAsEmpty
)

// ParseDecodePolicy maps a config value to a DecodePolicy.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch s {
	case config.DecodePolicyError, "":
		return DecodeFail, nil
	case config.DecodePolicyEmpty:
		return DecodeAsEmpty, nil
	default:
		return DecodeFail, fmt.Errorf("unknown decode policy %q", s)
	}
}

const emptyJSONArray = "[]"

// Boundary exposes an Analyzer through string-in, string-out calls that
// take a serialized corpus and return JSON.
type Boundary struct {
	analyzer Analyzer
	policy   DecodePolicy
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewBoundary wraps a. m may be nil.
func NewBoundary(a Analyzer, policy DecodePolicy, m *metrics.Metrics) *Boundary {
	return &Boundary{
		analyzer: a,
		policy:   policy,
		metrics:  m,
		logger:   slog.Default().With("component", "boundary"),
	}
}

// ParseWords builds the word cloud of corpusJSON with the space-delimited
// stop words in stopWordsText and returns [{"Text":..,"Count":..}].
func (b *Boundary) ParseWords(ctx context.Context, corpusJSON, stopWordsText string) (string, error) {
	c, fallback, err := b.decode(OpCloud, corpusJSON)
	if err != nil {
		return "", err
	}
	if fallback {
		return emptyJSONArray, nil
	}
	result, err := b.analyzer.BuildWordCloud(ctx, c, stopwords.Parse(stopWordsText))
	if err != nil {
		return "", err
	}
	return encode(result)
}

// PostfixSets returns [{"ResponseID":..,"Sequence":[..]}], one object per
// occurrence of target.
func (b *Boundary) PostfixSets(ctx context.Context, corpusJSON, target string) (string, error) {
	result, fallback, err := b.postfix(ctx, corpusJSON, target)
	if err != nil {
		return "", err
	}
	if fallback {
		return emptyJSONArray, nil
	}
	return encode(result.Sets)
}

// ResponseIDs returns the distinct ids of the postfix sets for target as a
// JSON array of strings.
func (b *Boundary) ResponseIDs(ctx context.Context, corpusJSON, target string) (string, error) {
	result, fallback, err := b.postfix(ctx, corpusJSON, target)
	if err != nil {
		return "", err
	}
	if fallback {
		return emptyJSONArray, nil
	}
	return encode(result.ResponseIDs)
}

// GroupedPostfixSets returns [{"ResponseID":..,"Sentences":[[..]]}], the
// postfix sets merged per response.
func (b *Boundary) GroupedPostfixSets(ctx context.Context, corpusJSON, target string) (string, error) {
	result, fallback, err := b.postfix(ctx, corpusJSON, target)
	if err != nil {
		return "", err
	}
	if fallback {
		return emptyJSONArray, nil
	}
	return encode(postfix.Group(result.Sets))
}

func (b *Boundary) postfix(ctx context.Context, corpusJSON, target string) (*postfix.Result, bool, error) {
	c, fallback, err := b.decode(OpPostfix, corpusJSON)
	if err != nil || fallback {
		return nil, fallback, err
	}
	result, err := b.analyzer.BuildPostfixSets(ctx, c, target)
	if err != nil {
		return nil, false, err
	}
	return result, false, nil
}

// decode reports fallback=true when the corpus was rejected and the policy
// asks for an empty result instead of an error.
func (b *Boundary) decode(op, corpusJSON string) (corpus.Corpus, bool, error) {
	c, err := corpus.DecodeString(corpusJSON)
	if err == nil {
		return c, false, nil
	}
	if b.metrics != nil {
		b.metrics.DecodeFailuresTotal.Inc()
	}
	if b.policy == DecodeAsEmpty {
		b.logger.Warn("corpus rejected, returning empty result",
			"operation", op,
			"error", err,
		)
		if b.metrics != nil {
			b.metrics.AnalysesTotal.WithLabelValues(op, metrics.OutcomeFallback).Inc()
		}
		return nil, true, nil
	}
	if b.metrics != nil {
		b.metrics.AnalysesTotal.WithLabelValues(op, metrics.OutcomeError).Inc()
	}
	return nil, false, err
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(data), nil
}
