// Package engine runs the text-analytics pipeline over one corpus per call:
// tokenize every response, then either count stop-word-filtered terms into a
// word cloud or extract the tails that follow a target keyword.
//
// Calls share no analytic state. Tokenization may fan out across workers, but
// counting and extraction always run in a single pass in corpus order, so the
// result does not depend on the worker count.
package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/cloud"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/postfix"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/stopwords"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/tracing"
)

// Operation names used in logs, spans and metric labels.
const (
	OpCloud   = "cloud"
	OpPostfix = "postfix"
)

// Analyzer is the two-call surface of the engine.
type Analyzer interface {
	BuildWordCloud(ctx context.Context, c corpus.Corpus, stop stopwords.Set) (*cloud.Cloud, error)
	BuildPostfixSets(ctx context.Context, c corpus.Corpus, target string) (*postfix.Result, error)
}

// Options configures an Engine. The zero value is a serial, uninstrumented
// engine with exact counting and no cloud limit.
type Options struct {
	// Workers bounds concurrent tokenization; below 2 tokenizes serially.
	Workers   int
	Tokenizer tokenizer.Options
	Cloud     cloud.Options
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Trace logs a span tree for every call at debug level.
	Trace bool
}

// Engine implements Analyzer. It is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

var _ Analyzer = (*Engine)(nil)

// New creates an Engine.
func New(opts Options) *Engine {
	return &Engine{
		opts:   opts,
		logger: slog.Default().With("component", "engine"),
	}
}

// tokenizedGroup is one response group after tokenization, sentence by
// sentence.
type tokenizedGroup struct {
	id        string
	sentences [][]tokenizer.Token
}

// BuildWordCloud ranks the non-stop-word terms of c. An empty cloud is a
// normal result. The only error is ctx cancellation.
func (e *Engine) BuildWordCloud(ctx context.Context, c corpus.Corpus, stop stopwords.Set) (*cloud.Cloud, error) {
	ctx, root := e.startSpan(ctx, OpCloud)
	start := time.Now()

	groups, err := e.tokenize(ctx, c)
	if err != nil {
		e.finish(ctx, root, OpCloud, start, metrics.OutcomeError)
		return nil, err
	}

	_, span := tracing.StartChildSpan(ctx, "aggregate")
	agg := cloud.NewAggregator(e.opts.Cloud)
	for _, g := range groups {
		for _, sentence := range g.sentences {
			agg.Add(g.id, stop.Filter(sentence))
		}
	}
	result := agg.Cloud()
	span.SetAttr("entries", result.Len())
	span.End()

	outcome := metrics.OutcomeOK
	if result.Len() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	heaviest, _ := result.HeaviestWord()
	e.log(ctx).Debug("word cloud built",
		"responses", len(c),
		"stop_words", stop.Len(),
		"entries", result.Len(),
		"heaviest_word", heaviest,
	)
	e.finish(ctx, root, OpCloud, start, outcome)
	return result, nil
}

// BuildPostfixSets extracts the tail after every occurrence of target in c.
// A target that never occurs yields an empty result. The only error is ctx
// cancellation.
func (e *Engine) BuildPostfixSets(ctx context.Context, c corpus.Corpus, target string) (*postfix.Result, error) {
	ctx, root := e.startSpan(ctx, OpPostfix)
	root.SetAttr("target", target)
	start := time.Now()

	groups, err := e.tokenize(ctx, c)
	if err != nil {
		e.finish(ctx, root, OpPostfix, start, metrics.OutcomeError)
		return nil, err
	}

	_, span := tracing.StartChildSpan(ctx, "extract")
	ext := postfix.NewExtractor(target)
	for _, g := range groups {
		for _, sentence := range g.sentences {
			ext.Add(g.id, sentence)
		}
	}
	result := ext.Result()
	span.SetAttr("sets", len(result.Sets))
	span.End()

	outcome := metrics.OutcomeOK
	if len(result.Sets) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	e.log(ctx).Debug("postfix sets built",
		"responses", len(c),
		"target", target,
		"sets", len(result.Sets),
		"response_ids", len(result.ResponseIDs),
	)
	e.finish(ctx, root, OpPostfix, start, outcome)
	return result, nil
}

// tokenize returns the groups of c in corpus order regardless of how many
// workers produced them.
func (e *Engine) tokenize(ctx context.Context, c corpus.Corpus) ([]tokenizedGroup, error) {
	ctx, span := tracing.StartChildSpan(ctx, "tokenize")
	defer span.End()

	out := make([]tokenizedGroup, len(c))
	if e.opts.Workers < 2 || len(c) < 2 {
		for i := range c {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = e.tokenizeGroup(c[i])
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Workers)
		for i := range c {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = e.tokenizeGroup(c[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	tokens := 0
	for _, g := range out {
		for _, s := range g.sentences {
			tokens += len(s)
		}
	}
	span.SetAttr("responses", len(c))
	span.SetAttr("tokens", tokens)
	if m := e.opts.Metrics; m != nil {
		m.TokensProcessed.Add(float64(tokens))
		m.CorpusResponses.Observe(float64(len(c)))
	}
	return out, nil
}

func (e *Engine) tokenizeGroup(g corpus.ResponseGroup) tokenizedGroup {
	sentences := make([][]tokenizer.Token, len(g.Sentences))
	for i, s := range g.Sentences {
		sentences[i] = tokenizer.TokenizeSentence(s, e.opts.Tokenizer)
	}
	return tokenizedGroup{id: g.ID, sentences: sentences}
}

// log returns the engine logger tagged with the run ID carried by ctx.
func (e *Engine) log(ctx context.Context) *slog.Logger {
	if runID := logger.RunID(ctx); runID != "" {
		return e.logger.With("run_id", runID)
	}
	return e.logger
}

func (e *Engine) startSpan(ctx context.Context, op string) (context.Context, *tracing.Span) {
	if !e.opts.Trace {
		return ctx, nil
	}
	return tracing.StartSpan(ctx, op, logger.RunID(ctx))
}

func (e *Engine) finish(ctx context.Context, root *tracing.Span, op string, start time.Time, outcome string) {
	if m := e.opts.Metrics; m != nil {
		m.AnalysesTotal.WithLabelValues(op, outcome).Inc()
		m.AnalysisDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	root.SetAttr("outcome", outcome)
	root.End()
	root.Log(e.log(ctx))
}
