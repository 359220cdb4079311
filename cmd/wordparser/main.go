// Command wordparser runs the response-analytics engine over a corpus file.
//
// It reads a corpus (back-to-back {"ResponseID","Sentences"} objects, or with
// -records a stream of {"ResponseID","Text"} records), runs one analysis and
// writes the JSON result to stdout. Logs go to stderr.
//
// Usage:
//
//	wordparser [-config wordparser.yaml] -mode cloud   [-stopwords words.txt] [-input corpus.json]
//	wordparser [-config wordparser.yaml] -mode postfix -target love [-input corpus.json]
//	wordparser -mode ids|grouped -target love < corpus.json
package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/cloud"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/stopwords"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/analysis/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/internal/engine"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/response-analytics/pkg/metrics"
)

const (
	modeCloud   = "cloud"
	modePostfix = "postfix"
	modeIDs     = "ids"
	modeGrouped = "grouped"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordparser: %v\n", err)
	}
	os.Exit(apperrors.ExitCode(err))
}

type options struct {
	configPath    string
	mode          string
	target        string
	input         string
	stopWordsPath string
	records       bool
	dumpMetrics   bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("wordparser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to config file")
	fs.StringVar(&opts.mode, "mode", modeCloud, "analysis to run: cloud, postfix, ids or grouped")
	fs.StringVar(&opts.target, "target", "", "keyword whose postfix sets are extracted")
	fs.StringVar(&opts.input, "input", "-", "corpus file, - for stdin")
	fs.StringVar(&opts.stopWordsPath, "stopwords", "", "stop-word file, overrides the configured list")
	fs.BoolVar(&opts.records, "records", false, "input is a stream of {ResponseID, Text} records")
	fs.BoolVar(&opts.dumpMetrics, "metrics", false, "write a metrics snapshot to stderr on exit")
	if err := fs.Parse(args); err != nil {
		return opts, apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitUsage, err.Error())
	}

	switch opts.mode {
	case modeCloud:
	case modePostfix, modeIDs, modeGrouped:
		if strings.TrimSpace(opts.target) == "" {
			return opts, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "-mode %s requires -target", opts.mode)
		}
	default:
		return opts, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "unknown mode %q", opts.mode)
	}
	return opts, nil
}

// run loads configuration, builds the engine and performs one analysis. It
// returns nil on success; errors carry their exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return apperrors.New(apperrors.ErrConfig, apperrors.ExitConfig, err.Error())
	}
	logger.SetupWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx = logger.WithRunID(ctx, newRunID())
	log := logger.FromContext(ctx)

	stop, err := loadStopWords(cfg.Analysis, opts.stopWordsPath)
	if err != nil {
		return apperrors.New(apperrors.ErrConfig, apperrors.ExitConfig, err.Error())
	}

	policy, err := engine.ParseDecodePolicy(cfg.Analysis.DecodePolicy)
	if err != nil {
		return apperrors.New(apperrors.ErrConfig, apperrors.ExitConfig, err.Error())
	}

	reg := prometheus.NewRegistry()
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(reg)
	}

	eng := engine.New(engine.Options{
		Workers:   cfg.Analysis.Workers,
		Tokenizer: tokenizer.Options{StripMarkup: cfg.Analysis.StripMarkup},
		Cloud: cloud.Options{
			Limit: cfg.Analysis.CloudLimit,
			Stem:  cfg.Analysis.Stem,
		},
		Metrics: m,
		Trace:   cfg.Tracing.Enabled,
	})
	boundary := engine.NewBoundary(eng, policy, m)

	corpusJSON, err := readCorpus(opts, stdin)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDecode) || policy != engine.DecodeAsEmpty {
			return err
		}
		log.Warn("records rejected, analysing an empty corpus", "error", err)
		if m != nil {
			m.DecodeFailuresTotal.Inc()
		}
		corpusJSON = "[]"
	}

	log.Info("analysis starting",
		"mode", opts.mode,
		"input", opts.input,
		"input_bytes", len(corpusJSON),
		"stop_words", stop.Len(),
	)

	var out string
	switch opts.mode {
	case modeCloud:
		out, err = boundary.ParseWords(ctx, corpusJSON, stopWordsText(stop))
	case modePostfix:
		out, err = boundary.PostfixSets(ctx, corpusJSON, opts.target)
	case modeIDs:
		out, err = boundary.ResponseIDs(ctx, corpusJSON, opts.target)
	case modeGrouped:
		out, err = boundary.GroupedPostfixSets(ctx, corpusJSON, opts.target)
	}
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(stdout, out); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	log.Info("analysis finished", "mode", opts.mode, "output_bytes", len(out))

	if opts.dumpMetrics && m != nil {
		if err := metrics.WriteText(stderr, reg); err != nil {
			log.Warn("failed to write metrics", "error", err)
		}
	}
	return nil
}

func loadStopWords(cfg config.AnalysisConfig, override string) (stopwords.Set, error) {
	path := cfg.StopWordsFile
	if override != "" {
		path = override
	}
	if path == "" {
		return stopwords.Default(), nil
	}
	return stopwords.Load(path)
}

// stopWordsText renders a set as the space-delimited list the boundary takes.
func stopWordsText(s stopwords.Set) string {
	return strings.Join(s.Words(), " ")
}

func readCorpus(opts options, stdin io.Reader) (string, error) {
	var r io.Reader = stdin
	if opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return "", apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "opening input: %v", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if !opts.records {
		return string(data), nil
	}

	records, err := corpus.DecodeRecords(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := corpus.Encode(&buf, corpus.FromRecords(records)); err != nil {
		return "", fmt.Errorf("encoding grouped records: %w", err)
	}
	return buf.String(), nil
}

func newRunID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
