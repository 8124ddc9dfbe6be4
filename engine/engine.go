package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"cheapest/agg"
	"cheapest/decode"
	"cheapest/input"
	"cheapest/pool"
	"cheapest/report"

	"golang.org/x/exp/slog"
)

var (
	ErrInputUnavailable  = errors.New("input unavailable")
	ErrOutputUnavailable = errors.New("output unavailable")
)

type Engine struct {
	workers   int
	chunkSize int
	logger    *slog.Logger
}

type Option func(*Engine) *Engine

// WithWorkers sets the pool size. Non-positive values mean one per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) *Engine {
		e.workers = n
		if n <= 0 {
			e.workers = runtime.NumCPU()
		}
		return e
	}
}

// WithChunkSize sets the nominal chunk size in bytes.
func WithChunkSize(n int) Option {
	return func(e *Engine) *Engine {
		e.chunkSize = n
		if n <= 0 {
			e.chunkSize = agg.DefaultChunkSize
		}
		return e
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) *Engine {
		e.logger = logger
		return e
	}
}

func New(options ...Option) *Engine {
	e := &Engine{
		workers:   runtime.NumCPU(),
		chunkSize: agg.DefaultChunkSize,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		e = opt(e)
	}
	return e
}

type Result struct {
	Report report.Report
	// NoData is set when the input had no records after the header; Report
	// is then empty.
	NoData bool

	Records  int64
	Cities   int
	Products int
	Chunks   int
	Elapsed  time.Duration
	Pool     pool.Stats
}

// WriteTo writes the report, or nothing at all when there was no data.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	if r.NoData {
		return 0, nil
	}
	return r.Report.WriteTo(w)
}

// Compute aggregates data in parallel and builds the report. data must stay
// valid and unchanged until Compute returns.
func (e *Engine) Compute(data []byte) (Result, error) {
	start := time.Now()

	chunks := agg.Partition(len(data), e.chunkSize)
	e.logger.Debug(
		"partitioned input",
		slog.Int("bytes", len(data)),
		slog.Int("chunkSize", e.chunkSize),
		slog.Int("chunks", len(chunks)),
	)

	p := pool.New(e.workers, pool.WithLogger(e.logger), pool.WithTimingSamples(len(chunks)))
	e.logger.Debug("submitting chunks", slog.Int("workers", p.Workers()))
	for _, c := range chunks {
		c := c
		p.Submit(func(slot *agg.Partial) error {
			return agg.ProcessChunk(slot, data, c)
		})
	}
	parts, err := p.DrainAndStop()
	stats := p.Stats()
	if err != nil {
		return Result{Chunks: len(chunks), Pool: stats}, fmt.Errorf("unable to aggregate input: %w", err)
	}

	g, err := agg.Merge(parts)
	if err != nil {
		return Result{Chunks: len(chunks), Pool: stats}, fmt.Errorf("unable to aggregate input: %w", err)
	}
	e.logger.Debug(
		"merged partials",
		slog.Int("partials", len(parts)),
		slog.Int("cities", g.Cities.Len()),
		slog.Int("products", g.Products.Len()),
	)

	res := Result{
		Records:  g.Records(),
		Cities:   g.Cities.Len(),
		Products: g.Products.Len(),
		Chunks:   len(chunks),
		Pool:     stats,
	}

	r, err := report.Build(g)
	switch {
	case errors.Is(err, report.ErrNoData):
		res.NoData = true
	case err != nil:
		return res, fmt.Errorf("unable to build report: %w", err)
	default:
		res.Report = r
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// Run maps inputPath, computes the report and writes it to outputPath. The
// output is only created once aggregation has succeeded.
func (e *Engine) Run(inputPath, outputPath string) (Result, error) {
	in, err := input.Open(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	defer in.Close()

	res, err := e.Compute(in.Bytes())
	if err != nil {
		return res, err
	}

	if res.NoData {
		e.logger.Warn("no records after header", slog.String("input", inputPath))
	}
	if err := writeOutput(outputPath, res); err != nil {
		return res, err
	}

	e.logger.Info(
		"wrote report",
		slog.String("output", outputPath),
		slog.String("city", res.Report.City.Name),
		slog.String("total", decode.FormatPrice(res.Report.City.Price)),
		slog.Int64("records", res.Records),
		slog.Int("cities", res.Cities),
		slog.Int("products", res.Products),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func writeOutput(path string, res Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: unable to create %s: %w", ErrOutputUnavailable, path, err)
	}
	if _, err := res.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrOutputUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: unable to close %s: %w", ErrOutputUnavailable, path, err)
	}
	return nil
}
