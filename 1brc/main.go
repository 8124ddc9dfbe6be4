package main

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"cheapest/agg"
	"cheapest/decode"
	"cheapest/engine"

	"github.com/pkg/profile"
	"golang.org/x/exp/slog"
)

const (
	exitFailure    = 1
	exitInput      = 2
	exitMalformed  = 3
	exitOutput     = 4
	defaultInput   = "input.txt"
	defaultOutput  = "output.txt"
	profileDirPath = "."
)

var (
	inputPath  string
	outputPath string
	numWorkers int
	chunkSize  int
	stats      bool
	cpuProfile bool
	debug      bool
)

func init() {
	flag.StringVar(&inputPath, "input", defaultInput, "input file")
	flag.StringVar(&outputPath, "output", defaultOutput, "report file")
	flag.IntVar(&numWorkers, "workers", runtime.NumCPU(), "number of workers")
	flag.IntVar(&chunkSize, "chunk", agg.DefaultChunkSize, "chunk size in bytes")
	flag.BoolVar(&stats, "stats", false, "print per-worker statistics to stderr")
	flag.BoolVar(&cpuProfile, "profile", false, "profile cpu")
	flag.BoolVar(&debug, "debug", false, "debug logging")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))

	if cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDirPath), profile.Quiet).Stop()
	}

	e := engine.New(
		engine.WithWorkers(numWorkers),
		engine.WithChunkSize(chunkSize),
		engine.WithLogger(logger),
	)
	res, err := e.Run(inputPath, outputPath)
	if stats && res.Chunks > 0 {
		engine.PrintStats(os.Stderr, res)
	}
	if err != nil {
		logger.Error("run failed", slog.String("error", err.Error()))
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, engine.ErrInputUnavailable):
		return exitInput
	case errors.Is(err, decode.ErrMalformedRecord):
		return exitMalformed
	case errors.Is(err, engine.ErrOutputUnavailable):
		return exitOutput
	}
	return exitFailure
}
