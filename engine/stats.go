package engine

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// PrintStats renders per-worker counters and chunk latencies for a run.
func PrintStats(w io.Writer, res Result) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.
		New("Worker", "Chunks", "Records", "Cities", "Products").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithWriter(w)
	for _, ws := range res.Pool.Workers {
		tbl.AddRow(ws.Worker, ws.Jobs, ws.Records, ws.Cities, ws.Products)
	}
	tbl.Print()

	if res.Pool.Timing == nil {
		return
	}
	t := res.Pool.Timing.Time
	fmt.Fprintf(
		w, "chunks: %d, records: %d, chunk p50: %s, p99: %s, max: %s, elapsed: %s\n",
		res.Chunks, res.Records, t.P50, t.P99, t.Max, res.Elapsed,
	)
}
