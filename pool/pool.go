package pool

import (
	"io"
	"runtime"
	"sync"
	"time"

	"cheapest/agg"

	"github.com/eapache/queue/v2"
	"github.com/jamiealquiza/tachymeter"
	"golang.org/x/exp/slog"
)

// Job runs against the partial aggregate owned by the worker that picks it up.
type Job func(p *agg.Partial) error

type WorkerStats struct {
	Worker   int
	Jobs     int
	Records  int64
	Cities   int
	Products int
}

type Stats struct {
	Workers []WorkerStats
	Timing  *tachymeter.Metrics
}

// Pool is a fixed set of workers sharing one job queue. Each worker writes
// only into its own slot, so slots need no locking of their own.
type Pool struct {
	mu      sync.Mutex
	pending *sync.Cond // a job was queued, or the pool is stopping
	idle    *sync.Cond // outstanding dropped to zero

	jobs        *queue.Queue[Job]
	outstanding int
	stopping    bool
	stopped     bool
	err         error

	wg      sync.WaitGroup
	slots   []*agg.Partial
	jobRuns []int
	timings *tachymeter.Tachymeter
	logger  *slog.Logger
}

type Option func(*Pool) *Pool

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) *Pool {
		p.logger = logger
		return p
	}
}

// WithTimingSamples sets how many chunk durations are kept for Stats.
func WithTimingSamples(n int) Option {
	return func(p *Pool) *Pool {
		p.timings = tachymeter.New(&tachymeter.Config{Size: n})
		return p
	}
}

// New starts workers goroutines, one per slot. A non-positive count uses
// one worker per CPU.
func New(workers int, options ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		jobs:    queue.New[Job](),
		slots:   make([]*agg.Partial, workers),
		jobRuns: make([]int, workers),
		timings: tachymeter.New(&tachymeter.Config{Size: 1024}),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	p.pending = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)
	for _, opt := range options {
		p = opt(p)
	}

	for i := range p.slots {
		p.slots[i] = agg.NewPartial()
	}
	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}

	p.logger.Debug("started pool", slog.Int("workers", workers))
	return p
}

func (p *Pool) Workers() int {
	return len(p.slots)
}

// Submit queues a job. Submitting to a stopped pool is a programming error.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	if p.stopping {
		p.mu.Unlock()
		panic("pool: submit after stop")
	}
	p.jobs.Add(job)
	p.outstanding++
	p.mu.Unlock()

	p.pending.Signal()
}

// DrainAndStop blocks until every submitted job has finished or been
// discarded, then stops and joins the workers. It returns the slots in
// worker order and the first job error, if any.
func (p *Pool) DrainAndStop() ([]*agg.Partial, error) {
	p.mu.Lock()
	for p.outstanding > 0 {
		p.idle.Wait()
	}
	if p.stopped {
		p.mu.Unlock()
		return p.slots, p.err
	}
	p.stopping = true
	p.mu.Unlock()

	p.pending.Broadcast()
	p.wg.Wait()

	p.mu.Lock()
	p.stopped = true
	err := p.err
	p.mu.Unlock()

	p.logger.Debug("stopped pool", slog.Int("workers", len(p.slots)), slog.Bool("failed", err != nil))
	return p.slots, err
}

// Stats is only meaningful once the pool has been drained.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	ws := make([]WorkerStats, len(p.slots))
	for i, slot := range p.slots {
		ws[i] = WorkerStats{
			Worker:   i,
			Jobs:     p.jobRuns[i],
			Records:  slot.Records(),
			Cities:   slot.Cities.Len(),
			Products: slot.Products.Len(),
		}
	}
	return Stats{Workers: ws, Timing: p.timings.Calc()}
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for p.jobs.Length() == 0 && !p.stopping {
			p.pending.Wait()
		}
		if p.stopping {
			p.mu.Unlock()
			return
		}
		job := p.jobs.Remove()
		failed := p.err != nil
		p.mu.Unlock()

		// Once a job has failed the rest of the queue is drained without
		// being run.
		var err error
		if !failed {
			start := time.Now()
			err = job(p.slots[id])
			p.timings.AddTime(time.Since(start))
		}

		p.mu.Lock()
		if !failed {
			p.jobRuns[id]++
		}
		if err != nil && p.err == nil {
			p.err = err
			p.logger.Debug("job failed", slog.Int("worker", id), slog.String("error", err.Error()))
		}
		p.outstanding--
		if p.outstanding == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}
