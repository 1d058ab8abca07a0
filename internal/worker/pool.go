// Package worker provides a worker pool for parallel perft validation.
// Each worker replays its own Board, so no position state is ever shared
// between goroutines.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"chesskit/internal/chess"
)

// Job is one perft validation unit: a position, a depth and the published
// reference node count. Expected of 0 means "count only, don't validate".
type Job struct {
	Name     string
	FEN      string
	Depth    int
	Expected uint64
}

// Result is the outcome of running one Job.
type Result struct {
	Job     Job
	Nodes   uint64
	Elapsed time.Duration
	Err     error
}

// OK reports whether the job ran and matched its expected count.
func (r Result) OK() bool {
	return r.Err == nil && (r.Job.Expected == 0 || r.Nodes == r.Job.Expected)
}

// Pool fans perft jobs across worker goroutines.
type Pool struct {
	numWorkers int
	jobChan    chan Job
	resultChan chan Result
	wg         sync.WaitGroup
	stopFlag   int32
}

// NewPool creates a pool with the given number of workers and channel
// buffer size.
func NewPool(numWorkers, bufferSize int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool{
		numWorkers: numWorkers,
		jobChan:    make(chan Job, bufferSize),
		resultChan: make(chan Result, bufferSize),
	}
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobChan {
		if p.IsStopped() {
			continue // drain without processing
		}
		p.resultChan <- run(job)
	}
}

// run counts nodes on a board private to this call.
func run(job Job) Result {
	res := Result{Job: job}
	board, err := chess.ParseFEN(job.FEN)
	if err != nil {
		res.Err = err
		return res
	}
	start := time.Now()
	res.Nodes = chess.Perft(board, job.Depth)
	res.Elapsed = time.Since(start)
	return res
}

// Submit queues a job. It may block when the buffer is full.
func (p *Pool) Submit(job Job) {
	p.jobChan <- job
}

// Stop signals workers to stop processing new jobs. Jobs already queued
// are drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped reports whether the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the job channel and, once the workers drain it, the result
// channel.
func (p *Pool) Close() {
	close(p.jobChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the channel of finished results.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
