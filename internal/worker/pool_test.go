package worker_test

import (
	"testing"

	"chesskit/internal/chess"
	"chesskit/internal/testutil"
	"chesskit/internal/worker"
)

// runJobs fans jobs across a pool and collects every result.
func runJobs(t *testing.T, numWorkers int, jobs []worker.Job) []worker.Result {
	t.Helper()
	pool := worker.NewPool(numWorkers, len(jobs))
	pool.Start()
	go func() {
		for _, job := range jobs {
			pool.Submit(job)
		}
		pool.Close()
	}()

	var results []worker.Result
	for res := range pool.Results() {
		results = append(results, res)
	}
	return results
}

func TestPoolRunsSuite(t *testing.T) {
	jobs := make([]worker.Job, 0, len(testutil.PerftSuite))
	for _, c := range testutil.PerftSuite {
		jobs = append(jobs, worker.Job{Name: c.Name, FEN: c.FEN, Depth: c.Depth, Expected: c.Expected})
	}

	results := runJobs(t, 4, jobs)
	if len(results) != len(jobs) {
		t.Fatalf("got %d results for %d jobs", len(results), len(jobs))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Job.Name, res.Err)
			continue
		}
		if !res.OK() {
			t.Errorf("%s: %d nodes, want %d", res.Job.Name, res.Nodes, res.Job.Expected)
		}
		if res.Elapsed < 0 {
			t.Errorf("%s: negative elapsed time", res.Job.Name)
		}
	}
}

func TestPoolReportsBadFEN(t *testing.T) {
	results := runJobs(t, 1, []worker.Job{{Name: "broken", FEN: "not a position", Depth: 1}})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err == nil || results[0].OK() {
		t.Errorf("bad FEN produced %+v, want an error", results[0])
	}
}

func TestPoolCountsWithoutExpectation(t *testing.T) {
	results := runJobs(t, 1, []worker.Job{{Name: "count", FEN: chess.StartingFEN, Depth: 2}})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	res := results[0]
	if !res.OK() || res.Nodes != 400 {
		t.Errorf("count-only job = %+v, want 400 nodes and OK", res)
	}
}

func TestPoolStopDrainsQueue(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Stop()
	pool.Start()
	go func() {
		for i := 0; i < 8; i++ {
			pool.Submit(worker.Job{Name: "skipped", FEN: chess.StartingFEN, Depth: 1})
		}
		pool.Close()
	}()

	count := 0
	for range pool.Results() {
		count++
	}
	if count != 0 {
		t.Errorf("stopped pool produced %d results", count)
	}
	if !pool.IsStopped() {
		t.Error("IsStopped() = false after Stop()")
	}
}

func TestNewPoolClampsArguments(t *testing.T) {
	pool := worker.NewPool(0, 0)
	if pool.NumWorkers() != 1 {
		t.Errorf("NumWorkers() = %d, want 1", pool.NumWorkers())
	}
}
