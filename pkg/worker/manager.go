package worker

import (
	"context"
	"sync"

	"news-crawler/pkg/logger"
)

// Handler processes the job at index
type Handler func(ctx context.Context, index int) error

// Summary is the outcome of a Process call
type Summary struct {
	Succeeded int
	Failed    int
}

// Manager distributes indexed jobs over a fixed number of workers
type Manager struct {
	workerCount int
	log         logger.Interface
}

// NewManager creates a new manager. Fewer than one worker means one.
func NewManager(workerCount int, log logger.Interface) *Manager {
	if workerCount < 1 {
		workerCount = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		workerCount: workerCount,
		log:         log,
	}
}

// Process runs handle for every index in [0, count) and waits for all of them.
// Jobs not yet started when ctx is cancelled fail with ctx.Err().
func (m *Manager) Process(ctx context.Context, count int, handle Handler) Summary {
	jobChan := make(chan int, count)
	for i := 0; i < count; i++ {
		jobChan <- i
	}
	close(jobChan)

	type result struct {
		index    int
		workerID int
		err      error
	}
	resultsChan := make(chan result, count)

	workers := m.workerCount
	if workers > count {
		workers = count
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for index := range jobChan {
				err := ctx.Err()
				if err == nil {
					err = handle(ctx, index)
				}
				resultsChan <- result{index: index, workerID: workerID, err: err}
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var summary Summary
	for res := range resultsChan {
		if res.err == nil {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		m.log.Debug("Job failed", "worker", res.workerID, "index", res.index, "error", res.err)
	}
	return summary
}
