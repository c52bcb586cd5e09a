// ABOUTME: Simple worker pool for parallelizing batch tasks
// ABOUTME: Used to prefetch track metadata for the whole library concurrently

package pool

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for parallel task execution
type WorkerPool struct {
	workers  int
	taskChan chan func()
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	taskWg   sync.WaitGroup // tracks submitted tasks completion
}

// NewWorkerPool creates a worker pool sized to available CPUs
// The bufferSize determines the task channel capacity
func NewWorkerPool(bufferSize int) *WorkerPool {
	numWorkers := runtime.NumCPU()
	p := &WorkerPool{
		workers:  numWorkers,
		taskChan: make(chan func(), bufferSize),
	}

	for range numWorkers {
		p.workerWg.Add(1)

		go func() {
			defer p.workerWg.Done()

			for task := range p.taskChan {
				task()
				p.taskWg.Done()
			}
		}()
	}

	return p
}

// Submit adds a task to the pool
// Blocks if the task channel is full
func (p *WorkerPool) Submit(task func()) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// Wait blocks until all submitted tasks have completed
func (p *WorkerPool) Wait() {
	p.taskWg.Wait()
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}

// ForEach runs fn for every index in [0, n) across the pool's workers and
// waits for completion. Convenience wrapper for batch scans where each item
// is independent, such as reading tags for every file in a directory.
func ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	p := NewWorkerPool(n)
	defer p.Close()

	for i := range n {
		p.Submit(func() { fn(i) })
	}

	p.Wait()
}
