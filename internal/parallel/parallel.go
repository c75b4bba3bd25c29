// Package parallel runs independent jobs concurrently under a bound and
// keeps the first failure.
package parallel

import (
	"context"
	"sync"
)

// ErrorCollector keeps the first non-nil error reported by concurrent
// goroutines and counts how many failed.
//
//	var ec parallel.ErrorCollector
//	for _, job := range jobs {
//		wg.Add(1)
//		go func() { defer wg.Done(); ec.SetError(job()) }()
//	}
//	wg.Wait()
//	return ec.Err()
type ErrorCollector struct {
	mu       sync.Mutex
	err      error
	failures int
}

// SetError records err if it is the first failure. Nil is ignored.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
	c.failures++
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Failures returns how many non-nil errors were reported.
func (c *ErrorCollector) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// Reset clears the collector. It must not race with SetError.
func (c *ErrorCollector) Reset() {
	c.mu.Lock()
	c.err, c.failures = nil, 0
	c.mu.Unlock()
}

// Job is one unit of work run by ForEach.
type Job func(ctx context.Context, index int) error

// ForEach runs job for every index in [0, n) with at most limit jobs in
// flight, and returns the first error. Once a job fails or ctx is done, jobs
// that have not started are skipped. limit <= 0 means no bound.
func ForEach(ctx context.Context, n, limit int, job Job) error {
	if limit <= 0 || limit > n {
		limit = n
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		ec  ErrorCollector
		wg  sync.WaitGroup
		sem = make(chan struct{}, max(limit, 1))
	)
	for i := 0; i < n; i++ {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := job(ctx, i); err != nil {
				ec.SetError(err)
				cancel()
			}
		}(i)
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		return err
	}
	return ctx.Err()
}
