// Package taskq provides a bounded task queue: an ordered backlog of
// deferred operations executed with a fixed concurrency ceiling.
package taskq

import (
	"errors"
	"sync"
)

// Task is a single deferred operation.
type Task func() error

// Run executes tasks with at most limit in flight at any instant. Tasks are
// admitted in input order; completion order is unspecified. Run returns only
// after every task has settled. Failures are collected and joined; a failing
// task never cancels its running siblings. A limit below 1 is treated as 1.
func Run(limit int, tasks []Task) error {
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var errs []error

	for _, task := range tasks {
		// Acquire before spawning so admission follows input order.
		sem <- struct{}{}
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(task)
	}

	wg.Wait()
	return errors.Join(errs...)
}
