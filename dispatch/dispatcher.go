// Package dispatch runs best-effort side effects (notifications, spreadsheet rows,
// database records) off the request path. Failures are logged and never reach the caller.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWorkers bounds how many tasks may run at once
	DefaultWorkers = 16
	// DefaultTimeout bounds each task
	DefaultTimeout = 30 * time.Second
)

// Task is one unit of best-effort work
type Task func(ctx context.Context) error

// Runner accepts best-effort tasks
type Runner interface {
	Go(name string, task Task) bool
}

// Dispatcher runs tasks on their own goroutines with a detached, time-bounded context.
// There is no queue: when every worker is busy the task is dropped.
type Dispatcher struct {
	group   errgroup.Group
	timeout time.Duration
}

// Ensure Dispatcher implements Runner
var _ Runner = (*Dispatcher)(nil)

// New creates a Dispatcher. Non-positive values fall back to the defaults.
func New(workers int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := &Dispatcher{timeout: timeout}
	d.group.SetLimit(workers)
	return d
}

// Go starts task in the background and reports whether it was accepted
func (d *Dispatcher) Go(name string, task Task) bool {
	accepted := d.group.TryGo(func() error {
		d.run(name, task)
		return nil
	})
	if !accepted {
		log.Printf("⚠️  Dispatch: Dropped task %s, all workers busy", name)
	}
	return accepted
}

func (d *Dispatcher) run(name string, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	err := safeCall(ctx, task)
	if err != nil {
		log.Printf("❌ Dispatch: Task %s failed after %s: %v", name, time.Since(start).Round(time.Millisecond), err)
		return
	}
	log.Printf("✅ Dispatch: Task %s completed in %s", name, time.Since(start).Round(time.Millisecond))
}

func safeCall(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}

// Wait blocks until every accepted task has finished
func (d *Dispatcher) Wait() {
	_ = d.group.Wait()
}
