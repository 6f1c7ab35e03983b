package dispatch

import (
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Dispatcher is a bounded in-process work queue for side-effect jobs.
//
// Jobs run on a fixed set of workers, each under its own timeout. Failures
// and panics are logged and go nowhere else. There is no retry: a job that
// does not fit in the queue is dropped with a warning.
type Dispatcher struct {
	jobs    chan job
	timeout time.Duration
	log     logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

type job struct {
	name     string
	run      func(ctx context.Context) error
	queuedAt time.Time
}

var _ interfaces.IDispatcher = (*Dispatcher)(nil)

func New(workers, queueSize int, timeout time.Duration, log logrus.FieldLogger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	d := &Dispatcher{
		jobs:    make(chan job, queueSize),
		timeout: timeout,
		log:     log,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

func (d *Dispatcher) Dispatch(name string, run func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warnf("[dispatch] dropped job after shutdown name=%s", name)
		return
	}
	select {
	case d.jobs <- job{name: name, run: run, queuedAt: time.Now()}:
	default:
		d.log.Warnf("[dispatch] queue full; dropped job name=%s capacity=%d", name, cap(d.jobs))
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(j)
	}
}

func (d *Dispatcher) run(j job) {
	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if d.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
	}
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.log.Warnf("[dispatch] job panicked name=%s panic=%v", j.name, r)
		}
	}()

	start := time.Now()
	if err := j.run(ctx); err != nil {
		d.log.Warnf("[dispatch] job failed name=%s elapsed=%s err=%v", j.name, time.Since(start), err)
		return
	}
	d.log.Debugf("[dispatch] job done name=%s waited=%s elapsed=%s", j.name, start.Sub(j.queuedAt), time.Since(start))
}
