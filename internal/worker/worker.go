package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/robgonnella/zlink/internal/logger"
)

// ErrStopped is returned when submitting to a worker that has been stopped
var ErrStopped = errors.New("worker stopped")

// Worker executes submitted jobs one at a time, in submission order, on a
// single goroutine owned by the worker
type Worker struct {
	name   string
	jobs   chan func()
	done   chan struct{}
	once   sync.Once
	mux    sync.RWMutex
	closed bool
	log    logger.Logger
}

// New starts and returns a worker with a bounded job queue
func New(name string, queueSize int) *Worker {
	if queueSize < 1 {
		queueSize = 1
	}

	w := &Worker{
		name: name,
		jobs: make(chan func(), queueSize),
		done: make(chan struct{}),
		log:  logger.NewComponent("worker"),
	}

	go w.run()

	return w
}

func (w *Worker) run() {
	defer close(w.done)

	for job := range w.jobs {
		job()
	}

	w.log.Debug().Str("worker", w.name).Msg("worker drained")
}

// Submit enqueues job without waiting for it to run. It blocks while the
// queue is full unless ctx is done first.
func (w *Worker) Submit(ctx context.Context, job func()) error {
	w.mux.RLock()
	defer w.mux.RUnlock()

	if w.closed {
		return ErrStopped
	}

	select {
	case w.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do enqueues job and waits for it to finish or for ctx to be done. When
// ctx ends first the job still runs later but its result is discarded.
func (w *Worker) Do(ctx context.Context, job func() error) error {
	result := make(chan error, 1)

	err := w.Submit(ctx, func() {
		result <- job()
	})

	if err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop rejects new jobs, lets queued jobs finish and waits for the worker
// goroutine to exit
func (w *Worker) Stop() {
	w.once.Do(func() {
		w.mux.Lock()
		w.closed = true
		close(w.jobs)
		w.mux.Unlock()
	})

	<-w.done
}
