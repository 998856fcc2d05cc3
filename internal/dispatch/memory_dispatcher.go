package dispatch

import (
	"context"
	"sync"
)

const defaultMemoryCapacity = 1024

// MemoryDispatcher keeps tasks in bounded channels. It serves single-process
// deployments and tests; tasks are lost on restart.
type MemoryDispatcher struct {
	normalize chan NormalizeTask
	score     chan ScoreTask

	mu     sync.RWMutex
	closed bool
}

// NewMemoryDispatcher creates a dispatcher holding up to capacity tasks per kind.
func NewMemoryDispatcher(capacity int) *MemoryDispatcher {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryDispatcher{
		normalize: make(chan NormalizeTask, capacity),
		score:     make(chan ScoreTask, capacity),
	}
}

// DispatchNormalize implements Dispatcher.
func (d *MemoryDispatcher) DispatchNormalize(ctx context.Context, task NormalizeTask) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.normalize <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// DispatchScore implements Dispatcher.
func (d *MemoryDispatcher) DispatchScore(ctx context.Context, task ScoreTask) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.score <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// NormalizeTasks returns the channel of pending normalize tasks.
func (d *MemoryDispatcher) NormalizeTasks() <-chan NormalizeTask {
	return d.normalize
}

// ScoreTasks returns the channel of pending score tasks.
func (d *MemoryDispatcher) ScoreTasks() <-chan ScoreTask {
	return d.score
}

// Pending returns the number of queued normalize and score tasks.
func (d *MemoryDispatcher) Pending() (int, int) {
	return len(d.normalize), len(d.score)
}

// Run feeds queued tasks to the handlers until ctx is done or the dispatcher
// is closed. Handler errors are passed to onError when it is not nil.
func (d *MemoryDispatcher) Run(
	ctx context.Context,
	onNormalize func(context.Context, NormalizeTask) error,
	onScore func(context.Context, ScoreTask) error,
	onError func(error),
) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-d.normalize:
			if !ok {
				return
			}
			if err := onNormalize(ctx, task); err != nil && onError != nil {
				onError(err)
			}
		case task, ok := <-d.score:
			if !ok {
				return
			}
			if err := onScore(ctx, task); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}

// Close stops accepting tasks and closes the task channels.
func (d *MemoryDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.normalize)
	close(d.score)
	return nil
}

var _ Dispatcher = (*MemoryDispatcher)(nil)
