package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lmittmann/tint"
	"github.com/panjf2000/ants/v2"

	"blossom/internal/ports/output"
	"blossom/pkg/textutil"
)

var _ output.TaskRunner = (*Runner)(nil)

// ErrClosed is returned by Go after Close.
var ErrClosed = errors.New("task runner closed")

// Runner runs named background tasks on an ants pool. A failing or panicking
// task is logged with its name and never affects the caller.
type Runner struct {
	prefix string
	logger *slog.Logger
	pool   *ants.Pool
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a runner whose task names start with the camel cased
// owner name, so task "Reload" of owner "blossom" runs as "Blossom_Reload".
func NewRunner(owner string, size int, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		prefix: textutil.ToCamelCase(owner, "_", true) + "_",
		logger: logger,
		pool:   pool,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// TaskName returns the full name a task called name runs under.
func (r *Runner) TaskName(name string) string {
	return r.prefix + name
}

// Go submits fn as the task name. It only fails when the pool is closed or
// saturated; failures of fn itself are logged.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	task := r.TaskName(name)
	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("Task panicked.", slog.String("task", task), slog.Any("panic", p))
			}
		}()
		if err := fn(r.ctx); err != nil {
			r.logger.Error("Task failed.", slog.String("task", task), tint.Err(err))
			return
		}
		r.logger.Debug("Task finished.", slog.String("task", task))
	})
	if err != nil {
		r.wg.Done()
		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrClosed
		}
		return fmt.Errorf("submit task %s: %w", task, err)
	}
	return nil
}

// Wait blocks until every submitted task returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close cancels the context handed to running tasks, waits for them and
// releases the pool.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	r.pool.Release()
}
