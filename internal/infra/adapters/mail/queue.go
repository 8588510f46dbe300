package mail

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/application/metric"
	"github.com/qrave1/BerrowBooks/internal/domain/events"
)

var (
	ErrQueueFull   = errors.New("mail queue is full")
	ErrQueueClosed = errors.New("mail queue is closed")
)

type notifier interface {
	NotifyNewRequest(ctx context.Context, notice events.NewRequestNotice) error
	NotifyShipped(ctx context.Context, notice events.ShippedNotice) error
	NotifyReturnComplete(ctx context.Context, notice events.ReturnCompleteNotice) error
	NotifyReminder(ctx context.Context, notice events.ReminderNotice) error
}

type job struct {
	event string
	ctx   context.Context
	run   func(ctx context.Context) error
}

// Queue отправляет уведомления в фоне. Вызов Notify* только ставит письмо в очередь.
type Queue struct {
	next notifier
	jobs chan job

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func NewQueue(next notifier, size, workers int) *Queue {
	q := &Queue{
		next: next,
		jobs: make(chan job, size),
	}

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}

	return q
}

func (q *Queue) work() {
	defer q.wg.Done()

	for j := range q.jobs {
		metric.SetMailQueueDepth(len(q.jobs))

		if err := j.run(j.ctx); err != nil {
			slog.ErrorContext(
				j.ctx,
				"send queued notification",
				slog.String(constant.Event, j.event),
				slog.Any(constant.Error, err),
			)
		}
	}
}

func (q *Queue) enqueue(ctx context.Context, event string, run func(ctx context.Context) error) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	// запрос завершится раньше отправки, поэтому отвязываемся от его отмены
	j := job{event: event, ctx: context.WithoutCancel(ctx), run: run}

	select {
	case q.jobs <- j:
		metric.SetMailQueueDepth(len(q.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *Queue) NotifyNewRequest(ctx context.Context, notice events.NewRequestNotice) error {
	return q.enqueue(ctx, "new_request", func(ctx context.Context) error {
		return q.next.NotifyNewRequest(ctx, notice)
	})
}

func (q *Queue) NotifyShipped(ctx context.Context, notice events.ShippedNotice) error {
	return q.enqueue(ctx, "shipped", func(ctx context.Context) error {
		return q.next.NotifyShipped(ctx, notice)
	})
}

func (q *Queue) NotifyReturnComplete(ctx context.Context, notice events.ReturnCompleteNotice) error {
	return q.enqueue(ctx, "return_complete", func(ctx context.Context) error {
		return q.next.NotifyReturnComplete(ctx, notice)
	})
}

func (q *Queue) NotifyReminder(ctx context.Context, notice events.ReminderNotice) error {
	return q.enqueue(ctx, "reminder", func(ctx context.Context) error {
		return q.next.NotifyReminder(ctx, notice)
	})
}

// Close перестает принимать письма и ждет, пока воркеры разберут очередь.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
