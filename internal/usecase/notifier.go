package usecase

import (
	"context"
	"log/slog"

	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/application/metric"
	"github.com/qrave1/BerrowBooks/internal/domain/events"
)

// Notifier отправляет уведомления по событиям заявок. Реализация может
// отправлять сразу или ставить в очередь.
type Notifier interface {
	NotifyNewRequest(ctx context.Context, notice events.NewRequestNotice) error
	NotifyShipped(ctx context.Context, notice events.ShippedNotice) error
	NotifyReturnComplete(ctx context.Context, notice events.ReturnCompleteNotice) error
	NotifyReminder(ctx context.Context, notice events.ReminderNotice) error
}

// EventPublisher рассылает события комнаты живым подписчикам (дашбордам)
type EventPublisher interface {
	Publish(event events.RoomEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(events.RoomEvent) {}

// notify отправляет уведомление после уже сохраненного изменения.
// Ошибка только логируется: изменение не откатывается.
func notify(ctx context.Context, event string, send func() error) {
	err := send()
	metric.RecordNotification(event, err)

	if err != nil {
		slog.ErrorContext(
			ctx,
			"send notification",
			slog.String(constant.Event, event),
			slog.Any(constant.Error, err),
		)
	}
}
