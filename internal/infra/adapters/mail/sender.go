package mail

import (
	"context"
	"log/slog"

	"github.com/qrave1/BerrowBooks/internal/application/constant"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender доставляет готовое письмо
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender не отправляет письма, а пишет их в лог. Для разработки.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(
		ctx,
		"email (log provider)",
		slog.String(constant.Email, msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTML)),
	)

	return nil
}
