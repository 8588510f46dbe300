package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/sethvargo/go-retry"
)

// emailsAPI - часть клиента Resend, которая нам нужна
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type ResendSender struct {
	emails     emailsAPI
	from       string
	maxRetries uint64
	baseDelay  time.Duration
}

func NewResendSender(apiKey, from string, maxRetries uint64) *ResendSender {
	client := resend.NewClient(apiKey)

	return newResendSender(client.Emails, from, maxRetries, 200*time.Millisecond)
}

func newResendSender(emails emailsAPI, from string, maxRetries uint64, baseDelay time.Duration) *ResendSender {
	return &ResendSender{
		emails:     emails,
		from:       from,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if _, err := s.emails.SendWithContext(ctx, params); err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("send email via resend: %w", err)
	}

	return nil
}
