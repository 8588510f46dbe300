package mail

import (
	"context"

	"github.com/qrave1/BerrowBooks/internal/domain/events"
)

// Notifier собирает письма по событиям заявок и отдает их Sender
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) NotifyNewRequest(ctx context.Context, notice events.NewRequestNotice) error {
	html, err := render(newRequestTmpl, notice)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Message{
		To:      notice.OwnerEmail,
		Subject: subjectPrefix + "New book request: " + notice.BookTitle,
		HTML:    html,
	})
}

func (n *Notifier) NotifyShipped(ctx context.Context, notice events.ShippedNotice) error {
	html, err := render(shippedTmpl, struct {
		BookTitle     string
		ReturnDueDate string
	}{notice.BookTitle, formatDate(notice.ReturnDueDate)})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Message{
		To:      notice.RequesterEmail,
		Subject: subjectPrefix + "Your book has been sent: " + notice.BookTitle,
		HTML:    html,
	})
}

func (n *Notifier) NotifyReturnComplete(ctx context.Context, notice events.ReturnCompleteNotice) error {
	html, err := render(returnCompleteTmpl, notice)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Message{
		To:      notice.RequesterEmail,
		Subject: subjectPrefix + "Return complete: " + notice.BookTitle,
		HTML:    html,
	})
}

func (n *Notifier) NotifyReminder(ctx context.Context, notice events.ReminderNotice) error {
	html, err := render(reminderTmpl, struct {
		BookTitle     string
		ReturnDueDate string
	}{notice.BookTitle, formatDate(&notice.ReturnDueDate)})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Message{
		To:      notice.RequesterEmail,
		Subject: subjectPrefix + "Return due date reminder: " + notice.BookTitle,
		HTML:    html,
	})
}
