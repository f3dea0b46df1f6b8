package domain

import "context"

// NotificationKind tags what happened to an event.
type NotificationKind string

const (
	NotificationEventCreated  NotificationKind = "created"
	NotificationEventApproved NotificationKind = "approved"
	NotificationEventDeleted  NotificationKind = "deleted"
)

// Notification is a fire-and-forget message handed to the Notifier. Delivery
// is best-effort; failures never affect the operation that produced it.
type Notification struct {
	RecipientEmail string
	EventTitle     string
	Kind           NotificationKind
}

// Notifier accepts notifications for asynchronous dispatch. Notify must not
// block the caller and has no error return by contract.
type Notifier interface {
	Notify(n Notification)
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventEmailData holds data for the event lifecycle emails.
type EventEmailData struct {
	Email      string
	EventTitle string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventCreated(ctx context.Context, data *EventEmailData) error
	SendEventApproved(ctx context.Context, data *EventEmailData) error
	SendEventDeleted(ctx context.Context, data *EventEmailData) error
}
