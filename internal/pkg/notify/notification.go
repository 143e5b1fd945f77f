package notify

import (
	"context"
	"time"
)

// Type is the severity of a notification as rendered by the dashboard
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// DefaultDuration is how long a notification stays visible when the publisher does not say
const DefaultDuration = 5 * time.Second

// Notification is a short user-facing message. Duration is in milliseconds;
// an empty Recipient addresses every connected session.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type" enums:"success,error,warning,info"`
	Duration  int64     `json:"duration" example:"5000"`
	Recipient string    `json:"recipient,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Success builds a success notification
func Success(message string) Notification {
	return Notification{Type: TypeSuccess, Message: message}
}

// Error builds an error notification
func Error(message string) Notification {
	return Notification{Type: TypeError, Message: message}
}

// Warning builds a warning notification
func Warning(message string) Notification {
	return Notification{Type: TypeWarning, Message: message}
}

// Info builds an informational notification
func Info(message string) Notification {
	return Notification{Type: TypeInfo, Message: message}
}

// For returns a copy addressed to a single recipient
func (n Notification) For(recipient string) Notification {
	n.Recipient = recipient
	return n
}

// Lasting returns a copy with an explicit display duration
func (n Notification) Lasting(d time.Duration) Notification {
	n.Duration = d.Milliseconds()
	return n
}

// VisibleTo reports whether the notification should reach recipient
func (n Notification) VisibleTo(recipient string) bool {
	return n.Recipient == "" || n.Recipient == recipient
}

// Publisher is the narrow interface services depend on
type Publisher interface {
	Publish(ctx context.Context, n Notification) Notification
}

type recipientKey struct{}

// WithRecipient attaches the requesting session so notifications published with
// ctx are addressed to them.
func WithRecipient(ctx context.Context, recipient string) context.Context {
	return context.WithValue(ctx, recipientKey{}, recipient)
}

// RecipientFrom returns the recipient attached by WithRecipient
func RecipientFrom(ctx context.Context) (string, bool) {
	recipient, ok := ctx.Value(recipientKey{}).(string)
	return recipient, ok && recipient != ""
}
