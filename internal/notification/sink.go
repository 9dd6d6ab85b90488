package notification

import "context"

// Channel is the delivery channel for a notification.
type Channel string

const (
	ChannelEmail Channel = "email"
)

// Notification is one message for one recipient. The core never
// assumes delivery; every sink failure is treated as retryable.
type Notification struct {
	RecipientID string                 `json:"recipient_id"`
	Recipient   string                 `json:"recipient"`
	Channel     Channel                `json:"channel"`
	Subject     string                 `json:"subject"`
	Body        string                 `json:"body"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// Sink delivers notifications. Implementations must return an error
// marked as sink-unavailable when delivery could not be attempted or
// confirmed, so callers leave their sent flags unset and retry.
type Sink interface {
	Notify(ctx context.Context, n *Notification) error
}
