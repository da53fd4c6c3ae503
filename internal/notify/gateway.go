// Package notify turns lifecycle events into delivered notifications. The
// composer derives recipient, subject and body per event kind and pushes the
// result through the gateway's two channels; delivery is best-effort and
// never reaches back into the business transaction.
package notify

import (
	"context"
	"fmt"
)

// Gateway delivers a composed notification. The two channels are mutually
// independent: a failure on one must not block the other.
type Gateway interface {
	PushBroadcast(ctx context.Context, topic, message string) error
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// DeliveryError reports a transport failure on a named channel.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// channelGateway combines one broadcaster and one email sender.
type channelGateway struct {
	broadcaster Broadcaster
	email       EmailSender
}

// Broadcaster is the push side of the gateway.
type Broadcaster interface {
	Publish(ctx context.Context, topic, message string) error
}

// EmailSender is the mail side of the gateway.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewGateway combines the two channel implementations.
func NewGateway(broadcaster Broadcaster, email EmailSender) Gateway {
	return &channelGateway{broadcaster: broadcaster, email: email}
}

func (g *channelGateway) PushBroadcast(ctx context.Context, topic, message string) error {
	if err := g.broadcaster.Publish(ctx, topic, message); err != nil {
		return &DeliveryError{Channel: "broadcast", Err: err}
	}
	return nil
}

func (g *channelGateway) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if err := g.email.Send(ctx, to, subject, htmlBody); err != nil {
		return &DeliveryError{Channel: "email", Err: err}
	}
	return nil
}
