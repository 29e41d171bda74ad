// Package channel implements the delivery channel adapters. Every adapter
// exposes the same send contract so callers never branch on channel type.
package channel

import "context"

// SendResult is the uniform outcome shape returned by every adapter.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Adapter is the capability shared by all delivery channels.
type Adapter interface {
	// Channel names the transport, e.g. "email" or "sms".
	Channel() string
	// Send delivers one message. A failed provider call returns an error
	// from the standard taxonomy; the result mirrors the failure.
	Send(ctx context.Context, recipient, subject, body string) (*SendResult, error)
}
