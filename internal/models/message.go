// internal/models/message.go
package models

// MessageRequest is one row of a batch dispatch input file. The recipient
// address is channel-specific: email for the email channel, phone for
// direct SMS.
type MessageRequest struct {
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Assignment string `json:"assignment"`
	Body       string `json:"message_requests"`
	Name       string `json:"name,omitempty"`
	SID        string `json:"sid,omitempty"`
}

// Recipient returns the address matching the delivery channel. Both SMS
// transports address by phone number; the carrier gateway synthesizes its
// own email address from the digits.
func (r MessageRequest) Recipient(channel string) string {
	switch channel {
	case "sms", "carrier_sms":
		return r.Phone
	default:
		return r.Email
	}
}

// SendOutcome is the per-recipient result of one dispatch attempt.
type SendOutcome struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
