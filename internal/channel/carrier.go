// internal/channel/carrier.go
package channel

import (
	"context"
	"strings"

	"autoremind-core/internal/common/errors"
)

// carrierGateways maps a lower-cased carrier name to its email-to-SMS
// domain suffix.
var carrierGateways = map[string]string{
	"att":     "@txt.att.net",
	"verizon": "@vtext.com",
	"tmobile": "@tmomail.net",
	"sprint":  "@messaging.sprintpcs.com",
	"boost":   "@myboostmobile.com",
}

// GatewayAddress synthesizes the carrier email gateway address for a phone
// number. Unknown carriers fail closed.
func GatewayAddress(phone, carrier string) (string, error) {
	suffix, ok := carrierGateways[strings.ToLower(strings.TrimSpace(carrier))]
	if !ok {
		return "", errors.NewUnsupportedCarrierError(carrier)
	}
	return phone + suffix, nil
}

// CarrierGatewayAdapter sends SMS by emailing the recipient's carrier
// gateway address. It reuses the email transport with a synthesized
// recipient and an empty subject line.
type CarrierGatewayAdapter struct {
	emailer Adapter
	carrier string
}

// NewCarrierGatewayAdapter binds the adapter to one carrier. The carrier is
// checked at construction so an unknown name fails before any send.
func NewCarrierGatewayAdapter(emailer Adapter, carrier string) (*CarrierGatewayAdapter, error) {
	if _, ok := carrierGateways[strings.ToLower(strings.TrimSpace(carrier))]; !ok {
		return nil, errors.NewUnsupportedCarrierError(carrier)
	}
	return &CarrierGatewayAdapter{emailer: emailer, carrier: strings.ToLower(strings.TrimSpace(carrier))}, nil
}

func (a *CarrierGatewayAdapter) Channel() string { return "carrier_sms" }

// Send emails the gateway address derived from the phone number. The subject
// argument is discarded; carrier gateways render subjects into the message.
func (a *CarrierGatewayAdapter) Send(ctx context.Context, recipient, _ string, body string) (*SendResult, error) {
	address, err := GatewayAddress(recipient, a.carrier)
	if err != nil {
		return &SendResult{Success: false, Error: err.Error()}, err
	}
	return a.emailer.Send(ctx, address, "", body)
}
