package channel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoremind-core/internal/common/errors"
)

type recordingAdapter struct {
	recipients []string
	subjects   []string
}

func (r *recordingAdapter) Channel() string { return "email" }

func (r *recordingAdapter) Send(_ context.Context, recipient, subject, _ string) (*SendResult, error) {
	r.recipients = append(r.recipients, recipient)
	r.subjects = append(r.subjects, subject)
	return &SendResult{Success: true, MessageID: "rec-1"}, nil
}

func TestGatewayAddress(t *testing.T) {
	tests := []struct {
		carrier  string
		phone    string
		expected string
	}{
		{"verizon", "4155550100", "4155550100@vtext.com"},
		{"att", "4155550100", "4155550100@txt.att.net"},
		{"tmobile", "4155550100", "4155550100@tmomail.net"},
		{"sprint", "4155550100", "4155550100@messaging.sprintpcs.com"},
		{"boost", "4155550100", "4155550100@myboostmobile.com"},
		{"Verizon", "4155550100", "4155550100@vtext.com"},
		{" VERIZON ", "4155550100", "4155550100@vtext.com"},
	}

	for _, tt := range tests {
		t.Run(tt.carrier, func(t *testing.T) {
			got, err := GatewayAddress(tt.phone, tt.carrier)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGatewayAddressUnknownCarrier(t *testing.T) {
	_, err := GatewayAddress("4155550100", "unknown-carrier")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedCarrier))
}

func TestCarrierGatewaySendSynthesizesRecipient(t *testing.T) {
	emailer := &recordingAdapter{}
	adapter, err := NewCarrierGatewayAdapter(emailer, "verizon")
	require.NoError(t, err)

	result, err := adapter.Send(context.Background(), "4155550100", "ignored subject", "Reminder body")
	require.NoError(t, err)
	assert.True(t, result.Success)

	require.Len(t, emailer.recipients, 1)
	assert.Equal(t, "4155550100@vtext.com", emailer.recipients[0])
	assert.Equal(t, "", emailer.subjects[0], "carrier gateway sends with an empty subject")
}

func TestCarrierGatewayRejectsUnknownCarrierAtConstruction(t *testing.T) {
	emailer := &recordingAdapter{}
	_, err := NewCarrierGatewayAdapter(emailer, "unknown-carrier")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedCarrier))
	assert.Empty(t, emailer.recipients, "no send may happen for an unknown carrier")
}
