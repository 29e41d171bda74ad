package channel

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoremind-core/internal/common/errors"
	"autoremind-core/internal/common/logger"
)

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.Calls = append(m.Calls, params)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-msg-1")}, nil
}

func TestSMSAdapterSend(t *testing.T) {
	mock := &MockSNSService{}
	adapter, err := NewSMSAdapter(mock, "", logger.NewNoOpLogger())
	require.NoError(t, err)

	result, err := adapter.Send(context.Background(), "+14155550100", "", "Reminder body")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "sns-msg-1", result.MessageID)

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "+14155550100", *mock.Calls[0].PhoneNumber)
	assert.Equal(t, "Reminder body", *mock.Calls[0].Message)
}

func TestSMSAdapterRejectsMalformedNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{"leading zero", "0415555010"},
		{"letters", "415-555-0100"},
		{"too long", "+1234567890123456"},
		{"empty", ""},
		{"single digit", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockSNSService{}
			adapter, err := NewSMSAdapter(mock, "", logger.NewNoOpLogger())
			require.NoError(t, err)

			result, err := adapter.Send(context.Background(), tt.phone, "", "body")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeValidationFailed))
			assert.False(t, result.Success)
			assert.Empty(t, mock.Calls, "malformed number must not reach the provider")
		})
	}
}

func TestSMSAdapterAcceptsBareDigits(t *testing.T) {
	mock := &MockSNSService{}
	adapter, err := NewSMSAdapter(mock, "", logger.NewNoOpLogger())
	require.NoError(t, err)

	result, err := adapter.Send(context.Background(), "14155550100", "", "body")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestSMSAdapterSetsSenderID(t *testing.T) {
	mock := &MockSNSService{}
	adapter, err := NewSMSAdapter(mock, "AutoRemind", logger.NewNoOpLogger())
	require.NoError(t, err)

	_, err = adapter.Send(context.Background(), "+14155550100", "", "body")
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	attr, ok := mock.Calls[0].MessageAttributes["AWS.SNS.SMS.SenderID"]
	require.True(t, ok)
	assert.Equal(t, "AutoRemind", *attr.StringValue)
}
