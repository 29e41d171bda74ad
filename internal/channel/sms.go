// internal/channel/sms.go
package channel

import (
	"context"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"

	"autoremind-core/internal/common/errors"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/common/metrics"
)

// e164Pattern matches an optional leading + followed by 2-15 digits with a
// non-zero first digit.
var e164Pattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// SNSService is the slice of the SNS client the SMS adapter needs.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSAdapter sends direct SMS through AWS SNS.
type SMSAdapter struct {
	client   SNSService
	senderID string
	logger   logger.Logger
}

// NewSMSAdapter builds the SNS-backed adapter. senderID is optional; when
// set it is attached as the SNS sender ID attribute.
func NewSMSAdapter(client SNSService, senderID string, log logger.Logger) (*SMSAdapter, error) {
	if client == nil {
		return nil, errors.NewConfigurationError("SNS client is required")
	}
	return &SMSAdapter{
		client:   client,
		senderID: senderID,
		logger:   log.WithFields(map[string]interface{}{"channel": "sms"}),
	}, nil
}

func (a *SMSAdapter) Channel() string { return "sms" }

// Send publishes one SMS. A malformed phone number fails fast before any
// network call. The subject is ignored; SMS has no subject line.
func (a *SMSAdapter) Send(ctx context.Context, recipient, _ string, body string) (*SendResult, error) {
	if !e164Pattern.MatchString(recipient) {
		stdErr := errors.NewValidationError("phone number is not E.164: " + recipient)
		metrics.NotificationsFailed.WithLabelValues("sms", string(errors.ErrCodeValidationFailed)).Inc()
		return &SendResult{Success: false, Error: stdErr.Details}, stdErr
	}

	input := &sns.PublishInput{
		PhoneNumber: aws.String(recipient),
		Message:     aws.String(body),
	}
	if a.senderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(a.senderID),
			},
		}
	}

	start := time.Now()
	out, err := a.client.Publish(ctx, input)
	metrics.NotificationSendDuration.WithLabelValues("sms").Observe(time.Since(start).Seconds())

	if err != nil {
		stdErr := errors.NewProviderError("sms", err)
		metrics.NotificationsFailed.WithLabelValues("sms", string(errors.ErrCodeProviderError)).Inc()
		a.logger.Error("SMS send failed", map[string]interface{}{
			"phone": recipient,
			"error": err.Error(),
		})
		return &SendResult{Success: false, Error: err.Error()}, stdErr
	}

	messageID := uuid.New().String()
	if out != nil && out.MessageId != nil {
		messageID = *out.MessageId
	}
	metrics.NotificationsSent.WithLabelValues("sms").Inc()
	return &SendResult{Success: true, MessageID: messageID}, nil
}
