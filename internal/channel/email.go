// internal/channel/email.go
package channel

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"

	"autoremind-core/internal/common/errors"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/common/metrics"
)

// SESService is the slice of the SES client the email adapter needs.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailAdapter sends through AWS SES.
type EmailAdapter struct {
	client    SESService
	fromEmail string
	operators []string
	logger    logger.Logger
}

// NewEmailAdapter builds the SES-backed adapter. A missing sender address is
// a configuration error: the adapter refuses to construct rather than fail
// on first use. operators is the optional fixed recipient list used by
// Broadcast.
func NewEmailAdapter(client SESService, fromEmail string, operators []string, log logger.Logger) (*EmailAdapter, error) {
	if fromEmail == "" {
		return nil, errors.NewConfigurationError("notifications.email.from_email is required")
	}
	if client == nil {
		return nil, errors.NewConfigurationError("SES client is required")
	}
	return &EmailAdapter{
		client:    client,
		fromEmail: fromEmail,
		operators: operators,
		logger:    log.WithFields(map[string]interface{}{"channel": "email"}),
	}, nil
}

func (a *EmailAdapter) Channel() string { return "email" }

// Send delivers one email. The provider's error message is surfaced
// unmodified inside the returned PROVIDER_ERROR.
func (a *EmailAdapter) Send(ctx context.Context, recipient, subject, body string) (*SendResult, error) {
	return a.sendTo(ctx, []string{recipient}, subject, body)
}

// Broadcast delivers one email to the configured operator address list.
func (a *EmailAdapter) Broadcast(ctx context.Context, subject, body string) (*SendResult, error) {
	if len(a.operators) == 0 {
		return nil, errors.NewConfigurationError("notifications.email.operators is empty")
	}
	return a.sendTo(ctx, a.operators, subject, body)
}

func (a *EmailAdapter) sendTo(ctx context.Context, recipients []string, subject, body string) (*SendResult, error) {
	start := time.Now()

	out, err := a.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: recipients,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(a.fromEmail),
	})
	metrics.NotificationSendDuration.WithLabelValues("email").Observe(time.Since(start).Seconds())

	if err != nil {
		stdErr := errors.NewProviderError("email", err)
		metrics.NotificationsFailed.WithLabelValues("email", string(errors.ErrCodeProviderError)).Inc()
		a.logger.Error("email send failed", map[string]interface{}{
			"recipients": recipients,
			"error":      err.Error(),
		})
		return &SendResult{Success: false, Error: err.Error()}, stdErr
	}

	messageID := uuid.New().String()
	if out != nil && out.MessageId != nil {
		messageID = *out.MessageId
	}
	metrics.NotificationsSent.WithLabelValues("email").Inc()
	return &SendResult{Success: true, MessageID: messageID}, nil
}
