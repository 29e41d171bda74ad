package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoremind-core/internal/channel"
	"autoremind-core/internal/common/errors"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/models"
)

type fakeEmailer struct {
	mu       sync.Mutex
	sent     []string
	subjects map[string]string
	failFor  map[string]string
}

func newFakeEmailer() *fakeEmailer {
	return &fakeEmailer{subjects: map[string]string{}, failFor: map[string]string{}}
}

func (f *fakeEmailer) Channel() string { return "email" }

func (f *fakeEmailer) Send(_ context.Context, recipient, subject, _ string) (*channel.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := f.failFor[recipient]; ok {
		return &channel.SendResult{Success: false, Error: msg}, fmt.Errorf("%s", msg)
	}
	f.sent = append(f.sent, recipient)
	f.subjects[recipient] = subject
	return &channel.SendResult{Success: true, MessageID: "msg-" + recipient}, nil
}

func TestDispatchContinuesOnError(t *testing.T) {
	emailer := newFakeEmailer()
	d := NewDispatcher(emailer, nil, logger.NewTestLogger(t), 1, time.Second)

	requests := []models.MessageRequest{
		{Email: "a@example.edu", Assignment: "Homework 1", Body: "due soon"},
		{Email: "", Assignment: "Homework 1", Body: "due soon"},
		{Email: "c@example.edu", Assignment: "Homework 1", Body: "due soon"},
	}

	report, err := d.Dispatch(context.Background(), requests)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Successful)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, report.Total, report.Successful+report.Failed)
	require.Len(t, report.Outcomes, 3)

	assert.True(t, report.Outcomes[0].Success)
	assert.False(t, report.Outcomes[1].Success)
	assert.Contains(t, strings.ToLower(report.Outcomes[1].Error), "missing recipient")
	assert.True(t, report.Outcomes[2].Success)
}

func TestDispatchEmptyInput(t *testing.T) {
	d := NewDispatcher(newFakeEmailer(), nil, logger.NewTestLogger(t), 1, time.Second)

	report, err := d.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Successful)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Outcomes)
}

func TestDispatchSubjectFromAssignment(t *testing.T) {
	emailer := newFakeEmailer()
	d := NewDispatcher(emailer, nil, logger.NewTestLogger(t), 1, time.Second)

	_, err := d.Dispatch(context.Background(), []models.MessageRequest{
		{Email: "a@example.edu", Assignment: "Essay 2", Body: "b"},
		{Email: "b@example.edu", Body: "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Reminder: Essay 2", emailer.subjects["a@example.edu"])
	assert.Equal(t, "Reminder: Assignment", emailer.subjects["b@example.edu"], "assignment label defaults")
}

func TestDispatchProviderFailureCounts(t *testing.T) {
	emailer := newFakeEmailer()
	emailer.failFor["bad@example.edu"] = "MessageRejected: sandbox address"
	d := NewDispatcher(emailer, nil, logger.NewTestLogger(t), 1, time.Second)

	report, err := d.Dispatch(context.Background(), []models.MessageRequest{
		{Email: "good@example.edu", Assignment: "A", Body: "b"},
		{Email: "bad@example.edu", Assignment: "A", Body: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Outcomes[1].Error, "MessageRejected")
}

func TestDispatchConcurrentPreservesOrder(t *testing.T) {
	emailer := newFakeEmailer()
	d := NewDispatcher(emailer, nil, logger.NewTestLogger(t), 4, time.Second)

	var requests []models.MessageRequest
	for i := 0; i < 20; i++ {
		requests = append(requests, models.MessageRequest{
			Email:      fmt.Sprintf("s%02d@example.edu", i),
			Assignment: "A",
			Body:       "b",
		})
	}

	report, err := d.Dispatch(context.Background(), requests)
	require.NoError(t, err)
	assert.Equal(t, 20, report.Successful)
	require.Len(t, report.Outcomes, 20)
	for i, outcome := range report.Outcomes {
		assert.Equal(t, fmt.Sprintf("s%02d@example.edu", i), outcome.Recipient, "outcomes keep input order")
	}
}

type fakeSMSSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSMSSender) Channel() string { return "sms" }

func (f *fakeSMSSender) Send(_ context.Context, recipient, _, _ string) (*channel.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recipient)
	return &channel.SendResult{Success: true, MessageID: "sms-" + recipient}, nil
}

func TestDispatchUsesChannelSpecificRecipient(t *testing.T) {
	sender := &fakeSMSSender{}
	d := NewDispatcher(sender, nil, logger.NewTestLogger(t), 1, time.Second)

	report, err := d.Dispatch(context.Background(), []models.MessageRequest{
		{Phone: "+14155550100", Assignment: "A", Body: "b"},
		{Email: "ignored@example.edu", Assignment: "A", Body: "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed, "email-only row has no phone recipient on the sms channel")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+14155550100", sender.sent[0])
}

type blockingSender struct{}

func (b *blockingSender) Channel() string { return "email" }

func (b *blockingSender) Send(ctx context.Context, recipient, _, _ string) (*channel.SendResult, error) {
	<-ctx.Done()
	err := errors.NewProviderError("email", ctx.Err())
	return &channel.SendResult{Success: false, Error: err.Details}, err
}

func TestDispatchPerSendTimeout(t *testing.T) {
	mixed := &timeoutOnFirstSender{slow: &blockingSender{}, fast: newFakeEmailer()}
	d := NewDispatcher(mixed, nil, logger.NewTestLogger(t), 1, 20*time.Millisecond)

	report, err := d.Dispatch(context.Background(), []models.MessageRequest{
		{Email: "slow@example.edu", Assignment: "A", Body: "b"},
		{Email: "fast@example.edu", Assignment: "A", Body: "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Successful, "batch continues past a timed-out send")
	assert.False(t, report.Outcomes[0].Success)
	assert.Contains(t, report.Outcomes[0].Error, context.DeadlineExceeded.Error())
	assert.True(t, report.Outcomes[1].Success)
}

// timeoutOnFirstSender blocks on its first recipient and delegates the rest.
type timeoutOnFirstSender struct {
	mu    sync.Mutex
	calls int
	slow  channel.Adapter
	fast  channel.Adapter
}

func (s *timeoutOnFirstSender) Channel() string { return "email" }

func (s *timeoutOnFirstSender) Send(ctx context.Context, recipient, subject, body string) (*channel.SendResult, error) {
	s.mu.Lock()
	first := s.calls == 0
	s.calls++
	s.mu.Unlock()
	if first {
		return s.slow.Send(ctx, recipient, subject, body)
	}
	return s.fast.Send(ctx, recipient, subject, body)
}
