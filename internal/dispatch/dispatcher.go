// Package dispatch drives a batch of message requests through a delivery
// channel, continuing past individual failures and reporting per-recipient
// outcomes.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"autoremind-core/internal/channel"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/common/metrics"
	"autoremind-core/internal/models"
)

const defaultAssignment = "Assignment"

// Report aggregates one dispatch run. Outcomes are in input order and every
// input row yields exactly one outcome, so Successful+Failed == Total ==
// len(Outcomes) always holds.
type Report struct {
	RunID      string               `json:"run_id"`
	Successful int                  `json:"successful"`
	Failed     int                  `json:"failed"`
	Total      int                  `json:"total"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Outcomes   []models.SendOutcome `json:"outcomes"`
}

// Dispatcher fans a batch out over one channel adapter with bounded
// concurrency. Concurrency 1 keeps sends strictly sequential.
type Dispatcher struct {
	sender      channel.Adapter
	audit       *AuditStore
	logger      logger.Logger
	concurrency int
	sendTimeout time.Duration
}

// NewDispatcher builds a dispatcher. audit may be nil when no report
// persistence is wanted (tests, dry runs). Concurrency below 1 is coerced
// to 1.
func NewDispatcher(sender channel.Adapter, audit *AuditStore, log logger.Logger, concurrency int, sendTimeout time.Duration) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	if sendTimeout <= 0 {
		sendTimeout = 15 * time.Second
	}
	return &Dispatcher{
		sender:      sender,
		audit:       audit,
		logger:      log.WithFields(map[string]interface{}{"component": "dispatcher"}),
		concurrency: concurrency,
		sendTimeout: sendTimeout,
	}
}

// Dispatch processes every request and never aborts on a single failure.
// The returned error covers run-level problems only (audit persistence);
// send failures are reported through the outcome list.
func (d *Dispatcher) Dispatch(ctx context.Context, requests []models.MessageRequest) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		Total:     len(requests),
		StartedAt: time.Now().UTC(),
		Outcomes:  make([]models.SendOutcome, len(requests)),
	}

	metrics.DispatchRunsActive.Inc()
	defer metrics.DispatchRunsActive.Dec()

	d.logger.Info("dispatch run started", map[string]interface{}{
		"run_id":      report.RunID,
		"total":       report.Total,
		"concurrency": d.concurrency,
	})

	sem := make(chan struct{}, d.concurrency)
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, req models.MessageRequest) {
			defer wg.Done()
			defer func() { <-sem }()
			report.Outcomes[i] = d.sendOne(ctx, req)
		}(i, req)
	}
	wg.Wait()

	for _, outcome := range report.Outcomes {
		if outcome.Success {
			report.Successful++
		} else {
			report.Failed++
		}
	}
	report.FinishedAt = time.Now().UTC()

	d.logger.Info("dispatch run finished", map[string]interface{}{
		"run_id":     report.RunID,
		"successful": report.Successful,
		"failed":     report.Failed,
		"total":      report.Total,
	})

	if d.audit != nil {
		if err := d.audit.SaveReport(ctx, report); err != nil {
			d.logger.Error("audit report save failed", map[string]interface{}{
				"run_id": report.RunID,
				"error":  err.Error(),
			})
			return report, err
		}
	}
	return report, nil
}

// sendOne produces exactly one outcome per request. A missing recipient is
// a failure, not a fault that stops the loop.
func (d *Dispatcher) sendOne(ctx context.Context, req models.MessageRequest) models.SendOutcome {
	recipient := req.Recipient(d.sender.Channel())
	if recipient == "" {
		d.logger.Warn("row skipped", map[string]interface{}{
			"assignment": req.Assignment,
			"reason":     "missing recipient address",
		})
		return models.SendOutcome{
			Recipient: "",
			Success:   false,
			Error:     "missing recipient address",
		}
	}

	assignment := req.Assignment
	if assignment == "" {
		assignment = defaultAssignment
	}
	subject := fmt.Sprintf("Reminder: %s", assignment)

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	result, err := d.sender.Send(sendCtx, recipient, subject, req.Body)
	if err != nil {
		d.logger.Warn("send failed", map[string]interface{}{
			"recipient": recipient,
			"error":     err.Error(),
		})
		outcome := models.SendOutcome{Recipient: recipient, Success: false, Error: err.Error()}
		if result != nil && result.Error != "" {
			outcome.Error = result.Error
		}
		return outcome
	}

	return models.SendOutcome{
		Recipient: recipient,
		Success:   true,
		MessageID: result.MessageID,
	}
}
