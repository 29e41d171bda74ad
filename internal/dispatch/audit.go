// internal/dispatch/audit.go
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"autoremind-core/internal/common/database"
	"autoremind-core/internal/common/errors"
)

const auditKeyPrefix = "dispatch:report:"

// AuditStore persists dispatch reports to Redis so per-recipient outcomes
// stay retrievable after a run.
type AuditStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewAuditStore(redis *database.RedisClient, ttl time.Duration) *AuditStore {
	return &AuditStore{redis: redis, ttl: ttl}
}

// SaveReport stores the full report under dispatch:report:<runID>.
func (s *AuditStore) SaveReport(ctx context.Context, report *Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.NewStoreError(fmt.Errorf("marshal report: %w", err))
	}
	if err := s.redis.Set(ctx, auditKeyPrefix+report.RunID, payload, s.ttl); err != nil {
		return errors.NewStoreError(err)
	}
	return nil
}

// GetReport retrieves a previously saved report by run ID.
func (s *AuditStore) GetReport(ctx context.Context, runID string) (*Report, error) {
	payload, err := s.redis.Get(ctx, auditKeyPrefix+runID)
	if err != nil {
		return nil, errors.NewStoreError(err)
	}
	var report Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, errors.NewStoreError(fmt.Errorf("unmarshal report: %w", err))
	}
	return &report, nil
}
