package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoremind-core/internal/common/config"
	"autoremind-core/internal/common/database"
	"autoremind-core/internal/models"
)

func newTestAuditStore(t *testing.T) (*AuditStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewAuditStore(client, 72*time.Hour), mr
}

func TestAuditStoreRoundTrip(t *testing.T) {
	store, mr := newTestAuditStore(t)

	report := &Report{
		RunID:      "run-1",
		Successful: 2,
		Failed:     1,
		Total:      3,
		StartedAt:  time.Now().UTC().Truncate(time.Second),
		FinishedAt: time.Now().UTC().Truncate(time.Second),
		Outcomes: []models.SendOutcome{
			{Recipient: "a@b.edu", Success: true, MessageID: "m1"},
			{Recipient: "", Success: false, Error: "missing recipient email"},
			{Recipient: "c@d.edu", Success: true, MessageID: "m2"},
		},
	}

	require.NoError(t, store.SaveReport(context.Background(), report))

	got, err := store.GetReport(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, report.Successful, got.Successful)
	assert.Equal(t, report.Outcomes, got.Outcomes)

	ttl := mr.TTL("dispatch:report:run-1")
	assert.Equal(t, 72*time.Hour, ttl)
}

func TestAuditStoreMissingReport(t *testing.T) {
	store, _ := newTestAuditStore(t)

	_, err := store.GetReport(context.Background(), "no-such-run")
	require.Error(t, err)
}
