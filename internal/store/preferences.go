// Package store persists student notification preferences.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/lib/pq"

	"autoremind-core/internal/common/errors"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/common/metrics"
	"autoremind-core/internal/frequency"
	"autoremind-core/internal/models"
)

const insertPreference = `
	INSERT INTO student_preferences
		(email, phone_number, discord_id, notif_freq_days,
		 sms_enabled, email_enabled, discord_enabled, sid, name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at`

// PreferenceStore writes one preference record per identity email. The
// uniqueness constraint lives in the database; a duplicate insert is
// rejected, never merged.
type PreferenceStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPreferenceStore(db *sql.DB, log logger.Logger) *PreferenceStore {
	return &PreferenceStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "preference-store"}),
	}
}

// Register validates, normalizes and inserts a new preference record.
// Duplicate identity emails fail with DUPLICATE_REGISTRATION and leave the
// store unchanged.
func (s *PreferenceStore) Register(ctx context.Context, input models.PreferenceInput) (*models.StudentPreference, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		return nil, errors.NewValidationError("user_email is required")
	}

	freqDays, err := frequency.Clamp(input.DaysBefore)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	pref := &models.StudentPreference{
		Email:         email,
		PhoneNumber:   normalizeOptional(input.Phone),
		DiscordID:     normalizeOptional(input.DiscordID),
		NotifFreqDays: freqDays,
		SID:           normalizeOptional(input.SID),
		Name:          normalizeOptional(input.StudentName),
	}
	pref.Channels = models.ChannelFlags{
		SMS:     pref.PhoneNumber != nil,
		Email:   input.EmailOptIn,
		Discord: pref.DiscordID != nil,
	}

	err = s.db.QueryRowContext(ctx, insertPreference,
		pref.Email, pref.PhoneNumber, pref.DiscordID, pref.NotifFreqDays,
		pref.Channels.SMS, pref.Channels.Email, pref.Channels.Discord,
		pref.SID, pref.Name,
	).Scan(&pref.ID, &pref.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			s.logger.Warn("duplicate registration rejected", map[string]interface{}{
				"email": email,
			})
			return nil, errors.NewDuplicateRegistrationError(email)
		}
		metrics.RegistrationsTotal.WithLabelValues("store_error").Inc()
		s.logger.Error("preference insert failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, errors.NewStoreError(err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info("preference registered", map[string]interface{}{
		"email":           email,
		"notif_freq_days": freqDays,
	})
	return pref, nil
}

// normalizeOptional treats empty and whitespace-only strings as absent.
func normalizeOptional(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
