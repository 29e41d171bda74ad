// internal/models/preference.go
package models

import "time"

// ChannelFlags records which delivery channels a student has enabled.
type ChannelFlags struct {
	SMS     bool `json:"sms"`
	Email   bool `json:"email"`
	Discord bool `json:"discord"`
}

// StudentPreference is the stored preference record, one per identity email.
type StudentPreference struct {
	ID            int64        `json:"id" db:"id"`
	Email         string       `json:"email" db:"email"`
	PhoneNumber   *string      `json:"phone_number,omitempty" db:"phone_number"`
	DiscordID     *string      `json:"discord_id,omitempty" db:"discord_id"`
	NotifFreqDays int          `json:"notif_freq_days" db:"notif_freq_days"`
	Channels      ChannelFlags `json:"channel_enabled"`
	SID           *string      `json:"sid,omitempty" db:"sid"`
	Name          *string      `json:"name,omitempty" db:"name"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

// PreferenceInput is the caller-supplied registration payload before
// validation and normalization.
type PreferenceInput struct {
	Email       string  `json:"user_email"`
	Phone       string  `json:"sms"`
	DiscordID   string  `json:"discord"`
	EmailOptIn  bool    `json:"email"`
	DaysBefore  float64 `json:"days_before"`
	SID         string  `json:"sid,omitempty"`
	StudentName string  `json:"name,omitempty"`
}
