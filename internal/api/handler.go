// Package api is the HTTP boundary for preference registration.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/xeipuuv/gojsonschema"

	"autoremind-core/internal/channel"
	"autoremind-core/internal/common/errors"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/models"
)

// settingsSchema describes the registration payload shape. Semantic checks
// (trimming, cadence clamping, duplicates) belong to the store.
const settingsSchema = `{
	"type": "object",
	"required": ["user_email", "days_before"],
	"properties": {
		"user_email": {"type": "string"},
		"days_before": {"type": "number"},
		"channels": {
			"type": "object",
			"properties": {
				"sms": {"type": "string"},
				"discord": {"type": "string"},
				"email": {"type": "boolean"}
			}
		}
	}
}`

var settingsSchemaLoader = gojsonschema.NewStringLoader(settingsSchema)

// Registrar is the slice of the preference store the handler needs.
type Registrar interface {
	Register(ctx context.Context, input models.PreferenceInput) (*models.StudentPreference, error)
}

// Handler serves the reminder preference routes.
type Handler struct {
	store   Registrar
	discord *channel.DiscordInviteAdapter
	logger  logger.Logger
}

func NewHandler(store Registrar, discord *channel.DiscordInviteAdapter, log logger.Logger) *Handler {
	return &Handler{
		store:   store,
		discord: discord,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

type settingsRequest struct {
	UserEmail string `json:"user_email"`
	Channels  struct {
		SMS     string `json:"sms"`
		Discord string `json:"discord"`
		Email   bool   `json:"email"`
	} `json:"channels"`
	DaysBefore float64 `json:"days_before"`
}

// HandleSettings implements POST /api/reminders/settings.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, errors.NewValidationError("unreadable request body"))
		return
	}

	result, err := gojsonschema.Validate(settingsSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil || !result.Valid() {
		details := "malformed JSON body"
		if err == nil {
			descs := make([]string, len(result.Errors()))
			for i, desc := range result.Errors() {
				descs[i] = desc.String()
			}
			details = "schema validation failed"
			h.logger.Warn("request rejected", map[string]interface{}{"errors": descs})
		}
		h.writeError(w, errors.NewValidationError(details))
		return
	}

	var req settingsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, errors.NewValidationError("malformed JSON body"))
		return
	}

	pref, err := h.store.Register(r.Context(), models.PreferenceInput{
		Email:      req.UserEmail,
		Phone:      req.Channels.SMS,
		DiscordID:  req.Channels.Discord,
		EmailOptIn: req.Channels.Email,
		DaysBefore: req.DaysBefore,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    pref,
	})
}

// HandleDiscordInvite implements GET /api/reminders/discord.
func (h *Handler) HandleDiscordInvite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.discord == nil {
		h.writeError(w, errors.NewConfigurationError("discord invite is not configured"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"invite_url": h.discord.InviteURL(),
	})
}

// HandleHealth implements GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	payload := map[string]interface{}{}
	switch errors.CodeOf(err) {
	case errors.ErrCodeDuplicateRegistration:
		payload["error"] = "This email is already registered."
		payload["details"] = "Duplicate entry"
	case errors.ErrCodeValidationFailed:
		payload["error"] = "Invalid request data"
	default:
		message := err.Error()
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) && stdErr.Details != "" {
			message = stdErr.Details
		}
		payload["error"] = message
		h.logger.Error("request failed", map[string]interface{}{"error": err.Error()})
	}
	h.writeJSON(w, errors.HTTPStatus(err), payload)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response encode failed", map[string]interface{}{"error": err.Error()})
	}
}
