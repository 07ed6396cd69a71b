package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/config"
	"github.com/deppfellow/item-service/internal/lib/email"
)

// InitHandlers wires the notification sink used by the item event handler.
// Without a Resend key or a recipient, events are only logged.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if cfg.Integration.ResendAPIKey == "" || cfg.Integration.NotifyEmail == "" {
		logger.Info().Msg("resend not configured, item events will only be logged")
		return
	}

	j.notifier = email.NewClient(cfg, logger)
	j.notifyTo = cfg.Integration.NotifyEmail
}

// handleItemEventTask processes item:created and item:deleted tasks.
func (j *JobService) handleItemEventTask(ctx context.Context, t *asynq.Task) error {
	var p ItemEventPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal item event payload: %w", err)
	}

	j.logger.Info().
		Str("type", t.Type()).
		Int64("item_id", p.ItemID).
		Time("occurred_at", p.OccurredAt).
		Msg("Processing item event")

	if j.notifier == nil {
		return nil
	}

	err := j.notifier.SendItemEvent(j.notifyTo, email.ItemEvent{
		Type:       t.Type(),
		ItemID:     p.ItemID,
		Name:       p.Name,
		OccurredAt: p.OccurredAt,
	})
	if err != nil {
		j.logger.Error().
			Str("type", t.Type()).
			Int64("item_id", p.ItemID).
			Err(err).
			Msg("Failed to send item event notification")
		return err // asynq marks the task failed and retries it
	}

	j.logger.Info().
		Str("type", t.Type()).
		Int64("item_id", p.ItemID).
		Msg("Sent item event notification")

	return nil
}
