package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskItemCreated = "item:created"
	TaskItemDeleted = "item:deleted"
)

// ItemEventPayload is the JSON payload stored in Redis for item events.
type ItemEventPayload struct {
	Type       string    `json:"type"`
	ItemID     int64     `json:"item_id"`
	Name       string    `json:"name,omitempty"`
	Deleted    int64     `json:"deleted,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemCreatedEvent describes a committed insert.
func NewItemCreatedEvent(id int64, name string, at time.Time) ItemEventPayload {
	return ItemEventPayload{
		Type:       TaskItemCreated,
		ItemID:     id,
		Name:       name,
		OccurredAt: at,
	}
}

// NewItemDeletedEvent describes a committed delete that removed rows.
func NewItemDeletedEvent(id int64, deleted int64, at time.Time) ItemEventPayload {
	return ItemEventPayload{
		Type:       TaskItemDeleted,
		ItemID:     id,
		Deleted:    deleted,
		OccurredAt: at,
	}
}

// NewItemEventTask constructs the Asynq task for event.
//
// Options: up to 3 retries on the "low" queue, 30s per attempt.
func NewItemEventTask(event ItemEventPayload) (*asynq.Task, error) {
	if event.Type != TaskItemCreated && event.Type != TaskItemDeleted {
		return nil, fmt.Errorf("unknown item event type %q", event.Type)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		event.Type,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
