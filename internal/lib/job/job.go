// Package job provides background processing of item events using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - Item services enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/config"
	"github.com/deppfellow/item-service/internal/lib/email"
)

// Notifier delivers item event notifications. *email.Client implements it.
type Notifier interface {
	SendItemEvent(to string, event email.ItemEvent) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server

	logger *zerolog.Logger

	// notifier and notifyTo are set by InitHandlers; a nil notifier only logs.
	notifier Notifier
	notifyTo string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks more worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskItemCreated, j.handleItemEventTask)
	mux.HandleFunc(TaskItemDeleted, j.handleItemEventTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// PublishItemEvent enqueues the task matching event.Type.
func (j *JobService) PublishItemEvent(ctx context.Context, event ItemEventPayload) error {
	task, err := NewItemEventTask(event)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("type", task.Type()).
		Int64("item_id", event.ItemID).
		Msg("item event enqueued")
	return nil
}
