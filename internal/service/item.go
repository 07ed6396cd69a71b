package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/lib/job"
	"github.com/deppfellow/item-service/internal/model/item"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/sqlerr"
)

// PublishTimeout bounds how long a committed request waits on the event queue.
const PublishTimeout = 2 * time.Second

// ItemRepository is the storage used by ItemService.
type ItemRepository interface {
	ListItems(ctx context.Context) ([]item.Item, error)
	CreateItem(ctx context.Context, name string) (*item.Item, error)
	GetItem(ctx context.Context, id int64) (*item.Item, error)
	DeleteItem(ctx context.Context, id int64) (int64, error)
}

// EventPublisher receives item lifecycle events after a commit.
type EventPublisher interface {
	PublishItemEvent(ctx context.Context, event job.ItemEventPayload) error
}

type ItemService struct {
	server *server.Server
	repo   ItemRepository

	// events may be nil.
	events         EventPublisher
	publishTimeout time.Duration
	now            func() time.Time
}

func NewItemService(s *server.Server, repo ItemRepository, events EventPublisher) *ItemService {
	return &ItemService{
		server: s,
		repo:   repo,
		events:         events,
		publishTimeout: PublishTimeout,
		now:            time.Now,
	}
}

func (s *ItemService) ListItems(ctx context.Context) (*item.ListItemsResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, s.fail(ctx, err, "error listing items")
	}

	return &item.ListItemsResponse{Items: items}, nil
}

func (s *ItemService) CreateItem(ctx context.Context, payload *item.CreateItemPayload) (*item.Item, error) {
	created, err := s.repo.CreateItem(ctx, payload.Name)
	if err != nil {
		return nil, s.fail(ctx, err, "error inserting new item")
	}

	s.publish(ctx, job.NewItemCreatedEvent(created.ID, created.Name, s.now().UTC()))

	return created, nil
}

func (s *ItemService) GetItem(ctx context.Context, id int64) (*item.Item, error) {
	found, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err, "error retrieving item")
	}

	return found, nil
}

// DeleteItem is idempotent: an unknown id reports zero deleted rows.
func (s *ItemService) DeleteItem(ctx context.Context, id int64) (*item.DeleteItemResponse, error) {
	deleted, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err, "error deleting item")
	}

	if deleted > 0 {
		s.publish(ctx, job.NewItemDeletedEvent(id, deleted, s.now().UTC()))
	}

	return &item.DeleteItemResponse{Deleted: deleted}, nil
}

// fail logs err with its stack and Postgres details and returns the error
// the client is allowed to see. A missing row is expected and not logged
// as an error.
func (s *ItemService) fail(ctx context.Context, err error, msg string) error {
	clientErr := sqlerr.HandleError(err)

	if sqlerr.ErrCode(err) == sqlerr.Other && isNotFound(clientErr) {
		zerolog.Ctx(ctx).Debug().Err(err).Msg(msg)
		return clientErr
	}

	sqlerr.WithDetails(zerolog.Ctx(ctx).Error().Stack().Err(err), err).Msg(msg)
	return clientErr
}

// publish never fails the request: the row is already committed.
func (s *ItemService) publish(ctx context.Context, event job.ItemEventPayload) {
	if s.events == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	if err := s.events.PublishItemEvent(publishCtx, event); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("event", event.Type).
			Int64("item_id", event.ItemID).
			Msg("failed to publish item event")
	}
}
