package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/lib/email"
)

func TestNewItemEventTask(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	task, err := NewItemEventTask(NewItemCreatedEvent(7, "widget", at))
	if err != nil {
		t.Fatalf("NewItemEventTask() error = %v", err)
	}
	if task.Type() != TaskItemCreated {
		t.Errorf("Type() = %q", task.Type())
	}

	var p ItemEventPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatal(err)
	}
	if p.ItemID != 7 || p.Name != "widget" || !p.OccurredAt.Equal(at) {
		t.Errorf("payload = %+v", p)
	}
}

func TestNewItemEventTaskRejectsUnknownType(t *testing.T) {
	if _, err := NewItemEventTask(ItemEventPayload{Type: "item:renamed"}); err == nil {
		t.Error("NewItemEventTask() error = nil")
	}
}

type fakeNotifier struct {
	to     string
	events []email.ItemEvent
	err    error
}

func (f *fakeNotifier) SendItemEvent(to string, event email.ItemEvent) error {
	f.to = to
	f.events = append(f.events, event)
	return f.err
}

func newTestJobService(n Notifier) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, notifier: n, notifyTo: "ops@example.com"}
}

func TestHandleItemEventTaskNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	j := newTestJobService(notifier)

	task, err := NewItemEventTask(NewItemDeletedEvent(3, 1, time.Now().UTC()))
	if err != nil {
		t.Fatal(err)
	}

	if err := j.handleItemEventTask(context.Background(), task); err != nil {
		t.Fatalf("handleItemEventTask() error = %v", err)
	}
	if notifier.to != "ops@example.com" || len(notifier.events) != 1 || notifier.events[0].Type != TaskItemDeleted {
		t.Errorf("notifier = %+v", notifier)
	}
}

func TestHandleItemEventTaskWithoutNotifier(t *testing.T) {
	j := newTestJobService(nil)

	task, err := NewItemEventTask(NewItemCreatedEvent(1, "a", time.Now().UTC()))
	if err != nil {
		t.Fatal(err)
	}
	if err := j.handleItemEventTask(context.Background(), task); err != nil {
		t.Fatalf("handleItemEventTask() error = %v", err)
	}
}

func TestHandleItemEventTaskRetriesOnSendFailure(t *testing.T) {
	j := newTestJobService(&fakeNotifier{err: errors.New("provider down")})

	task, err := NewItemEventTask(NewItemCreatedEvent(1, "a", time.Now().UTC()))
	if err != nil {
		t.Fatal(err)
	}
	if err := j.handleItemEventTask(context.Background(), task); err == nil {
		t.Error("handleItemEventTask() error = nil, want error so asynq retries")
	}
}

func TestHandleItemEventTaskBadPayload(t *testing.T) {
	j := newTestJobService(nil)

	if err := j.handleItemEventTask(context.Background(), asynq.NewTask(TaskItemCreated, []byte("{"))); err == nil {
		t.Error("handleItemEventTask() error = nil for malformed payload")
	}
}
