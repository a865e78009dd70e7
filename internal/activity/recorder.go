// Package activity keeps the per-user audit trail of domain events and
// announces them on the event bus.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// Entry is one activity_log row.
type Entry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     string
	Detail     json.RawMessage
	OccurredAt time.Time
}

// Repository persists entries.
type Repository interface {
	Save(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error)
}

// Recorder is what command handlers depend on. Record runs inside the
// caller's unit of work; Announce runs after it commits.
type Recorder interface {
	Record(ctx context.Context, userID uuid.UUID, events ...domain.DomainEvent) error
	Announce(ctx context.Context, events ...domain.DomainEvent)
}

// EventRecorder writes events to the activity log and publishes them.
type EventRecorder struct {
	repo      Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewEventRecorder creates a recorder. A nil publisher disables announcing.
func NewEventRecorder(repo Repository, publisher eventbus.Publisher, logger *slog.Logger) *EventRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventRecorder{repo: repo, publisher: publisher, logger: logger}
}

func (r *EventRecorder) Record(ctx context.Context, userID uuid.UUID, events ...domain.DomainEvent) error {
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, userID))

	for _, event := range events {
		detail, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", event.RoutingKey(), err)
		}
		entry := Entry{
			ID:         event.EventID(),
			UserID:     userID,
			EntityType: event.AggregateType(),
			EntityID:   event.AggregateID(),
			Action:     event.RoutingKey(),
			Detail:     detail,
			OccurredAt: event.OccurredAt(),
		}
		if err := r.repo.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
	}
	return nil
}

// envelope is the published message body.
type envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	UserID        uuid.UUID       `json:"user_id"`
	EntityType    string          `json:"entity_type"`
	EntityID      uuid.UUID       `json:"entity_id"`
	Action        string          `json:"action"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Detail        json.RawMessage `json:"detail"`
	CorrelationID uuid.UUID       `json:"correlation_id"`
}

func (r *EventRecorder) Announce(ctx context.Context, events ...domain.DomainEvent) {
	if r.publisher == nil {
		return
	}
	for _, event := range events {
		detail, err := json.Marshal(event)
		if err != nil {
			r.logger.WarnContext(ctx, "failed to encode event", "action", event.RoutingKey(), "error", err)
			continue
		}
		meta := event.Metadata()
		body, err := json.Marshal(envelope{
			EventID:       event.EventID(),
			UserID:        meta.UserID,
			EntityType:    event.AggregateType(),
			EntityID:      event.AggregateID(),
			Action:        event.RoutingKey(),
			OccurredAt:    event.OccurredAt(),
			Detail:        detail,
			CorrelationID: meta.CorrelationID,
		})
		if err != nil {
			r.logger.WarnContext(ctx, "failed to encode envelope", "action", event.RoutingKey(), "error", err)
			continue
		}
		err = r.publisher.Publish(ctx, eventbus.Message{
			RoutingKey:    event.RoutingKey(),
			CorrelationID: meta.CorrelationID.String(),
			Payload:       body,
		})
		if err != nil {
			r.logger.WarnContext(ctx, "failed to publish activity", "action", event.RoutingKey(), "error", err)
		}
	}
}
