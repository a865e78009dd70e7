package activity_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/dbtest"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecorder_RecordAndAnnounce(t *testing.T) {
	ctx := observability.WithCorrelationID(context.Background(), uuid.NewString())
	repo := activity.NewSQLRepository(dbtest.Open(t))
	publisher := eventbus.NewMemoryPublisher()
	recorder := activity.NewEventRecorder(repo, publisher, nil)

	userID := uuid.New()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	tsk, err := task.NewTask(userID, uuid.New(), "Plan sprint", now)
	require.NoError(t, err)
	require.NoError(t, tsk.Complete(now.Add(time.Hour)))

	events := tsk.DomainEvents()
	require.NoError(t, recorder.Record(ctx, userID, events...))
	recorder.Announce(ctx, events...)

	entries, err := repo.ListRecent(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, task.RoutingKeyCompleted, entries[0].Action)
	assert.Equal(t, task.RoutingKeyCreated, entries[1].Action)
	assert.Equal(t, "Task", entries[1].EntityType)
	assert.Equal(t, tsk.ID(), entries[1].EntityID)
	assert.JSONEq(t, `{"title":"Plan sprint"}`, string(entries[1].Detail))

	msgs := publisher.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, observability.CorrelationIDFromContext(ctx), msgs[0].CorrelationID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, task.RoutingKeyCreated, body["action"])
}

func TestEventRecorder_AnnounceWithoutPublisher(t *testing.T) {
	recorder := activity.NewEventRecorder(nil, nil, nil)
	assert.NotPanics(t, func() {
		recorder.Announce(context.Background(), []domain.DomainEvent{}...)
	})
}
