package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/felixgeelhaar/focusos/internal/inbox/persistence"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/dbtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxRepository(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInboxRepository(dbtest.Open(t))
	userID := uuid.New()
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	capture := func(text string, at time.Time) *domain.Item {
		item, err := domain.NewItem(userID, text, domain.SourceCLI, at)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, item))
		return item
	}
	first := capture("buy stamps", base)
	second := capture("renew passport", base.Add(time.Minute))
	third := capture("note: wifi code", base.Add(2*time.Minute))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, userID, first.ID())
		require.NoError(t, err)
		assert.Equal(t, "buy stamps", found.RawText())
		assert.Equal(t, domain.SourceCLI, found.Source())
		assert.True(t, found.CapturedAt().Equal(base))

		_, err = repo.FindByID(ctx, uuid.New(), first.ID())
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("triage persists links", func(t *testing.T) {
		taskID := uuid.New()
		require.NoError(t, second.Triage(domain.TriageTask, &taskID, nil, base.Add(time.Hour)))
		require.NoError(t, repo.Save(ctx, second))

		found, err := repo.FindByID(ctx, userID, second.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusTriaged, found.Status())
		require.NotNil(t, found.TriagedTaskID())
		assert.Equal(t, taskID, *found.TriagedTaskID())
		assert.Nil(t, found.TriagedProjectID())
	})

	t.Run("list defaults to unprocessed newest first", func(t *testing.T) {
		items, err := repo.List(ctx, userID, nil, 0)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, third.ID(), items[0].ID())
		assert.Equal(t, first.ID(), items[1].ID())
	})

	t.Run("list by status and limit", func(t *testing.T) {
		items, err := repo.List(ctx, userID, []domain.Status{domain.StatusTriaged}, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, second.ID(), items[0].ID())

		items, err = repo.List(ctx, userID, []domain.Status{domain.StatusUnprocessed, domain.StatusTriaged}, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, third.ID(), items[0].ID())
		assert.Equal(t, second.ID(), items[1].ID())
	})
}
