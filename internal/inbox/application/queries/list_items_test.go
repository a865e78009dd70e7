package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInboxRepo struct {
	domain.Repository
	mock.Mock
}

func (m *mockInboxRepo) List(ctx context.Context, userID uuid.UUID, statuses []domain.Status, limit int) ([]*domain.Item, error) {
	args := m.Called(ctx, userID, statuses, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Item), args.Error(1)
}

func TestListItemsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("defaults and suggestions", func(t *testing.T) {
		repo := new(mockInboxRepo)
		item, err := domain.NewItem(userID, "idea: standing desk", domain.SourceMCP, now)
		require.NoError(t, err)
		repo.On("List", ctx, userID, []domain.Status{domain.StatusUnprocessed}, DefaultLimit).
			Return([]*domain.Item{item}, nil)

		dtos, err := NewListItemsHandler(repo, nil).Handle(ctx, ListItemsQuery{UserID: userID})
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, item.ID(), dtos[0].ID)
		assert.Equal(t, "MCP", dtos[0].Source)
		assert.Equal(t, domain.TriageNote, dtos[0].Suggested)
	})

	t.Run("triaged items carry no suggestion", func(t *testing.T) {
		repo := new(mockInboxRepo)
		item, err := domain.NewItem(userID, "buy stamps", "", now)
		require.NoError(t, err)
		taskID := uuid.New()
		require.NoError(t, item.Triage(domain.TriageTask, &taskID, nil, now))
		repo.On("List", ctx, userID, []domain.Status{domain.StatusTriaged}, 5).
			Return([]*domain.Item{item}, nil)

		dtos, err := NewListItemsHandler(repo, nil).Handle(ctx, ListItemsQuery{UserID: userID, Status: "triaged", Limit: 5})
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Empty(t, dtos[0].Suggested)
		assert.Equal(t, &taskID, dtos[0].TriagedTaskID)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := NewListItemsHandler(new(mockInboxRepo), nil).Handle(ctx, ListItemsQuery{UserID: userID, Status: "gone"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockInboxRepo)
		repo.On("List", ctx, userID, mock.Anything, DefaultLimit).Return(nil, errors.New("offline"))

		_, err := NewListItemsHandler(repo, nil).Handle(ctx, ListItemsQuery{UserID: userID})
		assert.ErrorContains(t, err, "offline")
	})
}
