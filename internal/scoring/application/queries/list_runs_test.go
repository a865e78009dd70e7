package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTaskFinder struct {
	task.Repository
	mock.Mock
}

func (m *mockTaskFinder) FindByID(ctx context.Context, userID, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

type mockRunRepo struct {
	mock.Mock
}

func (m *mockRunRepo) Save(ctx context.Context, run domain.Run) error {
	return m.Called(ctx, run).Error(0)
}

func (m *mockRunRepo) ListByTask(ctx context.Context, userID, taskID uuid.UUID, limit int) ([]domain.Run, error) {
	args := m.Called(ctx, userID, taskID, limit)
	return args.Get(0).([]domain.Run), args.Error(1)
}

func (m *mockRunRepo) ListRecent(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.RecentScore, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).([]domain.RecentScore), args.Error(1)
}

func TestListRunsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("maps runs with default limit", func(t *testing.T) {
		tsk, err := task.NewTask(userID, uuid.New(), "Report", now)
		require.NoError(t, err)

		tasks := new(mockTaskFinder)
		runs := new(mockRunRepo)
		tasks.On("FindByID", ctx, userID, tsk.ID()).Return(tsk, nil)

		run := domain.NewRun(userID, tsk.ID(), domain.Result{PriorityScore: 69, Explanation: "69: ..."}, domain.Context{Now: now, DeepWork: true})
		runs.On("ListByTask", ctx, userID, tsk.ID(), DefaultHistoryLimit).Return([]domain.Run{run}, nil)

		result, err := NewListRunsHandler(tasks, runs).Handle(ctx, ListRunsQuery{UserID: userID, TaskID: tsk.ID()})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, 69, result[0].PriorityScore)
		assert.True(t, result[0].DeepWork)
		assert.Equal(t, now, result[0].ScoredAt)
		runs.AssertExpectations(t)
	})

	t.Run("unknown task", func(t *testing.T) {
		tasks := new(mockTaskFinder)
		runs := new(mockRunRepo)
		taskID := uuid.New()
		tasks.On("FindByID", ctx, userID, taskID).Return(nil, task.ErrTaskNotFound)

		_, err := NewListRunsHandler(tasks, runs).Handle(ctx, ListRunsQuery{UserID: userID, TaskID: taskID, Limit: 5})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		runs.AssertNotCalled(t, "ListByTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
