package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, userID uuid.UUID, filter task.ListFilter) ([]*task.Task, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindActionable(ctx context.Context, userID uuid.UUID, areaID, projectID *uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID, areaID, projectID)
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID, at time.Time) error {
	return m.Called(ctx, taskID, dependsOnID, at).Error(0)
}

func (m *mockTaskRepo) UnresolvedDependencies(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *mockTaskRepo) LastChangedAt(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Error(1)
}

type mockAreaRepo struct {
	mock.Mock
}

func (m *mockAreaRepo) Save(ctx context.Context, a *area.Area) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAreaRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*area.Area, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*area.Area), args.Error(1)
}

func (m *mockAreaRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]*area.Area, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*area.Area), args.Error(1)
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

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
