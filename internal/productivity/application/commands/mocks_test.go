package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
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

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, userID uuid.UUID, events ...domain.DomainEvent) error {
	return m.Called(ctx, userID, events).Error(0)
}

func (m *mockRecorder) Announce(ctx context.Context, events ...domain.DomainEvent) {
	m.Called(ctx, events)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type txKey struct{}

var now = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

type deps struct {
	ctx, txCtx context.Context
	tasks      *mockTaskRepo
	areas      *mockAreaRepo
	recorder   *mockRecorder
	scores     *mockInvalidator
	uow        *mockUnitOfWork
	clock      *domain.FixedClock
}

func newDeps() *deps {
	ctx := context.Background()
	return &deps{
		ctx:      ctx,
		txCtx:    context.WithValue(ctx, txKey{}, "tx"),
		tasks:    new(mockTaskRepo),
		areas:    new(mockAreaRepo),
		recorder: new(mockRecorder),
		scores:   new(mockInvalidator),
		uow:      new(mockUnitOfWork),
		clock:    domain.NewFixedClock(now),
	}
}

// expectCommit wires the happy-path transaction plus activity and invalidation.
func (d *deps) expectCommit(userID uuid.UUID) {
	d.uow.On("Begin", d.ctx).Return(d.txCtx, nil)
	d.uow.On("Commit", d.txCtx).Return(nil)
	d.recorder.On("Record", d.txCtx, userID, mock.Anything).Return(nil)
	d.recorder.On("Announce", d.ctx, mock.Anything).Return()
	d.scores.On("Invalidate", d.ctx, userID).Return(nil)
}

func (d *deps) expectRollback() {
	d.uow.On("Begin", d.ctx).Return(d.txCtx, nil)
	d.uow.On("Rollback", d.txCtx).Return(nil)
}

func (d *deps) assert(t mock.TestingT) {
	d.uow.AssertExpectations(t)
	d.tasks.AssertExpectations(t)
	d.areas.AssertExpectations(t)
	d.recorder.AssertExpectations(t)
	d.scores.AssertExpectations(t)
}
