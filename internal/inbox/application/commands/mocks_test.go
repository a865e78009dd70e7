package commands

import (
	"context"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	productivityCommands "github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	projectCommands "github.com/felixgeelhaar/focusos/internal/projects/application/commands"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockInboxRepo struct {
	mock.Mock
}

func (m *mockInboxRepo) Save(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInboxRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *mockInboxRepo) List(ctx context.Context, userID uuid.UUID, statuses []domain.Status, limit int) ([]*domain.Item, error) {
	args := m.Called(ctx, userID, statuses, limit)
	return args.Get(0).([]*domain.Item), args.Error(1)
}

type mockTaskCreator struct {
	mock.Mock
}

func (m *mockTaskCreator) Handle(ctx context.Context, cmd productivityCommands.CreateTaskCommand) (*productivityCommands.CreateTaskResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productivityCommands.CreateTaskResult), args.Error(1)
}

type mockProjectCreator struct {
	mock.Mock
}

func (m *mockProjectCreator) Handle(ctx context.Context, cmd projectCommands.CreateProjectCommand) (*projectCommands.CreateProjectResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectCommands.CreateProjectResult), args.Error(1)
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

func (m *mockRecorder) Record(ctx context.Context, userID uuid.UUID, events ...sharedDomain.DomainEvent) error {
	return m.Called(ctx, userID, events).Error(0)
}

func (m *mockRecorder) Announce(ctx context.Context, events ...sharedDomain.DomainEvent) {
	m.Called(ctx, events)
}

type txKey struct{}
