package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func existingTask(t *testing.T, userID uuid.UUID) *task.Task {
	t.Helper()
	tsk, err := task.NewTask(userID, uuid.New(), "Existing", now.Add(-48*time.Hour))
	require.NoError(t, err)
	tsk.ClearDomainEvents()
	return tsk
}

func TestCreateTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("applies defaults and overrides", func(t *testing.T) {
		d := newDeps()
		work, err := area.NewArea(userID, "Work", "", 0, now)
		require.NoError(t, err)

		d.expectCommit(userID)
		d.areas.On("FindByID", d.txCtx, userID, work.ID()).Return(work, nil)

		var saved *task.Task
		d.tasks.On("Save", d.txCtx, mock.AnythingOfType("*task.Task")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*task.Task) }).
			Return(nil)

		handler := NewCreateTaskHandler(d.tasks, d.areas, d.recorder, d.scores, d.uow, d.clock)
		result, err := handler.Handle(d.ctx, CreateTaskCommand{
			UserID:        userID,
			AreaID:        work.ID(),
			Title:         "Prepare demo",
			EffortMinutes: intPtr(25),
			Energy:        "high",
			Impact:        intPtr(7),
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, saved.ID(), result.TaskID)
		assert.Equal(t, task.StatusNext, saved.Status())
		assert.Equal(t, task.EnergyHigh, saved.Energy())
		assert.Equal(t, task.Ratings{Impact: 5, Urgency: 3}, saved.Ratings())
		assert.Equal(t, now, saved.CreatedAt())
		d.assert(t)
	})

	t.Run("requires area", func(t *testing.T) {
		d := newDeps()
		d.expectRollback()

		handler := NewCreateTaskHandler(d.tasks, d.areas, d.recorder, d.scores, d.uow, d.clock)
		_, err := handler.Handle(d.ctx, CreateTaskCommand{UserID: userID, Title: "x"})

		assert.ErrorIs(t, err, task.ErrAreaRequired)
		d.assert(t)
	})

	t.Run("unknown area", func(t *testing.T) {
		d := newDeps()
		d.expectRollback()
		areaID := uuid.New()
		d.areas.On("FindByID", d.txCtx, userID, areaID).Return(nil, area.ErrAreaNotFound)

		handler := NewCreateTaskHandler(d.tasks, d.areas, d.recorder, d.scores, d.uow, d.clock)
		_, err := handler.Handle(d.ctx, CreateTaskCommand{UserID: userID, AreaID: areaID, Title: "x"})

		assert.ErrorIs(t, err, area.ErrAreaNotFound)
		d.assert(t)
	})
}

func TestUpdateTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("partial update touches task", func(t *testing.T) {
		d := newDeps()
		tsk := existingTask(t, userID)
		d.expectCommit(userID)
		d.tasks.On("FindByID", d.txCtx, userID, tsk.ID()).Return(tsk, nil)
		d.tasks.On("Save", d.txCtx, tsk).Return(nil)

		handler := NewUpdateTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		err := handler.Handle(d.ctx, UpdateTaskCommand{
			TaskID:  tsk.ID(),
			UserID:  userID,
			Title:   strPtr("Renamed"),
			Status:  strPtr("IN_PROGRESS"),
			Urgency: intPtr(5),
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", tsk.Title())
		assert.Equal(t, task.StatusInProgress, tsk.Status())
		assert.Equal(t, 5, tsk.Ratings().Urgency)
		assert.Equal(t, now, *tsk.LastTouchedAt())

		updated := tsk.DomainEvents()[0].(*task.TaskUpdated)
		assert.Equal(t, []string{"title", "status", "urgency"}, updated.Fields)
		d.assert(t)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		d := newDeps()
		tsk := existingTask(t, userID)
		d.expectRollback()
		d.tasks.On("FindByID", d.txCtx, userID, tsk.ID()).Return(tsk, nil)

		handler := NewUpdateTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		err := handler.Handle(d.ctx, UpdateTaskCommand{TaskID: tsk.ID(), UserID: userID, Status: strPtr("LATER")})

		assert.ErrorIs(t, err, task.ErrInvalidStatus)
		d.assert(t)
	})
}

func TestCompleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("completes and invalidates scores", func(t *testing.T) {
		d := newDeps()
		tsk := existingTask(t, userID)
		d.expectCommit(userID)
		d.tasks.On("FindByID", d.txCtx, userID, tsk.ID()).Return(tsk, nil)
		d.tasks.On("Save", d.txCtx, tsk).Return(nil)

		handler := NewCompleteTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		require.NoError(t, handler.Handle(d.ctx, CompleteTaskCommand{TaskID: tsk.ID(), UserID: userID}))

		assert.True(t, tsk.IsCompleted())
		d.assert(t)
	})

	t.Run("not found rolls back", func(t *testing.T) {
		d := newDeps()
		taskID := uuid.New()
		d.expectRollback()
		d.tasks.On("FindByID", d.txCtx, userID, taskID).Return(nil, task.ErrTaskNotFound)

		handler := NewCompleteTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		err := handler.Handle(d.ctx, CompleteTaskCommand{TaskID: taskID, UserID: userID})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		d.assert(t)
	})

	t.Run("save failure rolls back", func(t *testing.T) {
		d := newDeps()
		tsk := existingTask(t, userID)
		d.expectRollback()
		d.tasks.On("FindByID", d.txCtx, userID, tsk.ID()).Return(tsk, nil)
		d.tasks.On("Save", d.txCtx, tsk).Return(errors.New("disk full"))

		handler := NewCompleteTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		err := handler.Handle(d.ctx, CompleteTaskCommand{TaskID: tsk.ID(), UserID: userID})

		assert.ErrorContains(t, err, "disk full")
		d.assert(t)
	})
}

func TestSnoozeTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("requires until", func(t *testing.T) {
		d := newDeps()
		handler := NewSnoozeTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		err := handler.Handle(d.ctx, SnoozeTaskCommand{TaskID: uuid.New(), UserID: userID})
		assert.ErrorIs(t, err, task.ErrSnoozeRequired)
	})

	t.Run("snoozes", func(t *testing.T) {
		d := newDeps()
		tsk := existingTask(t, userID)
		d.expectCommit(userID)
		d.tasks.On("FindByID", d.txCtx, userID, tsk.ID()).Return(tsk, nil)
		d.tasks.On("Save", d.txCtx, tsk).Return(nil)

		until := now.Add(24 * time.Hour)
		handler := NewSnoozeTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		require.NoError(t, handler.Handle(d.ctx, SnoozeTaskCommand{TaskID: tsk.ID(), UserID: userID, Until: until}))

		assert.Equal(t, until, *tsk.SnoozedUntil())
		d.assert(t)
	})
}

func TestSplitTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	d := newDeps()
	parent := existingTask(t, userID)
	d.expectCommit(userID)
	d.tasks.On("FindByID", d.txCtx, userID, parent.ID()).Return(parent, nil)
	d.tasks.On("Save", d.txCtx, mock.AnythingOfType("*task.Task")).Return(nil).Twice()

	handler := NewSplitTaskHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
	result, err := handler.Handle(d.ctx, SplitTaskCommand{
		TaskID:   parent.ID(),
		UserID:   userID,
		Subtasks: []task.Subtask{{Title: "a"}, {Title: "b", EffortMinutes: intPtr(10)}},
	})

	require.NoError(t, err)
	assert.Len(t, result.SubtaskIDs, 2)
	d.assert(t)

	_, err = handler.Handle(d.ctx, SplitTaskCommand{TaskID: parent.ID(), UserID: userID})
	assert.ErrorIs(t, err, task.ErrSubtasksRequired)
}

func TestAddDependencyHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("records dependency", func(t *testing.T) {
		d := newDeps()
		tsk := existingTask(t, userID)
		prereq := existingTask(t, userID)
		d.expectCommit(userID)
		d.tasks.On("FindByID", d.txCtx, userID, tsk.ID()).Return(tsk, nil)
		d.tasks.On("FindByID", d.txCtx, userID, prereq.ID()).Return(prereq, nil)
		d.tasks.On("AddDependency", d.txCtx, tsk.ID(), prereq.ID(), now).Return(nil)

		handler := NewAddDependencyHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		require.NoError(t, handler.Handle(d.ctx, AddDependencyCommand{TaskID: tsk.ID(), DependsOnTaskID: prereq.ID(), UserID: userID}))
		d.assert(t)
	})

	t.Run("rejects self dependency", func(t *testing.T) {
		d := newDeps()
		d.expectRollback()
		id := uuid.New()

		handler := NewAddDependencyHandler(d.tasks, d.recorder, d.scores, d.uow, d.clock)
		err := handler.Handle(d.ctx, AddDependencyCommand{TaskID: id, DependsOnTaskID: id, UserID: userID})

		assert.ErrorIs(t, err, task.ErrSelfDependency)
		d.assert(t)
	})
}

func TestCreateAreaHandler_Handle(t *testing.T) {
	userID := uuid.New()
	d := newDeps()
	d.uow.On("Begin", d.ctx).Return(d.txCtx, nil)
	d.uow.On("Commit", d.txCtx).Return(nil)
	d.areas.On("Save", d.txCtx, mock.AnythingOfType("*area.Area")).Return(nil)

	handler := NewCreateAreaHandler(d.areas, d.uow, domain.NewFixedClock(now))
	id, err := handler.Handle(d.ctx, CreateAreaCommand{UserID: userID, Name: "Health"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = handler.Handle(d.ctx, CreateAreaCommand{UserID: userID, Name: ""})
	assert.ErrorIs(t, err, area.ErrEmptyName)
	d.assert(t)
}
