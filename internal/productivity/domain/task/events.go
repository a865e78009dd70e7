package task

import (
	"time"

	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated         = "task.created"
	RoutingKeyUpdated         = "task.updated"
	RoutingKeyCompleted       = "task.completed"
	RoutingKeySnoozed         = "task.snoozed"
	RoutingKeySplit           = "task.split"
	RoutingKeyDependencyAdded = "task.dependency_added"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title string `json:"title"`
}

func NewTaskCreated(taskID uuid.UUID, title string, at time.Time) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated, at),
		Title:     title,
	}
}

// TaskUpdated lists the fields an edit touched.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"`
}

func NewTaskUpdated(taskID uuid.UUID, fields []string, at time.Time) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated, at),
		Fields:    fields,
	}
}

type TaskCompleted struct {
	domain.BaseEvent
}

func NewTaskCompleted(taskID uuid.UUID, at time.Time) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCompleted, at),
	}
}

type TaskSnoozed struct {
	domain.BaseEvent
	Until time.Time `json:"until"`
}

func NewTaskSnoozed(taskID uuid.UUID, until, at time.Time) *TaskSnoozed {
	return &TaskSnoozed{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeySnoozed, at),
		Until:     until,
	}
}

type TaskSplit struct {
	domain.BaseEvent
	SubtaskIDs []uuid.UUID `json:"subtask_ids"`
}

func NewTaskSplit(taskID uuid.UUID, subtaskIDs []uuid.UUID, at time.Time) *TaskSplit {
	return &TaskSplit{
		BaseEvent:  domain.NewBaseEvent(taskID, AggregateType, RoutingKeySplit, at),
		SubtaskIDs: subtaskIDs,
	}
}

type DependencyAdded struct {
	domain.BaseEvent
	DependsOnTaskID uuid.UUID `json:"depends_on_task_id"`
}

func NewDependencyAdded(taskID, dependsOn uuid.UUID, at time.Time) *DependencyAdded {
	return &DependencyAdded{
		BaseEvent:       domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDependencyAdded, at),
		DependsOnTaskID: dependsOn,
	}
}
