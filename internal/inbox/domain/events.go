package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType      = "InboxItem"
	RoutingKeyCaptured = "inbox.captured"
	RoutingKeyTriaged  = "inbox.triaged"
)

// ItemCaptured is emitted when text lands in the inbox.
type ItemCaptured struct {
	sharedDomain.BaseEvent
	Source Source `json:"source"`
}

func NewItemCaptured(itemID uuid.UUID, source Source, at time.Time) *ItemCaptured {
	return &ItemCaptured{
		BaseEvent: sharedDomain.NewBaseEvent(itemID, AggregateType, RoutingKeyCaptured, at),
		Source:    source,
	}
}

// ItemTriaged is emitted when an item is processed.
type ItemTriaged struct {
	sharedDomain.BaseEvent
	Type      TriageType `json:"type"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
}

func NewItemTriaged(itemID uuid.UUID, as TriageType, taskID, projectID *uuid.UUID, at time.Time) *ItemTriaged {
	return &ItemTriaged{
		BaseEvent: sharedDomain.NewBaseEvent(itemID, AggregateType, RoutingKeyTriaged, at),
		Type:      as,
		TaskID:    taskID,
		ProjectID: projectID,
	}
}
