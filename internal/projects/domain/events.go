package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType     = "Project"
	RoutingKeyCreated = "project.created"
)

// ProjectCreated is emitted when a project is created.
type ProjectCreated struct {
	sharedDomain.BaseEvent
	Name string `json:"name"`
}

func NewProjectCreated(projectID uuid.UUID, name string, at time.Time) *ProjectCreated {
	return &ProjectCreated{
		BaseEvent: sharedDomain.NewBaseEvent(projectID, AggregateType, RoutingKeyCreated, at),
		Name:      name,
	}
}
