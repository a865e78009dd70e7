// Package domain models projects: named outcomes inside an area that group tasks.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrEmptyName       = errors.New("project name cannot be empty")
	ErrAreaRequired    = errors.New("project area is required")
	ErrInvalidStatus   = errors.New("invalid project status")
)

// Status is the project lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusOnHold   Status = "ON_HOLD"
	StatusDone     Status = "DONE"
	StatusArchived Status = "ARCHIVED"
)

// ParseStatus validates a status name. Empty selects StatusActive.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case "":
		return StatusActive, nil
	case StatusActive, StatusOnHold, StatusDone, StatusArchived:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Project groups related tasks toward one outcome.
type Project struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	areaID      uuid.UUID
	name        string
	description string
	deadlineAt  *time.Time
	status      Status
}

// NewProject creates a project.
func NewProject(userID, areaID uuid.UUID, name string, status Status, now time.Time) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if areaID == uuid.Nil {
		return nil, ErrAreaRequired
	}
	if status == "" {
		status = StatusActive
	}
	p := &Project{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(now),
		userID:            userID,
		areaID:            areaID,
		name:              name,
		status:            status,
	}
	p.AddDomainEvent(NewProjectCreated(p.ID(), name, now))
	return p, nil
}

func (p *Project) UserID() uuid.UUID      { return p.userID }
func (p *Project) AreaID() uuid.UUID      { return p.areaID }
func (p *Project) Name() string           { return p.name }
func (p *Project) Description() string    { return p.description }
func (p *Project) DeadlineAt() *time.Time { return p.deadlineAt }
func (p *Project) Status() Status         { return p.status }

func (p *Project) SetDescription(description string) {
	p.description = strings.TrimSpace(description)
}

func (p *Project) SetDeadline(deadline *time.Time) {
	if deadline != nil {
		utc := deadline.UTC()
		deadline = &utc
	}
	p.deadlineAt = deadline
}

// Snapshot is the persisted form of a Project.
type Snapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AreaID      uuid.UUID
	Name        string
	Description string
	DeadlineAt  *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Rehydrate rebuilds a Project from storage.
func Rehydrate(s Snapshot) *Project {
	return &Project{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(s.ID, s.CreatedAt, s.UpdatedAt)),
		userID:      s.UserID,
		areaID:      s.AreaID,
		name:        s.Name,
		description: s.Description,
		deadlineAt:  s.DeadlineAt,
		status:      s.Status,
	}
}

// ListFilter narrows List. A nil AreaID matches every area.
type ListFilter struct {
	AreaID *uuid.UUID
	Status Status
}

// Repository persists projects.
type Repository interface {
	Save(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Project, error)
	// List orders by name.
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Project, error)
}
