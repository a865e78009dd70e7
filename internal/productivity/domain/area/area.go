// Package area models life areas (work, health, home) that group tasks.
package area

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrAreaNotFound = errors.New("area not found")
	ErrEmptyName    = errors.New("area name cannot be empty")
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusArchived Status = "ARCHIVED"
)

// Area groups tasks and projects. A task outside the current focus area
// pays a context-switch penalty when scored.
type Area struct {
	domain.BaseEntity
	userID    uuid.UUID
	name      string
	color     string
	sortOrder int
	status    Status
}

// NewArea creates an active area.
func NewArea(userID uuid.UUID, name, color string, sortOrder int, now time.Time) (*Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Area{
		BaseEntity: domain.NewBaseEntity(now),
		userID:     userID,
		name:       name,
		color:      strings.TrimSpace(color),
		sortOrder:  sortOrder,
		status:     StatusActive,
	}, nil
}

// Rehydrate rebuilds an Area from storage.
func Rehydrate(id, userID uuid.UUID, name, color string, sortOrder int, status Status, createdAt, updatedAt time.Time) *Area {
	return &Area{
		BaseEntity: domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:     userID,
		name:       name,
		color:      color,
		sortOrder:  sortOrder,
		status:     status,
	}
}

func (a *Area) UserID() uuid.UUID { return a.userID }
func (a *Area) Name() string      { return a.name }
func (a *Area) Color() string     { return a.color }
func (a *Area) SortOrder() int    { return a.sortOrder }
func (a *Area) Status() Status    { return a.status }

// Repository persists areas.
type Repository interface {
	Save(ctx context.Context, area *Area) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Area, error)
	// ListActive orders by sort order, then name.
	ListActive(ctx context.Context, userID uuid.UUID) ([]*Area, error)
}
