// Package task holds the Task aggregate: the unit of work that gets scored
// and planned.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrAreaRequired        = errors.New("task area is required")
	ErrInvalidStatus       = errors.New("invalid task status")
	ErrInvalidEnergy       = errors.New("invalid energy level")
	ErrInvalidEffort       = errors.New("effort must be positive")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrSnoozeRequired      = errors.New("snooze time is required")
	ErrSelfDependency      = errors.New("task cannot depend on itself")
	ErrSubtasksRequired    = errors.New("at least one subtask is required")
)

// Status is the task lifecycle state.
type Status string

const (
	StatusNext       Status = "NEXT"
	StatusInProgress Status = "IN_PROGRESS"
	StatusWaiting    Status = "WAITING"
	StatusSomeday    Status = "SOMEDAY"
	StatusDone       Status = "DONE"
)

// ActionableStatuses are the statuses recompute considers.
var ActionableStatuses = []Status{StatusNext, StatusInProgress}

// ParseStatus validates a status name.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusNext, StatusInProgress, StatusWaiting, StatusSomeday, StatusDone:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Energy is the energy a task demands.
type Energy string

const (
	EnergyLow  Energy = "LOW"
	EnergyMed  Energy = "MED"
	EnergyHigh Energy = "HIGH"
)

// ParseEnergy validates an energy level.
func ParseEnergy(s string) (Energy, error) {
	switch e := Energy(strings.ToUpper(strings.TrimSpace(s))); e {
	case EnergyLow, EnergyMed, EnergyHigh:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEnergy, s)
}

// Ratings are the four 0..5 judgement inputs to scoring.
type Ratings struct {
	Impact         int
	Urgency        int
	StrategicValue int
	RiskOfDelay    int
}

// DefaultRatings are applied to new tasks.
func DefaultRatings() Ratings {
	return Ratings{Impact: 3, Urgency: 3}
}

// Clamp bounds every rating to [0,5].
func (r Ratings) Clamp() Ratings {
	return Ratings{
		Impact:         clampRating(r.Impact),
		Urgency:        clampRating(r.Urgency),
		StrategicValue: clampRating(r.StrategicValue),
		RiskOfDelay:    clampRating(r.RiskOfDelay),
	}
}

func clampRating(v int) int {
	return min(max(v, 0), 5)
}

// Task is a unit of work owned by one user.
type Task struct {
	domain.BaseAggregateRoot
	userID        uuid.UUID
	areaID        uuid.UUID
	projectID     *uuid.UUID
	parentTaskID  *uuid.UUID
	title         string
	description   string
	status        Status
	effortMinutes *int
	energy        Energy
	deadlineAt    *time.Time
	snoozedUntil  *time.Time
	ratings       Ratings
	isBlocker     bool
	lastTouchedAt *time.Time
	completedAt   *time.Time
}

// NewTask creates a NEXT task with default ratings and MED energy.
func NewTask(userID, areaID uuid.UUID, title string, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if areaID == uuid.Nil {
		return nil, ErrAreaRequired
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(now),
		userID:            userID,
		areaID:            areaID,
		title:             title,
		status:            StatusNext,
		energy:            EnergyMed,
		ratings:           DefaultRatings(),
	}
	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title, now))
	return t, nil
}

func (t *Task) UserID() uuid.UUID         { return t.userID }
func (t *Task) AreaID() uuid.UUID         { return t.areaID }
func (t *Task) ProjectID() *uuid.UUID     { return t.projectID }
func (t *Task) ParentTaskID() *uuid.UUID  { return t.parentTaskID }
func (t *Task) Title() string             { return t.title }
func (t *Task) Description() string       { return t.description }
func (t *Task) Status() Status            { return t.status }
func (t *Task) EffortMinutes() *int       { return t.effortMinutes }
func (t *Task) Energy() Energy            { return t.energy }
func (t *Task) DeadlineAt() *time.Time    { return t.deadlineAt }
func (t *Task) SnoozedUntil() *time.Time  { return t.snoozedUntil }
func (t *Task) Ratings() Ratings          { return t.ratings }
func (t *Task) IsBlocker() bool           { return t.isBlocker }
func (t *Task) LastTouchedAt() *time.Time { return t.lastTouchedAt }
func (t *Task) CompletedAt() *time.Time   { return t.completedAt }
func (t *Task) IsCompleted() bool         { return t.status == StatusDone }

func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	return nil
}

func (t *Task) SetDescription(description string) {
	t.description = strings.TrimSpace(description)
}

func (t *Task) SetStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Task) SetArea(areaID uuid.UUID) error {
	if areaID == uuid.Nil {
		return ErrAreaRequired
	}
	t.areaID = areaID
	return nil
}

func (t *Task) SetProject(projectID *uuid.UUID) { t.projectID = projectID }

func (t *Task) SetParent(parentID *uuid.UUID) { t.parentTaskID = parentID }

// SetEffort sets the estimate in minutes; nil clears it.
func (t *Task) SetEffort(minutes *int) error {
	if minutes != nil && *minutes <= 0 {
		return ErrInvalidEffort
	}
	t.effortMinutes = minutes
	return nil
}

func (t *Task) SetEnergy(energy Energy) error {
	if _, err := ParseEnergy(string(energy)); err != nil {
		return err
	}
	t.energy = energy
	return nil
}

func (t *Task) SetDeadline(deadline *time.Time) { t.deadlineAt = utcPtr(deadline) }

func (t *Task) SetRatings(r Ratings) { t.ratings = r.Clamp() }

func (t *Task) SetBlocker(blocker bool) { t.isBlocker = blocker }

// MarkUpdated records an edit of fields at now.
func (t *Task) MarkUpdated(fields []string, now time.Time) {
	now = now.UTC()
	t.lastTouchedAt = &now
	t.Touch(now)
	t.AddDomainEvent(NewTaskUpdated(t.ID(), fields, now))
}

// Complete moves the task to DONE.
func (t *Task) Complete(now time.Time) error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	now = now.UTC()
	t.status = StatusDone
	t.completedAt = &now
	t.lastTouchedAt = &now
	t.Touch(now)
	t.AddDomainEvent(NewTaskCompleted(t.ID(), now))
	return nil
}

// Snooze hides the task from scoring until the given instant.
func (t *Task) Snooze(until, now time.Time) error {
	if until.IsZero() {
		return ErrSnoozeRequired
	}
	until = until.UTC()
	t.snoozedUntil = &until
	t.Touch(now)
	t.AddDomainEvent(NewTaskSnoozed(t.ID(), until, now))
	return nil
}

// Subtask describes one piece of a split.
type Subtask struct {
	Title         string
	EffortMinutes *int
	Energy        Energy
}

// Split creates NEXT subtasks that inherit area, project, energy and the
// impact/urgency ratings of t.
func (t *Task) Split(parts []Subtask, now time.Time) ([]*Task, error) {
	if len(parts) == 0 {
		return nil, ErrSubtasksRequired
	}

	children := make([]*Task, 0, len(parts))
	for _, part := range parts {
		child, err := NewTask(t.userID, t.areaID, part.Title, now)
		if err != nil {
			return nil, err
		}
		parentID := t.ID()
		child.parentTaskID = &parentID
		child.projectID = t.projectID
		child.ratings = Ratings{Impact: t.ratings.Impact, Urgency: t.ratings.Urgency}
		child.energy = t.energy
		if part.Energy != "" {
			if err := child.SetEnergy(part.Energy); err != nil {
				return nil, err
			}
		}
		if err := child.SetEffort(part.EffortMinutes); err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	ids := make([]uuid.UUID, len(children))
	for i, c := range children {
		ids[i] = c.ID()
	}
	t.AddDomainEvent(NewTaskSplit(t.ID(), ids, now))
	return children, nil
}

// DependOn records that t waits on prerequisite.
func (t *Task) DependOn(prerequisite *Task, now time.Time) error {
	if prerequisite.ID() == t.ID() {
		return ErrSelfDependency
	}
	if prerequisite.userID != t.userID {
		return ErrTaskNotFound
	}
	t.AddDomainEvent(NewDependencyAdded(t.ID(), prerequisite.ID(), now))
	return nil
}

// Snapshot is the persisted form of a Task.
type Snapshot struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AreaID        uuid.UUID
	ProjectID     *uuid.UUID
	ParentTaskID  *uuid.UUID
	Title         string
	Description   string
	Status        Status
	EffortMinutes *int
	Energy        Energy
	DeadlineAt    *time.Time
	SnoozedUntil  *time.Time
	Ratings       Ratings
	IsBlocker     bool
	LastTouchedAt *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot exports the task state.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:            t.ID(),
		UserID:        t.userID,
		AreaID:        t.areaID,
		ProjectID:     t.projectID,
		ParentTaskID:  t.parentTaskID,
		Title:         t.title,
		Description:   t.description,
		Status:        t.status,
		EffortMinutes: t.effortMinutes,
		Energy:        t.energy,
		DeadlineAt:    t.deadlineAt,
		SnoozedUntil:  t.snoozedUntil,
		Ratings:       t.ratings,
		IsBlocker:     t.isBlocker,
		LastTouchedAt: t.lastTouchedAt,
		CompletedAt:   t.completedAt,
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

// Rehydrate rebuilds a Task from persisted state without raising events.
func Rehydrate(s Snapshot) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(
			domain.RehydrateBaseEntity(s.ID, s.CreatedAt, s.UpdatedAt),
		),
		userID:        s.UserID,
		areaID:        s.AreaID,
		projectID:     s.ProjectID,
		parentTaskID:  s.ParentTaskID,
		title:         s.Title,
		description:   s.Description,
		status:        s.Status,
		effortMinutes: s.EffortMinutes,
		energy:        s.Energy,
		deadlineAt:    utcPtr(s.DeadlineAt),
		snoozedUntil:  utcPtr(s.SnoozedUntil),
		ratings:       s.Ratings,
		isBlocker:     s.IsBlocker,
		lastTouchedAt: utcPtr(s.LastTouchedAt),
		completedAt:   utcPtr(s.CompletedAt),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
