// Package queries holds the task and area read handlers.
package queries

import (
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID             uuid.UUID  `json:"id"`
	AreaID         uuid.UUID  `json:"area_id"`
	ProjectID      *uuid.UUID `json:"project_id,omitempty"`
	ParentTaskID   *uuid.UUID `json:"parent_task_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	EffortMinutes  *int       `json:"effort_minutes,omitempty"`
	Energy         string     `json:"energy_required"`
	DeadlineAt     *time.Time `json:"deadline_at,omitempty"`
	SnoozedUntil   *time.Time `json:"snoozed_until,omitempty"`
	Impact         int        `json:"impact"`
	Urgency        int        `json:"urgency"`
	StrategicValue int        `json:"strategic_value"`
	RiskOfDelay    int        `json:"risk_of_delay"`
	IsBlocker      bool       `json:"is_blocker"`
	LastTouchedAt  *time.Time `json:"last_touched_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToTaskDTO converts a task.
func ToTaskDTO(t *task.Task) TaskDTO {
	r := t.Ratings()
	return TaskDTO{
		ID:             t.ID(),
		AreaID:         t.AreaID(),
		ProjectID:      t.ProjectID(),
		ParentTaskID:   t.ParentTaskID(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         string(t.Status()),
		EffortMinutes:  t.EffortMinutes(),
		Energy:         string(t.Energy()),
		DeadlineAt:     t.DeadlineAt(),
		SnoozedUntil:   t.SnoozedUntil(),
		Impact:         r.Impact,
		Urgency:        r.Urgency,
		StrategicValue: r.StrategicValue,
		RiskOfDelay:    r.RiskOfDelay,
		IsBlocker:      t.IsBlocker(),
		LastTouchedAt:  t.LastTouchedAt(),
		CompletedAt:    t.CompletedAt(),
		CreatedAt:      t.CreatedAt(),
	}
}

// AreaDTO is a data transfer object for areas.
type AreaDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	SortOrder int       `json:"sort_order"`
}
