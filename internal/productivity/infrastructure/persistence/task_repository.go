// Package persistence stores tasks and areas through the shared SQL layer.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const taskColumns = `id, user_id, area_id, project_id, parent_task_id, title, description, status,
	effort_minutes, energy_required, deadline_at, snoozed_until, impact, urgency,
	strategic_value, risk_of_delay, is_blocker, last_touched_at, completed_at, created_at, updated_at`

const defaultListLimit = 100

// TaskRepository implements task.Repository for both drivers.
type TaskRepository struct {
	conn database.Connection
}

// NewTaskRepository creates a task repository.
func NewTaskRepository(conn database.Connection) *TaskRepository {
	return &TaskRepository{conn: conn}
}

func (r *TaskRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *TaskRepository) q(query string) string {
	return database.Rebind(r.conn.Driver(), query)
}

// Save inserts or updates the task.
func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	d := r.conn.Driver()
	s := t.Snapshot()

	_, err := r.exec(ctx).Exec(ctx, r.q(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			area_id = excluded.area_id,
			project_id = excluded.project_id,
			parent_task_id = excluded.parent_task_id,
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			effort_minutes = excluded.effort_minutes,
			energy_required = excluded.energy_required,
			deadline_at = excluded.deadline_at,
			snoozed_until = excluded.snoozed_until,
			impact = excluded.impact,
			urgency = excluded.urgency,
			strategic_value = excluded.strategic_value,
			risk_of_delay = excluded.risk_of_delay,
			is_blocker = excluded.is_blocker,
			last_touched_at = excluded.last_touched_at,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at`),
		s.ID.String(), s.UserID.String(), s.AreaID.String(),
		database.NullUUIDArg(s.ProjectID), database.NullUUIDArg(s.ParentTaskID),
		s.Title, database.NullStringArg(s.Description), string(s.Status),
		database.NullIntArg(s.EffortMinutes), string(s.Energy),
		database.NullTimeArg(d, s.DeadlineAt), database.NullTimeArg(d, s.SnoozedUntil),
		s.Ratings.Impact, s.Ratings.Urgency, s.Ratings.StrategicValue, s.Ratings.RiskOfDelay,
		s.IsBlocker,
		database.NullTimeArg(d, s.LastTouchedAt), database.NullTimeArg(d, s.CompletedAt),
		database.TimeArg(d, s.CreatedAt), database.TimeArg(d, s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID returns task.ErrTaskNotFound when the task is missing or owned
// by another user.
func (r *TaskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*task.Task, error) {
	row := r.exec(ctx).QueryRow(ctx, r.q(`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`),
		id.String(), userID.String())
	t, err := scanTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, userID uuid.UUID, filter task.ListFilter) ([]*task.Task, error) {
	where := []string{"user_id = ?"}
	args := []any{userID.String()}

	if len(filter.Statuses) > 0 {
		clause, clauseArgs := database.InClause(r.conn.Driver(), "status", statusStrings(filter.Statuses))
		where = append(where, clause)
		args = append(args, clauseArgs...)
	} else {
		where = append(where, "status <> ?")
		args = append(args, string(task.StatusDone))
	}
	if filter.AreaID != nil {
		where = append(where, "area_id = ?")
		args = append(args, filter.AreaID.String())
	}
	if filter.ProjectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, filter.ProjectID.String())
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)

	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+strings.Join(where, " AND ")+
		` ORDER BY created_at DESC, id LIMIT ?`, args...)
}

func (r *TaskRepository) FindActionable(ctx context.Context, userID uuid.UUID, areaID, projectID *uuid.UUID) ([]*task.Task, error) {
	clause, clauseArgs := database.InClause(r.conn.Driver(), "status", statusStrings(task.ActionableStatuses))
	where := []string{"user_id = ?", clause}
	args := append([]any{userID.String()}, clauseArgs...)

	if areaID != nil {
		where = append(where, "area_id = ?")
		args = append(args, areaID.String())
	}
	if projectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, projectID.String())
	}

	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+strings.Join(where, " AND ")+
		` ORDER BY created_at ASC, id`, args...)
}

func (r *TaskRepository) AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID, at time.Time) error {
	_, err := r.exec(ctx).Exec(ctx, r.q(`
		INSERT INTO task_dependencies (task_id, depends_on_task_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (task_id, depends_on_task_id) DO NOTHING`),
		taskID.String(), dependsOnID.String(), database.TimeArg(r.conn.Driver(), at))
	if err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}
	return nil
}

func (r *TaskRepository) UnresolvedDependencies(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.exec(ctx).Query(ctx, r.q(`
		SELECT DISTINCT d.task_id
		FROM task_dependencies d
		JOIN tasks t ON t.id = d.task_id
		JOIN tasks p ON p.id = d.depends_on_task_id
		WHERE t.user_id = ? AND p.status <> ?`),
		userID.String(), string(task.StatusDone))
	if err != nil {
		return nil, fmt.Errorf("failed to query dependencies: %w", err)
	}
	defer rows.Close()

	blocked := make(map[uuid.UUID]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid task_id: %w", err)
		}
		blocked[id] = true
	}
	return blocked, rows.Err()
}

func (r *TaskRepository) LastChangedAt(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	var latest database.NullTime
	err := r.exec(ctx).QueryRow(ctx, r.q(`
		SELECT MAX(changed_at) FROM (
			SELECT updated_at AS changed_at FROM tasks WHERE user_id = ?
			UNION ALL
			SELECT d.created_at FROM task_dependencies d JOIN tasks t ON t.id = d.task_id WHERE t.user_id = ?
		) changes`), userID.String(), userID.String()).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last task change: %w", err)
	}
	return latest.Time, nil
}

func (r *TaskRepository) query(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := r.exec(ctx).Query(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row database.Row) (*task.Task, error) {
	var (
		id, userID, areaID, title, status, energy string
		projectID, parentID, description          sql.NullString
		effort                                    sql.NullInt64
		deadline, snoozed, touched, completed     database.NullTime
		createdAt, updatedAt                      database.NullTime
		ratings                                   task.Ratings
		isBlocker                                 bool
	)
	if err := row.Scan(
		&id, &userID, &areaID, &projectID, &parentID, &title, &description, &status,
		&effort, &energy, &deadline, &snoozed,
		&ratings.Impact, &ratings.Urgency, &ratings.StrategicValue, &ratings.RiskOfDelay,
		&isBlocker, &touched, &completed, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	s := task.Snapshot{
		Title:         title,
		Description:   description.String,
		Status:        task.Status(status),
		EffortMinutes: database.IntPtr(effort),
		Energy:        task.Energy(energy),
		DeadlineAt:    deadline.Ptr(),
		SnoozedUntil:  snoozed.Ptr(),
		Ratings:       ratings,
		IsBlocker:     isBlocker,
		LastTouchedAt: touched.Ptr(),
		CompletedAt:   completed.Ptr(),
		CreatedAt:     createdAt.Time,
		UpdatedAt:     updatedAt.Time,
	}

	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	if s.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	if s.AreaID, err = uuid.Parse(areaID); err != nil {
		return nil, fmt.Errorf("invalid area_id: %w", err)
	}
	if s.ProjectID, err = database.ParseNullUUID(projectID); err != nil {
		return nil, err
	}
	if s.ParentTaskID, err = database.ParseNullUUID(parentID); err != nil {
		return nil, err
	}
	return task.Rehydrate(s), nil
}

func statusStrings(statuses []task.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
