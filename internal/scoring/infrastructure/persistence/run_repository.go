package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// RunRepository implements domain.RunRepository.
type RunRepository struct {
	conn database.Connection
}

func NewRunRepository(conn database.Connection) *RunRepository {
	return &RunRepository{conn: conn}
}

func (r *RunRepository) Save(ctx context.Context, run domain.Run) error {
	components, err := domain.EncodeComponents(run.Components)
	if err != nil {
		return fmt.Errorf("failed to encode components: %w", err)
	}
	runContext, err := domain.EncodeRunContext(run.Context)
	if err != nil {
		return fmt.Errorf("failed to encode run context: %w", err)
	}

	d := r.conn.Driver()
	_, err = database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO scoring_runs (id, user_id, task_id, priority_score, components_json, explanation, context_json, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		run.ID.String(), run.UserID.String(), run.TaskID.String(), run.PriorityScore,
		components, run.Explanation, runContext, database.TimeArg(d, run.ScoredAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save scoring run: %w", err)
	}
	return nil
}

func (r *RunRepository) ListByTask(ctx context.Context, userID, taskID uuid.UUID, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(r.conn.Driver(),
		`SELECT id, user_id, task_id, priority_score, components_json, explanation, context_json, scored_at
		 FROM scoring_runs WHERE user_id = ? AND task_id = ?
		 ORDER BY scored_at DESC LIMIT ?`), userID.String(), taskID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scoring runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListRecent keeps one row per task: the run whose scored_at equals the
// task's latest. Runs of tasks that are no longer actionable are skipped.
func (r *RunRepository) ListRecent(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.RecentScore, error) {
	d := r.conn.Driver()
	statuses := make([]string, len(task.ActionableStatuses))
	for i, st := range task.ActionableStatuses {
		statuses[i] = string(st)
	}
	clause, clauseArgs := database.InClause(d, "t.status", statuses)

	args := append([]any{userID.String(), database.TimeArg(d, since)}, clauseArgs...)
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(d, `
		SELECT r.task_id, r.priority_score, r.explanation, r.scored_at,
		       t.title, t.area_id, a.name, a.color, t.effort_minutes, t.energy_required, t.status, t.deadline_at
		FROM scoring_runs r
		JOIN tasks t ON t.id = r.task_id
		LEFT JOIN areas a ON a.id = t.area_id
		WHERE r.user_id = ? AND r.scored_at >= ? AND `+clause+`
		  AND r.scored_at = (SELECT MAX(latest.scored_at) FROM scoring_runs latest WHERE latest.task_id = r.task_id)
		ORDER BY r.priority_score DESC, t.created_at ASC, r.id ASC`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent scoring runs: %w", err)
	}
	defer rows.Close()

	var scores []domain.RecentScore
	seen := make(map[uuid.UUID]bool)
	for rows.Next() {
		score, err := scanRecentScore(rows)
		if err != nil {
			return nil, err
		}
		if seen[score.ID] {
			continue
		}
		seen[score.ID] = true
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func scanRecentScore(row database.Row) (domain.RecentScore, error) {
	var (
		taskID, explanation, title, areaID, energy, status string
		areaName, areaColor                                sql.NullString
		score                                              int
		effort                                             sql.NullInt64
		scoredAt, deadline                                 database.NullTime
	)
	if err := row.Scan(&taskID, &score, &explanation, &scoredAt,
		&title, &areaID, &areaName, &areaColor, &effort, &energy, &status, &deadline); err != nil {
		return domain.RecentScore{}, err
	}

	recent := domain.RecentScore{
		ScoredTask: domain.ScoredTask{
			Title:         title,
			AreaName:      areaName.String,
			AreaColor:     areaColor.String,
			PriorityScore: score,
			Explanation:   explanation,
			EffortMinutes: database.IntPtr(effort),
			Energy:        energy,
			Status:        status,
			DeadlineAt:    deadline.Ptr(),
		},
		ScoredAt: scoredAt.Time,
	}
	var err error
	if recent.ID, err = uuid.Parse(taskID); err != nil {
		return domain.RecentScore{}, fmt.Errorf("invalid task_id: %w", err)
	}
	if recent.AreaID, err = uuid.Parse(areaID); err != nil {
		return domain.RecentScore{}, fmt.Errorf("invalid area_id: %w", err)
	}
	return recent, nil
}

func scanRun(row database.Row) (domain.Run, error) {
	var (
		id, userID, taskID, components, explanation, runContext string
		score                                                   int
		scoredAt                                                database.NullTime
	)
	if err := row.Scan(&id, &userID, &taskID, &score, &components, &explanation, &runContext, &scoredAt); err != nil {
		return domain.Run{}, err
	}

	run := domain.Run{PriorityScore: score, Explanation: explanation, ScoredAt: scoredAt.Time}
	var err error
	if run.ID, err = uuid.Parse(id); err != nil {
		return domain.Run{}, fmt.Errorf("invalid run id: %w", err)
	}
	if run.UserID, err = uuid.Parse(userID); err != nil {
		return domain.Run{}, fmt.Errorf("invalid user_id: %w", err)
	}
	if run.TaskID, err = uuid.Parse(taskID); err != nil {
		return domain.Run{}, fmt.Errorf("invalid task_id: %w", err)
	}
	if run.Components, err = domain.DecodeComponents(components); err != nil {
		return domain.Run{}, err
	}
	if run.Context, err = domain.DecodeRunContext(runContext); err != nil {
		return domain.Run{}, err
	}
	return run, nil
}
