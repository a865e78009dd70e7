package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/focus/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const sessionColumns = `id, user_id, task_id, mode, started_at, ended_at, duration_seconds, outcome`

// SessionRepository implements domain.Repository.
type SessionRepository struct {
	conn database.Connection
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(conn database.Connection) *SessionRepository {
	return &SessionRepository{conn: conn}
}

func (r *SessionRepository) Save(ctx context.Context, s *domain.Session) error {
	d := r.conn.Driver()
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO focus_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			ended_at = excluded.ended_at,
			duration_seconds = excluded.duration_seconds,
			outcome = excluded.outcome`),
		s.ID().String(), s.UserID().String(), database.NullUUIDArg(s.TaskID()), string(s.Mode()),
		database.TimeArg(d, s.StartedAt()), database.NullTimeArg(d, s.EndedAt()),
		database.NullIntArg(s.DurationSeconds()), database.NullStringArg(s.Outcome()),
	)
	if err != nil {
		return fmt.Errorf("failed to save focus session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Session, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(r.conn.Driver(),
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE id = ? AND user_id = ?`), id.String(), userID.String())
	s, err := scanSession(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrSessionNotFound
	}
	return s, err
}

func (r *SessionRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(r.conn.Driver(),
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE user_id = ? ORDER BY started_at DESC LIMIT ?`),
		userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row database.Row) (*domain.Session, error) {
	var (
		id, userID, mode string
		taskID, outcome  sql.NullString
		startedAt        database.NullTime
		endedAt          database.NullTime
		duration         sql.NullInt64
	)
	if err := row.Scan(&id, &userID, &taskID, &mode, &startedAt, &endedAt, &duration, &outcome); err != nil {
		return nil, err
	}

	s := domain.Snapshot{
		Mode:            domain.Mode(mode),
		StartedAt:       startedAt.Time,
		EndedAt:         endedAt.Ptr(),
		DurationSeconds: database.IntPtr(duration),
		Outcome:         outcome.String,
	}
	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid focus session id: %w", err)
	}
	if s.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	if s.TaskID, err = database.ParseNullUUID(taskID); err != nil {
		return nil, fmt.Errorf("invalid task_id: %w", err)
	}
	return domain.Rehydrate(s), nil
}
