package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const itemColumns = `id, user_id, raw_text, source, status, triaged_task_id, triaged_project_id, captured_at, updated_at`

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 50

// InboxRepository implements domain.Repository for SQLite and PostgreSQL.
type InboxRepository struct {
	conn database.Connection
}

// NewInboxRepository creates a new InboxRepository.
func NewInboxRepository(conn database.Connection) *InboxRepository {
	return &InboxRepository{conn: conn}
}

func (r *InboxRepository) Save(ctx context.Context, item *domain.Item) error {
	d := r.conn.Driver()
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO inbox_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			triaged_task_id = excluded.triaged_task_id,
			triaged_project_id = excluded.triaged_project_id,
			updated_at = excluded.updated_at`),
		item.ID().String(), item.UserID().String(), item.RawText(), string(item.Source()), string(item.Status()),
		database.NullUUIDArg(item.TriagedTaskID()), database.NullUUIDArg(item.TriagedProjectID()),
		database.TimeArg(d, item.CapturedAt()), database.TimeArg(d, item.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save inbox item: %w", err)
	}
	return nil
}

func (r *InboxRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Item, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(r.conn.Driver(),
		`SELECT `+itemColumns+` FROM inbox_items WHERE id = ? AND user_id = ?`), id.String(), userID.String())
	item, err := scanItem(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrItemNotFound
	}
	return item, err
}

func (r *InboxRepository) List(ctx context.Context, userID uuid.UUID, statuses []domain.Status, limit int) ([]*domain.Item, error) {
	if len(statuses) == 0 {
		statuses = []domain.Status{domain.StatusUnprocessed}
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	d := r.conn.Driver()
	clause, clauseArgs := database.InClause(d, "status", values)
	args := append([]any{userID.String()}, clauseArgs...)
	args = append(args, limit)

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(d,
		`SELECT `+itemColumns+` FROM inbox_items
		WHERE user_id = ? AND `+clause+`
		ORDER BY captured_at DESC, id
		LIMIT ?`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row database.Row) (*domain.Item, error) {
	var (
		id, userID, rawText, source, status string
		taskID, projectID                   sql.NullString
		capturedAt, updatedAt               database.NullTime
	)
	if err := row.Scan(&id, &userID, &rawText, &source, &status, &taskID, &projectID, &capturedAt, &updatedAt); err != nil {
		return nil, err
	}

	s := domain.Snapshot{
		RawText:    rawText,
		Source:     domain.Source(source),
		Status:     domain.Status(status),
		CapturedAt: capturedAt.Time,
		UpdatedAt:  updatedAt.Time,
	}
	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid inbox item id: %w", err)
	}
	if s.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	if s.TriagedTaskID, err = database.ParseNullUUID(taskID); err != nil {
		return nil, fmt.Errorf("invalid triaged_task_id: %w", err)
	}
	if s.TriagedProjectID, err = database.ParseNullUUID(projectID); err != nil {
		return nil, fmt.Errorf("invalid triaged_project_id: %w", err)
	}
	return domain.Rehydrate(s), nil
}
