package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLRepository stores entries in activity_log.
type SQLRepository struct {
	conn database.Connection
}

func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{conn: conn}
}

func (r *SQLRepository) Save(ctx context.Context, e Entry) error {
	d := r.conn.Driver()
	var detail any
	if len(e.Detail) > 0 {
		detail = string(e.Detail)
	}
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO activity_log (id, user_id, entity_type, entity_id, action, detail_json, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.ID.String(), e.UserID.String(), e.EntityType, e.EntityID.String(), e.Action,
		detail, database.TimeArg(d, e.OccurredAt))
	return err
}

func (r *SQLRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(r.conn.Driver(), `
		SELECT id, entity_type, entity_id, action, detail_json, occurred_at
		FROM activity_log WHERE user_id = ?
		ORDER BY occurred_at DESC LIMIT ?`), userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id, entityID string
			e            = Entry{UserID: userID}
			detail       sql.NullString
			occurredAt   database.NullTime
		)
		if err := rows.Scan(&id, &e.EntityType, &entityID, &e.Action, &detail, &occurredAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if e.EntityID, err = uuid.Parse(entityID); err != nil {
			return nil, err
		}
		if detail.Valid {
			e.Detail = []byte(detail.String)
		}
		e.OccurredAt = occurredAt.Time
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
