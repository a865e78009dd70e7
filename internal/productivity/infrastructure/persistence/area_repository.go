package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// AreaRepository implements area.Repository.
type AreaRepository struct {
	conn database.Connection
}

func NewAreaRepository(conn database.Connection) *AreaRepository {
	return &AreaRepository{conn: conn}
}

func (r *AreaRepository) Save(ctx context.Context, a *area.Area) error {
	d := r.conn.Driver()
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO areas (id, user_id, name, color, sort_order, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			sort_order = excluded.sort_order,
			status = excluded.status,
			updated_at = excluded.updated_at`),
		a.ID().String(), a.UserID().String(), a.Name(), database.NullStringArg(a.Color()),
		a.SortOrder(), string(a.Status()),
		database.TimeArg(d, a.CreatedAt()), database.TimeArg(d, a.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save area: %w", err)
	}
	return nil
}

func (r *AreaRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*area.Area, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(r.conn.Driver(),
		`SELECT id, user_id, name, color, sort_order, status, created_at, updated_at
		 FROM areas WHERE id = ? AND user_id = ?`), id.String(), userID.String())
	a, err := scanArea(row)
	if database.IsNoRows(err) {
		return nil, area.ErrAreaNotFound
	}
	return a, err
}

func (r *AreaRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]*area.Area, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(r.conn.Driver(),
		`SELECT id, user_id, name, color, sort_order, status, created_at, updated_at
		 FROM areas WHERE user_id = ? AND status = ?
		 ORDER BY sort_order, name`), userID.String(), string(area.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	var areas []*area.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func scanArea(row database.Row) (*area.Area, error) {
	var (
		id, userID, name, status string
		color                    sql.NullString
		sortOrder                int
		createdAt, updatedAt     database.NullTime
	)
	if err := row.Scan(&id, &userID, &name, &color, &sortOrder, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	areaID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid area id: %w", err)
	}
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	return area.Rehydrate(areaID, owner, name, color.String, sortOrder, area.Status(status), createdAt.Time, updatedAt.Time), nil
}
