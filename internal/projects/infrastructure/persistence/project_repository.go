package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/projects/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const projectColumns = `id, user_id, area_id, name, description, deadline_at, status, created_at, updated_at`

// ProjectRepository implements domain.Repository.
type ProjectRepository struct {
	conn database.Connection
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(conn database.Connection) *ProjectRepository {
	return &ProjectRepository{conn: conn}
}

func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) error {
	d := r.conn.Driver()
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			area_id = excluded.area_id,
			name = excluded.name,
			description = excluded.description,
			deadline_at = excluded.deadline_at,
			status = excluded.status,
			updated_at = excluded.updated_at`),
		p.ID().String(), p.UserID().String(), p.AreaID().String(), p.Name(),
		database.NullStringArg(p.Description()), database.NullTimeArg(d, p.DeadlineAt()),
		string(p.Status()), database.TimeArg(d, p.CreatedAt()), database.TimeArg(d, p.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(r.conn.Driver(),
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND user_id = ?`), id.String(), userID.String())
	p, err := scanProject(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrProjectNotFound
	}
	return p, err
}

func (r *ProjectRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]*domain.Project, error) {
	status := filter.Status
	if status == "" {
		status = domain.StatusActive
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? AND status = ?`
	args := []any{userID.String(), string(status)}
	if filter.AreaID != nil {
		query += ` AND area_id = ?`
		args = append(args, filter.AreaID.String())
	}
	query += ` ORDER BY name`

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, database.Rebind(r.conn.Driver(), query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(row database.Row) (*domain.Project, error) {
	var (
		id, userID, areaID, name, status string
		description                      sql.NullString
		deadline, createdAt, updatedAt   database.NullTime
	)
	if err := row.Scan(&id, &userID, &areaID, &name, &description, &deadline, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	s := domain.Snapshot{
		Name:        name,
		Description: description.String,
		DeadlineAt:  deadline.Ptr(),
		Status:      domain.Status(status),
		CreatedAt:   createdAt.Time,
		UpdatedAt:   updatedAt.Time,
	}
	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid project id: %w", err)
	}
	if s.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	if s.AreaID, err = uuid.Parse(areaID); err != nil {
		return nil, fmt.Errorf("invalid area_id: %w", err)
	}
	return domain.Rehydrate(s), nil
}
