package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SettingsRepository stores preferences in user_settings.
type SettingsRepository struct {
	conn database.Connection
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(conn database.Connection) *SettingsRepository {
	return &SettingsRepository{conn: conn}
}

// Get returns the stored preferences for a user, or nil.
func (r *SettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*settings.Preferences, error) {
	var (
		prefs     settings.Preferences
		updatedAt database.NullTime
	)
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(r.conn.Driver(),
		`SELECT default_available_minutes, deep_work_enabled, updated_at
		 FROM user_settings WHERE user_id = ?`), userID.String()).
		Scan(&prefs.DefaultAvailableMinutes, &prefs.DeepWorkEnabled, &updatedAt)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	prefs.UpdatedAt = updatedAt.Time
	return &prefs, nil
}

// Save upserts the preferences for a user.
func (r *SettingsRepository) Save(ctx context.Context, userID uuid.UUID, prefs settings.Preferences) error {
	d := r.conn.Driver()
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(d, `
		INSERT INTO user_settings (user_id, default_available_minutes, deep_work_enabled, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			default_available_minutes = excluded.default_available_minutes,
			deep_work_enabled = excluded.deep_work_enabled,
			updated_at = excluded.updated_at`),
		userID.String(), prefs.DefaultAvailableMinutes, prefs.DeepWorkEnabled, database.TimeArg(d, prefs.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
