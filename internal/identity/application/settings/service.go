package settings

import (
	"context"
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// DefaultAvailableMinutes is the daily budget for users who never set one.
const DefaultAvailableMinutes = 240

var ErrInvalidAvailableMinutes = errors.New("available minutes must be positive")

// Preferences are the per-user planning defaults.
type Preferences struct {
	DefaultAvailableMinutes int       `json:"default_available_minutes"`
	DeepWorkEnabled         bool      `json:"deep_work_enabled"`
	UpdatedAt               time.Time `json:"updated_at,omitempty"`
}

// DefaultPreferences are returned until a user saves their own.
func DefaultPreferences() Preferences {
	return Preferences{DefaultAvailableMinutes: DefaultAvailableMinutes}
}

// Repository defines storage for user settings.
type Repository interface {
	// Get returns nil when the user has no stored preferences.
	Get(ctx context.Context, userID uuid.UUID) (*Preferences, error)
	Save(ctx context.Context, userID uuid.UUID, prefs Preferences) error
}

// Update is a partial change to Preferences.
type Update struct {
	DefaultAvailableMinutes *int
	DeepWorkEnabled         *bool
}

// Service manages user settings.
type Service struct {
	repo  Repository
	clock sharedDomain.Clock
}

// NewService creates a settings service.
func NewService(repo Repository, clock sharedDomain.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Get returns the user's preferences, falling back to defaults.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if prefs == nil {
		return DefaultPreferences(), nil
	}
	return *prefs, nil
}

// Update applies a partial change and returns the stored result.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, update Update) (Preferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if update.DefaultAvailableMinutes != nil {
		if *update.DefaultAvailableMinutes <= 0 {
			return Preferences{}, ErrInvalidAvailableMinutes
		}
		prefs.DefaultAvailableMinutes = *update.DefaultAvailableMinutes
	}
	if update.DeepWorkEnabled != nil {
		prefs.DeepWorkEnabled = *update.DeepWorkEnabled
	}
	prefs.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}
