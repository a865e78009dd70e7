package app

import (
	"github.com/felixgeelhaar/focusos/internal/activity"
	focusDomain "github.com/felixgeelhaar/focusos/internal/focus/domain"
	focusPersistence "github.com/felixgeelhaar/focusos/internal/focus/infrastructure/persistence"
	identitySettings "github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	identityPersistence "github.com/felixgeelhaar/focusos/internal/identity/infrastructure/persistence"
	inboxDomain "github.com/felixgeelhaar/focusos/internal/inbox/domain"
	inboxPersistence "github.com/felixgeelhaar/focusos/internal/inbox/persistence"
	planningDomain "github.com/felixgeelhaar/focusos/internal/planning/domain"
	planningPersistence "github.com/felixgeelhaar/focusos/internal/planning/infrastructure/persistence"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	productivityPersistence "github.com/felixgeelhaar/focusos/internal/productivity/infrastructure/persistence"
	projectsDomain "github.com/felixgeelhaar/focusos/internal/projects/domain"
	projectsPersistence "github.com/felixgeelhaar/focusos/internal/projects/infrastructure/persistence"
	scoringDomain "github.com/felixgeelhaar/focusos/internal/scoring/domain"
	scoringPersistence "github.com/felixgeelhaar/focusos/internal/scoring/infrastructure/persistence"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
)

// Repositories groups every store the handlers depend on.
type Repositories struct {
	Tasks    task.Repository
	Areas    area.Repository
	Projects projectsDomain.Repository
	Runs     scoringDomain.RunRepository
	Plans    planningDomain.Repository
	Inbox    inboxDomain.Repository
	Sessions focusDomain.Repository
	Settings identitySettings.Repository
	Activity activity.Repository
}

// RepositoryFactory creates repositories over one connection. The SQL is
// driver-agnostic, so the same repositories serve SQLite and PostgreSQL.
type RepositoryFactory struct {
	conn database.Connection
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// Driver reports the backing driver.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.conn.Driver()
}

// Build creates every repository.
func (f *RepositoryFactory) Build() *Repositories {
	return &Repositories{
		Tasks:    productivityPersistence.NewTaskRepository(f.conn),
		Areas:    productivityPersistence.NewAreaRepository(f.conn),
		Projects: projectsPersistence.NewProjectRepository(f.conn),
		Runs:     scoringPersistence.NewRunRepository(f.conn),
		Plans:    planningPersistence.NewPlanRepository(f.conn),
		Inbox:    inboxPersistence.NewInboxRepository(f.conn),
		Sessions: focusPersistence.NewSessionRepository(f.conn),
		Settings: identityPersistence.NewSettingsRepository(f.conn),
		Activity: activity.NewSQLRepository(f.conn),
	}
}
