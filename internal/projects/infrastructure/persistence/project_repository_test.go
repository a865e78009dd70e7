package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	productivity "github.com/felixgeelhaar/focusos/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/focusos/internal/projects/domain"
	"github.com/felixgeelhaar/focusos/internal/projects/infrastructure/persistence"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/dbtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := persistence.NewProjectRepository(conn)
	areas := productivity.NewAreaRepository(conn)
	userID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	work, err := area.NewArea(userID, "Work", "", 0, now)
	require.NoError(t, err)
	home, err := area.NewArea(userID, "Home", "", 1, now)
	require.NoError(t, err)
	require.NoError(t, areas.Save(ctx, work))
	require.NoError(t, areas.Save(ctx, home))

	save := func(areaID uuid.UUID, name string, status domain.Status) *domain.Project {
		p, err := domain.NewProject(userID, areaID, name, status, now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
		return p
	}
	launch := save(work.ID(), "Launch", domain.StatusActive)
	save(work.ID(), "Audit", domain.StatusActive)
	save(home.ID(), "Garden", domain.StatusActive)
	save(work.ID(), "Old", domain.StatusArchived)

	t.Run("find by id", func(t *testing.T) {
		deadline := now.Add(72 * time.Hour)
		launch.SetDescription("v2 rollout")
		launch.SetDeadline(&deadline)
		require.NoError(t, repo.Save(ctx, launch))

		found, err := repo.FindByID(ctx, userID, launch.ID())
		require.NoError(t, err)
		assert.Equal(t, "Launch", found.Name())
		assert.Equal(t, "v2 rollout", found.Description())
		require.NotNil(t, found.DeadlineAt())
		assert.True(t, found.DeadlineAt().Equal(deadline))

		_, err = repo.FindByID(ctx, uuid.New(), launch.ID())
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("list defaults to active ordered by name", func(t *testing.T) {
		projects, err := repo.List(ctx, userID, domain.ListFilter{})
		require.NoError(t, err)
		names := make([]string, len(projects))
		for i, p := range projects {
			names[i] = p.Name()
		}
		assert.Equal(t, []string{"Audit", "Garden", "Launch"}, names)
	})

	t.Run("list by area and status", func(t *testing.T) {
		areaID := work.ID()
		projects, err := repo.List(ctx, userID, domain.ListFilter{AreaID: &areaID})
		require.NoError(t, err)
		assert.Len(t, projects, 2)

		archived, err := repo.List(ctx, userID, domain.ListFilter{Status: domain.StatusArchived})
		require.NoError(t, err)
		require.Len(t, archived, 1)
		assert.Equal(t, "Old", archived[0].Name())
	})
}
