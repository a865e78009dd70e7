package area_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArea(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	a, err := area.NewArea(uuid.New(), "  Work ", "#3366ff", 1, now)
	require.NoError(t, err)
	assert.Equal(t, "Work", a.Name())
	assert.Equal(t, area.StatusActive, a.Status())
	assert.Equal(t, 1, a.SortOrder())

	_, err = area.NewArea(uuid.New(), " ", "", 0, now)
	assert.ErrorIs(t, err, area.ErrEmptyName)
}
