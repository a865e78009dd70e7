package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestNewItem(t *testing.T) {
	userID := uuid.New()

	item, err := NewItem(userID, "  call the plumber ", "", now)
	require.NoError(t, err)

	assert.Equal(t, "call the plumber", item.RawText())
	assert.Equal(t, SourceManual, item.Source())
	assert.Equal(t, StatusUnprocessed, item.Status())
	assert.Equal(t, now, item.CapturedAt())
	require.Len(t, item.DomainEvents(), 1)
	assert.Equal(t, RoutingKeyCaptured, item.DomainEvents()[0].RoutingKey())

	_, err = NewItem(userID, "   ", SourceCLI, now)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestItem_Triage(t *testing.T) {
	item, err := NewItem(uuid.New(), "write the launch post", SourceCLI, now)
	require.NoError(t, err)
	item.ClearDomainEvents()

	taskID := uuid.New()
	later := now.Add(time.Hour)
	require.NoError(t, item.Triage(TriageTask, &taskID, nil, later))

	assert.Equal(t, StatusTriaged, item.Status())
	assert.Equal(t, &taskID, item.TriagedTaskID())
	assert.Nil(t, item.TriagedProjectID())
	assert.Equal(t, later, item.UpdatedAt())

	require.Len(t, item.DomainEvents(), 1)
	event, ok := item.DomainEvents()[0].(*ItemTriaged)
	require.True(t, ok)
	assert.Equal(t, TriageTask, event.Type)

	assert.ErrorIs(t, item.Triage(TriageNote, nil, nil, later), ErrAlreadyTriaged)
}

func TestParseTriageType(t *testing.T) {
	for _, in := range []string{"task", "PROJECT", " note ", "Someday"} {
		_, err := ParseTriageType(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseTriageType("habit")
	assert.ErrorIs(t, err, ErrInvalidTriageType)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusUnprocessed, st)

	st, err = ParseStatus("triaged")
	require.NoError(t, err)
	assert.Equal(t, StatusTriaged, st)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
