package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeSingleThread, ParseMode(""))
	assert.Equal(t, Mode("POMODORO"), ParseMode(" pomodoro "))
}

func TestSession_Stop(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	taskID := uuid.New()

	s := StartSession(uuid.New(), &taskID, "", start)
	assert.Equal(t, ModeSingleThread, s.Mode())
	assert.True(t, s.IsActive())
	require.Len(t, s.DomainEvents(), 1)
	s.ClearDomainEvents()

	s.Stop("shipped draft", start.Add(25*time.Minute+600*time.Millisecond))
	assert.False(t, s.IsActive())
	require.NotNil(t, s.DurationSeconds())
	assert.Equal(t, 1501, *s.DurationSeconds())
	assert.Equal(t, "shipped draft", s.Outcome())
	require.Len(t, s.DomainEvents(), 1)
	assert.Equal(t, RoutingKeyStopped, s.DomainEvents()[0].RoutingKey())
	s.ClearDomainEvents()

	t.Run("second stop keeps the first duration", func(t *testing.T) {
		firstEnd := *s.EndedAt()
		s.Stop("", start.Add(2*time.Hour))
		assert.Equal(t, 1501, *s.DurationSeconds())
		assert.Equal(t, firstEnd, *s.EndedAt())
		assert.Equal(t, "shipped draft", s.Outcome())
		assert.Empty(t, s.DomainEvents())

		s.Stop("revised", start.Add(3*time.Hour))
		assert.Equal(t, "revised", s.Outcome())
		assert.Equal(t, 1501, *s.DurationSeconds())
	})

	t.Run("clock skew never goes negative", func(t *testing.T) {
		skewed := StartSession(uuid.New(), nil, ModeSingleThread, start)
		skewed.Stop("", start.Add(-time.Second))
		assert.Equal(t, 0, *skewed.DurationSeconds())
	})
}
