package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponents_Versioned(t *testing.T) {
	c := domain.Components{Base: 0.44, EffortFit: 0.75, Momentum: 1, BlockedCapApplied: true}

	raw, err := domain.EncodeComponents(c)
	require.NoError(t, err)

	decoded, err := domain.DecodeComponents(raw)
	require.NoError(t, err)
	c.Version = domain.ComponentsVersion
	assert.Equal(t, c, decoded)

	_, err = domain.DecodeComponents(`{"version":2,"base":1}`)
	assert.ErrorIs(t, err, sharedDomain.ErrUnsupportedVersion)

	_, err = domain.DecodeComponents(`not json`)
	assert.Error(t, err)
}

func TestRunContext_Versioned(t *testing.T) {
	areaID := uuid.New()
	raw, err := domain.EncodeRunContext(domain.RunContext{CurrentAreaID: &areaID, DeepWork: true})
	require.NoError(t, err)

	decoded, err := domain.DecodeRunContext(raw)
	require.NoError(t, err)
	assert.Equal(t, &areaID, decoded.CurrentAreaID)
	assert.True(t, decoded.DeepWork)

	_, err = domain.DecodeRunContext(`{"deep_work":true}`)
	assert.ErrorIs(t, err, sharedDomain.ErrUnsupportedVersion)
}

func TestNewRun(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	run := domain.NewRun(uuid.New(), uuid.New(), domain.Result{PriorityScore: 69, Explanation: "69: x"}, domain.Context{Now: now, DeepWork: true})

	assert.Equal(t, 69, run.PriorityScore)
	assert.Equal(t, domain.ComponentsVersion, run.Components.Version)
	assert.Equal(t, domain.RunContextVersion, run.Context.Version)
	assert.True(t, run.Context.DeepWork)
	assert.Equal(t, now, run.ScoredAt)
}

func TestShortlist(t *testing.T) {
	var ranked []domain.ScoredTask
	for i := range 12 {
		ranked = append(ranked, domain.ScoredTask{PriorityScore: i * 5})
	}
	domain.SortByScore(ranked)

	list := domain.NewShortlist(ranked)
	require.Len(t, list.Now, 3)
	require.Len(t, list.Next, 10)
	assert.Equal(t, 55, list.Now[0].PriorityScore)
	assert.Equal(t, 10, list.Next[9].PriorityScore)

	short := domain.NewShortlist(ranked[:2])
	assert.Len(t, short.Now, 2)
	assert.Len(t, short.Next, 2)

	empty := domain.NewShortlist(nil)
	assert.NotNil(t, empty.Now)
	assert.Empty(t, empty.Next)
}
