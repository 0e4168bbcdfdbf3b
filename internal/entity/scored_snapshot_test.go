package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoredSnapshot_CorporateImpact(t *testing.T) {
	s := ScoredSnapshot{CorporateActions: []CorporateActionSignal{
		{Kind: ActionCashDividend, ImpactScore: 15},
		{Kind: ActionMergerAcquisition, ImpactScore: 18},
	}}
	assert.Equal(t, 33, s.CorporateImpact())

	dominant := s.DominantAction()
	require.NotNil(t, dominant)
	assert.Equal(t, ActionMergerAcquisition, dominant.Kind)
}

func TestScoredSnapshot_DominantActionEmpty(t *testing.T) {
	var s ScoredSnapshot
	assert.Nil(t, s.DominantAction())
	assert.Zero(t, s.CorporateImpact())
}
