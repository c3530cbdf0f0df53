package diplomacy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/diplomacy"
	"github.com/nicoberrocal/nomarch/ids"
)

func TestGet_DefaultsToNeutral(t *testing.T) {
	s := diplomacy.New()
	assert.Equal(t, diplomacy.RelationNeutral, s.Get(1, 2))
}

func TestDeclare_IsOneWayRatchet(t *testing.T) {
	s := diplomacy.New()
	s.Declare(1, 2, diplomacy.RelationEnemy)
	s.Declare(1, 2, diplomacy.RelationHostile)
	assert.Equal(t, diplomacy.RelationEnemy, s.Get(1, 2), "declaring a lower relation must not downgrade")
}

func TestDeclare_IsSymmetric(t *testing.T) {
	s := diplomacy.New()
	s.Declare(1, 2, diplomacy.RelationHostile)
	assert.Equal(t, diplomacy.RelationHostile, s.Get(2, 1))
}

func TestRecordViolation_ForceTransitionsToEnemyAndSetsWindows(t *testing.T) {
	s := diplomacy.New()
	cfg := config.Default()
	var violator, victim ids.HouseID = 1, 2

	s.RecordViolation(cfg.Diplomacy, cfg.Prestige, violator, victim, 10)

	assert.Equal(t, diplomacy.RelationEnemy, s.Get(violator, victim))
	assert.True(t, s.IsDishonored(violator, 10))
	assert.True(t, s.IsIsolated(violator, 10))
	assert.False(t, s.IsDishonored(violator, 10+uint32(cfg.Diplomacy.DishonoredTurns)))
}

func TestRecordViolation_RepeatViolationsScalePenalty(t *testing.T) {
	s := diplomacy.New()
	cfg := config.Default()
	var violator, victim ids.HouseID = 1, 2

	first := s.RecordViolation(cfg.Diplomacy, cfg.Prestige, violator, victim, 1)
	second := s.RecordViolation(cfg.Diplomacy, cfg.Prestige, violator, victim, 2)

	assert.Less(t, second, first, "a repeat violation within the window must be penalized more harshly")
}

func TestAcceptCeasefire_ReturnsToNeutral(t *testing.T) {
	s := diplomacy.New()
	s.Declare(1, 2, diplomacy.RelationEnemy)
	s.AcceptCeasefire(1, 2)
	assert.Equal(t, diplomacy.RelationNeutral, s.Get(1, 2))
}
