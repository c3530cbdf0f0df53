package capacity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicoberrocal/nomarch/capacity"
	"github.com/nicoberrocal/nomarch/config"
)

func TestComputeLimits_FloorsAtMinimum(t *testing.T) {
	cfg := config.MilitaryConfig{
		CapitalSquadronMin: 10, CapitalSquadronIUDivisor: 100,
		TotalSquadronMin: 20, TotalSquadronIUDivisor: 50,
		MapSizeMultiplier: 1.0,
	}
	limits := capacity.ComputeLimits(cfg, 0)
	assert.Equal(t, 10, limits.CapitalSquadrons)
	assert.Equal(t, 20, limits.TotalSquadrons)
}

func TestComputeLimits_ScalesWithIU(t *testing.T) {
	cfg := config.MilitaryConfig{
		CapitalSquadronMin: 10, CapitalSquadronIUDivisor: 100,
		TotalSquadronMin: 20, TotalSquadronIUDivisor: 50,
		MapSizeMultiplier: 1.0,
	}
	limits := capacity.ComputeLimits(cfg, 2000)
	assert.Equal(t, 20, limits.CapitalSquadrons)
	assert.Equal(t, 40, limits.TotalSquadrons)
}

func TestNewOverageTracker_CountersAreWritable(t *testing.T) {
	tracker := capacity.NewOverageTracker()
	tracker.CapitalOverTurns[1] = 3
	assert.Equal(t, 3, tracker.CapitalOverTurns[1])
}
