package commission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/commission"
	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

func TestCostMultiplier_FighterAlwaysFullCost(t *testing.T) {
	cfg := config.ConstructionConfig{SpaceportCostMultiplier: 2.0, ShipyardCostMultiplier: 1.0, FighterCostMultiplier: 1.0}
	got := commission.CostMultiplier(cfg, config.FacilitySpaceport, true)
	assert.Equal(t, 1.0, got)
}

func TestCostMultiplier_SpaceportDoublesNonFighterCost(t *testing.T) {
	cfg := config.ConstructionConfig{SpaceportCostMultiplier: 2.0, ShipyardCostMultiplier: 1.0, FighterCostMultiplier: 1.0}
	got := commission.CostMultiplier(cfg, config.FacilitySpaceport, false)
	assert.Equal(t, 2.0, got)
}

func TestSubmitBuildOrder_RejectsInsufficientFunds(t *testing.T) {
	cfg := config.Default()
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 0})
	sys := s.AddSystem(state.System{})
	cid := s.AddColony(state.Colony{Owner: h, System: sys})
	fid := s.AddFacility(state.Facility{Colony: cid, Kind: state.FacilityKindNeoria, Class: string(config.FacilityShipyard)})

	_, err := commission.SubmitBuildOrder(cfg, s, h, cid, fid, string(config.ShipScout), true, 0, 100, 10)
	assert.Error(t, err)
}

func TestSubmitBuildOrder_DebitsTreasuryOnSuccess(t *testing.T) {
	cfg := config.Default()
	cfg.Facilities[config.FacilityShipyard] = config.FacilitySpec{Class: config.FacilityShipyard, Docks: 10}
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 1000})
	sys := s.AddSystem(state.System{})
	cid := s.AddColony(state.Colony{Owner: h, System: sys})
	fid := s.AddFacility(state.Facility{Colony: cid, Kind: state.FacilityKindNeoria, Class: string(config.FacilityShipyard)})

	_, err := commission.SubmitBuildOrder(cfg, s, h, cid, fid, string(config.ShipScout), true, 0, 100, 10)
	require.NoError(t, err)

	house, _ := s.House(h)
	assert.Less(t, house.Treasury, int64(1000))
}

func TestCommission_DrainsPendingIntoShips(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	sys := s.AddSystem(state.System{})
	cid := s.AddColony(state.Colony{Owner: h, System: sys})
	pid := s.AddConstruction(state.ConstructionProject{Colony: cid, TargetClass: string(config.ShipScout), IsShip: true, Owner: h})

	shipIDs := commission.Commission(s, []ids.ConstructionProjectID{pid})
	assert.Len(t, shipIDs, 1)
	_, stillQueued := s.Construction(pid)
	assert.False(t, stillQueued)
}
