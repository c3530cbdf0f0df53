package fleets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/fleets"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

func threeSystemGraph() fleets.Graph {
	return fleets.Graph{
		1: {{From: 1, To: 2, Class: fleets.LaneMajor}},
		2: {{From: 2, To: 1, Class: fleets.LaneMajor}, {From: 2, To: 3, Class: fleets.LaneMinor}},
		3: {{From: 3, To: 2, Class: fleets.LaneMinor}},
	}
}

func TestReachable_MultiHopPath(t *testing.T) {
	g := threeSystemGraph()
	assert.True(t, fleets.Reachable(g, 1, 3, 1))
}

func TestReachable_NoPathReturnsFalse(t *testing.T) {
	g := fleets.Graph{1: {}}
	assert.False(t, fleets.Reachable(g, 1, 99, 1))
}

func TestShortestPath_ReturnsOrderedSystems(t *testing.T) {
	g := threeSystemGraph()
	path := fleets.ShortestPath(g, 1, 3)
	assert.Equal(t, []ids.SystemID{1, 2, 3}, path)
}

func TestJumpsPerTurn_MajorLaneGrantsTwoForOwner(t *testing.T) {
	lane := fleets.Lane{Class: fleets.LaneMajor, OwnerOnly: 5}
	assert.Equal(t, 2, fleets.JumpsPerTurn(lane, 5))
	assert.Equal(t, 1, fleets.JumpsPerTurn(lane, 6))
}

func TestAllowsShip_RestrictedLaneForbidsCrippledAndTransport(t *testing.T) {
	lane := fleets.Lane{Class: fleets.LaneRestricted}
	assert.False(t, fleets.AllowsShip(lane, true, false))
	assert.False(t, fleets.AllowsShip(lane, false, true))
	assert.True(t, fleets.AllowsShip(lane, false, false))
}

func TestValidate_RejectsCommandForNonOwner(t *testing.T) {
	s := state.New()
	h1 := s.AddHouse(state.House{})
	h2 := s.AddHouse(state.House{})
	sys := s.AddSystem(state.System{})
	f := state.Fleet{Owner: h1, Location: sys}

	err := fleets.Validate(s, fleets.Graph{}, f, h2, fleets.Command{Type: fleets.CommandHold})
	assert.Error(t, err)
}

func TestValidate_RejectsNewCommandsWhenScoutLocked(t *testing.T) {
	s := state.New()
	h1 := s.AddHouse(state.House{})
	sys := s.AddSystem(state.System{})
	f := state.Fleet{Owner: h1, Location: sys, Mission: state.MissionScoutLocked}

	err := fleets.Validate(s, fleets.Graph{}, f, h1, fleets.Command{Type: fleets.CommandMove, TargetSystem: sys})
	assert.Error(t, err)
}

func TestExecute_MoveRelocatesFleetAndClearsCommandFlag(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	origin := s.AddSystem(state.System{})
	dest := s.AddSystem(state.System{})
	fid := s.AddFleet(state.Fleet{Owner: h, Location: origin, Mission: state.MissionExecuting, HasAssignedCommand: true})
	f, _ := s.Fleet(fid)

	fleets.Execute(s, f, fleets.Command{Type: fleets.CommandMove, TargetSystem: dest})

	updated, _ := s.Fleet(fid)
	assert.Equal(t, dest, updated.Location)
	assert.Equal(t, state.MissionIdle, updated.Mission)
	assert.False(t, updated.HasAssignedCommand)
}

func TestExecute_BlockadeFlagsColonyAtTargetSystem(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	attacker := s.AddHouse(state.House{})
	sys := s.AddSystem(state.System{})
	s.AddColony(state.Colony{Owner: h, System: sys})
	fid := s.AddFleet(state.Fleet{Owner: attacker, Location: sys})
	f, _ := s.Fleet(fid)

	fleets.Execute(s, f, fleets.Command{Type: fleets.CommandBlockade, TargetSystem: sys})

	cid, ok := s.ColonyAtSystem(sys)
	require.True(t, ok)
	colony, _ := s.Colony(cid)
	assert.True(t, colony.Blockaded)
	assert.Contains(t, colony.BlockadingHouses, attacker)
}

func TestExecute_ColonizeFoundsColonyFromFullyLoadedTransport(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	target := s.AddSystem(state.System{})
	fid := s.AddFleet(state.Fleet{Owner: h, Location: target})
	sqID := s.AddSquadron(state.Squadron{Owner: h, Fleet: fid})
	shipID := s.AddShip(state.Ship{
		Owner:    h,
		Squadron: sqID,
		Cargo:    state.Cargo{Kind: state.CargoColonists, Quantity: 100, Capacity: 100},
	})
	sq, _ := s.Squadron(sqID)
	sq.Flagship = shipID
	s.UpdateSquadron(sq)
	f, _ := s.Fleet(fid)

	result := fleets.Execute(s, f, fleets.Command{Type: fleets.CommandColonize, TargetSystem: target})

	require.False(t, result.Aborted)
	require.NotZero(t, result.NewColony)
	colony, ok := s.Colony(result.NewColony)
	require.True(t, ok)
	assert.Equal(t, h, colony.Owner)
	assert.Equal(t, target, colony.System)
	assert.EqualValues(t, 100, colony.Population)

	ship, _ := s.Ship(shipID)
	assert.Equal(t, state.CargoNone, ship.Cargo.Kind)
}

func TestExecute_ColonizeAbortsWithoutFullyLoadedTransport(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	target := s.AddSystem(state.System{})
	fid := s.AddFleet(state.Fleet{Owner: h, Location: target})
	f, _ := s.Fleet(fid)

	result := fleets.Execute(s, f, fleets.Command{Type: fleets.CommandColonize, TargetSystem: target})

	assert.True(t, result.Aborted)
	assert.Zero(t, result.NewColony)
}
