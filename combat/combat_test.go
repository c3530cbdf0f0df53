package combat_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/combat"
	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

func buildSquadron(s *state.State, owner ids.HouseID, fleet ids.FleetID, as, ds int) ids.SquadronID {
	shipID := s.AddShip(state.Ship{Owner: owner, Class: "Cruiser", AS: as, DS: ds})
	sqID := s.AddSquadron(state.Squadron{Owner: owner, Fleet: fleet, Flagship: shipID, Type: state.SquadronCombat})
	ship, _ := s.Ship(shipID)
	ship.Squadron = sqID
	s.UpdateShip(ship)
	return sqID
}

func TestResolve_SingleSideIsImmediateStalemate(t *testing.T) {
	s := state.New()
	cfg := config.Default().Combat
	sys := s.AddSystem(state.System{})
	h1 := s.AddHouse(state.House{})
	fleet := s.AddFleet(state.Fleet{Owner: h1, Location: sys})
	sq := buildSquadron(s, h1, fleet, 10, 10)

	rng := rand.New(rand.NewSource(1))
	report := combat.Resolve(s, cfg, rng, sys, 1, map[ids.HouseID][]ids.SquadronID{h1: {sq}})
	assert.True(t, report.WasStalemate)
}

func TestResolve_OverwhelmingForceWins(t *testing.T) {
	s := state.New()
	cfg := config.Default().Combat
	sys := s.AddSystem(state.System{})
	h1 := s.AddHouse(state.House{})
	h2 := s.AddHouse(state.House{})
	f1 := s.AddFleet(state.Fleet{Owner: h1, Location: sys})
	f2 := s.AddFleet(state.Fleet{Owner: h2, Location: sys})

	var strong []ids.SquadronID
	for i := 0; i < 10; i++ {
		strong = append(strong, buildSquadron(s, h1, f1, 50, 50))
	}
	weak := buildSquadron(s, h2, f2, 1, 1)

	rng := rand.New(rand.NewSource(42))
	report := combat.Resolve(s, cfg, rng, sys, 1, map[ids.HouseID][]ids.SquadronID{
		h1: strong,
		h2: {weak},
	})

	require.NotZero(t, report.TotalRounds)
	assert.LessOrEqual(t, report.TotalRounds, cfg.MaxRounds)
}

func TestResolve_NeverExceedsMaxRounds(t *testing.T) {
	s := state.New()
	cfg := config.Default().Combat
	cfg.MaxRounds = 20
	sys := s.AddSystem(state.System{})
	h1 := s.AddHouse(state.House{})
	h2 := s.AddHouse(state.House{})
	f1 := s.AddFleet(state.Fleet{Owner: h1, Location: sys})
	f2 := s.AddFleet(state.Fleet{Owner: h2, Location: sys})
	sq1 := buildSquadron(s, h1, f1, 1000, 1000)
	sq2 := buildSquadron(s, h2, f2, 1000, 1000)

	rng := rand.New(rand.NewSource(7))
	report := combat.Resolve(s, cfg, rng, sys, 1, map[ids.HouseID][]ids.SquadronID{
		h1: {sq1},
		h2: {sq2},
	})
	assert.LessOrEqual(t, report.TotalRounds, 20)
}
