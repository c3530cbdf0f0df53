package engine_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/engine"
	"github.com/nicoberrocal/nomarch/fleets"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/packet"
	"github.com/nicoberrocal/nomarch/state"
)

func TestResolveTurn_QuietTurnAdvancesClockAndComputesViews(t *testing.T) {
	cfg := config.Default()
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 1000, TaxRate: 0.25})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: "Average"})
	s.AddColony(state.Colony{Owner: h, System: sys, Population: 500, IU: 50, TaxRate: 0.25})
	s.Turn = 1

	cont := engine.NewContinuity()
	graph := fleets.Graph{}
	packets := map[ids.HouseID]packet.CommandPacket{}

	logger := zerolog.Nop()
	result, err := engine.ResolveTurn(context.Background(), logger, s, cfg, graph, cont, packets, s.Turn, 2001)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), s.Turn)
	assert.Contains(t, result.Views, h)
	assert.Empty(t, result.CombatReports)
}

func TestResolveTurn_SubmittedBuildOrderEnqueuesConstruction(t *testing.T) {
	cfg := config.Default()
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 1000, TaxRate: 0.25})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: "Average"})
	cid := s.AddColony(state.Colony{Owner: h, System: sys, Population: 500, IU: 50, TaxRate: 0.25})
	fid := s.AddFacility(state.Facility{Colony: cid, Kind: state.FacilityKindNeoria, Class: string(config.FacilityShipyard)})
	s.Turn = 1

	cont := engine.NewContinuity()
	graph := fleets.Graph{}
	packets := map[ids.HouseID]packet.CommandPacket{
		h: {
			HouseID: h, Turn: 1,
			BuildCommands: []packet.BuildCommand{
				{Colony: cid, Facility: fid, TargetClass: string(config.ShipScout), IsShip: true},
			},
		},
	}

	logger := zerolog.Nop()
	_, err := engine.ResolveTurn(context.Background(), logger, s, cfg, graph, cont, packets, s.Turn, 2001)
	require.NoError(t, err)

	assert.Len(t, s.ConstructionsAt(cid), 1)
}

func TestResolveTurn_ColonizeCommandFoundsColonyFromLoadedTransport(t *testing.T) {
	cfg := config.Default()
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 1000})
	home := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	target := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	fid := s.AddFleet(state.Fleet{Owner: h, Location: home})
	sqID := s.AddSquadron(state.Squadron{Owner: h, Fleet: fid})
	shipID := s.AddShip(state.Ship{
		Owner:    h,
		Squadron: sqID,
		Cargo:    state.Cargo{Kind: state.CargoColonists, Quantity: 200, Capacity: 200},
	})
	sq, _ := s.Squadron(sqID)
	sq.Flagship = shipID
	s.UpdateSquadron(sq)
	s.Turn = 1

	cont := engine.NewContinuity()
	graph := fleets.Graph{home: {{From: home, To: target, Class: fleets.LaneMajor}}}
	packets := map[ids.HouseID]packet.CommandPacket{
		h: {
			HouseID: h, Turn: 1,
			FleetCommands: map[ids.FleetID]fleets.Command{
				fid: {Type: fleets.CommandColonize, TargetSystem: target},
			},
		},
	}

	logger := zerolog.Nop()
	_, err := engine.ResolveTurn(context.Background(), logger, s, cfg, graph, cont, packets, s.Turn, 2001)
	require.NoError(t, err)

	cid, ok := s.ColonyAtSystem(target)
	require.True(t, ok)
	colony, _ := s.Colony(cid)
	assert.Equal(t, h, colony.Owner)
	assert.EqualValues(t, 200, colony.Population)
}

func TestResolveTurn_MismatchedPacketTurnIsRejectedNotFatal(t *testing.T) {
	cfg := config.Default()
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 1000})
	s.Turn = 5

	cont := engine.NewContinuity()
	graph := fleets.Graph{}
	packets := map[ids.HouseID]packet.CommandPacket{
		h: {HouseID: h, Turn: 1},
	}

	logger := zerolog.Nop()
	result, err := engine.ResolveTurn(context.Background(), logger, s, cfg, graph, cont, packets, s.Turn, 2001)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), s.Turn)

	foundRejection := false
	for _, ev := range result.Events {
		if ev.HouseID == h && ev.Description != "" {
			foundRejection = true
		}
	}
	assert.True(t, foundRejection)
}
