package intel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/intel"
	"github.com/nicoberrocal/nomarch/state"
)

func TestMeshBonus_CapsAtConfiguredMax(t *testing.T) {
	cfg := config.EspionageConfig{MeshBonusPerExtraScout: 1, MeshBonusCap: 3}
	bonus := intel.MeshBonus(cfg, intel.ScoutMission{ScoutCount: 10})
	assert.Equal(t, 3, bonus)
}

func TestMeshBonus_SingleScoutIsZero(t *testing.T) {
	cfg := config.EspionageConfig{MeshBonusPerExtraScout: 1, MeshBonusCap: 3}
	bonus := intel.MeshBonus(cfg, intel.ScoutMission{ScoutCount: 1})
	assert.Equal(t, 0, bonus)
}

func TestComputeView_OwnedColonyIsLevelOwned(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	sys := s.AddSystem(state.System{Coord: state.HexCoord{Q: 0, R: 0}})
	s.AddColony(state.Colony{Owner: h, System: sys})

	view := intel.ComputeView(s, h, s.AllSystems(), nil)
	assert.Equal(t, intel.LevelOwned, view.Visibility[sys])
}

func TestComputeView_AdjacentSystemIsVisible(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	home := s.AddSystem(state.System{Coord: state.HexCoord{Q: 0, R: 0}})
	neighbor := s.AddSystem(state.System{Coord: state.HexCoord{Q: 1, R: 0}})
	s.AddColony(state.Colony{Owner: h, System: home})

	view := intel.ComputeView(s, h, s.AllSystems(), nil)
	assert.Equal(t, intel.LevelAdjacent, view.Visibility[neighbor])
}

func TestComputeView_FarSystemIsLevelNone(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{})
	home := s.AddSystem(state.System{Coord: state.HexCoord{Q: 0, R: 0}})
	far := s.AddSystem(state.System{Coord: state.HexCoord{Q: 10, R: 10}})
	s.AddColony(state.Colony{Owner: h, System: home})

	view := intel.ComputeView(s, h, s.AllSystems(), nil)
	assert.Equal(t, intel.LevelNone, view.Visibility[far])
}

var _ = ids.Null
