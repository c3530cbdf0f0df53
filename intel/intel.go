// Package intel computes per-house fog-of-war visibility (spec.md §4.8):
// a per-system visibility level derived from ownership/fleet presence/scout
// activity/adjacency, the filtered entity view each level reveals, the
// mesh-network scout-merge bonus, and disinformation corruption. It
// generalizes the teacher's piecewise cloak/detection curves
// (neper-stars-houston/visibility/visibility.go) from a continuous
// cloak-percent domain to the spec's five discrete visibility levels.
package intel

import (
	"sort"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// Level is one of the five visibility tiers (spec.md §4.8), ordered from
// least (LevelNone) to most (LevelOwned) informative.
type Level int

const (
	LevelNone Level = iota
	LevelAdjacent
	LevelScouted
	LevelOccupied
	LevelOwned
)

// ScoutMission is one active or recently-active scouting effort, used to
// compute the mesh-network bonus (spec.md §4.8: "+1 ELI per additional scout
// above 1 in the same mission, capped").
type ScoutMission struct {
	System     ids.SystemID
	ScoutCount int
	StaleTurns int // turns since the scout last reported; 0 = currently present
}

// MeshBonus returns the ELI-equivalent bonus a mission's stacked scouts
// grant, capped at cfg.MeshBonusCap (Open Question decision, DESIGN.md).
func MeshBonus(cfg config.EspionageConfig, m ScoutMission) int {
	if m.ScoutCount <= 1 {
		return 0
	}
	bonus := (m.ScoutCount - 1) * cfg.MeshBonusPerExtraScout
	if bonus > cfg.MeshBonusCap {
		return cfg.MeshBonusCap
	}
	return bonus
}

// StalenessThreshold is the number of turns a scouted system's intel remains
// valid before it decays out of LevelScouted.
const StalenessThreshold = 3

// View is one house's computed visibility map for a turn: system -> level.
type View struct {
	House      ids.HouseID
	Visibility map[ids.SystemID]Level
}

func hexDistance(a, b state.HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := (-a.Q - a.R) - (-b.Q - b.R)
	return maxAbs(dq, dr, ds) / 1
}

func maxAbs(a, b, c int) int {
	m := absInt(a)
	if absInt(b) > m {
		m = absInt(b)
	}
	if absInt(c) > m {
		m = absInt(c)
	}
	return m
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ComputeView derives house h's visibility map (spec.md §4.8). systems is
// the full system catalog (engine passes s.AllSystems()); scoutMissions are
// h's active/recent scouting efforts.
func ComputeView(s *state.State, h ids.HouseID, systems []state.System, scoutMissions []ScoutMission) View {
	view := View{House: h, Visibility: map[ids.SystemID]Level{}}

	byID := map[ids.SystemID]state.System{}
	for _, sys := range systems {
		byID[sys.ID] = sys
	}

	owned := map[ids.SystemID]bool{}
	for _, cid := range s.ColoniesOwnedBy(h) {
		if c, ok := s.Colony(cid); ok {
			owned[c.System] = true
			view.Visibility[c.System] = LevelOwned
		}
	}

	occupied := map[ids.SystemID]bool{}
	for _, sys := range systems {
		for _, fid := range s.FleetsAt(sys.ID) {
			if f, ok := s.Fleet(fid); ok && f.Owner == h {
				occupied[sys.ID] = true
				if view.Visibility[sys.ID] < LevelOccupied {
					view.Visibility[sys.ID] = LevelOccupied
				}
			}
		}
	}

	scouted := map[ids.SystemID]bool{}
	for _, m := range scoutMissions {
		if m.StaleTurns <= StalenessThreshold {
			scouted[m.System] = true
			if view.Visibility[m.System] < LevelScouted {
				view.Visibility[m.System] = LevelScouted
			}
		}
	}

	for sysID := range owned {
		for _, adj := range neighborsOf(byID, sysID) {
			if view.Visibility[adj] < LevelAdjacent {
				view.Visibility[adj] = LevelAdjacent
			}
		}
	}
	for sysID := range occupied {
		for _, adj := range neighborsOf(byID, sysID) {
			if view.Visibility[adj] < LevelAdjacent {
				view.Visibility[adj] = LevelAdjacent
			}
		}
	}

	for _, sys := range systems {
		if _, ok := view.Visibility[sys.ID]; !ok {
			view.Visibility[sys.ID] = LevelNone
		}
	}

	return view
}

func neighborsOf(byID map[ids.SystemID]state.System, sysID ids.SystemID) []ids.SystemID {
	center, ok := byID[sysID]
	if !ok {
		return nil
	}
	var out []ids.SystemID
	for id, other := range byID {
		if id == sysID {
			continue
		}
		if hexDistance(center.Coord, other.Coord) == 1 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// VisibleColony reports whether h's view reveals full composition detail for
// a colony at sys (LevelOwned), partial (LevelScouted/Occupied), or nothing
// (LevelAdjacent/None) — spec.md §4.8's per-level filtering rule.
func (v View) VisibleColony(sys ids.SystemID) (level Level, fullDetail bool) {
	lvl := v.Visibility[sys]
	return lvl, lvl == LevelOwned
}

// Disinformation is a planted corruption of a house's intel about a target,
// active for DurationTurns and shifting reported values by Magnitude
// (spec.md §4.8).
type Disinformation struct {
	Target      ids.HouseID
	System      ids.SystemID
	Magnitude   float64
	ExpiresTurn uint32
}

// Active reports whether d still corrupts intel at turn.
func (d Disinformation) Active(turn uint32) bool { return turn < d.ExpiresTurn }
