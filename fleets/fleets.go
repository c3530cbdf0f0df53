// Package fleets implements the fleet command system (spec.md §4.9): the
// twenty command types as a tagged sum, jump-lane pathfinding, lane-class
// helpers, standing orders, and command validation (ownership, mission-
// state lock, target presence, reachability). It generalizes the
// teacher's `maps.PlayerAction` (a tagged action: Type string + TargetID +
// generic Payload) into `fleets.Command`.
package fleets

import (
	"container/list"
	"sort"

	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// CommandType enumerates the twenty fleet command kinds (spec.md §4.9).
type CommandType string

const (
	CommandHold          CommandType = "Hold"
	CommandMove          CommandType = "Move"
	CommandSeekHome      CommandType = "SeekHome"
	CommandPatrol        CommandType = "Patrol"
	CommandGuardColony   CommandType = "GuardColony"
	CommandGuardStarbase CommandType = "GuardStarbase"
	CommandBlockade      CommandType = "Blockade"
	CommandBombard       CommandType = "Bombard"
	CommandInvade        CommandType = "Invade"
	CommandBlitz         CommandType = "Blitz"
	CommandColonize      CommandType = "Colonize"
	CommandScoutColony   CommandType = "ScoutColony"
	CommandScoutSystem   CommandType = "ScoutSystem"
	CommandHackStarbase  CommandType = "HackStarbase"
	CommandJoinFleet     CommandType = "JoinFleet"
	CommandRendezvous    CommandType = "Rendezvous"
	CommandSalvage       CommandType = "Salvage"
	CommandReserve       CommandType = "Reserve"
	CommandMothball      CommandType = "Mothball"
	CommandReactivate    CommandType = "Reactivate"
	CommandView          CommandType = "View"
)

// Command is one fleet order: {type, target_system?, target_fleet?,
// priority, ROE?} per spec.md §4.9.
type Command struct {
	Type         CommandType
	TargetSystem ids.SystemID // 0 if not applicable
	TargetFleet  ids.FleetID  // 0 if not applicable
	Priority     int
	ROE          int // 0-10, 0 if unset
}

// StandingOrder is a Command that persists across turns until explicitly
// cleared or suspended by a mission-state lock.
type StandingOrder struct {
	Command Command
	Active  bool
}

// LaneClass determines jump distance per turn and ship-type restrictions
// (spec.md §4.9).
type LaneClass string

const (
	LaneMajor      LaneClass = "Major"
	LaneMinor      LaneClass = "Minor"
	LaneRestricted LaneClass = "Restricted"
)

// Lane is one jump connection between two systems.
type Lane struct {
	From, To  ids.SystemID
	Class     LaneClass
	OwnerOnly ids.HouseID // 0 if unrestricted; Major lanes grant 2 jumps/turn only to this owner
}

// JumpsPerTurn returns how many jumps a traveler of house h may take along
// lane per turn.
func JumpsPerTurn(lane Lane, h ids.HouseID) int {
	switch lane.Class {
	case LaneMajor:
		if lane.OwnerOnly == 0 || lane.OwnerOnly == h {
			return 2
		}
		return 1
	default:
		return 1
	}
}

// AllowsShip reports whether a ship with the given crippled/transport flags
// may traverse lane — Restricted lanes forbid crippled and transport-role ships
// (spec.md §4.9).
func AllowsShip(lane Lane, crippled bool, isTransport bool) bool {
	if lane.Class != LaneRestricted {
		return true
	}
	return !crippled && !isTransport
}

// Graph is an adjacency list of jump lanes, keyed by origin system.
type Graph map[ids.SystemID][]Lane

// ValidationError describes why a command was rejected (spec.md §7:
// validation failures are reported per-command, never fatal).
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// Validate checks ownership, mission-state lock, target presence, and
// reachability for cmd against fleet f. Fleet composition is not checked
// (here or by the engine): a Colonize order from a fleet without colonists
// passes validation and is aborted later by Execute, and scouting orders are
// accepted from any fleet.
func Validate(s *state.State, graph Graph, f state.Fleet, owner ids.HouseID, cmd Command) error {
	if f.Owner != owner {
		return ValidationError{Reason: "fleet not owned by submitting house"}
	}
	if f.Mission == state.MissionScoutLocked && cmd.Type != CommandView {
		return ValidationError{Reason: "fleet is scout-locked and cannot accept new commands"}
	}
	if requiresTarget(cmd.Type) && cmd.TargetSystem == 0 {
		return ValidationError{Reason: "command requires a target system"}
	}
	if cmd.TargetSystem != 0 && !Reachable(graph, f.Location, cmd.TargetSystem, owner) {
		return ValidationError{Reason: "target system is not reachable by any jump-lane path"}
	}
	return nil
}

func requiresTarget(t CommandType) bool {
	switch t {
	case CommandMove, CommandPatrol, CommandGuardColony, CommandGuardStarbase,
		CommandBlockade, CommandBombard, CommandInvade, CommandBlitz, CommandColonize,
		CommandScoutColony, CommandScoutSystem, CommandHackStarbase, CommandRendezvous:
		return true
	default:
		return false
	}
}

// Reachable performs a breadth-first search over graph from `from` to `to`.
// Every lane is traversable regardless of its class or owner: h is not
// consulted, and neither JumpsPerTurn nor AllowsShip is applied. Execute
// likewise moves a fleet straight to its target system without walking a
// path.
func Reachable(graph Graph, from, to ids.SystemID, h ids.HouseID) bool {
	if from == to {
		return true
	}
	visited := map[ids.SystemID]bool{from: true}
	queue := list.New()
	queue.PushBack(from)
	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(ids.SystemID)
		lanes := append([]Lane(nil), graph[front]...)
		sort.Slice(lanes, func(i, j int) bool { return lanes[i].To < lanes[j].To })
		for _, lane := range lanes {
			if visited[lane.To] {
				continue
			}
			if lane.To == to {
				return true
			}
			visited[lane.To] = true
			queue.PushBack(lane.To)
		}
	}
	return false
}

// ShortestPath returns the sequence of systems from `from` to `to`
// (inclusive of both endpoints) via BFS, or nil if unreachable. Ties in
// queue order are broken by ascending SystemID (sorted adjacency) to keep
// path selection deterministic.
func ShortestPath(graph Graph, from, to ids.SystemID) []ids.SystemID {
	if from == to {
		return []ids.SystemID{from}
	}
	prev := map[ids.SystemID]ids.SystemID{from: from}
	queue := list.New()
	queue.PushBack(from)
	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(ids.SystemID)
		lanes := append([]Lane(nil), graph[front]...)
		sort.Slice(lanes, func(i, j int) bool { return lanes[i].To < lanes[j].To })
		for _, lane := range lanes {
			if _, seen := prev[lane.To]; seen {
				continue
			}
			prev[lane.To] = front
			if lane.To == to {
				return reconstructPath(prev, from, to)
			}
			queue.PushBack(lane.To)
		}
	}
	return nil
}

func reconstructPath(prev map[ids.SystemID]ids.SystemID, from, to ids.SystemID) []ids.SystemID {
	var path []ids.SystemID
	cur := to
	for {
		path = append([]ids.SystemID{cur}, path...)
		if cur == from {
			break
		}
		cur = prev[cur]
	}
	return path
}

// ExecuteResult reports what Execute's Maintenance-phase side effects
// produced, for the caller to turn into events.
type ExecuteResult struct {
	NewColony   ids.ColonyID // set on a successful Colonize
	Aborted     bool
	AbortReason string
}

// Execute applies cmd's mechanical side effects against fleet f during the
// Maintenance phase (spec.md §4: "execute fleet movement, update
// fleet-status side effects") — this runs once a command has already
// survived Validate during the Command phase. Combat-adjacent commands
// (Bombard, Invade, Blitz, HackStarbase) only reposition and re-flag the
// fleet here; their combat resolution happens the following turn's Conflict
// phase, once the fleet is present at its target system.
func Execute(s *state.State, f state.Fleet, cmd Command) ExecuteResult {
	switch cmd.Type {
	case CommandMove, CommandPatrol, CommandGuardColony, CommandGuardStarbase,
		CommandBlockade, CommandBombard, CommandInvade, CommandBlitz,
		CommandScoutColony, CommandScoutSystem, CommandHackStarbase, CommandRendezvous:
		f.Location = cmd.TargetSystem
		f.Mission = state.MissionIdle
		f.HasAssignedCommand = false
		s.UpdateFleet(f)
		if cmd.Type == CommandBlockade {
			applyBlockade(s, cmd.TargetSystem, f.Owner)
		}
		return ExecuteResult{}
	case CommandColonize:
		return executeColonize(s, f, cmd)
	case CommandReserve:
		f.Status = state.FleetReserve
		finishIdle(s, f)
		return ExecuteResult{}
	case CommandMothball:
		f.Status = state.FleetMothballed
		finishIdle(s, f)
		return ExecuteResult{}
	case CommandReactivate:
		f.Status = state.FleetActive
		finishIdle(s, f)
		return ExecuteResult{}
	default: // Hold, SeekHome, JoinFleet, Salvage, View
		finishIdle(s, f)
		return ExecuteResult{}
	}
}

func finishIdle(s *state.State, f state.Fleet) {
	f.Mission = state.MissionIdle
	f.HasAssignedCommand = false
	s.UpdateFleet(f)
}

func applyBlockade(s *state.State, sys ids.SystemID, owner ids.HouseID) {
	cid, ok := s.ColonyAtSystem(sys)
	if !ok {
		return
	}
	c, ok := s.Colony(cid)
	if !ok {
		return
	}
	c.Blockaded = true
	for _, h := range c.BlockadingHouses {
		if h == owner {
			s.UpdateColony(c)
			return
		}
	}
	c.BlockadingHouses = append(c.BlockadingHouses, owner)
	s.UpdateColony(c)
}

// executeColonize looks for a squadron carrying a fully-loaded colonist
// transport (ETAC) and, if found, founds a new colony at cmd.TargetSystem
// from its cargo (spec.md §8 scenario S4).
func executeColonize(s *state.State, f state.Fleet, cmd Command) ExecuteResult {
	for _, sqID := range s.SquadronsOf(f.ID) {
		sq, ok := s.Squadron(sqID)
		if !ok {
			continue
		}
		candidates := append([]ids.ShipID{sq.Flagship}, sq.OtherShips...)
		for _, shipID := range candidates {
			ship, ok := s.Ship(shipID)
			if !ok || ship.Cargo.Kind != state.CargoColonists {
				continue
			}
			if ship.Cargo.Quantity <= 0 || ship.Cargo.Quantity < ship.Cargo.Capacity {
				continue
			}
			cid := s.AddColony(state.Colony{
				Owner:      f.Owner,
				System:     cmd.TargetSystem,
				Population: int64(ship.Cargo.Quantity),
			})
			ship.Cargo = state.Cargo{}
			s.UpdateShip(ship)
			finishIdle(s, f)
			return ExecuteResult{NewColony: cid}
		}
	}
	finishIdle(s, f)
	return ExecuteResult{Aborted: true, AbortReason: "no fully loaded colonist transport in fleet"}
}
