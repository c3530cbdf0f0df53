// Package engine orchestrates one turn resolution: Conflict, Income,
// Command, Maintenance, run in that strict order against a single
// state.State (spec.md §4, §5). It is the only package that imports every
// domain package, and the only place randomness is seeded — every
// sub-package accepts an already-seeded *rand.Rand rather than touching
// math/rand's global source, so two independent runs of the same turn with
// the same (turn, game_seed) always reach byte-identical state (spec.md §8
// determinism property 1).
package engine

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nicoberrocal/nomarch/capacity"
	"github.com/nicoberrocal/nomarch/combat"
	"github.com/nicoberrocal/nomarch/commission"
	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/diplomacy"
	"github.com/nicoberrocal/nomarch/economy"
	"github.com/nicoberrocal/nomarch/espionage"
	"github.com/nicoberrocal/nomarch/events"
	"github.com/nicoberrocal/nomarch/fleets"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/intel"
	"github.com/nicoberrocal/nomarch/packet"
	"github.com/nicoberrocal/nomarch/state"
)

// Continuity bundles the cross-turn bookkeeping that outlives a single
// ResolveTurn call: squadron-capacity grace tracking, the diplomatic
// relation graph, and constructions completed last Maintenance phase that
// Unified Commissioning must drain before this turn's new builds (spec.md
// §4.5). The caller owns its lifetime — it is loaded alongside state.State
// and persisted alongside it.
type Continuity struct {
	Capacity           map[ids.HouseID]*capacity.OverageTracker
	Diplomacy          *diplomacy.State
	PendingCommissions []ids.ConstructionProjectID
}

// NewContinuity returns an empty Continuity for a fresh game.
func NewContinuity() *Continuity {
	return &Continuity{
		Capacity:  map[ids.HouseID]*capacity.OverageTracker{},
		Diplomacy: diplomacy.New(),
	}
}

func (c *Continuity) trackerFor(h ids.HouseID) *capacity.OverageTracker {
	t, ok := c.Capacity[h]
	if !ok {
		t = capacity.NewOverageTracker()
		c.Capacity[h] = t
	}
	return t
}

// Result is the persistence-boundary tuple ResolveTurn produces (spec.md
// §6): the mutated state, the full event log, every combat report, and the
// fog-of-war-filtered view computed per house.
type Result struct {
	State         *state.State
	Events        []events.Event
	CombatReports []combat.Report
	Views         map[ids.HouseID]intel.View
}

// seedFor derives a deterministic RNG seed from the turn number and the
// game's root seed (spec.md §8 determinism property 2: RNG is seeded from
// (turn, game_seed) and never self-seeds).
func seedFor(turn uint32, gameSeed int64) int64 {
	return gameSeed ^ int64(turn)<<32 ^ int64(turn)
}

// resolution bundles the per-call state every phase helper needs, so
// individual phase functions take one argument instead of accumulating
// parameters as the orchestration grows — the same "one context struct
// threaded through a pipeline" shape the teacher uses for
// ships/formation_combat.go's CombatContext.
type resolution struct {
	s        *state.State
	cfg      config.GameConfig
	graph    fleets.Graph
	cont     *Continuity
	packets  map[ids.HouseID]packet.CommandPacket
	turn     uint32
	rng      *rand.Rand
	elog     *events.Log
	reports  []combat.Report
	assigned map[ids.FleetID]fleets.Command
}

// ResolveTurn runs the four fixed phases against s, mutating it in place,
// and returns the event log, combat reports, and per-house intel views
// produced. graph is the jump-lane topology; packets holds each house's
// submitted CommandPacket (a house with no packet this turn is treated as
// idle, matching autopilot handling — spec.md §4.2). On a fatal invariant
// violation the caller's s is left at its pre-turn snapshot and an error is
// returned; no partial turn is ever surfaced.
func ResolveTurn(ctx context.Context, logger zerolog.Logger, s *state.State, cfg config.GameConfig, graph fleets.Graph, cont *Continuity, packets map[ids.HouseID]packet.CommandPacket, turn uint32, gameSeed int64) (Result, error) {
	log := logger.With().Uint32("turn", turn).Logger()
	preTurn := s.Clone()

	r := &resolution{
		s:        s,
		cfg:      cfg,
		graph:    graph,
		cont:     cont,
		packets:  packets,
		turn:     turn,
		rng:      rand.New(rand.NewSource(seedFor(turn, gameSeed))),
		elog:     events.NewLog(),
		assigned: map[ids.FleetID]fleets.Command{},
	}

	log.Info().Msg("resolving turn")

	r.resolveConflictPhase()
	log.Debug().Int("combats", len(r.reports)).Msg("conflict phase done")

	r.resolveIncomePhase()
	log.Debug().Msg("income phase done")

	r.resolveCommandPhase()
	log.Debug().Int("events", r.elog.Len()).Msg("command phase done")

	r.resolveMaintenancePhase()
	log.Debug().Msg("maintenance phase done")

	if err := checkInvariants(s); err != nil {
		log.Error().Err(err).Msg("fatal invariant violation, rolling back turn")
		*s = *preTurn
		return Result{}, err
	}

	views, err := computeViews(ctx, s)
	if err != nil {
		log.Error().Err(err).Msg("fatal error computing per-house views, rolling back turn")
		*s = *preTurn
		return Result{}, err
	}

	log.Info().Int("events", r.elog.Len()).Msg("turn resolved")

	return Result{
		State:         s,
		Events:        r.elog.All(),
		CombatReports: r.reports,
		Views:         views,
	}, nil
}

func (r *resolution) resolveConflictPhase() {
	provider := diplomacy.NewMemoryProvider(r.cont.Diplomacy)

	for _, sys := range r.s.AllSystems() {
		houseSquadrons := map[ids.HouseID][]ids.SquadronID{}
		for _, fid := range r.s.FleetsAt(sys.ID) {
			f, ok := r.s.Fleet(fid)
			if !ok || f.Status != state.FleetActive {
				continue
			}
			for _, sqID := range r.s.SquadronsOf(fid) {
				houseSquadrons[f.Owner] = append(houseSquadrons[f.Owner], sqID)
			}
		}
		if !anyTwoHousesAreEnemies(houseSquadrons, provider, r.s.Turn) {
			continue
		}

		report := combat.Resolve(r.s, r.cfg.Combat, r.rng, sys.ID, r.s.Turn, houseSquadrons)
		r.reports = append(r.reports, report)

		r.elog.Emit(events.Event{
			Turn:     r.s.Turn,
			Type:     events.TypeCombatResolved,
			SystemID: sys.ID,
			Payload: events.CombatResolvedPayload{
				Participants:  report.Participants,
				Victor:        report.Victor,
				WasStalemate:  report.WasStalemate,
				TotalRounds:   report.TotalRounds,
				LossesByHouse: report.LossesByHouse,
			},
		})
	}
}

func anyTwoHousesAreEnemies(houseSquadrons map[ids.HouseID][]ids.SquadronID, p diplomacy.Provider, turn uint32) bool {
	houses := make([]ids.HouseID, 0, len(houseSquadrons))
	for h := range houseSquadrons {
		houses = append(houses, h)
	}
	houses = diplomacy.SortedHouses(houses)
	for i := 0; i < len(houses); i++ {
		for j := i + 1; j < len(houses); j++ {
			if p.AreEnemies(houses[i], houses[j], turn) {
				return true
			}
		}
	}
	return false
}

func (r *resolution) resolveIncomePhase() {
	for _, h := range r.s.AllHouses() {
		if h.Status == state.HouseEliminated {
			continue
		}
		economy.ResolveIncome(r.s, r.cfg, h.ID)
	}
}

func (r *resolution) resolveCommandPhase() {
	// Unified Commissioning: drain last turn's completed constructions before
	// touching any new order (spec.md §4.5).
	if len(r.cont.PendingCommissions) > 0 {
		for range commission.Commission(r.s, r.cont.PendingCommissions) {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderCompleted, Description: "ship commissioned"})
		}
		r.cont.PendingCommissions = nil
	}

	espionageTracker := espionage.NewTracker()

	for _, h := range r.s.AllHouses() {
		p, submitted := r.packets[h.ID]
		if !submitted {
			continue // autopilot: house issues no new orders this turn
		}
		if err := packet.Validate(p, r.turn); err != nil {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderRejected, HouseID: h.ID, Description: err.Error()})
			continue
		}

		r.applyFleetCommands(h.ID, p)
		r.applyBuildCommands(h.ID, p)
		r.applyDiplomaticCommands(h.ID, p)
		r.applyEspionageCommands(h.ID, p, espionageTracker)
		r.applyResearchAllocation(h.ID, p)
	}
}

// applyResearchAllocation stores this turn's TRP split by tech field onto the
// house (spec.md §4.4: "research points are allocated from PP per the
// house's ResearchAllocation"). A maintenance-shortfall cascade later in the
// turn forfeits it (spec.md §4.4 step 2).
func (r *resolution) applyResearchAllocation(h ids.HouseID, p packet.CommandPacket) {
	if len(p.ResearchAllocation) == 0 {
		return
	}
	house, ok := r.s.House(h)
	if !ok {
		return
	}
	house.ResearchAllocation = p.ResearchAllocation
	r.s.UpdateHouse(house)
}

func (r *resolution) applyFleetCommands(h ids.HouseID, p packet.CommandPacket) {
	fleetIDs := make([]ids.FleetID, 0, len(p.FleetCommands))
	for fid := range p.FleetCommands {
		fleetIDs = append(fleetIDs, fid)
	}
	sort.Slice(fleetIDs, func(i, j int) bool { return fleetIDs[i] < fleetIDs[j] })

	for _, fid := range fleetIDs {
		cmd := p.FleetCommands[fid]
		f, ok := r.s.Fleet(fid)
		if !ok {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderRejected, HouseID: h, FleetID: fid, Description: "fleet not found"})
			continue
		}
		if err := fleets.Validate(r.s, r.graph, f, h, cmd); err != nil {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderRejected, HouseID: h, FleetID: fid, Description: err.Error()})
			continue
		}
		f.HasAssignedCommand = true
		f.Mission = state.MissionExecuting
		r.s.UpdateFleet(f)
		r.assigned[fid] = cmd
		r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderIssued, HouseID: h, FleetID: fid})
	}
}

func (r *resolution) applyBuildCommands(h ids.HouseID, p packet.CommandPacket) {
	house, ok := r.s.House(h)
	if !ok {
		return
	}
	for _, b := range p.BuildCommands {
		_, err := commission.SubmitBuildOrder(r.cfg, r.s, h, b.Colony, b.Facility, b.TargetClass, b.IsShip, 0, baseCostFor(r.cfg, b), house.Tech.CST)
		if err != nil {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderRejected, HouseID: h, Description: err.Error()})
			continue
		}
		r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeConstructionStarted, HouseID: h})
	}
}

func baseCostFor(cfg config.GameConfig, b packet.BuildCommand) int {
	if b.IsShip {
		if spec, ok := cfg.Ships[config.ShipClass(b.TargetClass)]; ok {
			return spec.BuildCost
		}
		return 0
	}
	if spec, ok := cfg.Facilities[config.FacilityClass(b.TargetClass)]; ok {
		return spec.Cost
	}
	return 0
}

func (r *resolution) applyDiplomaticCommands(h ids.HouseID, p packet.CommandPacket) {
	for _, d := range p.DiplomaticCommands {
		switch d.Kind {
		case "Declare":
			r.cont.Diplomacy.Declare(h, d.Target, diplomacy.Relation(d.Value))
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeDiplomaticTransition, HouseID: h})
		case "AcceptCeasefire":
			r.cont.Diplomacy.AcceptCeasefire(h, d.Target)
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeDiplomaticTransition, HouseID: h})
		}
	}
}

func (r *resolution) applyEspionageCommands(h ids.HouseID, p packet.CommandPacket, tracker *espionage.Tracker) {
	house, ok := r.s.House(h)
	if !ok {
		return
	}
	for _, e := range p.EspionageActions {
		if !tracker.CanTarget(r.cfg.Espionage, e.Target) {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeOrderRejected, HouseID: h, Description: "espionage target op cap reached this turn"})
			continue
		}
		target, ok := r.s.House(e.Target)
		if !ok {
			continue
		}
		spec, ok := r.cfg.Espionage.Ops[config.EspionageOperation(e.Op)]
		if !ok {
			continue
		}
		tracker.Record(e.Target)

		outcome := espionage.Resolve(r.rng, spec, house.CIP, target.Tech.CIC, 0)
		r.elog.Emit(events.Event{
			Turn: r.turn, Type: events.TypeEspionageResolved, HouseID: h,
			Payload: events.EspionageResolvedPayload{
				Attacker: h, Defender: e.Target,
				Detected: outcome.Detected, Succeeded: outcome.Succeeded, Magnitude: outcome.Magnitude,
			},
		})
		if outcome.Detected {
			r.elog.Emit(events.Event{Turn: r.turn, Type: events.TypeEspionageDetected, HouseID: e.Target})
		}
	}
}

// executeFleetCommands applies the Maintenance-phase mechanical side effects
// (movement, colonization, blockade flagging, status transitions) for every
// command the Command phase accepted this turn (spec.md §4: the Maintenance
// phase, not the Command phase, is where fleet orders actually execute).
func (r *resolution) executeFleetCommands() {
	fids := make([]ids.FleetID, 0, len(r.assigned))
	for fid := range r.assigned {
		fids = append(fids, fid)
	}
	sort.Slice(fids, func(i, j int) bool { return fids[i] < fids[j] })

	for _, fid := range fids {
		cmd := r.assigned[fid]
		f, ok := r.s.Fleet(fid)
		if !ok {
			continue
		}
		owner := f.Owner
		result := fleets.Execute(r.s, f, cmd)
		if result.Aborted {
			r.elog.Emit(events.Event{Turn: r.s.Turn, Type: events.TypeOrderAborted, HouseID: owner, FleetID: fid, Description: result.AbortReason})
			continue
		}
		r.elog.Emit(events.Event{Turn: r.s.Turn, Type: events.TypeOrderCompleted, HouseID: owner, FleetID: fid})
	}
	r.assigned = map[ids.FleetID]fleets.Command{}
}

func (r *resolution) resolveMaintenancePhase() {
	r.executeFleetCommands()

	for _, h := range r.s.AllHouses() {
		if h.Status == state.HouseEliminated {
			continue
		}

		if plan, shortfall := economy.PlanShortfall(r.s, r.cfg, h.ID); shortfall {
			salvage := economy.ApplyShortfall(r.s, plan)
			r.elog.Emit(events.Event{
				Turn: r.s.Turn, Type: events.TypeResourceWarning, HouseID: h.ID,
				Payload: events.ShortfallCascadePayload{
					ConsecutiveShortfall: plan.ConsecutiveShortfall,
					SalvageCollected:     int(salvage),
					PrestigeDelta:        plan.PrestigeDelta,
				},
			})
		}

		actions := capacity.Enforce(r.s, r.cfg.Military, r.cont.trackerFor(h.ID), h.ID)
		if len(actions) > 0 {
			capacity.Apply(r.s, actions)
			for range actions {
				r.elog.Emit(events.Event{Turn: r.s.Turn, Type: events.TypeSquadronDisbanded, HouseID: h.ID})
			}
		}
	}

	completed := commission.AdvanceQueues(r.s)
	r.cont.PendingCommissions = append(r.cont.PendingCommissions, completed...)
	sort.Slice(r.cont.PendingCommissions, func(i, j int) bool { return r.cont.PendingCommissions[i] < r.cont.PendingCommissions[j] })

	r.s.Turn++
}

// checkInvariants enforces the fatal, turn-ending invariants (spec.md §8.2)
// that justify a full rollback rather than a per-command rejection, as
// opposed to violations handled per-command (ownership, funds) which are
// rejected earlier during Command-phase application and never reach here.
func checkInvariants(s *state.State) error {
	for _, c := range s.AllColonies() {
		if _, ok := s.ColonyAtSystem(c.System); !ok {
			return errColonySystemMismatch
		}
	}
	return nil
}

type engineError string

func (e engineError) Error() string { return string(e) }

const errColonySystemMismatch = engineError("colony references a system with no matching index entry")

func computeViews(ctx context.Context, s *state.State) (map[ids.HouseID]intel.View, error) {
	houses := s.AllHouses()
	systems := s.AllSystems()

	views := make(map[ids.HouseID]intel.View, len(houses))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, h := range houses {
		h := h
		g.Go(func() error {
			view := intel.ComputeView(s, h.ID, systems, nil)
			mu.Lock()
			views[h.ID] = view
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
