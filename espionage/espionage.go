// Package espionage resolves the ten espionage operation kinds from spec.md
// §4.7 through one shared resolution shape: detection threshold from target
// CIC, a d100 roll modified by attacker CIP and mesh-network bonuses,
// on-detect vs on-success branches, and a cap of 3 operations per target
// house per turn. It generalizes the teacher's formation-combat "roll,
// compare against threshold, branch on result" idiom
// (ships/formation_combat.go's shield/CER resolution) to the spy-operation
// domain.
package espionage

import (
	"math/rand"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
)

// Outcome is the resolved result of one espionage operation.
type Outcome struct {
	Attacker              ids.HouseID
	Defender              ids.HouseID
	Op                    config.EspionageOperation
	Detected              bool
	Succeeded             bool
	Magnitude             float64 // effect magnitude when Succeeded, rolled within [Min,Max]
	PrestigeDeltaAttacker int
	PrestigeDeltaDefender int
}

// Tracker counts operations already attempted against a target house this
// turn, enforcing the MaxOpsPerTargetPerTurn cap (spec.md §4.7). Reset once
// per turn by the caller.
type Tracker struct {
	counts map[ids.HouseID]int
}

// NewTracker returns an empty per-turn tracker.
func NewTracker() *Tracker { return &Tracker{counts: map[ids.HouseID]int{}} }

// CanTarget reports whether target has not yet hit the per-turn op cap.
func (t *Tracker) CanTarget(cfg config.EspionageConfig, target ids.HouseID) bool {
	return t.counts[target] < cfg.MaxOpsPerTargetPerTurn
}

// Record increments target's op count for this turn.
func (t *Tracker) Record(target ids.HouseID) { t.counts[target]++ }

// Resolve runs the shared shape for one operation:
//  1. detection threshold = spec.BaseDetection modified by target CIC
//  2. roll d100 modified by attacker CIP + meshBonus
//  3. on detect: penalty to attacker, no effect
//  4. otherwise the operation succeeds (every undetected operation does):
//     apply action-specific effect magnitude and prestige deltas
func Resolve(rng *rand.Rand, spec config.EspionageOpSpec, attackerCIP int, targetCIC int, meshBonus int) Outcome {
	outcome := Outcome{Op: spec.Op}

	detectionThreshold := spec.BaseDetection + targetCIC
	if detectionThreshold > 100 {
		detectionThreshold = 100
	}
	if detectionThreshold < 0 {
		detectionThreshold = 0
	}

	roll := rng.Intn(100) + 1 // d100, 1-100
	modifiedRoll := roll + attackerCIP + meshBonus

	if modifiedRoll <= detectionThreshold {
		outcome.Detected = true
		outcome.PrestigeDeltaAttacker = spec.PrestigeDeltaAttackerDetected
		return outcome
	}

	outcome.Succeeded = true
	span := spec.EffectMagnitudeMax - spec.EffectMagnitudeMin
	outcome.Magnitude = spec.EffectMagnitudeMin + rng.Float64()*span
	outcome.PrestigeDeltaAttacker = spec.PrestigeDeltaAttackerSuccess
	outcome.PrestigeDeltaDefender = spec.PrestigeDeltaDefenderSuccess
	return outcome
}
