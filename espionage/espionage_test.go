package espionage_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/espionage"
	"github.com/nicoberrocal/nomarch/ids"
)

func TestResolve_HighDetectionAlwaysDetects(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spec := config.EspionageOpSpec{BaseDetection: 1000, PrestigeDeltaAttackerDetected: -5}
	out := espionage.Resolve(rng, spec, 0, 0, 0)
	assert.True(t, out.Detected)
	assert.False(t, out.Succeeded)
}

func TestResolve_ZeroDetectionNeverDetects(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spec := config.EspionageOpSpec{BaseDetection: -1000, EffectMagnitudeMin: 1, EffectMagnitudeMax: 2}
	out := espionage.Resolve(rng, spec, 0, 0, 0)
	assert.False(t, out.Detected)
	assert.True(t, out.Succeeded)
	assert.GreaterOrEqual(t, out.Magnitude, 1.0)
	assert.LessOrEqual(t, out.Magnitude, 2.0)
}

func TestTracker_EnforcesPerTargetCap(t *testing.T) {
	cfg := config.EspionageConfig{MaxOpsPerTargetPerTurn: 3}
	tracker := espionage.NewTracker()
	var target ids.HouseID = 7
	for i := 0; i < 3; i++ {
		assert.True(t, tracker.CanTarget(cfg, target))
		tracker.Record(target)
	}
	assert.False(t, tracker.CanTarget(cfg, target))
}
