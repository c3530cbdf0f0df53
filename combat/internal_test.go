package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// TestApplyDamage_AccumulatesAcrossHits exercises spec.md §4.3's "accumulated
// damage past DS cripples" rule: two hits that individually fall short of DS
// must still cripple the ship once their sum crosses it.
func TestApplyDamage_AccumulatesAcrossHits(t *testing.T) {
	s := state.New()
	shipID := s.AddShip(state.Ship{Owner: ids.HouseID(1), Class: "Cruiser", AS: 20, DS: 10})

	changed := applyDamage(s, shipID, 6)
	assert.False(t, changed)
	ship, _ := s.Ship(shipID)
	assert.False(t, ship.Crippled)
	assert.Equal(t, 6, ship.AccumulatedDamage)

	changed = applyDamage(s, shipID, 6)
	assert.True(t, changed)
	ship, _ = s.Ship(shipID)
	assert.True(t, ship.Crippled)
	assert.Equal(t, 10, ship.AS) // halved from 20
	assert.Equal(t, 0, ship.AccumulatedDamage)
}

// TestApplyDamage_SecondThresholdCrossingDestroysCrippledShip exercises the
// "crippled ship taking further damage past the same threshold is destroyed"
// clause of spec.md §4.3.
func TestApplyDamage_SecondThresholdCrossingDestroysCrippledShip(t *testing.T) {
	s := state.New()
	shipID := s.AddShip(state.Ship{Owner: ids.HouseID(1), Class: "Cruiser", AS: 20, DS: 10})

	applyDamage(s, shipID, 15) // crosses DS once, cripples
	ship, ok := s.Ship(shipID)
	require := assert.New(t)
	require.True(ok)
	require.True(ship.Crippled)

	changed := applyDamage(s, shipID, 10) // crosses DS a second time while crippled
	require.True(changed)
	_, stillExists := s.Ship(shipID)
	require.False(stillExists)
}
