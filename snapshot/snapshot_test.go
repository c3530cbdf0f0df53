package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/snapshot"
	"github.com/nicoberrocal/nomarch/state"
)

func TestEncodeDecode_RoundTrips(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 500})
	sys := s.AddSystem(state.System{})
	s.AddColony(state.Colony{Owner: h, System: sys})

	dto := snapshot.ToDTO(s, 7)
	data, err := snapshot.Encode(s, dto)
	require.NoError(t, err)

	decoded, err := snapshot.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), decoded.Turn)
	assert.Len(t, decoded.Houses, 1)
	assert.Len(t, decoded.Colonies, 1)
}

func TestContentHash_IsStableForIdenticalBlob(t *testing.T) {
	s := state.New()
	dto := snapshot.ToDTO(s, 1)
	data, err := snapshot.Encode(s, dto)
	require.NoError(t, err)

	// ContentHash is the determinism check: hashing the same blob twice
	// yields the same digest.
	h1 := snapshot.ContentHash(data)
	h2 := snapshot.ContentHash(data)
	assert.Equal(t, h1, h2)
}

func TestContentHash_DiffersOnDifferentState(t *testing.T) {
	s1 := state.New()
	s1.AddHouse(state.House{Treasury: 100})
	dto1 := snapshot.ToDTO(s1, 1)
	data1, err := snapshot.Encode(s1, dto1)
	require.NoError(t, err)

	s2 := state.New()
	s2.AddHouse(state.House{Treasury: 200})
	dto2 := snapshot.ToDTO(s2, 1)
	data2, err := snapshot.Encode(s2, dto2)
	require.NoError(t, err)

	assert.NotEqual(t, snapshot.ContentHash(data1), snapshot.ContentHash(data2))
}

func TestPlayerStateHeader_Compatible(t *testing.T) {
	cfgBytes := []byte("config-v1")
	h := snapshot.PlayerStateHeader{
		ConfigSchemaVersion: 1,
		ConfigHash:          snapshot.ConfigHash(cfgBytes),
	}
	assert.True(t, h.Compatible(1, snapshot.ConfigHash(cfgBytes)))
	assert.False(t, h.Compatible(2, snapshot.ConfigHash(cfgBytes)))
	assert.False(t, h.Compatible(1, snapshot.ConfigHash([]byte("config-v2"))))
}
